// This file is part of histmap (https://github.com/spezifisch/histmap).
// Copyright (C) 2022 spezifisch <spezifisch-7e6@below.fr> (https://github.com/spezifisch).
//
// This program is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the
// Free Software Foundation, version 3 of the License.
//
// This program is distributed in the hope that it will be useful, but WITHOUT
// ANY WARRANTY; without even the implied warranty of MERCHANTABILITY or FITNESS
// FOR A PARTICULAR PURPOSE. See the GNU Affero General Public License for more
// details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program. If not, see <https://www.gnu.org/licenses/>.

// Package feed loads the GeoJSON data behind the overlays, from a local file
// or over HTTP.
package feed

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/paulmach/orb/geojson"
	log "github.com/sirupsen/logrus"
)

// ErrNotRegularFile is returned for local sources that are directories or
// devices.
var ErrNotRegularFile = errors.New("not a file")

// ErrBadStatus is returned when a remote source answers with a non-2xx
// status.
var ErrBadStatus = errors.New("unexpected status")

// DefaultTimeout bounds a single remote fetch.
const DefaultTimeout = 30 * time.Second

// MaxSize caps the number of bytes read from one source.
const MaxSize = 64 << 20

// Fetcher loads feeds. Remote fetches are attempted exactly once.
type Fetcher struct {
	client *retryablehttp.Client
}

// NewFetcher returns a Fetcher whose remote fetches time out after timeout.
func NewFetcher(timeout time.Duration) *Fetcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	client := retryablehttp.NewClient()
	client.RetryMax = 0
	client.Logger = logrusLogger{}
	client.ErrorHandler = retryablehttp.PassthroughErrorHandler
	client.HTTPClient.Timeout = timeout
	return &Fetcher{client: client}
}

// IsRemote reports whether location is fetched over HTTP.
func IsRemote(location string) bool {
	return strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://")
}

// Fetch loads and decodes src.
func (f *Fetcher) Fetch(ctx context.Context, src Source) (*Document, error) {
	fc, err := f.FetchFeatures(ctx, src.Location)
	if err != nil {
		if src.Name != "" {
			err = fmt.Errorf("feed %s: %w", src.Name, err)
		}
		return nil, err
	}
	return &Document{Source: src, Features: fc}, nil
}

// FetchFeatures loads the GeoJSON feature collection at location.
func (f *Fetcher) FetchFeatures(ctx context.Context, location string) (fc *geojson.FeatureCollection, err error) {
	start := time.Now()

	var data []byte
	if IsRemote(location) {
		data, err = f.fetchRemote(ctx, location)
	} else {
		data, err = readLocal(strings.TrimPrefix(location, "file://"))
	}
	if err != nil {
		return nil, err
	}

	fc, err = geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", location, err)
	}
	log.WithFields(log.Fields{
		"source":   location,
		"features": len(fc.Features),
		"took":     time.Since(start),
	}).Info("feed loaded")
	return fc, nil
}

func (f *Fetcher) fetchRemote(ctx context.Context, url string) ([]byte, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/geo+json, application/json")

	res, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, fmt.Errorf("fetch %s: %w: %d", url, ErrBadStatus, res.StatusCode)
	}
	return io.ReadAll(io.LimitReader(res.Body, MaxSize))
}

func readLocal(file string) ([]byte, error) {
	if err := checkFiles([]string{file}); err != nil {
		return nil, err
	}
	fp, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer fp.Close()

	br := bufio.NewReaderSize(fp, 65536)
	return io.ReadAll(io.LimitReader(br, MaxSize))
}

func checkFiles(files []string) (err error) {
	for _, file := range files {
		var fi os.FileInfo
		fi, err = os.Stat(file)
		if err != nil {
			return
		}

		if !fi.Mode().IsRegular() {
			return fmt.Errorf("'%s': %w", file, ErrNotRegularFile)
		}
	}
	return
}

// logrusLogger feeds retryablehttp's leveled logging into logrus.
type logrusLogger struct{}

func fields(keysAndValues []interface{}) log.Fields {
	f := log.Fields{}
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		f[fmt.Sprint(keysAndValues[i])] = keysAndValues[i+1]
	}
	return f
}

func (logrusLogger) Error(msg string, kv ...interface{}) { log.WithFields(fields(kv)).Error(msg) }
func (logrusLogger) Warn(msg string, kv ...interface{})  { log.WithFields(fields(kv)).Warn(msg) }
func (logrusLogger) Info(msg string, kv ...interface{})  { log.WithFields(fields(kv)).Debug(msg) }
func (logrusLogger) Debug(msg string, kv ...interface{}) { log.WithFields(fields(kv)).Trace(msg) }
