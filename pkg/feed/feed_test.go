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

package feed

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetcher_FetchFeatures_Local(t *testing.T) {
	tests := []struct {
		name     string
		location string
		wantErr  error
		wantAny  bool
		want     int
	}{
		{
			name:     "no file",
			location: "",
			wantAny:  true,
		},
		{
			name:     "non-existent file",
			location: "testdata/nonexistent_foo",
			wantErr:  os.ErrNotExist,
		},
		{
			name:     "directory",
			location: "testdata",
			wantErr:  ErrNotRegularFile,
		},
		{
			name:     "invalid json",
			location: "testdata/invalid.json",
			wantAny:  true,
		},
		{
			name:     "test file",
			location: "testdata/airports.geojson",
			want:     5,
		},
		{
			name:     "file url",
			location: "file://testdata/airports.geojson",
			want:     5,
		},
	}
	f := NewFetcher(time.Second)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fc, err := f.FetchFeatures(context.Background(), tt.location)
			switch {
			case tt.wantErr != nil:
				assert.True(t, errors.Is(err, tt.wantErr), "FetchFeatures() error = %v", err)
			case tt.wantAny:
				assert.Error(t, err)
			default:
				require.NoError(t, err)
				assert.Len(t, fc.Features, tt.want)
			}
		})
	}
}

func TestFetcher_FetchFeatures_Remote(t *testing.T) {
	body, err := os.ReadFile("testdata/airports.geojson")
	require.NoError(t, err)

	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		switch r.URL.Path {
		case "/airports.geojson":
			w.Header().Set("Content-Type", "application/geo+json")
			_, _ = w.Write(body)
		case "/broken":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	tests := []struct {
		name     string
		path     string
		wantErr  error
		wantHits int32
	}{
		{name: "ok", path: "/airports.geojson", wantHits: 1},
		{name: "not found", path: "/missing", wantErr: ErrBadStatus, wantHits: 1},
		{name: "server error is not retried", path: "/broken", wantErr: ErrBadStatus, wantHits: 1},
	}
	f := NewFetcher(time.Second)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			atomic.StoreInt32(&hits, 0)
			fc, err := f.FetchFeatures(context.Background(), srv.URL+tt.path)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr), "FetchFeatures() error = %v", err)
			} else {
				require.NoError(t, err)
				assert.Len(t, fc.Features, 5)
			}
			assert.Equal(t, tt.wantHits, atomic.LoadInt32(&hits))
		})
	}
}

func TestFetcher_Fetch(t *testing.T) {
	f := NewFetcher(0)
	src := Source{Name: "airports", Location: "testdata/airports.geojson"}
	doc, err := f.Fetch(context.Background(), src)
	require.NoError(t, err)
	assert.Equal(t, src, doc.Source)
	require.NotNil(t, doc.Features)
	assert.Len(t, doc.Features.Features, 5)

	_, err = f.Fetch(context.Background(), Source{Name: "states", Location: "testdata/nope.geojson"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "feed states")
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestFetcher_Cancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"type":"FeatureCollection","features":[]}`))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewFetcher(time.Second).FetchFeatures(ctx, srv.URL)
	assert.Error(t, err)
}

func TestIsRemote(t *testing.T) {
	assert.True(t, IsRemote("https://example.com/a.json"))
	assert.True(t, IsRemote("http://example.com/a.json"))
	assert.False(t, IsRemote("airports.geojson"))
	assert.False(t, IsRemote("file:///tmp/a.json"))
}
