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

// Package prefs persists user preferences in a small TOML file.
package prefs

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	log "github.com/sirupsen/logrus"
)

// KeyStadiaAPIKey holds the Stadia Maps API key.
const KeyStadiaAPIKey = "stadiaApiKey"

// ErrInvalidAPIKey is returned when saving an empty API key.
var ErrInvalidAPIKey = errors.New("Please enter a valid API key")

// Store is a string key-value store backed by a TOML file. A missing file is
// an empty store.
type Store struct {
	path string

	mu     sync.Mutex
	values map[string]string
}

// Open loads the store at path.
func Open(path string) (*Store, error) {
	s := &Store{path: path, values: map[string]string{}}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return s, nil
	}
	if _, err := toml.DecodeFile(path, &s.values); err != nil {
		return nil, fmt.Errorf("read preferences %s: %w", path, err)
	}
	return s, nil
}

// Path returns the backing file.
func (s *Store) Path() string {
	return s.path
}

// Get returns the value of key, or "" if unset.
func (s *Store) Get(key string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.values[key]
}

// Set stores value under key and writes the file.
func (s *Store) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return s.save()
}

// APIKey returns the saved Stadia Maps API key.
func (s *Store) APIKey() string {
	return s.Get(KeyStadiaAPIKey)
}

// SaveAPIKey trims key and saves it. Blank keys are rejected.
func (s *Store) SaveAPIKey(key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return ErrInvalidAPIKey
	}
	if err := s.Set(KeyStadiaAPIKey, key); err != nil {
		return err
	}
	log.WithField("path", s.path).Info("API key saved, map tiles will now use your Stadia Maps API key")
	return nil
}

func (s *Store) save() error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(s.values); err != nil {
		return fmt.Errorf("encode preferences: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create preferences dir: %w", err)
		}
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("write preferences: %w", err)
	}
	return os.Rename(tmp, s.path)
}
