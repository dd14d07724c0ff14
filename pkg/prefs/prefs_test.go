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

package prefs

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_MissingFile(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "prefs.toml"))
	require.NoError(t, err)
	assert.Empty(t, s.APIKey())
}

func TestStore_SaveAPIKey(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		want    string
		wantErr error
	}{
		{name: "plain", key: "abc123", want: "abc123"},
		{name: "trimmed", key: "  abc123\n", want: "abc123"},
		{name: "empty", key: "", wantErr: ErrInvalidAPIKey},
		{name: "blank", key: " \t ", wantErr: ErrInvalidAPIKey},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "sub", "prefs.toml")
			s, err := Open(path)
			require.NoError(t, err)

			err = s.SaveAPIKey(tt.key)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr))
				assert.Equal(t, "Please enter a valid API key", err.Error())
				assert.NoFileExists(t, path)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, s.APIKey())

			// survives a reopen
			s2, err := Open(path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, s2.Get(KeyStadiaAPIKey))
		})
	}
}

func TestStore_SetKeepsOtherKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.toml")
	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Set("theme", "dark"))
	require.NoError(t, s.SaveAPIKey("k"))

	s2, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, "dark", s2.Get("theme"))
	assert.Equal(t, "k", s2.APIKey())
}

func TestStore_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.toml")
	require.NoError(t, os.WriteFile(path, []byte("stadiaApiKey = "), 0o600))
	_, err := Open(path)
	assert.Error(t, err)
}
