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

package tiles

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithAPIKey(t *testing.T) {
	tests := []struct {
		name     string
		template string
		key      string
		want     string
	}{
		{
			name:     "stadia without query",
			template: StamenWatercolor.URL,
			key:      "abc123",
			want:     "https://tiles.stadiamaps.com/tiles/stamen_watercolor/{z}/{x}/{y}.jpg?api_key=abc123",
		},
		{
			name:     "stadia with query",
			template: "https://tiles.stadiamaps.com/tiles/x/{z}/{x}/{y}.png?lang=en",
			key:      "abc123",
			want:     "https://tiles.stadiamaps.com/tiles/x/{z}/{x}/{y}.png?lang=en&api_key=abc123",
		},
		{
			name:     "empty key",
			template: StamenTerrain.URL,
			key:      "",
			want:     StamenTerrain.URL,
		},
		{
			name:     "other host",
			template: CartoLight.URL,
			key:      "abc123",
			want:     CartoLight.URL,
		},
		{
			name:     "lookalike host",
			template: "https://stadiamaps.com.evil.example/{z}/{x}/{y}.png",
			key:      "abc123",
			want:     "https://stadiamaps.com.evil.example/{z}/{x}/{y}.png",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WithAPIKey(tt.template, tt.key))
		})
	}
}

func TestBasemap_WithAPIKey(t *testing.T) {
	b := StamenTerrain.WithAPIKey("k")
	assert.Equal(t, StamenTerrain.URL+"?api_key=k", b.URL)
	assert.Equal(t, StamenTerrain.Attribution, b.Attribution)
	assert.NotContains(t, StamenTerrain.URL, "api_key", "package var untouched")
}
