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

package config

import (
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/spezifisch/histmap/pkg/feed"
)

// Config holds all user-facing configuration for histmap.
type Config struct {
	Server ServerConfig `toml:"server"`
	Feeds  FeedsConfig  `toml:"feeds"`
	Prefs  PrefsConfig  `toml:"prefs"`
	Grid   GridConfig   `toml:"grid"`
	Render RenderConfig `toml:"render"`
}

type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

type FeedsConfig struct {
	Airports feed.Source `toml:"airports"`
	States   feed.Source `toml:"states"`
	Timeout  Duration    `toml:"timeout"`
}

type PrefsConfig struct {
	Path string `toml:"path"`
}

type GridConfig struct {
	Debounce Duration `toml:"debounce"`
}

type RenderConfig struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`
}

// Duration is a time.Duration written as a string like "300ms" in TOML.
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Defaults returns a Config populated with built-in default values.
func Defaults() *Config {
	return &Config{
		Server: ServerConfig{Host: "localhost", Port: 8080},
		Feeds: FeedsConfig{
			Airports: feed.Source{Name: "airports", Location: "airports.geojson"},
			States: feed.Source{
				Name:     "us-states",
				Location: "https://raw.githubusercontent.com/PublicaMundi/MappingAPI/master/data/geojson/us-states.json",
			},
			Timeout: Duration{30 * time.Second},
		},
		Prefs:  PrefsConfig{Path: "histmap-prefs.toml"},
		Grid:   GridConfig{Debounce: Duration{300 * time.Millisecond}},
		Render: RenderConfig{Width: 1024, Height: 768},
	}
}

// Load reads a TOML config file. If the file does not exist, built-in
// defaults are returned without error.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
