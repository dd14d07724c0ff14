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

package main

import (
	"fmt"
	"os"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/spezifisch/histmap/internal/config"
	"github.com/spezifisch/histmap/pkg/atlas"
	"github.com/spezifisch/histmap/pkg/feed"
	"github.com/spezifisch/histmap/pkg/prefs"
)

var (
	configPath string
	prefsPath  string
	verbose    bool
	cfg        *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "histmap",
	Short: "Render historical map overlays",
	Long: `Render the overlays of the historical maps collection: survey grids,
airport networks and state boundaries, as GeoJSON or KML.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if verbose {
			log.SetLevel(log.DebugLevel)
		}

		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if !cmd.Flags().Changed("prefs") {
			prefsPath = cfg.Prefs.Path
		}
		return nil
	},
}

// newRenderer wires a renderer from the loaded config and saved preferences.
func newRenderer() (*atlas.Renderer, error) {
	store, err := prefs.Open(prefsPath)
	if err != nil {
		return nil, err
	}
	return &atlas.Renderer{
		Options: atlas.Options{
			Airports: cfg.Feeds.Airports,
			States:   cfg.Feeds.States,
			Debounce: cfg.Grid.Debounce.Duration,
		},
		Feeds:  feed.NewFetcher(cfg.Feeds.Timeout.Duration),
		Keys:   store,
		Width:  cfg.Render.Width,
		Height: cfg.Render.Height,
	}, nil
}

// from: https://coderwall.com/p/cp5fya/measuring-execution-time-in-go
func timeTrack(start time.Time, name string) {
	elapsed := time.Since(start)
	log.Debugf("> %s took %s", name, elapsed)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.toml", "Path to configuration file")
	rootCmd.PersistentFlags().StringVar(&prefsPath, "prefs", "histmap-prefs.toml", "Path to saved preferences")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
