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
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/spezifisch/histmap/pkg/atlas"
	"github.com/spezifisch/histmap/pkg/geo"
	"github.com/spezifisch/histmap/pkg/surface"
)

var (
	renderMap    string
	renderZoom   int
	renderBBox   string
	renderFormat string
	renderOutput string
	renderNoGrid bool
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a map overlay to GeoJSON or KML",
	RunE: func(cmd *cobra.Command, args []string) error {
		tStart := time.Now()

		id, err := atlas.ParseMapID(renderMap)
		if err != nil {
			return err
		}
		if renderFormat != "geojson" && renderFormat != "kml" {
			return fmt.Errorf("unknown format %q, want geojson or kml", renderFormat)
		}

		var view *atlas.View
		if cmd.Flags().Changed("zoom") || renderNoGrid {
			view = &atlas.View{Zoom: renderZoom, HideGrid: renderNoGrid}
		}
		if renderBBox != "" {
			b, err := geo.ParseBounds(renderBBox)
			if err != nil {
				return err
			}
			if view == nil || view.Zoom == 0 {
				return errors.New("--bbox needs --zoom")
			}
			view.Bounds = &b
		}

		r, err := newRenderer()
		if err != nil {
			return err
		}
		snap, err := r.Render(context.Background(), id, view)
		if err != nil {
			return err
		}
		if snap.Err != nil {
			log.WithError(snap.Err).Warn("overlay incomplete")
		}
		timeTrack(tStart, "rendering")

		var out io.Writer = cmd.OutOrStdout()
		if renderOutput != "" && renderOutput != "-" {
			f, err := os.Create(renderOutput)
			if err != nil {
				return err
			}
			defer f.Close()
			out = f
		}

		switch renderFormat {
		case "kml":
			err = surface.WriteKML(out, snap.Map.Title, snap.Layers)
		default:
			err = surface.WriteGeoJSON(out, snap.Layers)
		}
		if err != nil {
			return err
		}

		log.WithFields(log.Fields{
			"map":    id,
			"zoom":   snap.Zoom,
			"layers": len(snap.Layers),
		}).Info("rendered overlay")
		return nil
	},
}

func init() {
	renderCmd.Flags().StringVarP(&renderMap, "map", "m", string(atlas.West), "Map to render")
	renderCmd.Flags().IntVarP(&renderZoom, "zoom", "z", 0, "Zoom level, defaults to the map's initial zoom")
	renderCmd.Flags().StringVar(&renderBBox, "bbox", "", "Viewport as west,south,east,north (needs --zoom)")
	renderCmd.Flags().StringVarP(&renderFormat, "format", "f", "geojson", "Output format: geojson or kml")
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "", "Output file, stdout if empty")
	renderCmd.Flags().BoolVar(&renderNoGrid, "no-grid", false, "Toggle the survey grid off before rendering")
	rootCmd.AddCommand(renderCmd)
}
