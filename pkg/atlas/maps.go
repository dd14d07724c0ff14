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

// Package atlas holds the catalog of thematic maps and switches the surface
// between them.
package atlas

import (
	"errors"
	"fmt"

	"github.com/spezifisch/histmap/pkg/geo"
	"github.com/spezifisch/histmap/pkg/tiles"
)

// MapID identifies one thematic map.
type MapID string

const (
	OldWorld MapID = "old-world"
	Colonies MapID = "colonies"
	Midwest  MapID = "midwest"
	South    MapID = "south"
	West     MapID = "west"
	Modern   MapID = "modern"
	Global   MapID = "global"
)

// MapIDs lists every map in menu order.
var MapIDs = []MapID{OldWorld, Colonies, Midwest, South, West, Modern, Global}

// ErrUnknownMap is returned for ids outside MapIDs.
var ErrUnknownMap = errors.New("unknown map")

// ParseMapID validates s.
func ParseMapID(s string) (MapID, error) {
	for _, id := range MapIDs {
		if string(id) == s {
			return id, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMap, s)
}

// Zoom limits applied when a map does not set its own.
const (
	DefaultMinZoom = 2
	DefaultMaxZoom = 19
)

// MapConfig describes one map. Zero values of the optional fields fall back
// to the defaults.
type MapConfig struct {
	ID          MapID
	Title       string
	Description string
	Center      geo.GeoPoint
	Zoom        int
	// MinZoom and MaxZoom bound the surface; zero means default.
	MinZoom int
	MaxZoom int
	// Basemap is optional; nil selects the CARTO light tiles, or the dark
	// ones for the global map.
	Basemap *tiles.Basemap
	// Builder draws the overlays; nil means none.
	Builder OverlayBuilder
}

// ZoomLimits returns the effective zoom range.
func (c MapConfig) ZoomLimits() (lo, hi int) {
	lo, hi = c.MinZoom, c.MaxZoom
	if lo <= 0 {
		lo = DefaultMinZoom
	}
	if hi <= 0 {
		hi = DefaultMaxZoom
	}
	return lo, hi
}

// EffectiveBasemap returns the basemap the map is shown with.
func (c MapConfig) EffectiveBasemap() tiles.Basemap {
	switch {
	case c.Basemap != nil:
		return *c.Basemap
	case c.ID == Global:
		return tiles.CartoDark
	}
	return tiles.CartoLight
}

// EffectiveBuilder returns the builder, NopBuilder when unset.
func (c MapConfig) EffectiveBuilder() OverlayBuilder {
	if c.Builder == nil {
		return NopBuilder{}
	}
	return c.Builder
}

func basemap(b tiles.Basemap) *tiles.Basemap {
	return &b
}

// Builders are the overlay builders of the stock maps. Nil entries leave the
// map with NopBuilder.
type Builders struct {
	Grid     OverlayBuilder
	Airports OverlayBuilder
	States   OverlayBuilder
	Colonies OverlayBuilder
}

// Catalog returns the stock maps with their overlays built by b.
func Catalog(b Builders) []MapConfig {
	return []MapConfig{
		{
			ID:          OldWorld,
			Title:       "Old World (Topographical)",
			Description: "This map shows the topographical features of the United States before state boundaries were established, when the land was shaped purely by natural forces.",
			Center:      geo.Pt(39.8283, -98.5795),
			Zoom:        3,
			MaxZoom:     16,
			Basemap:     basemap(tiles.StamenWatercolor),
		},
		{
			ID:          Colonies,
			Title:       "American Colonies (European Latitude Comparison)",
			Description: "This map explores the original American Colonies by comparing their latitude lines to Europe. The parallel latitude lines in 5-degree increments show how colonial settlements shared similar climates with European locations.",
			Center:      geo.Pt(39.5, -77.5),
			Zoom:        5,
			Basemap:     basemap(tiles.CartoLight),
			Builder:     b.Colonies,
		},
		{
			ID:          Midwest,
			Title:       "Midwest & Northeast Railroad Networks",
			Description: "This map explores how railroad networks in the Midwest and Northeast shaped resource commodification and settlement patterns during the 1800s.",
			Center:      geo.Pt(41.5, -84.0),
			Zoom:        5,
			MaxZoom:     18,
			Basemap:     basemap(tiles.StamenTerrain),
		},
		{
			ID:          South,
			Title:       "Southern Plantations",
			Description: "This map explores the American South with a focus on the historical distribution of plantations and their environmental impact.",
			Center:      geo.Pt(32.661418, -80.687945),
			Zoom:        13,
			Basemap:     basemap(tiles.EsriWorldImagery),
		},
		{
			ID:          West,
			Title:       "The West (Rectangular Survey System)",
			Description: "This map explores the American West using the Rectangular Survey System, showcasing how this grid-based land division method shaped western development and landscape.",
			Center:      geo.Pt(40.3428, -116.5453),
			Zoom:        5,
			Basemap:     basemap(tiles.EsriWorldTopo),
			Builder:     b.Grid,
		},
		{
			ID:          Modern,
			Title:       "US Highways: Before & After Interstate System",
			Description: "This map compares US roadways before and after the Federal-Aid Highway Act of 1956.",
			Center:      geo.Pt(39.8283, -98.5795),
			Zoom:        5,
			Basemap:     basemap(tiles.CartoLight),
			Builder:     b.States,
		},
		{
			ID:          Global,
			Title:       "Global Interconnectedness (Airport Networks)",
			Description: "This map visualizes the global network of airports, showing how continental patterns emerge from airport density and flight routes between major hubs.",
			Center:      geo.Pt(20, 0),
			Zoom:        2,
			Builder:     b.Airports,
		},
	}
}
