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

package atlas

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/spezifisch/histmap/pkg/feed"
	"github.com/spezifisch/histmap/pkg/geo"
	"github.com/spezifisch/histmap/pkg/layers"
	"github.com/spezifisch/histmap/pkg/surface"
)

// ColonyNames are the thirteen original colonies, by their state names in
// the state boundary feed.
var ColonyNames = []string{
	"Connecticut", "Delaware", "Georgia", "Maryland", "Massachusetts",
	"New Hampshire", "New Jersey", "New York", "North Carolina",
	"Pennsylvania", "Rhode Island", "South Carolina", "Virginia",
}

var colonyStyle = surface.Style{Color: "#8B4513", Weight: 2, Opacity: 0.8, FillColor: "#DEB887", FillOpacity: 0.3}

var latitudeStyle = surface.Style{Color: "#555555", Weight: 1, Opacity: 0.4, DashArray: "3, 5"}

// fallbackColonies are rough boxes drawn when the state feed is unavailable.
var fallbackColonies = []struct {
	name                     string
	west, south, east, north float64
}{
	{"Virginia", -83, 36, -75, 39},
	{"Massachusetts", -73.5, 41.8, -69.9, 42.7},
	{"New Hampshire", -73, 42.7, -70.7, 45},
	{"Maryland", -79.5, 38, -75.2, 39.7},
	{"Connecticut", -73.7, 40.9, -71.8, 42},
	{"Rhode Island", -71.9, 41, -71.1, 42},
	{"Delaware", -75.8, 38.5, -75, 39.8},
	{"North Carolina", -84, 33.5, -75.5, 36.5},
	{"South Carolina", -83.5, 32, -78.5, 35},
	{"New Jersey", -75.6, 39, -74, 41.4},
	{"New York", -79.8, 40.5, -71.8, 45},
	{"Pennsylvania", -80.5, 39.7, -74.7, 42},
	{"Georgia", -85.6, 30.5, -80.7, 35},
}

// Latitude lines run every LatitudeStep degrees from the equator to 60°N,
// across the Atlantic from the Great Plains to eastern Europe.
const (
	LatitudeStep = 5
	latitudeMax  = 60
	latitudeWest = -100.0
	latitudeEast = 50.0
)

// LatitudeLine returns the dashed parallel at lat, labelled like "40°N".
func LatitudeLine(lat int) surface.Polyline {
	return surface.Polyline{
		Points: []geo.GeoPoint{geo.Pt(float64(lat), latitudeWest), geo.Pt(float64(lat), latitudeEast)},
		Style:  latitudeStyle,
		Tooltip: surface.Tooltip{
			Text:      fmt.Sprintf("%d°N", lat),
			ClassName: "latitude-label",
		},
	}
}

// ColoniesBuilder highlights the thirteen colonies and draws latitude lines
// for comparison with Europe. When the state feed cannot be loaded the
// colonies are drawn as simplified boxes.
type ColoniesBuilder struct {
	Source feed.Source
}

// Build implements OverlayBuilder.
func (b ColoniesBuilder) Build(ctx context.Context, env Env) error {
	c := env.Session.Collection(layers.Colonies)

	var drawn int
	doc, err := env.Feeds.Fetch(ctx, b.Source)
	if err != nil {
		log.WithError(err).Warn("error loading state data, using simplified colonies")
		drawn = drawFallbackColonies(env.Surface, c)
	} else {
		drawn = drawColonies(env.Surface, c, doc)
	}

	for lat := 0; lat <= latitudeMax; lat += LatitudeStep {
		c.Track(env.Surface, LatitudeLine(lat))
	}

	log.WithField("colonies", drawn).Debug("colonies drawn")
	return nil
}

func drawColonies(s surface.Surface, c *layers.Collection, doc *feed.Document) int {
	byName := make(map[string][][][]geo.GeoPoint, len(ColonyNames))
	for _, f := range doc.Features.Features {
		if f == nil {
			continue
		}
		name := f.Properties.MustString("name", "")
		if _, seen := byName[name]; seen {
			continue
		}
		var shapes [][][]geo.GeoPoint
		for _, poly := range polygons(f.Geometry) {
			shapes = append(shapes, rings(poly))
		}
		byName[name] = shapes
	}

	drawn := 0
	for _, name := range ColonyNames {
		shapes, ok := byName[name]
		if !ok {
			continue
		}
		for _, r := range shapes {
			c.Track(s, surface.Polygon{Rings: r, Style: colonyStyle, Tooltip: surface.Tooltip{Text: name}})
		}
		drawn++
	}
	return drawn
}

func drawFallbackColonies(s surface.Surface, c *layers.Collection) int {
	for _, fc := range fallbackColonies {
		ring := []geo.GeoPoint{
			geo.Pt(fc.north, fc.west),
			geo.Pt(fc.south, fc.west),
			geo.Pt(fc.south, fc.east),
			geo.Pt(fc.north, fc.east),
			geo.Pt(fc.north, fc.west),
		}
		c.Track(s, surface.Polygon{
			Rings:   [][]geo.GeoPoint{ring},
			Style:   colonyStyle,
			Tooltip: surface.Tooltip{Text: fc.name},
		})
	}
	return len(fallbackColonies)
}
