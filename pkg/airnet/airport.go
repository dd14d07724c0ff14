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

package airnet

import (
	"fmt"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/spezifisch/histmap/pkg/feed"
	"github.com/spezifisch/histmap/pkg/geo"
	"github.com/spezifisch/histmap/pkg/surface"
)

// SizeClass is the marker class of an airport.
type SizeClass int

const (
	Small SizeClass = iota
	Mid
	Major
)

func (s SizeClass) String() string {
	switch s {
	case Major:
		return "major"
	case Mid:
		return "mid"
	}
	return "small"
}

// ParseSizeClass maps the free-form type property of the airport feed to a
// size class. Anything mentioning "major" is major, then "mid", everything
// else small.
func ParseSizeClass(typ string) SizeClass {
	switch {
	case strings.Contains(typ, "major"):
		return Major
	case strings.Contains(typ, "mid"):
		return Mid
	}
	return Small
}

// Airport is one record of the airport feed.
type Airport struct {
	Code     string
	Name     string
	Location geo.GeoPoint
	Size     SizeClass
}

func (a Airport) String() string {
	return fmt.Sprintf("%s (%s)", a.Name, a.Code)
}

// Region classifies the airport location.
func (a Airport) Region() Region {
	return Classify(a.Location)
}

type markerStyle struct {
	radius      float64
	fillColor   string
	fillOpacity float64
}

var markerStyles = map[SizeClass]markerStyle{
	Major: {4, "#f39c12", 0.9},
	Mid:   {2.5, "#f1c40f", 0.8},
	Small: {1.5, "#ecf0f1", 0.7},
}

// Marker returns the drawable for a. Only major and mid airports get a
// tooltip.
func (a Airport) Marker() surface.CircleMarker {
	ms := markerStyles[a.Size]
	m := surface.CircleMarker{
		Center: a.Location,
		Radius: ms.radius,
		Style: surface.Style{
			Color: "#fff", Weight: 0.5, Opacity: 0.6,
			FillColor: ms.fillColor, FillOpacity: ms.fillOpacity,
		},
	}
	if a.Size != Small {
		m.Tooltip = surface.Tooltip{
			Text:      a.String() + "\n" + a.Region().String(),
			ClassName: "airport-tooltip",
		}
	}
	return m
}

// AirportsFromFeatures extracts the airports of a GeoJSON feed. Features
// without an in-range point geometry or without an IATA code are dropped.
func AirportsFromFeatures(fc *geojson.FeatureCollection) []Airport {
	if fc == nil {
		return nil
	}
	out := make([]Airport, 0, len(fc.Features))
	for _, f := range fc.Features {
		if f == nil {
			continue
		}
		pt, ok := f.Geometry.(orb.Point)
		if !ok || !geo.FromOrb(pt).IsValid() {
			continue
		}
		code := f.Properties.MustString(feed.PropIATACode, "")
		if code == "" {
			continue
		}
		out = append(out, Airport{
			Code:     code,
			Name:     f.Properties.MustString(feed.PropName, ""),
			Location: geo.FromOrb(pt),
			Size:     ParseSizeClass(f.Properties.MustString(feed.PropType, "small")),
		})
	}
	return out
}
