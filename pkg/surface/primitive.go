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

package surface

import (
	"math"

	"github.com/spezifisch/histmap/pkg/geo"
)

// Kind tells drawable primitives apart without type switches.
type Kind int

const (
	KindMarker Kind = iota
	KindPolyline
	KindRectangle
	KindPolygon
	KindCurve
	KindTileLayer
	KindControl
)

var kindNames = [...]string{"marker", "polyline", "rectangle", "polygon", "curve", "tilelayer", "control"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Style is the path style shared by vector primitives.
type Style struct {
	Color       string  `json:"color,omitempty"`
	Weight      float64 `json:"weight,omitempty"`
	Opacity     float64 `json:"opacity,omitempty"`
	FillColor   string  `json:"fillColor,omitempty"`
	FillOpacity float64 `json:"fillOpacity,omitempty"`
	DashArray   string  `json:"dashArray,omitempty"`
	ClassName   string  `json:"className,omitempty"`
}

// Tooltip is text bound to a primitive.
type Tooltip struct {
	Text      string `json:"text,omitempty"`
	Sticky    bool   `json:"sticky,omitempty"`
	ClassName string `json:"className,omitempty"`
}

// Primitive is anything a Surface can draw.
type Primitive interface {
	Kind() Kind
}

// CircleMarker is a point drawn with a fixed pixel radius.
type CircleMarker struct {
	Center  geo.GeoPoint
	Radius  float64
	Style   Style
	Tooltip Tooltip
}

// Polyline is an open path.
type Polyline struct {
	Points  []geo.GeoPoint
	Style   Style
	Tooltip Tooltip
}

// Rectangle is an axis-aligned box given by its south-west and north-east
// corners.
type Rectangle struct {
	SouthWest geo.GeoPoint
	NorthEast geo.GeoPoint
	Style     Style
	Tooltip   Tooltip
}

// Polygon is a closed shape; the first ring is the outer boundary.
type Polygon struct {
	Rings   [][]geo.GeoPoint
	Style   Style
	Tooltip Tooltip
}

// Curve is a quadratic Bézier from From to To pulled towards Control.
type Curve struct {
	From    geo.GeoPoint
	Control geo.GeoPoint
	To      geo.GeoPoint
	Style   Style
	Tooltip Tooltip
}

// TileLayer is a raster basemap fetched by URL template.
type TileLayer struct {
	URL         string
	Attribution string
	MaxZoom     int
}

// LegendItem is one swatch in a legend control.
type LegendItem struct {
	Label string
	Style Style
}

// Control is a UI element pinned to a corner of the map: legends and
// toggle buttons.
type Control struct {
	Name     string
	Position string
	Title    string
	Items    []LegendItem
	Note     string
	// Active mirrors the "active" class of a toggle button.
	Active bool
}

func (CircleMarker) Kind() Kind { return KindMarker }
func (Polyline) Kind() Kind     { return KindPolyline }
func (Rectangle) Kind() Kind    { return KindRectangle }
func (Polygon) Kind() Kind      { return KindPolygon }
func (Curve) Kind() Kind        { return KindCurve }
func (TileLayer) Kind() Kind    { return KindTileLayer }
func (*Control) Kind() Kind     { return KindControl }

// Ring returns the closed outline of r, counter-clockwise from the
// south-west corner.
func (r Rectangle) Ring() []geo.GeoPoint {
	sw, ne := r.SouthWest, r.NorthEast
	return []geo.GeoPoint{
		sw,
		{Lat: sw.Lat, Lng: ne.Lng},
		ne,
		{Lat: ne.Lat, Lng: sw.Lng},
		sw,
	}
}

// Sample flattens the curve into n+1 points, endpoints included.
func (c Curve) Sample(n int) []geo.GeoPoint {
	if n < 1 {
		n = 1
	}
	pts := make([]geo.GeoPoint, 0, n+1)
	for i := 0; i <= n; i++ {
		t := float64(i) / float64(n)
		u := 1 - t
		pts = append(pts, geo.GeoPoint{
			Lat: u*u*c.From.Lat + 2*u*t*c.Control.Lat + t*t*c.To.Lat,
			Lng: u*u*c.From.Lng + 2*u*t*c.Control.Lng + t*t*c.To.Lng,
		})
	}
	return pts
}

// IsGridKind reports whether k is one of the kinds the grid overlay
// regenerates (rectangles and polylines).
func IsGridKind(k Kind) bool {
	return k == KindRectangle || k == KindPolyline
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
