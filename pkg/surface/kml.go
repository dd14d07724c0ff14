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
	"image/color"
	"io"
	"strconv"
	"strings"

	"github.com/twpayne/go-kml/v2"

	"github.com/spezifisch/histmap/pkg/geo"
)

// curveSegments is how finely curves are flattened for formats without
// native Bézier support.
const curveSegments = 24

// WriteKML writes the vector layers as a KML document. Tile layers and
// controls have no KML representation and are skipped.
func WriteKML(w io.Writer, name string, layers []Layer) error {
	children := []kml.Element{kml.Name(name)}
	for _, l := range layers {
		if pm := kmlPlacemark(l.Primitive); pm != nil {
			children = append(children, pm)
		}
	}
	return kml.KML(kml.Document(children...)).WriteIndent(w, "", "  ")
}

func kmlPlacemark(p Primitive) kml.Element {
	switch v := p.(type) {
	case CircleMarker:
		return placemark(v.Tooltip, kml.Style(
			kml.IconStyle(kml.Color(ParseColor(v.Style.FillColor, v.Style.FillOpacity)), kml.Scale(v.Radius/4)),
		), kml.Point(kml.Coordinates(kmlCoord(v.Center))))
	case Polyline:
		return placemark(v.Tooltip, lineStyle(v.Style), kml.LineString(kmlCoords(v.Points)))
	case Curve:
		return placemark(v.Tooltip, lineStyle(v.Style), kml.LineString(kmlCoords(v.Sample(curveSegments))))
	case Rectangle:
		return placemark(v.Tooltip, polyStyle(v.Style), kmlPolygon([][]geo.GeoPoint{v.Ring()}))
	case Polygon:
		if len(v.Rings) == 0 {
			return nil
		}
		return placemark(v.Tooltip, polyStyle(v.Style), kmlPolygon(v.Rings))
	}
	return nil
}

func placemark(tt Tooltip, style kml.Element, geom kml.Element) kml.Element {
	children := []kml.Element{}
	if tt.Text != "" {
		children = append(children, kml.Name(tt.Text))
	}
	return kml.Placemark(append(children, style, geom)...)
}

func lineStyle(s Style) kml.Element {
	return kml.Style(kml.LineStyle(kml.Color(ParseColor(s.Color, s.Opacity)), kml.Width(s.Weight)))
}

func polyStyle(s Style) kml.Element {
	fill := s.FillColor
	if fill == "" {
		fill = s.Color
	}
	return kml.Style(
		kml.LineStyle(kml.Color(ParseColor(s.Color, s.Opacity)), kml.Width(s.Weight)),
		kml.PolyStyle(kml.Color(ParseColor(fill, s.FillOpacity))),
	)
}

func kmlPolygon(rings [][]geo.GeoPoint) kml.Element {
	children := []kml.Element{kml.OuterBoundaryIs(kml.LinearRing(kmlCoords(closeRing(rings[0]))))}
	for _, r := range rings[1:] {
		children = append(children, kml.InnerBoundaryIs(kml.LinearRing(kmlCoords(closeRing(r)))))
	}
	return kml.Polygon(children...)
}

func closeRing(r []geo.GeoPoint) []geo.GeoPoint {
	if len(r) > 0 && r[0] != r[len(r)-1] {
		return append(r[:len(r):len(r)], r[0])
	}
	return r
}

func kmlCoord(p geo.GeoPoint) kml.Coordinate {
	return kml.Coordinate{Lon: p.Lng, Lat: p.Lat}
}

func kmlCoords(pts []geo.GeoPoint) kml.Element {
	cs := make([]kml.Coordinate, 0, len(pts))
	for _, p := range pts {
		cs = append(cs, kmlCoord(p))
	}
	return kml.Coordinates(cs...)
}

// ParseColor turns a CSS hex color ("#rgb" or "#rrggbb") and an opacity in
// [0, 1] into an RGBA value. Unparseable colors become mid gray.
func ParseColor(hex string, opacity float64) color.RGBA {
	c := color.RGBA{R: 0x80, G: 0x80, B: 0x80}
	h := strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) == 6 {
		if v, err := strconv.ParseUint(h, 16, 32); err == nil {
			c.R, c.G, c.B = uint8(v>>16), uint8(v>>8), uint8(v)
		}
	}
	switch {
	case opacity <= 0:
		c.A = 0
	case opacity >= 1:
		c.A = 0xff
	default:
		c.A = uint8(opacity*255 + 0.5)
	}
	return c
}
