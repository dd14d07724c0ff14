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
	"encoding/json"
	"io"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/spezifisch/histmap/pkg/geo"
)

// coordinate precision of exported geometry, ~1cm
const coordPlaces = 7

// FeatureCollection converts the layers to GeoJSON. Every feature carries
// its kind, style and tooltip as properties. Tile layers and controls go
// into the "basemaps" and "controls" members of the collection.
func FeatureCollection(layers []Layer) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	var basemaps, controls []map[string]interface{}
	for _, l := range layers {
		switch v := l.Primitive.(type) {
		case TileLayer:
			basemaps = append(basemaps, map[string]interface{}{
				"url":         v.URL,
				"attribution": v.Attribution,
				"maxZoom":     v.MaxZoom,
			})
		case *Control:
			controls = append(controls, controlMember(v))
		default:
			if f := feature(l); f != nil {
				fc.Append(f)
			}
		}
	}
	if len(basemaps) > 0 || len(controls) > 0 {
		fc.ExtraMembers = geojson.Properties{}
		if len(basemaps) > 0 {
			fc.ExtraMembers["basemaps"] = basemaps
		}
		if len(controls) > 0 {
			fc.ExtraMembers["controls"] = controls
		}
	}
	return fc
}

// WriteGeoJSON encodes the layers as a GeoJSON FeatureCollection.
func WriteGeoJSON(w io.Writer, layers []Layer) error {
	return json.NewEncoder(w).Encode(FeatureCollection(layers))
}

func feature(l Layer) *geojson.Feature {
	var (
		g     orb.Geometry
		style Style
		tt    Tooltip
	)
	props := geojson.Properties{}
	switch v := l.Primitive.(type) {
	case CircleMarker:
		g, style, tt = orbPoint(v.Center), v.Style, v.Tooltip
		props["radius"] = v.Radius
	case Polyline:
		g, style, tt = orbLine(v.Points), v.Style, v.Tooltip
	case Curve:
		g, style, tt = orbLine(v.Sample(curveSegments)), v.Style, v.Tooltip
		props["control"] = []float64{round(v.Control.Lng, coordPlaces), round(v.Control.Lat, coordPlaces)}
	case Rectangle:
		g, style, tt = orb.Polygon{orbRing(v.Ring())}, v.Style, v.Tooltip
	case Polygon:
		if len(v.Rings) == 0 {
			return nil
		}
		poly := make(orb.Polygon, 0, len(v.Rings))
		for _, r := range v.Rings {
			poly = append(poly, orbRing(closeRing(r)))
		}
		g, style, tt = poly, v.Style, v.Tooltip
	default:
		return nil
	}

	f := geojson.NewFeature(g)
	f.ID = uint64(l.Handle)
	f.Properties = props
	f.Properties["kind"] = l.Primitive.Kind().String()
	f.Properties["style"] = style
	if tt.Text != "" {
		f.Properties["tooltip"] = tt.Text
	}
	return f
}

func orbPoint(p geo.GeoPoint) orb.Point {
	return orb.Point{round(p.Lng, coordPlaces), round(p.Lat, coordPlaces)}
}

func orbLine(pts []geo.GeoPoint) orb.LineString {
	ls := make(orb.LineString, 0, len(pts))
	for _, p := range pts {
		ls = append(ls, orbPoint(p))
	}
	return ls
}

func orbRing(pts []geo.GeoPoint) orb.Ring {
	return orb.Ring(orbLine(pts))
}

func controlMember(c *Control) map[string]interface{} {
	items := make([]map[string]interface{}, 0, len(c.Items))
	for _, it := range c.Items {
		items = append(items, map[string]interface{}{"label": it.Label, "style": it.Style})
	}
	m := map[string]interface{}{
		"name":     c.Name,
		"position": c.Position,
		"title":    c.Title,
		"items":    items,
		"active":   c.Active,
	}
	if c.Note != "" {
		m["note"] = c.Note
	}
	return m
}
