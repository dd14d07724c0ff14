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

package plss

import (
	"github.com/spezifisch/histmap/pkg/geo"
	"github.com/spezifisch/histmap/pkg/surface"
)

// LineKind is either a meridian or a baseline.
type LineKind int

const (
	Meridian LineKind = iota
	Baseline
)

func (k LineKind) String() string {
	if k == Baseline {
		return "baseline"
	}
	return "meridian"
}

// ReferenceLine is a principal meridian (fixed longitude, spanning a
// latitude range) or baseline (fixed latitude, spanning a longitude range).
type ReferenceLine struct {
	Name  string
	Kind  LineKind
	Coord float64
	From  float64
	To    float64
}

// Endpoints returns the two ends of the line.
func (r ReferenceLine) Endpoints() (geo.GeoPoint, geo.GeoPoint) {
	if r.Kind == Meridian {
		return geo.Pt(r.From, r.Coord), geo.Pt(r.To, r.Coord)
	}
	return geo.Pt(r.Coord, r.From), geo.Pt(r.Coord, r.To)
}

var (
	meridianStyle = surface.Style{Color: "#0000FF", Weight: 2.5, Opacity: 0.9, DashArray: "10, 5", ClassName: "plss-meridian"}
	baselineStyle = surface.Style{Color: "#008000", Weight: 2.5, Opacity: 0.9, DashArray: "10, 5", ClassName: "plss-baseline"}
)

// Polyline returns the drawable for r.
func (r ReferenceLine) Polyline() surface.Polyline {
	a, b := r.Endpoints()
	style := meridianStyle
	if r.Kind == Baseline {
		style = baselineStyle
	}
	return surface.Polyline{
		Points:  []geo.GeoPoint{a, b},
		Style:   style,
		Tooltip: surface.Tooltip{Text: r.Name, Sticky: true, ClassName: style.ClassName + "-tooltip"},
	}
}

// PrincipalMeridians is a selection of historical principal meridians.
var PrincipalMeridians = []ReferenceLine{
	{Name: "Willamette Meridian", Kind: Meridian, Coord: -122.7, From: 42, To: 49},
	{Name: "Mount Diablo Meridian", Kind: Meridian, Coord: -121.9, From: 34, To: 42},
	{Name: "San Bernardino Meridian", Kind: Meridian, Coord: -116.9, From: 33, To: 35},
	{Name: "Humboldt Meridian", Kind: Meridian, Coord: -124.1, From: 40, To: 41},
	{Name: "Boise Meridian", Kind: Meridian, Coord: -116.4, From: 42, To: 49},
	{Name: "Salt Lake Meridian", Kind: Meridian, Coord: -111.9, From: 37, To: 42},
	{Name: "Navajo Meridian", Kind: Meridian, Coord: -108.6, From: 35, To: 37},
	{Name: "New Mexico Meridian", Kind: Meridian, Coord: -106.9, From: 31, To: 37},
	{Name: "Sixth Principal Meridian", Kind: Meridian, Coord: -97.4, From: 40, To: 49},
	{Name: "Black Hills Meridian", Kind: Meridian, Coord: -104.3, From: 43, To: 46},
	{Name: "Fifth Principal Meridian", Kind: Meridian, Coord: -91.0, From: 33, To: 49},
}

// PrincipalBaselines is a selection of historical baselines.
var PrincipalBaselines = []ReferenceLine{
	{Name: "Willamette Baseline", Kind: Baseline, Coord: 45.5, From: -124.5, To: -116.5},
	{Name: "Mount Diablo Baseline", Kind: Baseline, Coord: 37.8, From: -124, To: -115},
	{Name: "San Bernardino Baseline", Kind: Baseline, Coord: 34.1, From: -119, To: -114},
	{Name: "Humboldt Baseline", Kind: Baseline, Coord: 40.4, From: -124.5, To: -123},
	{Name: "Salt Lake Baseline", Kind: Baseline, Coord: 40.8, From: -114, To: -109},
	{Name: "Boise Baseline", Kind: Baseline, Coord: 43.4, From: -117.5, To: -111},
	{Name: "Navajo Baseline", Kind: Baseline, Coord: 35.8, From: -110, To: -107},
	{Name: "New Mexico Baseline", Kind: Baseline, Coord: 34.3, From: -109, To: -103},
	{Name: "Sixth Principal Baseline", Kind: Baseline, Coord: 40.0, From: -105, To: -95},
	{Name: "Black Hills Baseline", Kind: Baseline, Coord: 44.0, From: -106, To: -103},
	{Name: "Fifth Principal Baseline", Kind: Baseline, Coord: 34.8, From: -94, To: -89},
}
