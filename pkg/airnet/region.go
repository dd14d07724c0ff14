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

// Package airnet builds the global airport network overlay: every airport
// as a marker sized by its class, plus curved connections from a fixed set
// of regional hubs to nearby airports and to hubs on other continents.
package airnet

import "github.com/spezifisch/histmap/pkg/geo"

// Region is a coarse continental classification.
type Region int

const (
	Other Region = iota
	NorthAmerica
	SouthAmerica
	Europe
	Africa
	Asia
	Oceania
)

var regionNames = map[Region]string{
	NorthAmerica: "North America",
	SouthAmerica: "South America",
	Europe:       "Europe",
	Africa:       "Africa",
	Asia:         "Asia",
	Oceania:      "Oceania",
	Other:        "Other",
}

func (r Region) String() string {
	if name, ok := regionNames[r]; ok {
		return name
	}
	return "Other"
}

// Regions lists the named regions in legend order.
var Regions = []Region{NorthAmerica, SouthAmerica, Europe, Africa, Asia, Oceania}

var regionColors = map[Region]string{
	NorthAmerica: "#3498db",
	SouthAmerica: "#2ecc71",
	Europe:       "#e74c3c",
	Africa:       "#f39c12",
	Asia:         "#9b59b6",
	Oceania:      "#1abc9c",
}

// OtherColor is used for connections of hubs outside every named region.
const OtherColor = "#7f8c8d"

// Color returns the connection color of r.
func (r Region) Color() string {
	if c, ok := regionColors[r]; ok {
		return c
	}
	return OtherColor
}

// regionBoxes are tested in order, the first match wins. The boxes overlap
// (North Africa vs. Europe, Central America vs. South America) so the order
// is significant.
var regionBoxes = []struct {
	region Region
	match  func(lat, lng float64) bool
}{
	{NorthAmerica, func(lat, lng float64) bool { return lat > 15 && lng < -30 && lng > -170 }},
	{SouthAmerica, func(lat, lng float64) bool { return lat < 15 && lat > -60 && lng < -30 && lng > -90 }},
	{Europe, func(lat, lng float64) bool { return lat > 35 && lat < 70 && lng > -10 && lng < 40 }},
	{Africa, func(lat, lng float64) bool { return lat < 35 && lat > -40 && lng > -20 && lng < 55 }},
	{Asia, func(lat, lng float64) bool {
		return lat > 0 && lat < 70 && ((lng > 55 && lng < 180) || lng < -150)
	}},
	{Oceania, func(lat, lng float64) bool { return lat < 0 && lat > -50 && lng > 100 && lng < 180 }},
}

// Classify returns the region of p. Every point gets exactly one region.
func Classify(p geo.GeoPoint) Region {
	for _, b := range regionBoxes {
		if b.match(p.Lat, p.Lng) {
			return b.region
		}
	}
	return Other
}
