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

import "github.com/spezifisch/histmap/pkg/surface"

// Legend returns the airport network legend: the three marker classes, one
// swatch per region and the intercontinental color.
func Legend() *surface.Control {
	items := []surface.LegendItem{
		{Label: "Major Airports", Style: markerLegendStyle(Major)},
		{Label: "Mid-sized Airports", Style: markerLegendStyle(Mid)},
		{Label: "Local Airports", Style: markerLegendStyle(Small)},
	}
	for _, r := range Regions {
		items = append(items, surface.LegendItem{Label: r.String(), Style: surface.Style{Color: r.Color(), Weight: 2}})
	}
	items = append(items, surface.LegendItem{Label: "Intercontinental", Style: surface.Style{Color: IntercontinentalColor, Weight: 2}})

	return &surface.Control{
		Name:     "airport-legend",
		Position: "bottomright",
		Title:    "Global Airport Network",
		Items:    items,
		Note:     "Airport density reveals continental patterns",
	}
}

func markerLegendStyle(s SizeClass) surface.Style {
	ms := markerStyles[s]
	return surface.Style{Color: "#fff", Weight: 1, FillColor: ms.fillColor, FillOpacity: 1}
}
