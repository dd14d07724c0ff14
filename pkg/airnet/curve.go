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
	"math"

	"github.com/spezifisch/histmap/pkg/geo"
)

// MaxCurvature caps how far the control point leaves the straight line,
// in degrees.
const MaxCurvature = 12

// ControlPoint returns the quadratic Bézier control point for a connection
// from src to dst: the midpoint moved a tenth of the distance (at most
// MaxCurvature) to the left of the travel direction. Everything is computed
// in plain lng/lat space.
func ControlPoint(src, dst geo.GeoPoint) geo.GeoPoint {
	midLng := (src.Lng + dst.Lng) / 2
	midLat := (src.Lat + dst.Lat) / 2

	dx := dst.Lng - src.Lng
	dy := dst.Lat - src.Lat
	curvature := math.Min(math.Hypot(dx, dy)/10, MaxCurvature)

	angle := math.Atan2(dy, dx) + math.Pi/2
	return geo.GeoPoint{
		Lat: midLat + curvature*math.Sin(angle),
		Lng: midLng + curvature*math.Cos(angle),
	}
}
