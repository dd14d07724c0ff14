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

// Package geo has the small set of coordinate types shared by the overlay
// generators. There is no datum handling and no projection math here, the
// display surface owns projection.
package geo

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
)

// ErrInvalidBounds is returned when a region is empty or inverted.
var ErrInvalidBounds = errors.New("invalid bounds")

// GeoPoint is a latitude/longitude pair in degrees.
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Pt is shorthand for GeoPoint{Lat: lat, Lng: lng}.
func Pt(lat, lng float64) GeoPoint {
	return GeoPoint{Lat: lat, Lng: lng}
}

// FromOrb converts an orb point, which is ordered lon, lat.
func FromOrb(p orb.Point) GeoPoint {
	return GeoPoint{Lat: p.Lat(), Lng: p.Lon()}
}

// IsValid returns true if the point is within the valid lat/lng ranges.
func (p GeoPoint) IsValid() bool {
	return p.Lat >= -90 && p.Lat <= 90 && p.Lng >= -180 && p.Lng <= 180 &&
		!math.IsNaN(p.Lat) && !math.IsNaN(p.Lng)
}

func (p GeoPoint) String() string {
	return fmt.Sprintf("(%.4f, %.4f)", p.Lat, p.Lng)
}

// PlanarDistance is the euclidean distance between a and b in degree space.
// It is not a great-circle distance.
func PlanarDistance(a, b GeoPoint) float64 {
	dx := b.Lng - a.Lng
	dy := b.Lat - a.Lat
	return math.Sqrt(dx*dx + dy*dy)
}

// Bounds is a lon/lat rectangle.
type Bounds struct {
	West  float64 `json:"west" toml:"west"`
	East  float64 `json:"east" toml:"east"`
	North float64 `json:"north" toml:"north"`
	South float64 `json:"south" toml:"south"`
}

// Validate checks West < East and South < North.
func (b Bounds) Validate() error {
	for _, v := range []float64{b.West, b.East, b.North, b.South} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: non-finite edge in %v", ErrInvalidBounds, b)
		}
	}
	if b.West >= b.East {
		return fmt.Errorf("%w: west %g is not west of east %g", ErrInvalidBounds, b.West, b.East)
	}
	if b.South >= b.North {
		return fmt.Errorf("%w: south %g is not south of north %g", ErrInvalidBounds, b.South, b.North)
	}
	return nil
}

// Expand grows b by d degrees on every side.
func (b Bounds) Expand(d float64) Bounds {
	return Bounds{
		West:  b.West - d,
		East:  b.East + d,
		North: b.North + d,
		South: b.South - d,
	}
}

// Clip returns the intersection of b and other. The result can be
// inverted if the two do not overlap; use Validate to check.
func (b Bounds) Clip(other Bounds) Bounds {
	return Bounds{
		West:  math.Max(b.West, other.West),
		East:  math.Min(b.East, other.East),
		North: math.Min(b.North, other.North),
		South: math.Max(b.South, other.South),
	}
}

// Center is the midpoint of b.
func (b Bounds) Center() GeoPoint {
	return GeoPoint{Lat: (b.North + b.South) / 2, Lng: (b.West + b.East) / 2}
}

func (b Bounds) String() string {
	return fmt.Sprintf("[w=%g s=%g e=%g n=%g]", b.West, b.South, b.East, b.North)
}

// ParseBounds parses a "west,south,east,north" string.
func ParseBounds(s string) (Bounds, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return Bounds{}, fmt.Errorf("%w: want west,south,east,north, got %q", ErrInvalidBounds, s)
	}
	var v [4]float64
	for i, part := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return Bounds{}, fmt.Errorf("%w: %v", ErrInvalidBounds, err)
		}
		v[i] = f
	}
	b := Bounds{West: v[0], South: v[1], East: v[2], North: v[3]}
	return b, b.Validate()
}
