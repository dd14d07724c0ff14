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
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/spezifisch/histmap/pkg/geo"
	"github.com/spezifisch/histmap/pkg/layers"
	"github.com/spezifisch/histmap/pkg/surface"
)

// ConnectionKind tells regional and long-haul connections apart.
type ConnectionKind int

const (
	Nearby ConnectionKind = iota
	Intercontinental
)

func (k ConnectionKind) String() string {
	if k == Intercontinental {
		return "intercontinental"
	}
	return "nearby"
}

// IntercontinentalColor is the color of long-haul connections.
const IntercontinentalColor = "#ffffff"

// Connection is a drawn route between a hub and another airport.
type Connection struct {
	Source  Airport
	Target  Airport
	Kind    ConnectionKind
	Color   string
	Opacity float64
	Control geo.GeoPoint
}

// Curves returns the base and highlight curves of c. Only the base curve
// carries the tooltip.
func (c Connection) Curves() (base, highlight surface.Curve) {
	from, to, ctrl := c.Source.Location, c.Target.Location, c.Control
	base = surface.Curve{
		From: from, Control: ctrl, To: to,
		Style: surface.Style{Color: c.Color, Weight: 1.5, Opacity: c.Opacity * 0.7, ClassName: "flight-path"},
		Tooltip: surface.Tooltip{
			Text:      c.Source.String() + " to " + c.Target.String(),
			ClassName: "connection-tooltip",
		},
	}
	highlight = surface.Curve{
		From: from, Control: ctrl, To: to,
		Style: surface.Style{Color: c.Color, Weight: 0.8, Opacity: c.Opacity * 1.3, ClassName: "flight-path-highlight"},
	}
	return base, highlight
}

// Network computes and draws the airport network.
type Network struct {
	Hubs []Hub
	// NearbyRadius is the planar distance in degrees below which an
	// airport counts as nearby.
	NearbyRadius        float64
	MaxNearby           int
	MaxIntercontinental int
	NearbyOpacity       float64
	LongHaulOpacity     float64
}

// NewNetwork returns a network with the stock hub list and limits.
func NewNetwork() *Network {
	return &Network{
		Hubs:                Hubs,
		NearbyRadius:        25,
		MaxNearby:           3,
		MaxIntercontinental: 2,
		NearbyOpacity:       0.7,
		LongHaulOpacity:     0.4,
	}
}

// Result summarises a generation run.
type Result struct {
	Airports    int
	Hubs        int
	Connections []Connection
}

// Count returns the number of connections of kind k.
func (r Result) Count(k ConnectionKind) int {
	n := 0
	for _, c := range r.Connections {
		if c.Kind == k {
			n++
		}
	}
	return n
}

// ErrDrawFailed wraps a panic raised by the surface while drawing.
var ErrDrawFailed = errors.New("draw failed")

// Connections selects the connections for airports without drawing
// anything. Hubs missing from airports are skipped.
func (n *Network) Connections(airports []Airport) (conns []Connection, hubs int) {
	byCode := make(map[string]Airport, len(airports))
	for _, a := range airports {
		byCode[a.Code] = a
	}

	for _, hub := range n.Hubs {
		src, ok := byCode[hub.Code]
		if !ok {
			continue
		}
		hubs++
		region := src.Region()

		nearby := 0
		for _, a := range airports {
			if nearby >= n.MaxNearby {
				break
			}
			if a.Code == hub.Code || a.Region() != region {
				continue
			}
			if geo.PlanarDistance(src.Location, a.Location) >= n.NearbyRadius {
				continue
			}
			conns = append(conns, n.connection(src, a, Nearby, region.Color(), n.NearbyOpacity))
			nearby++
		}

		longHaul := 0
		for _, other := range n.Hubs {
			if longHaul >= n.MaxIntercontinental {
				break
			}
			if other.Code == hub.Code {
				continue
			}
			dst, ok := byCode[other.Code]
			if !ok || dst.Region() == region {
				continue
			}
			conns = append(conns, n.connection(src, dst, Intercontinental, IntercontinentalColor, n.LongHaulOpacity))
			longHaul++
		}
	}
	return conns, hubs
}

func (n *Network) connection(src, dst Airport, k ConnectionKind, color string, opacity float64) Connection {
	return Connection{
		Source:  src,
		Target:  dst,
		Kind:    k,
		Color:   color,
		Opacity: opacity,
		Control: ControlPoint(src.Location, dst.Location),
	}
}

// Generate clears c, then draws every airport, the hub connections and the
// legend on s. Everything drawn is tracked in c.
func (n *Network) Generate(s surface.Surface, c *layers.Collection, airports []Airport) (res Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("airport network: %w: %v", ErrDrawFailed, r)
			log.WithError(err).Error("error rendering airport network")
		}
	}()

	c.Clear(s)

	for _, a := range airports {
		c.Track(s, a.Marker())
		res.Airports++
	}

	conns, hubs := n.Connections(airports)
	res.Hubs = hubs
	for _, conn := range conns {
		base, highlight := conn.Curves()
		c.Track(s, base)
		c.Track(s, highlight)
		res.Connections = append(res.Connections, conn)
	}

	c.Track(s, Legend())

	log.WithFields(log.Fields{
		"airports":         res.Airports,
		"hubs":             res.Hubs,
		"nearby":           res.Count(Nearby),
		"intercontinental": res.Count(Intercontinental),
	}).Debug("airport network drawn")
	return res, nil
}
