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

// Package surface models the interactive map widget the overlay generators
// draw on, and provides Canvas, an in-memory implementation that can be
// exported to KML or GeoJSON.
package surface

import (
	"math"
	"sort"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/spezifisch/histmap/pkg/geo"
)

// Handle identifies a drawn primitive. The zero Handle is never issued.
type Handle uint64

// Event is a viewport notification.
type Event int

const (
	// ZoomEnd fires after the zoom level settled.
	ZoomEnd Event = iota
	// MoveEnd fires after a pan (or zoom) settled.
	MoveEnd
)

func (e Event) String() string {
	switch e {
	case ZoomEnd:
		return "zoomend"
	case MoveEnd:
		return "moveend"
	}
	return "unknown"
}

// Surface is the map display the generators draw on.
type Surface interface {
	Zoom() int
	Bounds() geo.Bounds
	Add(p Primitive) Handle
	Remove(h Handle)
	Has(h Handle) bool
	Get(h Handle) (Primitive, bool)
	// On subscribes fn to e and returns a function that unsubscribes it.
	On(e Event, fn func()) (unsubscribe func())
}

// Layer is a drawn primitive with its handle.
type Layer struct {
	Handle    Handle
	Primitive Primitive
}

// tile size in pixels used to derive the visible span from the zoom level
const tileSize = 256

// Canvas is a Surface that keeps everything in memory.
type Canvas struct {
	mu        sync.Mutex
	width     int
	height    int
	zoom      int
	minZoom   int
	maxZoom   int
	center    geo.GeoPoint
	bounds    geo.Bounds
	next      Handle
	layers    map[Handle]Primitive
	listeners map[Event]map[int]func()
	nextSub   int
}

// NewCanvas returns a canvas with a viewport of width x height pixels.
func NewCanvas(width, height int) *Canvas {
	if width <= 0 {
		width = 1024
	}
	if height <= 0 {
		height = 768
	}
	c := &Canvas{
		width:     width,
		height:    height,
		minZoom:   0,
		maxZoom:   19,
		layers:    make(map[Handle]Primitive),
		listeners: make(map[Event]map[int]func()),
	}
	c.bounds = c.spanAround(c.center, c.zoom)
	return c
}

// SetZoomLimits clamps future zoom levels to [lo, hi].
func (c *Canvas) SetZoomLimits(lo, hi int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if hi < lo {
		lo, hi = hi, lo
	}
	c.minZoom, c.maxZoom = lo, hi
}

// SetView centers the viewport on center at zoom and fires the settle
// events.
func (c *Canvas) SetView(center geo.GeoPoint, zoom int) {
	c.mu.Lock()
	zoom = c.clampZoom(zoom)
	zoomChanged := zoom != c.zoom
	c.center = center
	c.zoom = zoom
	c.bounds = c.spanAround(center, zoom)
	c.mu.Unlock()

	c.settle(zoomChanged)
}

// SetBounds sets an explicit viewport, for callers that already know what
// is visible, and fires the settle events.
func (c *Canvas) SetBounds(b geo.Bounds, zoom int) {
	c.mu.Lock()
	zoom = c.clampZoom(zoom)
	zoomChanged := zoom != c.zoom
	c.center = b.Center()
	c.zoom = zoom
	c.bounds = b
	c.mu.Unlock()

	c.settle(zoomChanged)
}

func (c *Canvas) clampZoom(zoom int) int {
	if zoom < c.minZoom {
		return c.minZoom
	}
	if zoom > c.maxZoom {
		return c.maxZoom
	}
	return zoom
}

// spanAround approximates the visible region for a slippy-map viewport.
func (c *Canvas) spanAround(center geo.GeoPoint, zoom int) geo.Bounds {
	lngSpan := 360 * float64(c.width) / (tileSize * math.Exp2(float64(zoom)))
	latSpan := lngSpan * float64(c.height) / float64(c.width) * math.Cos(center.Lat*math.Pi/180)
	return geo.Bounds{
		West:  math.Max(center.Lng-lngSpan/2, -180),
		East:  math.Min(center.Lng+lngSpan/2, 180),
		North: math.Min(center.Lat+latSpan/2, 85),
		South: math.Max(center.Lat-latSpan/2, -85),
	}
}

func (c *Canvas) settle(zoomChanged bool) {
	if zoomChanged {
		c.fire(ZoomEnd)
	}
	c.fire(MoveEnd)
}

func (c *Canvas) fire(e Event) {
	c.mu.Lock()
	subs := c.listeners[e]
	ids := make([]int, 0, len(subs))
	for id := range subs {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	fns := make([]func(), 0, len(ids))
	for _, id := range ids {
		fns = append(fns, subs[id])
	}
	c.mu.Unlock()

	log.WithField("event", e).WithField("listeners", len(fns)).Debug("viewport settled")
	for _, fn := range fns {
		fn()
	}
}

// Zoom returns the current zoom level.
func (c *Canvas) Zoom() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.zoom
}

// Center returns the current viewport center.
func (c *Canvas) Center() geo.GeoPoint {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.center
}

// Bounds returns the visible region.
func (c *Canvas) Bounds() geo.Bounds {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.bounds
}

// Add draws p.
func (c *Canvas) Add(p Primitive) Handle {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.next++
	c.layers[c.next] = p
	return c.next
}

// Remove erases h. Unknown handles are ignored.
func (c *Canvas) Remove(h Handle) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.layers, h)
}

// Has reports whether h is currently drawn.
func (c *Canvas) Has(h Handle) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.layers[h]
	return ok
}

// Get returns the primitive drawn under h.
func (c *Canvas) Get(h Handle) (Primitive, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.layers[h]
	return p, ok
}

// On subscribes fn to e.
func (c *Canvas) On(e Event, fn func()) func() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.listeners[e] == nil {
		c.listeners[e] = make(map[int]func())
	}
	c.nextSub++
	id := c.nextSub
	c.listeners[e][id] = fn

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.listeners[e], id)
	}
}

// Listeners returns the number of subscriptions for e.
func (c *Canvas) Listeners(e Event) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.listeners[e])
}

// Layers returns everything drawn, in draw order.
func (c *Canvas) Layers() []Layer {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Layer, 0, len(c.layers))
	for h, p := range c.layers {
		out = append(out, Layer{Handle: h, Primitive: p})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Handle < out[j].Handle })
	return out
}

// Count returns how many primitives of kind k are drawn.
func (c *Canvas) Count(k Kind) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, p := range c.layers {
		if p.Kind() == k {
			n++
		}
	}
	return n
}

// Len returns how many primitives are drawn.
func (c *Canvas) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.layers)
}
