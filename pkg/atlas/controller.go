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

package atlas

import (
	"context"
	"fmt"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/spezifisch/histmap/pkg/geo"
	"github.com/spezifisch/histmap/pkg/layers"
	"github.com/spezifisch/histmap/pkg/surface"
)

// Viewport is a surface whose view can be set. surface.Canvas implements it.
type Viewport interface {
	surface.Surface
	SetZoomLimits(lo, hi int)
	SetView(center geo.GeoPoint, zoom int)
}

// KeySource provides the Stadia Maps API key. prefs.Store implements it.
type KeySource interface {
	APIKey() string
}

// Controller activates maps on one viewport. Only one map is active at a
// time; activating a map tears the previous one down first.
type Controller struct {
	view  Viewport
	feeds FeatureSource
	keys  KeySource

	mu      sync.Mutex
	maps    map[MapID]MapConfig
	order   []MapID
	active  MapID
	session *layers.Session
	lastErr error
}

// NewController returns a controller for the given maps. keys may be nil.
func NewController(view Viewport, maps []MapConfig, feeds FeatureSource, keys KeySource) *Controller {
	c := &Controller{
		view:  view,
		feeds: feeds,
		keys:  keys,
		maps:  make(map[MapID]MapConfig, len(maps)),
	}
	for _, m := range maps {
		if _, dup := c.maps[m.ID]; !dup {
			c.order = append(c.order, m.ID)
		}
		c.maps[m.ID] = m
	}
	return c
}

// Maps returns the configured maps in catalog order.
func (c *Controller) Maps() []MapConfig {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]MapConfig, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.maps[id])
	}
	return out
}

// Lookup returns the configuration of id.
func (c *Controller) Lookup(id MapID) (MapConfig, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	m, ok := c.maps[id]
	return m, ok
}

// Activate switches the viewport to map id. The previous session is closed
// before anything of the new map is drawn. Overlay failures are logged and
// recorded in LastError; the map stays active with whatever was drawn.
func (c *Controller) Activate(ctx context.Context, id MapID) (*layers.Session, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	m, ok := c.maps[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMap, id)
	}

	c.teardown()

	sess := layers.NewSession(c.view)
	c.session = sess
	c.active = id
	c.lastErr = nil

	lo, hi := m.ZoomLimits()
	c.view.SetZoomLimits(lo, hi)
	c.view.SetView(m.Center, m.Zoom)

	key := ""
	if c.keys != nil {
		key = c.keys.APIKey()
	}
	bm := m.EffectiveBasemap().WithAPIKey(key)
	sess.Collection(layers.Base).Track(c.view, surface.TileLayer{
		URL:         bm.URL,
		Attribution: bm.Attribution,
		MaxZoom:     hi,
	})

	env := Env{Map: m, Surface: c.view, Session: sess, Feeds: c.feeds}
	if err := m.EffectiveBuilder().Build(ctx, env); err != nil {
		c.lastErr = err
		log.WithError(err).WithField("map", id).Error("error building map overlays")
	}

	log.WithFields(log.Fields{
		"map":     id,
		"tracked": sess.Tracked(),
	}).Info("map activated")
	return sess, nil
}

// Active returns the active map and its session. The session is nil before
// the first activation.
func (c *Controller) Active() (MapID, *layers.Session) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active, c.session
}

// LastError returns the overlay error of the latest activation.
func (c *Controller) LastError() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// Close tears down the active map.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.teardown()
	c.active = ""
}

func (c *Controller) teardown() {
	if c.session == nil {
		return
	}
	c.session.Close()
	c.session = nil
}
