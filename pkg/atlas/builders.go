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
	"time"

	"github.com/paulmach/orb"
	log "github.com/sirupsen/logrus"

	"github.com/spezifisch/histmap/pkg/airnet"
	"github.com/spezifisch/histmap/pkg/feed"
	"github.com/spezifisch/histmap/pkg/geo"
	"github.com/spezifisch/histmap/pkg/layers"
	"github.com/spezifisch/histmap/pkg/plss"
	"github.com/spezifisch/histmap/pkg/schedule"
	"github.com/spezifisch/histmap/pkg/surface"
)

// FeatureSource loads GeoJSON feeds. feed.Fetcher implements it.
type FeatureSource interface {
	Fetch(ctx context.Context, src feed.Source) (*feed.Document, error)
}

// Env is what a builder gets to work with.
type Env struct {
	Map     MapConfig
	Surface surface.Surface
	Session *layers.Session
	Feeds   FeatureSource
}

// OverlayBuilder draws the overlays of one map. Everything it draws must be
// tracked in env.Session, and anything that outlives Build (subscriptions,
// timers) must be released through env.Session.OnClose.
type OverlayBuilder interface {
	Build(ctx context.Context, env Env) error
}

// BuilderFunc adapts a function to OverlayBuilder.
type BuilderFunc func(ctx context.Context, env Env) error

// Build calls f.
func (f BuilderFunc) Build(ctx context.Context, env Env) error {
	return f(ctx, env)
}

// NopBuilder draws nothing.
type NopBuilder struct{}

// Build implements OverlayBuilder.
func (NopBuilder) Build(context.Context, Env) error { return nil }

// GridBuilder attaches a PLSS grid overlay that follows the viewport.
type GridBuilder struct {
	Generator *plss.Generator
	Scheduler schedule.Scheduler
	Debounce  time.Duration

	// Attached, if set, receives every overlay this builder attaches.
	Attached func(*plss.Overlay)
}

// Build implements OverlayBuilder.
func (b GridBuilder) Build(ctx context.Context, env Env) error {
	o := plss.NewOverlay(b.Generator, b.Scheduler, b.Debounce)
	env.Session.OnClose(o.Detach)
	if b.Attached != nil {
		b.Attached(o)
	}
	_, err := o.Attach(env.Surface, env.Session.Collection(layers.Grid))
	return err
}

// AirportBuilder draws the airport network from a GeoJSON feed.
type AirportBuilder struct {
	Source  feed.Source
	Network *airnet.Network
}

// Build implements OverlayBuilder.
func (b AirportBuilder) Build(ctx context.Context, env Env) error {
	doc, err := env.Feeds.Fetch(ctx, b.Source)
	if err != nil {
		return fmt.Errorf("loading airport data: %w", err)
	}
	network := b.Network
	if network == nil {
		network = airnet.NewNetwork()
	}
	_, err = network.Generate(env.Surface, env.Session.Collection(layers.Airports), airnet.AirportsFromFeatures(doc.Features))
	return err
}

// StatesBuilder draws US state outlines as context.
type StatesBuilder struct {
	Source feed.Source
}

var stateStyle = surface.Style{Color: "#999", Weight: 1, Opacity: 0.6, FillColor: "#f8f8f8", FillOpacity: 0.1}

// Build implements OverlayBuilder.
func (b StatesBuilder) Build(ctx context.Context, env Env) error {
	doc, err := env.Feeds.Fetch(ctx, b.Source)
	if err != nil {
		return fmt.Errorf("loading state data: %w", err)
	}
	c := env.Session.Collection(layers.States)
	drawn := 0
	for _, f := range doc.Features.Features {
		if f == nil {
			continue
		}
		name := f.Properties.MustString("name", "")
		for _, poly := range polygons(f.Geometry) {
			c.Track(env.Surface, surface.Polygon{
				Rings:   rings(poly),
				Style:   stateStyle,
				Tooltip: surface.Tooltip{Text: name},
			})
			drawn++
		}
	}
	log.WithFields(log.Fields{
		"feed":     doc.Source.Name,
		"polygons": drawn,
	}).Debug("state outlines drawn")
	return nil
}

func polygons(g orb.Geometry) []orb.Polygon {
	switch g := g.(type) {
	case orb.Polygon:
		return []orb.Polygon{g}
	case orb.MultiPolygon:
		return g
	}
	return nil
}

func rings(p orb.Polygon) [][]geo.GeoPoint {
	out := make([][]geo.GeoPoint, 0, len(p))
	for _, r := range p {
		pts := make([]geo.GeoPoint, 0, len(r))
		for _, pt := range r {
			pts = append(pts, geo.FromOrb(pt))
		}
		out = append(out, pts)
	}
	return out
}
