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
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/spezifisch/histmap/pkg/feed"
	"github.com/spezifisch/histmap/pkg/geo"
	"github.com/spezifisch/histmap/pkg/plss"
	"github.com/spezifisch/histmap/pkg/schedule"
	"github.com/spezifisch/histmap/pkg/surface"
)

// Options configures the stock catalog.
type Options struct {
	Airports feed.Source
	States   feed.Source
	Debounce time.Duration
}

// Catalog returns the stock maps wired to o, with grid refreshes scheduled
// on sched.
func (o Options) Catalog(sched schedule.Scheduler) []MapConfig {
	return o.catalog(sched, nil)
}

func (o Options) catalog(sched schedule.Scheduler, attached func(*plss.Overlay)) []MapConfig {
	return Catalog(Builders{
		Grid:     GridBuilder{Scheduler: sched, Debounce: o.Debounce, Attached: attached},
		Airports: AirportBuilder{Source: o.Airports},
		States:   StatesBuilder{Source: o.States},
		Colonies: ColoniesBuilder{Source: o.States},
	})
}

// View is an explicit viewport to render. A zero Zoom keeps the map's
// initial zoom, a nil Bounds its center.
type View struct {
	Zoom   int
	Bounds *geo.Bounds
	// HideGrid toggles the survey grid off before the snapshot, leaving
	// only its controls.
	HideGrid bool
}

// Snapshot is the drawn state of a map.
type Snapshot struct {
	Map    MapConfig
	Zoom   int
	Bounds geo.Bounds
	Layers []surface.Layer
	// Err is the overlay error, if any overlay failed to build.
	Err error
}

// Renderer draws maps off-screen on a fresh canvas per call.
type Renderer struct {
	Options Options
	Feeds   FeatureSource
	Keys    KeySource
	Width   int
	Height  int
}

// Render activates id, applies view if given and returns everything drawn
// once all pending refreshes ran.
func (r *Renderer) Render(ctx context.Context, id MapID, view *View) (Snapshot, error) {
	canvas := surface.NewCanvas(r.Width, r.Height)
	sched := &schedule.Manual{}
	var overlays []*plss.Overlay
	attached := func(o *plss.Overlay) { overlays = append(overlays, o) }
	ctrl := NewController(canvas, r.Options.catalog(sched, attached), r.Feeds, r.Keys)
	defer ctrl.Close()

	if _, err := ctrl.Activate(ctx, id); err != nil {
		return Snapshot{}, err
	}
	m, _ := ctrl.Lookup(id)

	if view != nil {
		zoom := view.Zoom
		if zoom <= 0 {
			zoom = canvas.Zoom()
		}
		switch {
		case view.Bounds != nil:
			canvas.SetBounds(*view.Bounds, zoom)
		case view.Zoom > 0:
			canvas.SetView(m.Center, zoom)
		}
		// flush the debounced grid refresh
		sched.Advance(time.Hour)

		if view.HideGrid {
			for _, o := range overlays {
				if !o.Visible() {
					continue
				}
				if _, _, err := o.Toggle(); err != nil {
					log.WithError(err).WithField("map", id).Warn("hiding grid failed")
				}
			}
		}
	}

	return Snapshot{
		Map:    m,
		Zoom:   canvas.Zoom(),
		Bounds: canvas.Bounds(),
		Layers: canvas.Layers(),
		Err:    ctrl.LastError(),
	}, nil
}
