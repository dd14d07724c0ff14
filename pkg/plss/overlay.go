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
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/spezifisch/histmap/pkg/layers"
	"github.com/spezifisch/histmap/pkg/schedule"
	"github.com/spezifisch/histmap/pkg/surface"
)

// DefaultDebounce is how long the viewport has to be quiet before the grid
// is redrawn.
const DefaultDebounce = 300 * time.Millisecond

// Overlay keeps the grid in sync with the viewport of one surface.
type Overlay struct {
	gen   *Generator
	sched schedule.Scheduler
	delay time.Duration

	mu       sync.Mutex
	s        surface.Surface
	coll     *layers.Collection
	toggle   *surface.Control
	debounce *schedule.Debouncer
	unsubs   []func()
	last     Pass
	lastErr  error
	passes   int
}

// NewOverlay returns an overlay that redraws delay after the viewport
// settled. A nil sched uses real timers.
func NewOverlay(gen *Generator, sched schedule.Scheduler, delay time.Duration) *Overlay {
	if gen == nil {
		gen = NewGenerator()
	}
	if sched == nil {
		sched = schedule.Timers{}
	}
	if delay <= 0 {
		delay = DefaultDebounce
	}
	return &Overlay{gen: gen, sched: sched, delay: delay}
}

// Attach draws the toggle, the legend and the grid on s, then follows the
// viewport. Everything is tracked in c.
func (o *Overlay) Attach(s surface.Surface, c *layers.Collection) (Pass, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.s = s
	o.coll = c
	o.toggle = &surface.Control{
		Name:     "plss-toggle",
		Position: "topright",
		Title:    "PLSS Grid",
		Active:   true,
	}
	c.Track(s, o.toggle)

	pass, err := o.generate()
	c.Track(s, legend())

	o.debounce = schedule.NewDebouncer(o.sched, o.delay, o.onSettled)
	o.unsubs = append(o.unsubs,
		s.On(surface.ZoomEnd, o.debounce.Trigger),
		s.On(surface.MoveEnd, o.debounce.Trigger),
	)
	return pass, err
}

// Detach stops following the viewport. Drawn primitives are left to the
// owner of the collection; a refresh already in flight becomes a no-op.
func (o *Overlay) Detach() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.debounce != nil {
		o.debounce.Stop()
	}
	for _, un := range o.unsubs {
		un()
	}
	o.unsubs = nil
	o.s = nil
	o.coll = nil
}

func (o *Overlay) onSettled() {
	if _, err := o.Refresh(); err != nil {
		log.WithError(err).Warn("plss refresh incomplete")
	}
}

// Refresh drops every grid primitive, hidden ones included, and draws the
// grid again for the current viewport. The toggle state is not consulted:
// a viewport change always brings the grid back.
func (o *Overlay) Refresh() (Pass, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.s == nil {
		return Pass{}, nil
	}
	o.coll.RemoveWhere(o.s, layers.GridKinds)
	return o.generate()
}

// Toggle hides the grid if the toggle is on and redraws it otherwise. Hidden
// primitives stay tracked until the next redraw. It returns the toggle state
// afterwards.
func (o *Overlay) Toggle() (bool, Pass, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.s == nil {
		return false, Pass{}, nil
	}
	if o.toggle.Active {
		o.coll.HideWhere(o.s, layers.GridKinds)
		o.toggle.Active = false
		return false, Pass{}, nil
	}
	o.coll.RemoveWhere(o.s, layers.GridKinds)
	o.toggle.Active = true
	pass, err := o.generate()
	return true, pass, err
}

// Visible reports whether the toggle is on.
func (o *Overlay) Visible() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.toggle != nil && o.toggle.Active
}

// LastPass returns the result of the most recent pass.
func (o *Overlay) LastPass() (Pass, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.last, o.lastErr
}

// Passes returns the number of passes run so far.
func (o *Overlay) Passes() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.passes
}

func (o *Overlay) generate() (Pass, error) {
	pass, err := o.gen.Generate(o.s, o.coll)
	o.last, o.lastErr = pass, err
	o.passes++
	return pass, err
}

func legend() *surface.Control {
	return &surface.Control{
		Name:     "plss-legend",
		Position: "bottomleft",
		Title:    "Public Land Survey System (PLSS)",
		Items: []surface.LegendItem{
			{Label: "Principal Meridian", Style: meridianStyle},
			{Label: "Baseline", Style: baselineStyle},
			{Label: "Township (6×6 miles)", Style: surface.Style{Color: "#FF0000", Weight: 1.2, Opacity: 0.6, FillOpacity: 0.05}},
			{Label: "Section (1×1 mile)", Style: surface.Style{Color: "#FFA500", Weight: 0.8, Opacity: 0.7, FillOpacity: 0.05}},
		},
		Note: "Zoom in to see more detail: townships appear at zoom level 8, sections at zoom level 10",
	}
}
