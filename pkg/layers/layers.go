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

// Package layers tracks the primitives an overlay drew so they can be
// removed in bulk when the map changes.
package layers

import (
	"sync"

	"github.com/spezifisch/histmap/pkg/surface"
)

// Family names a group of overlays that are cleared together.
type Family string

const (
	Base     Family = "base"
	Grid     Family = "plss"
	Airports Family = "airports"
	States   Family = "states"
	Colonies Family = "colonies"
)

// Entry is a tracked handle and the kind of primitive behind it.
type Entry struct {
	Handle surface.Handle
	Kind   surface.Kind
}

// Collection is an ordered set of tracked handles.
type Collection struct {
	mu      sync.Mutex
	entries []Entry
}

// Track draws p on s and remembers the handle.
func (c *Collection) Track(s surface.Surface, p surface.Primitive) surface.Handle {
	h := s.Add(p)
	c.mu.Lock()
	c.entries = append(c.entries, Entry{Handle: h, Kind: p.Kind()})
	c.mu.Unlock()
	return h
}

// RemoveWhere removes every entry for which match returns true from s and
// stops tracking it. It returns the number of removed entries.
func (c *Collection) RemoveWhere(s surface.Surface, match func(Entry) bool) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	kept := c.entries[:0]
	removed := 0
	for _, e := range c.entries {
		if match(e) {
			s.Remove(e.Handle)
			removed++
			continue
		}
		kept = append(kept, e)
	}
	c.entries = kept
	return removed
}

// HideWhere removes matching entries from s but keeps tracking them.
func (c *Collection) HideWhere(s surface.Surface, match func(Entry) bool) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, e := range c.entries {
		if match(e) && s.Has(e.Handle) {
			s.Remove(e.Handle)
			n++
		}
	}
	return n
}

// Clear removes everything tracked from s.
func (c *Collection) Clear(s surface.Surface) int {
	return c.RemoveWhere(s, func(Entry) bool { return true })
}

// Len returns the number of tracked entries.
func (c *Collection) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Entries returns a copy of the tracked entries in draw order.
func (c *Collection) Entries() []Entry {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Entry(nil), c.entries...)
}

// Count returns how many tracked entries have kind k.
func (c *Collection) Count(k surface.Kind) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, e := range c.entries {
		if e.Kind == k {
			n++
		}
	}
	return n
}

// GridKinds matches the primitives the grid overlay redraws.
func GridKinds(e Entry) bool {
	return surface.IsGridKind(e.Kind)
}

// Session is the per-activation context: the surface being drawn on, one
// collection per overlay family and the cleanup hooks registered by the
// overlays (event subscriptions, pending timers).
type Session struct {
	Surface surface.Surface

	mu       sync.Mutex
	families map[Family]*Collection
	order    []Family
	cleanups []func()
	closed   bool
}

// NewSession starts a session on s.
func NewSession(s surface.Surface) *Session {
	return &Session{
		Surface:  s,
		families: make(map[Family]*Collection),
	}
}

// Collection returns the collection for f, creating it on first use.
func (s *Session) Collection(f Family) *Collection {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.families[f]
	if !ok {
		c = &Collection{}
		s.families[f] = c
		s.order = append(s.order, f)
	}
	return c
}

// OnClose registers fn to run when the session is torn down.
func (s *Session) OnClose(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cleanups = append(s.cleanups, fn)
}

// Tracked returns the total number of tracked entries across families.
func (s *Session) Tracked() int {
	s.mu.Lock()
	fams := make([]*Collection, 0, len(s.order))
	for _, f := range s.order {
		fams = append(fams, s.families[f])
	}
	s.mu.Unlock()

	n := 0
	for _, c := range fams {
		n += c.Len()
	}
	return n
}

// Close runs the cleanup hooks, then removes every tracked primitive from
// the surface. Closing twice is a no-op.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	cleanups := s.cleanups
	s.cleanups = nil
	fams := make([]*Collection, 0, len(s.order))
	for _, f := range s.order {
		fams = append(fams, s.families[f])
	}
	s.mu.Unlock()

	for i := len(cleanups) - 1; i >= 0; i-- {
		cleanups[i]()
	}
	for _, c := range fams {
		c.Clear(s.Surface)
	}
}

// Closed reports whether Close was called.
func (s *Session) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}
