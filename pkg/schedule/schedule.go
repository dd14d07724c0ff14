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

// Package schedule runs delayed work that can be cancelled before it
// starts.
package schedule

import (
	"sort"
	"sync"
	"time"
)

// Task is a scheduled action.
type Task interface {
	// Cancel stops the action if it has not started yet. It reports
	// whether the action was stopped.
	Cancel() bool
}

// Scheduler runs fn after delay.
type Scheduler interface {
	Schedule(delay time.Duration, fn func()) Task
}

// Timers is a Scheduler backed by time.AfterFunc.
type Timers struct{}

type timerTask struct {
	t *time.Timer
}

func (tt timerTask) Cancel() bool {
	return tt.t.Stop()
}

// Schedule implements Scheduler.
func (Timers) Schedule(delay time.Duration, fn func()) Task {
	return timerTask{t: time.AfterFunc(delay, fn)}
}

// Debouncer collapses bursts of triggers into a single call that runs
// once no trigger arrived for Delay.
type Debouncer struct {
	sched   Scheduler
	delay   time.Duration
	fn      func()
	mu      sync.Mutex
	pending Task
}

// NewDebouncer returns a debouncer that calls fn delay after the last
// Trigger.
func NewDebouncer(sched Scheduler, delay time.Duration, fn func()) *Debouncer {
	if sched == nil {
		sched = Timers{}
	}
	return &Debouncer{sched: sched, delay: delay, fn: fn}
}

// Trigger cancels the pending call, if any, and schedules a new one.
func (d *Debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.pending != nil {
		d.pending.Cancel()
	}
	var task Task
	task = d.sched.Schedule(d.delay, func() {
		d.mu.Lock()
		if d.pending != task {
			// superseded between firing and acquiring the lock
			d.mu.Unlock()
			return
		}
		d.pending = nil
		d.mu.Unlock()
		d.fn()
	})
	d.pending = task
}

// Stop cancels the pending call.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.pending != nil {
		d.pending.Cancel()
		d.pending = nil
	}
}

// Pending reports whether a call is scheduled.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending != nil
}

// Manual is a Scheduler driven by an explicit clock, for tests and
// offline rendering.
type Manual struct {
	mu    sync.Mutex
	now   time.Duration
	seq   int
	tasks []*manualTask
}

type manualTask struct {
	m        *Manual
	at       time.Duration
	seq      int
	fn       func()
	canceled bool
	done     bool
}

func (mt *manualTask) Cancel() bool {
	mt.m.mu.Lock()
	defer mt.m.mu.Unlock()
	if mt.done || mt.canceled {
		return false
	}
	mt.canceled = true
	return true
}

// Schedule implements Scheduler.
func (m *Manual) Schedule(delay time.Duration, fn func()) Task {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	t := &manualTask{m: m, at: m.now + delay, seq: m.seq, fn: fn}
	m.tasks = append(m.tasks, t)
	return t
}

// Advance moves the clock forward by d and runs every task that came due,
// in due order.
func (m *Manual) Advance(d time.Duration) int {
	m.mu.Lock()
	m.now += d
	var due, rest []*manualTask
	for _, t := range m.tasks {
		switch {
		case t.canceled:
		case t.at <= m.now:
			t.done = true
			due = append(due, t)
		default:
			rest = append(rest, t)
		}
	}
	m.tasks = rest
	m.mu.Unlock()

	sort.Slice(due, func(i, j int) bool {
		if due[i].at != due[j].at {
			return due[i].at < due[j].at
		}
		return due[i].seq < due[j].seq
	})
	for _, t := range due {
		t.fn()
	}
	return len(due)
}

// Waiting returns the number of scheduled, not cancelled tasks.
func (m *Manual) Waiting() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, t := range m.tasks {
		if !t.canceled {
			n++
		}
	}
	return n
}
