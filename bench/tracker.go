// Copyright 2020 The Gotop Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package bench implements the collection of per-phase wall-clock timing and
// memory usage data during an optimization run
package bench

import (
	"runtime"
	"time"

	"github.com/cpmech/gosl/chk"
)

// PhaseStat accumulates the time spent in one named phase
type PhaseStat struct {
	Name  string        // phase name
	Time  time.Duration // accumulated duration
	Count int           // number of start/stop cycles
}

// Summary holds the aggregated results of a tracked run
type Summary struct {
	TotalTime float64         `json:"total_time"` // seconds from creation to Finalize
	PeakMemMB float64         `json:"peak_mem_mb"`
	Phases    []*PhaseSummary `json:"phases"`
}

// PhaseSummary is the aggregated result of one phase
type PhaseSummary struct {
	Name    string  `json:"name"`
	Seconds float64 `json:"seconds"`
	Percent float64 `json:"percent"` // share of the total time
	Count   int     `json:"count"`
}

// Tracker accumulates per-phase wall-clock time and samples the peak memory
// of the process. It satisfies the optimizer's benchmark collaborator
// interface (StartPhase/StopPhase).
type Tracker struct {
	t0      time.Time
	tend    time.Time
	open    map[string]time.Time
	stats   map[string]*PhaseStat
	order   []string
	peakMem uint64
}

// NewTracker starts a new tracker
func NewTracker() (o *Tracker) {
	o = new(Tracker)
	o.t0 = time.Now()
	o.open = make(map[string]time.Time)
	o.stats = make(map[string]*PhaseStat)
	return
}

// StartPhase opens one cycle of the named phase
func (o *Tracker) StartPhase(name string) {
	o.open[name] = time.Now()
}

// StopPhase closes the current cycle of the named phase, accumulating its
// duration and sampling the memory usage
func (o *Tracker) StopPhase(name string) {
	t, ok := o.open[name]
	if !ok {
		return
	}
	delete(o.open, name)
	s := o.stats[name]
	if s == nil {
		s = &PhaseStat{Name: name}
		o.stats[name] = s
		o.order = append(o.order, name)
	}
	s.Time += time.Since(t)
	s.Count++
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	if m.Alloc > o.peakMem {
		o.peakMem = m.Alloc
	}
}

// Finalize closes the run; later StopPhase calls still accumulate but the
// total time is frozen here
func (o *Tracker) Finalize() {
	o.tend = time.Now()
}

// Summary aggregates the collected data. Finalize is called automatically if
// it was not called yet.
func (o *Tracker) Summary() (sum *Summary) {
	if o.tend.IsZero() {
		o.Finalize()
	}
	sum = new(Summary)
	sum.TotalTime = o.tend.Sub(o.t0).Seconds()
	sum.PeakMemMB = float64(o.peakMem) / (1024.0 * 1024.0)
	for _, name := range o.order {
		s := o.stats[name]
		ps := &PhaseSummary{
			Name:    name,
			Seconds: s.Time.Seconds(),
			Count:   s.Count,
		}
		if sum.TotalTime > 0 {
			ps.Percent = 100.0 * ps.Seconds / sum.TotalTime
		}
		sum.Phases = append(sum.Phases, ps)
	}
	return
}

// PhaseTime returns the accumulated time of the named phase
func (o *Tracker) PhaseTime(name string) (time.Duration, error) {
	s, ok := o.stats[name]
	if !ok {
		return 0, chk.Err("cannot find phase named %q", name)
	}
	return s.Time, nil
}
