// Copyright 2020 The Gotop Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package topo

import (
	"github.com/cpmech/gosl/io"
)

// Logger is the interface for progress and diagnostic messages emitted by the
// optimizer. The optimizer has no formatting or output logic of its own; the
// caller controls the logger's lifecycle.
type Logger interface {
	Debugf(msg string, prm ...interface{})
	Infof(msg string, prm ...interface{})
	Warnf(msg string, prm ...interface{})
}

// ConsoleLogger prints messages to the standard output
type ConsoleLogger struct {
	Debug bool // also print debug messages
}

// Debugf prints a debug message if Debug is active
func (o *ConsoleLogger) Debugf(msg string, prm ...interface{}) {
	if o.Debug {
		io.Pfgrey(msg+"\n", prm...)
	}
}

// Infof prints an information message
func (o *ConsoleLogger) Infof(msg string, prm ...interface{}) {
	io.Pf(msg+"\n", prm...)
}

// Warnf prints a warning message
func (o *ConsoleLogger) Warnf(msg string, prm ...interface{}) {
	io.Pfyel(msg+"\n", prm...)
}

// NopLogger discards all messages
type NopLogger struct{}

func (o NopLogger) Debugf(msg string, prm ...interface{}) {}
func (o NopLogger) Infof(msg string, prm ...interface{})  {}
func (o NopLogger) Warnf(msg string, prm ...interface{})  {}

// ProgressFunc is called once per iteration boundary with the iteration
// number, the objective, the maximum design change and the volume fraction
type ProgressFunc func(it int, obj, change, vol float64)

// Tracker collects per-phase wall-clock data; implementations may also sample
// memory. New installs a no-op stand-in so the iteration loop never branches
// on its presence.
type Tracker interface {
	StartPhase(name string)
	StopPhase(name string)
}

// nopTracker implements Tracker discarding everything
type nopTracker struct{}

func (o nopTracker) StartPhase(name string) {}
func (o nopTracker) StopPhase(name string)  {}
