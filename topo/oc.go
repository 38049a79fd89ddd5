// Copyright 2020 The Gotop Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package topo

import (
	"math"

	"github.com/cpmech/gosl/la"
)

// OCUpdater performs the optimality-criteria density update: a bisection
// search over the volume-constraint Lagrange multiplier, with per-element
// move limits and box bounds. Obstacle cells are excluded from the update
// entirely: they stay at zero density and do not count towards the volume.
type OCUpdater struct {

	// parameters
	Move   float64 // move limit per iteration
	TolBis float64 // bisection bracket tolerance
	MaxBis int     // bisection iteration cap

	// constant data
	flt     *Filter
	mask    []bool
	volfrac float64
	designN int // number of design (non obstacle) cells
}

// NewOCUpdater returns an updater with the standard parameters
func NewOCUpdater(flt *Filter, mask []bool, volfrac float64, designN int) (o *OCUpdater) {
	o = new(OCUpdater)
	o.Move = 0.2
	o.TolBis = 1e-3
	o.MaxBis = 200
	o.flt = flt
	o.mask = mask
	o.volfrac = volfrac
	o.designN = designN
	return
}

// Update computes new densities from the current design x and the filtered
// sensitivities dc and dv. xnew receives the raw proposal and xPhysNew its
// filtered (physical) counterpart with obstacle cells zeroed. Returns the
// maximum design change over the design cells and the volume fraction of
// xPhysNew. The bisection always terminates: either the bracket becomes
// smaller than TolBis or the cap MaxBis is reached (degenerate brackets,
// e.g. all-zero sensitivities, hit the cap).
func (o *OCUpdater) Update(xnew, xPhysNew, x, dc, dv la.Vector) (change, vol float64) {
	l1, l2 := 0.0, 1e9
	for it := 0; it < o.MaxBis && (l2-l1)/(l1+l2) > o.TolBis; it++ {
		lmid := 0.5 * (l1 + l2)

		// proposal within move limits and box bounds
		for e := 0; e < len(x); e++ {
			if o.mask[e] {
				xnew[e] = 0
				continue
			}
			xe := x[e]
			lo := math.Max(0, xe-o.Move)
			hi := math.Min(1, xe+o.Move)
			xb := 0.0 // no descent signal; the move limit keeps the step bounded
			if dv[e] > 0 && dc[e] < 0 {
				xb = xe * math.Sqrt(-dc[e]/(lmid*dv[e]))
			}
			xnew[e] = math.Min(hi, math.Max(lo, xb))
		}

		// filter to physical densities and measure the volume
		o.flt.Apply(xPhysNew, xnew)
		vol = 0
		for e := 0; e < len(x); e++ {
			if o.mask[e] {
				xPhysNew[e] = 0
				continue
			}
			vol += xPhysNew[e]
		}
		vol /= float64(o.designN)

		// narrow the bracket
		if vol > o.volfrac {
			l1 = lmid
		} else {
			l2 = lmid
		}
	}

	// maximum design change
	for e := 0; e < len(x); e++ {
		if o.mask[e] {
			continue
		}
		if d := math.Abs(xnew[e] - x[e]); d > change {
			change = d
		}
	}
	return
}
