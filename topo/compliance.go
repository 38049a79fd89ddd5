// Copyright 2020 The Gotop Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package topo

import (
	"math"
	"sync"

	"github.com/cpmech/gosl/la"
)

// Evaluator computes per-element strain energies, the compliance objective
// and its sensitivities from the nodal displacements
type Evaluator struct {
	grid   *Grid
	keflat []float64 // [576] local stiffness matrix, row-major
	nproc  int       // number of goroutines for the element loop
}

// NewEvaluator returns a new evaluator; nproc < 2 means serial evaluation
func NewEvaluator(g *Grid, ke *la.Matrix, nproc int) (o *Evaluator) {
	o = new(Evaluator)
	o.grid = g
	o.keflat = make([]float64, 576)
	for a := 0; a < 24; a++ {
		for b := 0; b < 24; b++ {
			o.keflat[24*a+b] = ke.Get(a, b)
		}
	}
	o.nproc = nproc
	return
}

// Energies computes every element's strain energy
//  ce[e] = ueᵀ ⋅ KE ⋅ ue
// where ue gathers the 24 local displacements of element e. Elements are
// independent, so the loop may run in nproc chunks with disjoint writes.
func (o *Evaluator) Energies(ce, u la.Vector) {
	if o.nproc < 2 {
		o.energies(ce, u, 0, o.grid.Nele)
		return
	}
	csz := (o.grid.Nele + o.nproc - 1) / o.nproc
	var wg sync.WaitGroup
	for lo := 0; lo < o.grid.Nele; lo += csz {
		hi := imin(lo+csz, o.grid.Nele)
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			o.energies(ce, u, lo, hi)
		}(lo, hi)
	}
	wg.Wait()
}

// energies computes the strain energies of elements [lo,hi)
func (o *Evaluator) energies(ce, u la.Vector, lo, hi int) {
	var ue [24]float64
	for e := lo; e < hi; e++ {
		edof := o.grid.Edof[e]
		for a := 0; a < 24; a++ {
			ue[a] = u[edof[a]]
		}
		res := 0.0
		for a := 0; a < 24; a++ {
			row := 0.0
			for b := 0; b < 24; b++ {
				row += o.keflat[24*a+b] * ue[b]
			}
			res += ue[a] * row
		}
		ce[e] = res
	}
}

// Objective computes the total compliance
//  c = Σ (emin + xPhys^penal ⋅ (e0-emin)) ⋅ ce
func (o *Evaluator) Objective(xPhys, ce la.Vector, e0, emin, penal float64) (c float64) {
	for e := 0; e < o.grid.Nele; e++ {
		c += (emin + math.Pow(xPhys[e], penal)*(e0-emin)) * ce[e]
	}
	return
}

// Gradients computes the sensitivities of the compliance (dc) and of the
// volume constraint (dv) with respect to the physical densities. dc is
// never positive because the strain energies are non-negative.
func (o *Evaluator) Gradients(dc, dv, xPhys, ce la.Vector, e0, emin, penal float64) {
	for e := 0; e < o.grid.Nele; e++ {
		dc[e] = -penal * (e0 - emin) * math.Pow(xPhys[e], penal-1.0) * ce[e]
		dv[e] = 1.0
	}
}
