// Copyright 2020 The Gotop Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package topo

import (
	"math"

	"github.com/cpmech/gosl/la"
)

// Assembler builds the reduced global stiffness matrix every iteration. The
// deduplication of the 576⋅nele local contributions into unique nonzero slots
// is computed once at construction; each Assemble call only recomputes values,
// which is what makes the per-iteration assembly cheap.
type Assembler struct {

	// access
	Kb *la.Triplet // [nfree][nfree] reduced stiffness matrix (values change per iteration)

	// constant data
	grid   *Grid
	bcs    *BCs
	keflat []float64 // [576] local stiffness matrix, row-major
	slot   []int32   // [576*nele] unique slot of each local entry; -1 if it touches a fixed DOF
	rowsU  []int32   // [nUnique] reduced row of each unique slot
	colsU  []int32   // [nUnique] reduced column of each unique slot

	// iteration data
	vals la.Vector // [nUnique] accumulated values
	diag la.Vector // [nfree] diagonal of the last assembled matrix
}

// NewAssembler precomputes the deduplicated index map from the grid's
// flattened index arrays and the free-DOF renumbering
func NewAssembler(g *Grid, b *BCs, ke *la.Matrix) (o *Assembler) {
	o = new(Assembler)
	o.grid = g
	o.bcs = b

	// flatten the local stiffness matrix
	o.keflat = make([]float64, 576)
	for a := 0; a < 24; a++ {
		for c := 0; c < 24; c++ {
			o.keflat[24*a+c] = ke.Get(a, c)
		}
	}

	// deduplicate (row,col) pairs in reduced coordinates
	o.slot = make([]int32, len(g.IK))
	key2slot := make(map[int64]int32, 30*b.Nfree)
	nf := int64(b.Nfree)
	for s := 0; s < len(g.IK); s++ {
		i := b.FreeOf[g.IK[s]]
		j := b.FreeOf[g.JK[s]]
		if i < 0 || j < 0 {
			o.slot[s] = -1
			continue
		}
		key := int64(i)*nf + int64(j)
		u, ok := key2slot[key]
		if !ok {
			u = int32(len(o.rowsU))
			key2slot[key] = u
			o.rowsU = append(o.rowsU, int32(i))
			o.colsU = append(o.colsU, int32(j))
		}
		o.slot[s] = u
	}

	// allocate iteration data
	o.vals = la.NewVector(len(o.rowsU))
	o.diag = la.NewVector(b.Nfree)
	o.Kb = la.NewTriplet(b.Nfree, b.Nfree, len(o.rowsU))
	return
}

// Nunique returns the number of deduplicated nonzero slots
func (o *Assembler) Nunique() int { return len(o.rowsU) }

// Assemble recomputes the reduced stiffness values for the given physical
// densities using the SIMP interpolation
//  E(x) = emin + x^penal ⋅ (e0 - emin)
func (o *Assembler) Assemble(xPhys la.Vector, e0, emin, penal float64) {
	o.vals.Fill(0)
	for e := 0; e < o.grid.Nele; e++ {
		se := emin + math.Pow(xPhys[e], penal)*(e0-emin)
		base := 576 * e
		for q := 0; q < 576; q++ {
			u := o.slot[base+q]
			if u < 0 {
				continue
			}
			o.vals[u] += se * o.keflat[q]
		}
	}
	o.Kb.Start()
	o.diag.Fill(0)
	for u := 0; u < len(o.rowsU); u++ {
		i, j := int(o.rowsU[u]), int(o.colsU[u])
		o.Kb.Put(i, j, o.vals[u])
		if i == j {
			o.diag[i] = o.vals[u]
		}
	}
}

// Diag returns the diagonal of the last assembled matrix; used for Jacobi
// preconditioning of iterative solvers
func (o *Assembler) Diag() la.Vector { return o.diag }
