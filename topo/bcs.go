// Copyright 2020 The Gotop Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package topo

import (
	"github.com/cpmech/gosl/la"
)

// BCs holds the boundary conditions of the cantilever problem: unit downward
// loads along the bottom edge of the free end (x = Nelx) and full clamping of
// the x = 0 face. The placement is a fixed structural policy tied to the grid
// geometry; only the grid size changes it.
type BCs struct {
	F      la.Vector // [ndof] global force vector
	Fixed  []bool    // [ndof] prescribed (zero displacement) DOFs
	Free   []int     // [nfree] global ids of the free DOFs, ascending
	FreeOf []int     // [ndof] global DOF → free DOF number; -1 if fixed
	Nfree  int       // number of free DOFs
	Ff     la.Vector // [nfree] reduced force vector
}

// NewBCs builds loads, supports and the free-DOF renumbering table
func NewBCs(g *Grid) (o *BCs) {
	o = new(BCs)
	o.F = la.NewVector(g.Ndof)
	o.Fixed = make([]bool, g.Ndof)

	// loads: y-DOF of the nodes along the bottom edge at x = Nelx
	for k := 0; k <= g.Nelz; k++ {
		n := g.NodeID(g.Nelx, g.Nely, k)
		o.F[3*n+1] = -1
	}

	// supports: all DOFs of the x = 0 face
	for k := 0; k <= g.Nelz; k++ {
		for i := 0; i <= g.Nely; i++ {
			n := g.NodeID(0, i, k)
			o.Fixed[3*n] = true
			o.Fixed[3*n+1] = true
			o.Fixed[3*n+2] = true
		}
	}

	// renumbering
	o.FreeOf = make([]int, g.Ndof)
	for d := 0; d < g.Ndof; d++ {
		if o.Fixed[d] {
			o.FreeOf[d] = -1
			continue
		}
		o.FreeOf[d] = len(o.Free)
		o.Free = append(o.Free, d)
	}
	o.Nfree = len(o.Free)

	// reduced force vector
	o.Ff = la.NewVector(o.Nfree)
	for i, d := range o.Free {
		o.Ff[i] = o.F[d]
	}
	return
}

// Expand scatters the reduced solution uf into the full displacement vector
// u, with zeros at the fixed DOFs
func (o *BCs) Expand(u, uf la.Vector) {
	u.Fill(0)
	for i, d := range o.Free {
		u[d] = uf[i]
	}
}
