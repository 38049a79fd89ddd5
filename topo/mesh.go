// Copyright 2020 The Gotop Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package topo

import (
	"github.com/cpmech/gosl/chk"
)

// Grid represents the structured hexahedral mesh of the design domain.
// Elements and nodes are numbered with the row index (y, counting downward
// from the domain top) running fastest, then the column (x), then the layer
// (z). Every per-element array in this package uses this ordering.
type Grid struct {

	// input
	Nelx int // number of elements along x
	Nely int // number of elements along y
	Nelz int // number of elements along z

	// derived
	Nele  int     // total number of elements
	Nnode int     // total number of nodes
	Ndof  int     // total number of degrees of freedom (3 per node)
	Edof  [][]int // [nele][24] global DOFs of each element's 8 corners
	IK    []int   // [576*nele] global row of each local stiffness entry
	JK    []int   // [576*nele] global column of each local stiffness entry
}

// NewGrid builds the mesh connectivity and the flattened index arrays used
// by the sparse assembly
func NewGrid(nelx, nely, nelz int) (o *Grid, err error) {

	// check
	if nelx < 1 || nely < 1 || nelz < 1 {
		err = chk.Err("grid dimensions must be positive. nelx=%d, nely=%d, nelz=%d is invalid", nelx, nely, nelz)
		return
	}

	// sizes
	o = new(Grid)
	o.Nelx, o.Nely, o.Nelz = nelx, nely, nelz
	o.Nele = nelx * nely * nelz
	o.Nnode = (nelx + 1) * (nely + 1) * (nelz + 1)
	o.Ndof = 3 * o.Nnode

	// connectivity table. the first corner is the bottom-left one (larger row
	// index means lower y), then counter-clockwise on the same layer, then the
	// same four corners on the next layer; this matches ElemStiffness
	o.Edof = make([][]int, o.Nele)
	var nodes [8]int
	for ez := 0; ez < nelz; ez++ {
		for ex := 0; ex < nelx; ex++ {
			for ey := 0; ey < nely; ey++ {
				nodes[0] = o.NodeID(ex, ey+1, ez)
				nodes[1] = o.NodeID(ex+1, ey+1, ez)
				nodes[2] = o.NodeID(ex+1, ey, ez)
				nodes[3] = o.NodeID(ex, ey, ez)
				nodes[4] = o.NodeID(ex, ey+1, ez+1)
				nodes[5] = o.NodeID(ex+1, ey+1, ez+1)
				nodes[6] = o.NodeID(ex+1, ey, ez+1)
				nodes[7] = o.NodeID(ex, ey, ez+1)
				edof := make([]int, 24)
				for a, n := range nodes {
					edof[3*a] = 3 * n
					edof[3*a+1] = 3*n + 1
					edof[3*a+2] = 3*n + 2
				}
				o.Edof[o.EleID(ey, ex, ez)] = edof
			}
		}
	}

	// flattened row/column indices: entry s = 576⋅e + 24⋅a + b corresponds to
	// the local stiffness entry (a,b) of element e
	o.IK = make([]int, 576*o.Nele)
	o.JK = make([]int, 576*o.Nele)
	for e := 0; e < o.Nele; e++ {
		edof := o.Edof[e]
		for a := 0; a < 24; a++ {
			for b := 0; b < 24; b++ {
				s := 576*e + 24*a + b
				o.IK[s] = edof[a]
				o.JK[s] = edof[b]
			}
		}
	}
	return
}

// EleID returns the linear index of the element at row ey, column ex, layer ez
func (o *Grid) EleID(ey, ex, ez int) int {
	return ey + ex*o.Nely + ez*o.Nelx*o.Nely
}

// NodeID returns the linear index of the node at column ix, row iy, layer iz
//  ix ∈ [0,Nelx], iy ∈ [0,Nely], iz ∈ [0,Nelz]
func (o *Grid) NodeID(ix, iy, iz int) int {
	return iz*(o.Nelx+1)*(o.Nely+1) + ix*(o.Nely+1) + iy
}
