// Copyright 2020 The Gotop Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package topo

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func Test_mesh01(tst *testing.T) {

	/*  single element: node numbers (y counts downward)
	 *
	 *          3-------2          7-------6
	 *   y      |  z=0  |          |  z=1  |
	 *   |      |       |          |       |
	 *   0--x   0-------1          4-------5
	 *
	 *   n = 4⋅iz + 2⋅ix + iy
	 */

	//verbose()
	chk.PrintTitle("mesh01. single element connectivity")

	g, err := NewGrid(1, 1, 1)
	if err != nil {
		tst.Errorf("NewGrid failed:\n%v", err)
		return
	}
	chk.Int(tst, "nele", g.Nele, 1)
	chk.Int(tst, "nnode", g.Nnode, 8)
	chk.Int(tst, "ndof", g.Ndof, 24)

	// corners: 1 3 2 0 then 5 7 6 4
	chk.Ints(tst, "edof", g.Edof[0], []int{
		3, 4, 5, 9, 10, 11, 6, 7, 8, 0, 1, 2,
		15, 16, 17, 21, 22, 23, 18, 19, 20, 12, 13, 14,
	})

	// flattened indices
	chk.Int(tst, "len(IK)", len(g.IK), 576)
	chk.Int(tst, "IK[0]", g.IK[0], 3)
	chk.Int(tst, "JK[0]", g.JK[0], 3)
	chk.Int(tst, "IK[24*5+7]", g.IK[24*5+7], g.Edof[0][5])
	chk.Int(tst, "JK[24*5+7]", g.JK[24*5+7], g.Edof[0][7])
}

func Test_mesh02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("mesh02. numbering of a 2x2x2 grid")

	g, err := NewGrid(2, 2, 2)
	if err != nil {
		tst.Errorf("NewGrid failed:\n%v", err)
		return
	}
	chk.Int(tst, "nele", g.Nele, 8)
	chk.Int(tst, "nnode", g.Nnode, 27)
	chk.Int(tst, "ndof", g.Ndof, 81)

	// element ids: row fastest, then column, then layer
	chk.Int(tst, "EleID(0,0,0)", g.EleID(0, 0, 0), 0)
	chk.Int(tst, "EleID(1,0,0)", g.EleID(1, 0, 0), 1)
	chk.Int(tst, "EleID(0,1,0)", g.EleID(0, 1, 0), 2)
	chk.Int(tst, "EleID(1,1,0)", g.EleID(1, 1, 0), 3)
	chk.Int(tst, "EleID(0,0,1)", g.EleID(0, 0, 1), 4)
	chk.Int(tst, "EleID(1,1,1)", g.EleID(1, 1, 1), 7)

	// node ids
	chk.Int(tst, "NodeID(0,0,0)", g.NodeID(0, 0, 0), 0)
	chk.Int(tst, "NodeID(0,1,0)", g.NodeID(0, 1, 0), 1)
	chk.Int(tst, "NodeID(1,0,0)", g.NodeID(1, 0, 0), 3)
	chk.Int(tst, "NodeID(2,2,0)", g.NodeID(2, 2, 0), 8)
	chk.Int(tst, "NodeID(0,0,1)", g.NodeID(0, 0, 1), 9)
	chk.Int(tst, "NodeID(2,2,2)", g.NodeID(2, 2, 2), 26)

	// neighboring elements share a face of 4 nodes = 12 DOFs
	e0 := g.Edof[g.EleID(0, 0, 0)]
	e1 := g.Edof[g.EleID(0, 1, 0)]
	shared := make(map[int]bool)
	for _, d := range e0 {
		shared[d] = true
	}
	count := 0
	for _, d := range e1 {
		if shared[d] {
			count++
		}
	}
	io.Pforan("shared DOFs between columns = %v\n", count)
	chk.Int(tst, "shared DOFs", count, 12)

	// every element sees 24 distinct DOFs within range
	for e := 0; e < g.Nele; e++ {
		seen := make(map[int]bool)
		for _, d := range g.Edof[e] {
			if d < 0 || d >= g.Ndof {
				tst.Errorf("DOF %d of element %d is out of range", d, e)
				return
			}
			seen[d] = true
		}
		chk.Int(tst, io.Sf("distinct DOFs of element %d", e), len(seen), 24)
	}
}

func Test_mesh03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("mesh03. invalid dimensions")

	if _, err := NewGrid(0, 1, 1); err == nil {
		tst.Errorf("NewGrid must fail with nelx=0")
		return
	}
	if _, err := NewGrid(1, -1, 1); err == nil {
		tst.Errorf("NewGrid must fail with nely=-1")
		return
	}
	if _, err := NewGrid(1, 1, 0); err == nil {
		tst.Errorf("NewGrid must fail with nelz=0")
	}
}
