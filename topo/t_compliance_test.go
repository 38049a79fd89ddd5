// Copyright 2020 The Gotop Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package topo

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"
)

func Test_comp01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("comp01. strain energies against direct products")

	g, err := NewGrid(2, 1, 1)
	if err != nil {
		tst.Errorf("NewGrid failed:\n%v", err)
		return
	}
	ke := ElemStiffness(0.3)
	ev := NewEvaluator(g, ke, 1)

	// deterministic displacements
	u := la.NewVector(g.Ndof)
	for d := 0; d < g.Ndof; d++ {
		u[d] = 0.01 * float64(d%5) * float64(1+d%3)
	}

	// direct per-element products
	correct := la.NewVector(g.Nele)
	for e := 0; e < g.Nele; e++ {
		edof := g.Edof[e]
		for a := 0; a < 24; a++ {
			for b := 0; b < 24; b++ {
				correct[e] += u[edof[a]] * ke.Get(a, b) * u[edof[b]]
			}
		}
	}

	ce := la.NewVector(g.Nele)
	ev.Energies(ce, u)
	chk.Array(tst, "ce", 1e-15, ce, correct)

	// energies are never negative
	for e := 0; e < g.Nele; e++ {
		if ce[e] < 0 {
			tst.Errorf("strain energy of element %d is negative: %g", e, ce[e])
			return
		}
	}
}

func Test_comp02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("comp02. chunked evaluation equals serial")

	g, err := NewGrid(3, 4, 2)
	if err != nil {
		tst.Errorf("NewGrid failed:\n%v", err)
		return
	}
	ke := ElemStiffness(0.3)
	serial := NewEvaluator(g, ke, 1)
	chunked := NewEvaluator(g, ke, 4)

	u := la.NewVector(g.Ndof)
	for d := 0; d < g.Ndof; d++ {
		u[d] = float64(d%11) - 5.0
	}

	ce1 := la.NewVector(g.Nele)
	ce2 := la.NewVector(g.Nele)
	serial.Energies(ce1, u)
	chunked.Energies(ce2, u)

	// chunks only split the element range; every element is computed by one
	// goroutine with the same summation order, so the results are identical
	chk.Array(tst, "ce (serial vs chunked)", 0, ce2, ce1)
}

func Test_comp03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("comp03. objective and gradients")

	g, err := NewGrid(2, 2, 1)
	if err != nil {
		tst.Errorf("NewGrid failed:\n%v", err)
		return
	}
	ke := ElemStiffness(0.3)
	ev := NewEvaluator(g, ke, 1)

	e0, emin, penal := 1.0, 1e-9, 3.0
	ce := la.Vector{2.0, 4.0, 1.0, 3.0}
	xphys := la.Vector{1.0, 0.5, 0.0, 0.25}

	// c = Σ (emin + x³(e0-emin)) ce
	correct := 0.0
	for e := 0; e < 4; e++ {
		correct += (emin + xphys[e]*xphys[e]*xphys[e]*(e0-emin)) * ce[e]
	}
	c := ev.Objective(xphys, ce, e0, emin, penal)
	io.Pforan("c = %v\n", c)
	chk.Float64(tst, "objective", 1e-15, c, correct)

	// dc = -p x^(p-1) (e0-emin) ce and dv = 1
	dc := la.NewVector(4)
	dv := la.NewVector(4)
	ev.Gradients(dc, dv, xphys, ce, e0, emin, penal)
	for e := 0; e < 4; e++ {
		chk.Float64(tst, io.Sf("dc[%d]", e), 1e-15, dc[e], -penal*(e0-emin)*xphys[e]*xphys[e]*ce[e])
		chk.Float64(tst, io.Sf("dv[%d]", e), 1e-17, dv[e], 1.0)
		if dc[e] > 0 {
			tst.Errorf("compliance sensitivity must not be positive. dc[%d] = %g", e, dc[e])
			return
		}
	}
}
