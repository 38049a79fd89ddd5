// Copyright 2020 The Gotop Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package topo

import (
	"time"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
	"github.com/cpmech/gotop/inp"
)

// Frame is one history snapshot of the optimization
type Frame struct {
	It      int     `json:"it"`      // iteration number
	Obj     float64 `json:"obj"`     // compliance
	Change  float64 `json:"change"`  // maximum design change
	Vol     float64 `json:"vol"`     // volume fraction over design cells
	Density *Field  `json:"density"` // physical densities (deep copy)
}

// Result holds the outcome of an optimization run. It is returned on both
// termination paths; Converged distinguishes them.
type Result struct {
	Density    *Field    // final physical densities
	History    []*Frame  // captured snapshots; empty unless history capture is enabled
	ObjHist    []float64 // objective of every iteration
	VolHist    []float64 // volume fraction of every iteration
	ChangeHist []float64 // maximum design change of every iteration
	Iterations int       // number of iterations performed
	Converged  bool      // whether change ≤ tolx was reached within maxloop
	Objective  float64   // final compliance
	Change     float64   // final maximum design change
	Volume     float64   // final volume fraction over design cells
}

// Optimizer drives the SIMP topology optimization loop. All setup artifacts
// are built by New and never mutated afterwards; Run only changes density and
// displacement arrays and the values of the assembled matrix.
type Optimizer struct {

	// input
	Sim  *inp.Simulation // simulation data
	Mask []bool          // [nele] obstacle mask; true marks permanently void cells

	// collaborators (set before Run; all optional)
	Log      Logger       // messages; default is a console logger
	Progress ProgressFunc // per-iteration callback
	Track    Tracker      // benchmark collector; nil becomes a no-op

	// setup artifacts
	Grid    *Grid      // mesh indexing
	Bcs     *BCs       // loads and supports
	Ke      *la.Matrix // local stiffness matrix
	Flt     *Filter    // density/sensitivity filter
	Asm     *Assembler // sparse assembly with deduplicated index map
	Ev      *Evaluator // compliance and sensitivities
	Oc      *OCUpdater // density update
	LinSol  LinSolver  // solver of the reduced system
	DesignN int        // number of design (non obstacle) cells

	// iteration data (densities are double buffered)
	x, xnew, xphys, xphysnew la.Vector
	u, uf                    la.Vector
	ce, dc, dv, dcw, dvw     la.Vector
	scratch                  la.Vector
}

// New validates the input and builds all setup artifacts: mesh tables,
// boundary conditions, stiffness kernel, filter matrices, the assembly index
// map and the initial density fields
func New(sim *inp.Simulation, mask []bool) (o *Optimizer, err error) {

	// check parameters
	if sim.Opt.VolFrac <= 0 || sim.Opt.VolFrac >= 1 {
		err = chk.Err("volume fraction must be within (0,1). volfrac=%g is invalid", sim.Opt.VolFrac)
		return
	}
	if sim.Opt.Penal < 1 {
		err = chk.Err("penalization exponent must be ≥ 1. penal=%g is invalid", sim.Opt.Penal)
		return
	}
	if sim.Opt.Tolx <= 0 {
		err = chk.Err("convergence tolerance must be positive. tolx=%g is invalid", sim.Opt.Tolx)
		return
	}
	if sim.Opt.MaxLoop < 1 {
		err = chk.Err("maximum number of iterations must be ≥ 1. maxloop=%d is invalid", sim.Opt.MaxLoop)
		return
	}

	// mesh
	o = new(Optimizer)
	o.Sim = sim
	o.Grid, err = NewGrid(sim.Grid.Nelx, sim.Grid.Nely, sim.Grid.Nelz)
	if err != nil {
		return nil, err
	}

	// obstacle mask
	if mask == nil {
		mask = make([]bool, o.Grid.Nele)
	}
	if len(mask) != o.Grid.Nele {
		return nil, chk.Err("obstacle mask must match the grid: len(mask)=%d ≠ nele=%d", len(mask), o.Grid.Nele)
	}
	o.Mask = mask
	for _, m := range mask {
		if !m {
			o.DesignN++
		}
	}
	if o.DesignN == 0 {
		return nil, chk.Err("obstacle mask excludes every element; nothing to design")
	}

	// setup artifacts
	o.Bcs = NewBCs(o.Grid)
	o.Ke = ElemStiffness(sim.Opt.Nu)
	o.Flt, err = NewFilter(o.Grid, sim.Opt.Rmin)
	if err != nil {
		return nil, err
	}
	o.Asm = NewAssembler(o.Grid, o.Bcs, o.Ke)
	o.Ev = NewEvaluator(o.Grid, o.Ke, sim.Opt.Nproc)
	o.Oc = NewOCUpdater(o.Flt, o.Mask, sim.Opt.VolFrac, o.DesignN)
	if sim.Opt.Move > 0 {
		o.Oc.Move = sim.Opt.Move
	}
	o.LinSol, err = NewLinSolver(&sim.LinSol)
	if err != nil {
		return nil, err
	}

	// iteration data
	nele, ndof, nfree := o.Grid.Nele, o.Grid.Ndof, o.Bcs.Nfree
	o.x = la.NewVector(nele)
	o.xnew = la.NewVector(nele)
	o.xphys = la.NewVector(nele)
	o.xphysnew = la.NewVector(nele)
	o.u = la.NewVector(ndof)
	o.uf = la.NewVector(nfree)
	o.ce = la.NewVector(nele)
	o.dc = la.NewVector(nele)
	o.dv = la.NewVector(nele)
	o.dcw = la.NewVector(nele)
	o.dvw = la.NewVector(nele)
	o.scratch = la.NewVector(nele)

	// initial densities: the target volume fraction outside obstacles, zero
	// inside; uniform fields pass unchanged through the filter
	for e := 0; e < nele; e++ {
		if !o.Mask[e] {
			o.x[e] = sim.Opt.VolFrac
		}
	}
	o.Flt.Apply(o.xphys, o.x)
	for e := 0; e < nele; e++ {
		if o.Mask[e] {
			o.xphys[e] = 0
		}
	}

	// default collaborators
	o.Log = &ConsoleLogger{Debug: sim.Data.Debug}
	o.Track = nopTracker{}
	return
}

// Run performs the optimization loop until the design change falls below
// tolx or maxloop iterations are done. Reaching maxloop is not an error:
// the best-effort result is returned with Converged unset and a warning.
func (o *Optimizer) Run() (res *Result, err error) {

	// parameters
	e0, emin, penal := o.Sim.Opt.E0, o.Sim.Opt.Emin, o.Sim.Opt.Penal
	tolx := o.Sim.Opt.Tolx
	maxloop := o.Sim.Opt.MaxLoop

	// message
	res = new(Result)
	o.Log.Infof("%d elements (%d design), %d free DOFs, solver %q", o.Grid.Nele, o.DesignN, o.Bcs.Nfree, o.LinSol.Name())
	o.Log.Debugf("assembly map: %d unique nonzeros from %d local entries", o.Asm.Nunique(), 576*o.Grid.Nele)

	// iterations
	var loop int
	var c, cprev, change, vol float64
	for {
		loop++
		t0 := time.Now()

		// assemble the reduced stiffness matrix
		o.Track.StartPhase("assembly")
		o.Asm.Assemble(o.xphys, e0, emin, penal)
		o.Track.StopPhase("assembly")

		// solve for the free displacements
		o.Track.StartPhase("solve")
		if jp, ok := o.LinSol.(JacobiPrec); ok {
			jp.SetDiag(o.Asm.Diag())
		}
		err = o.LinSol.Solve(o.uf, o.Asm.Kb, o.Bcs.Ff)
		o.Track.StopPhase("solve")
		if err != nil {
			return nil, chk.Err("linear solve failed at iteration %d:\n%v", loop, err)
		}
		o.Bcs.Expand(o.u, o.uf)

		// compliance and sensitivities
		o.Track.StartPhase("sensitivity")
		o.Ev.Energies(o.ce, o.u)
		c = o.Ev.Objective(o.xphys, o.ce, e0, emin, penal)
		o.Ev.Gradients(o.dc, o.dv, o.xphys, o.ce, e0, emin, penal)
		o.Track.StopPhase("sensitivity")

		// filter sensitivities and cut the update signal inside obstacles
		o.Track.StartPhase("filter")
		o.Flt.Weight(o.dcw, o.dc, o.scratch)
		o.Flt.Weight(o.dvw, o.dv, o.scratch)
		for e, masked := range o.Mask {
			if masked {
				o.dcw[e] = 0
				o.dvw[e] = 0
			}
		}
		o.Track.StopPhase("filter")

		// density update (double buffered: read old, write new, swap)
		o.Track.StartPhase("update")
		change, vol = o.Oc.Update(o.xnew, o.xphysnew, o.x, o.dcw, o.dvw)
		o.x, o.xnew = o.xnew, o.x
		o.xphys, o.xphysnew = o.xphysnew, o.xphys
		o.Track.StopPhase("update")

		// bookkeeping
		Δc := c - cprev
		if loop == 1 {
			Δc = 0
		}
		cprev = c
		res.ObjHist = append(res.ObjHist, c)
		res.VolHist = append(res.VolHist, vol)
		res.ChangeHist = append(res.ChangeHist, change)
		o.Log.Infof("It.:%5d Obj.:%11.4f ΔObj.:%11.4f Vol.:%7.3f ch.:%7.3f t:%8.3fs", loop, c, Δc, vol, change, time.Since(t0).Seconds())
		if o.Progress != nil {
			o.Progress(loop, c, change, vol)
		}
		done := change <= tolx || loop >= maxloop
		if o.Sim.Out.History && (loop%o.Sim.Out.HisEvery == 0 || done) {
			res.History = append(res.History, &Frame{It: loop, Obj: c, Change: change, Vol: vol, Density: o.DensityField()})
		}

		// convergence control
		if change <= tolx {
			res.Converged = true
			break
		}
		if loop >= maxloop {
			o.Log.Warnf("maximum number of iterations (%d) reached before convergence (change=%g > tolx=%g)", maxloop, change, tolx)
			break
		}
	}

	// results
	res.Iterations = loop
	res.Objective = c
	res.Change = change
	res.Volume = vol
	res.Density = o.DensityField()
	return
}

// DensityField returns a deep copy of the current physical densities
func (o *Optimizer) DensityField() (fld *Field) {
	fld = NewField(o.Grid.Nelx, o.Grid.Nely, o.Grid.Nelz)
	copy(fld.Data, o.xphys)
	return
}
