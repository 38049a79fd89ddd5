// Copyright 2020 The Gotop Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"os"
	"time"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gotop/bench"
	"github.com/cpmech/gotop/inp"
	"github.com/cpmech/gotop/out"
	"github.com/cpmech/gotop/topo"
)

func main() {

	// catch errors
	defer func() {
		if err := recover(); err != nil {
			chk.Verbose = true
			for i := 8; i > 3; i-- {
				chk.CallerInfo(i)
			}
			io.PfRed("ERROR: %v\n", err)
		}
	}()

	// read input parameters
	simfn, _ := io.ArgToFilename(0, "examples/beam01", ".top", true)
	verbose := io.ArgToBool(1, true)
	erasePrev := io.ArgToBool(2, true)

	// message
	if verbose {
		io.PfWhite("\nGotop -- 3D Topology Optimization\n\n")
		io.Pf("Copyright 2020 The Gotop Authors. All rights reserved.\n")
		io.Pf("Use of this source code is governed by a BSD-style\n")
		io.Pf("license that can be found in the LICENSE file.\n\n")

		io.Pf("\n%v\n", io.ArgsTable("INPUT ARGUMENTS",
			"simulation filename", "simfn", simfn,
			"show messages", "verbose", verbose,
			"erase previous results", "erasePrev", erasePrev,
		))
	}

	// simulation data
	sim := inp.ReadSim(simfn, erasePrev)
	if sim.Data.Debug {
		sim.GetInfo(os.Stdout)
		io.Pf("\n")
	}

	// benchmark tracker
	var trk *bench.Tracker
	if sim.Out.Bench {
		trk = bench.NewTracker()
		trk.StartPhase("setup")
	}

	// optimizer
	opt, err := topo.New(sim, sim.Mask())
	if err != nil {
		chk.Panic("cannot allocate optimizer:\n%v", err)
	}
	if !verbose {
		opt.Log = &topo.NopLogger{}
	}
	if trk != nil {
		opt.Track = trk
		trk.StopPhase("setup")
	}

	// run optimization
	cputime := time.Now()
	res, err := opt.Run()
	if err != nil {
		chk.Panic("optimization failed:\n%v", err)
	}

	// save results
	man, err := out.NewManager(sim, verbose)
	if err != nil {
		chk.Panic("cannot create results manager:\n%v", err)
	}
	if _, err = man.SaveConfig(); err != nil {
		chk.Panic("cannot save simulation data:\n%v", err)
	}
	if _, err = man.SaveDensity(res.Density); err != nil {
		chk.Panic("cannot save density field:\n%v", err)
	}
	if _, err = man.SaveSummary(res); err != nil {
		chk.Panic("cannot save run summary:\n%v", err)
	}
	if sim.Out.History {
		if _, err = man.SaveHistory(res.History); err != nil {
			chk.Panic("cannot save history:\n%v", err)
		}
	}
	if sim.Out.Stl {
		if _, err = man.ExportSTL(res.Density); err != nil {
			io.Pfyel("surface export skipped: %v\n", err)
		}
	}
	if sim.Out.Plot {
		if _, err = man.SaveConvergence(res); err != nil {
			io.Pfyel("convergence plot skipped: %v\n", err)
		}
	}

	// benchmark report
	if trk != nil {
		trk.Finalize()
		sum := trk.Summary()
		if _, err = man.SaveBench(sum); err != nil {
			chk.Panic("cannot save benchmark report:\n%v", err)
		}
		if verbose {
			io.Pf("\n")
			for _, p := range sum.Phases {
				io.Pf("%12s : %10.3f s (%5.1f%%) in %d calls\n", p.Name, p.Seconds, p.Percent, p.Count)
			}
			io.Pf("%12s : %10.1f MB\n", "peak memory", sum.PeakMemMB)
		}
	}

	// message
	if verbose {
		nsolid := 0
		for _, v := range res.Density.Data {
			if v >= sim.Out.DispThres {
				nsolid++
			}
		}
		io.Pf("\nfinal compliance = %v\n", res.Objective)
		io.Pf("final volume     = %v\n", res.Volume)
		io.Pf("solid cells      = %v of %v (density ≥ %g)\n", nsolid, len(res.Density.Data), sim.Out.DispThres)
		io.Pf("iterations       = %v (converged = %v)\n", res.Iterations, res.Converged)
		io.Pflmag("cpu time         = %v\n", time.Now().Sub(cputime))
	}
}
