// Copyright 2020 The Gotop Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func Test_sim01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("sim01. full input file")

	sim := ReadSim("data/beam01.top", false)
	io.Pforan("sim.Key = %v\n", sim.Key)

	chk.String(tst, sim.Key, "beam01")
	chk.String(tst, sim.DirOut, "/tmp/gotop/test")
	chk.String(tst, sim.EncType, "json")
	chk.String(tst, sim.Data.Desc, "cantilever beam 8x4x2")

	chk.Int(tst, "nelx", sim.Grid.Nelx, 8)
	chk.Int(tst, "nely", sim.Grid.Nely, 4)
	chk.Int(tst, "nelz", sim.Grid.Nelz, 2)

	chk.Float64(tst, "volfrac", 1e-17, sim.Opt.VolFrac, 0.4)
	chk.Float64(tst, "penal", 1e-17, sim.Opt.Penal, 3.0)
	chk.Float64(tst, "rmin", 1e-17, sim.Opt.Rmin, 1.2)
	chk.Float64(tst, "tolx", 1e-17, sim.Opt.Tolx, 0.05)
	chk.Int(tst, "maxloop", sim.Opt.MaxLoop, 50)
	chk.Int(tst, "nproc", sim.Opt.Nproc, 2)

	// values absent from the file keep their defaults
	chk.Float64(tst, "e0", 1e-17, sim.Opt.E0, 1.0)
	chk.Float64(tst, "emin", 1e-24, sim.Opt.Emin, 1e-9)
	chk.Float64(tst, "nu", 1e-17, sim.Opt.Nu, 0.3)
	chk.Float64(tst, "move", 1e-17, sim.Opt.Move, 0.2)
	chk.Int(tst, "linsol maxit", sim.LinSol.MaxIt, 10000)

	chk.String(tst, sim.LinSol.Name, "cg")
	chk.Float64(tst, "linsol tol", 1e-24, sim.LinSol.Tol, 1e-9)

	if !sim.Out.History || !sim.Out.Stl || !sim.Out.Plot || !sim.Out.Bench {
		tst.Errorf("output flags were not read")
		return
	}
	chk.Int(tst, "hisevery", sim.Out.HisEvery, 5)
	chk.Float64(tst, "stllevel", 1e-17, sim.Out.StlLevel, 0.5)
	chk.Int(tst, "smoothits", sim.Out.SmoothIts, 5)

	// info dump is valid JSON
	var buf bytes.Buffer
	if err := sim.GetInfo(&buf); err != nil {
		tst.Errorf("GetInfo failed:\n%v", err)
		return
	}
	if !json.Valid(buf.Bytes()) {
		tst.Errorf("GetInfo must write valid JSON")
	}
}

func Test_sim02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("sim02. defaults of a minimal file")

	sim := ReadSim("data/minimal.top", false)

	chk.String(tst, sim.Key, "minimal")
	chk.String(tst, sim.DirOut, "/tmp/gotop/minimal")
	chk.String(tst, sim.EncType, "gob")

	chk.Int(tst, "nelx", sim.Grid.Nelx, 60)
	chk.Int(tst, "nely", sim.Grid.Nely, 30)
	chk.Int(tst, "nelz", sim.Grid.Nelz, 20)

	chk.Float64(tst, "volfrac", 1e-17, sim.Opt.VolFrac, 0.3)
	chk.Float64(tst, "penal", 1e-17, sim.Opt.Penal, 3.0)
	chk.Float64(tst, "rmin", 1e-17, sim.Opt.Rmin, 3.0)
	chk.Float64(tst, "tolx", 1e-17, sim.Opt.Tolx, 0.01)
	chk.Int(tst, "maxloop", sim.Opt.MaxLoop, 2000)
	chk.Int(tst, "nproc", sim.Opt.Nproc, 1)

	chk.String(tst, sim.LinSol.Name, "umfpack")
	chk.Int(tst, "hisevery", sim.Out.HisEvery, 10)

	// no obstacles: the mask is all false
	mask := sim.Mask()
	chk.Int(tst, "len(mask)", len(mask), 60*30*20)
	for e, m := range mask {
		if m {
			tst.Errorf("cell %d must not be masked without obstacles", e)
			return
		}
	}
}

func Test_sim03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("sim03. obstacles from an external file")

	sim := ReadSim("data/obstfile01.top", false)

	// one inline shape plus two from obst01.json
	chk.Int(tst, "number of shapes", len(sim.Obstacles.Shapes), 3)
	chk.String(tst, sim.Obstacles.Shapes[0].Kind, "sphere")
	chk.String(tst, sim.Obstacles.Shapes[1].Kind, "box")
	chk.String(tst, sim.Obstacles.Shapes[2].Kind, "cylinder")

	mask := sim.Mask()
	nmask := 0
	for _, m := range mask {
		if m {
			nmask++
		}
	}
	io.Pforan("masked cells = %v\n", nmask)
	if nmask == 0 {
		tst.Errorf("the obstacles must mask some cells")
	}
}
