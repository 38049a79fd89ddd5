// Copyright 2020 The Gotop Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package inp implements the input data read from a (.top) JSON file
package inp

import (
	"encoding/json"
	goio "io"
	"os"
	"path/filepath"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// Data holds global data for simulations
type Data struct {
	Desc    string `json:"desc"`    // description of simulation
	DirOut  string `json:"dirout"`  // directory for output; e.g. /tmp/gotop
	Encoder string `json:"encoder"` // encoder name; e.g. "gob" "json"
	Debug   bool   `json:"debug"`   // activate debugging messages
}

// GridData holds the dimensions of the design domain
type GridData struct {
	Nelx int `json:"nelx"` // number of elements along x
	Nely int `json:"nely"` // number of elements along y
	Nelz int `json:"nelz"` // number of elements along z
}

// OptData holds the SIMP optimization parameters
type OptData struct {
	VolFrac float64 `json:"volfrac"` // target volume fraction
	Penal   float64 `json:"penal"`   // SIMP penalization exponent
	Rmin    float64 `json:"rmin"`    // filter radius in voxel units
	Tolx    float64 `json:"tolx"`    // convergence tolerance on the design change
	MaxLoop int     `json:"maxloop"` // maximum number of iterations
	E0      float64 `json:"e0"`      // Young's modulus of solid material
	Emin    float64 `json:"emin"`    // Young's modulus of void material
	Nu      float64 `json:"nu"`      // Poisson's ratio
	Move    float64 `json:"move"`    // move limit of the density update
	Nproc   int     `json:"nproc"`   // number of goroutines for element loops
}

// LinSolData holds data for linear solvers
type LinSolData struct {
	Name    string  `json:"name"`    // "umfpack" or "cg"
	Tol     float64 `json:"tol"`     // iterative solver tolerance
	MaxIt   int     `json:"maxit"`   // iterative solver iteration cap
	Verbose bool    `json:"verbose"` // verbose?
}

// OutData holds the output options
type OutData struct {
	History   bool    `json:"history"`   // capture density snapshots during the run
	HisEvery  int     `json:"hisevery"`  // iterations between snapshots
	Stl       bool    `json:"stl"`       // export an STL surface of the result
	StlLevel  float64 `json:"stllevel"`  // iso-level of the STL surface
	SmoothIts int     `json:"smoothits"` // smoothing passes of the STL surface
	DispThres float64 `json:"dispthres"` // density threshold when reporting solid cells
	Plot      bool    `json:"plot"`      // write a convergence chart
	Bench     bool    `json:"bench"`     // collect per-phase benchmark data
}

// Simulation holds all simulation data
type Simulation struct {

	// input
	Data      Data        `json:"data"`      // global data
	Grid      GridData    `json:"grid"`      // design domain dimensions
	Opt       OptData     `json:"opt"`       // optimization parameters
	LinSol    LinSolData  `json:"linsol"`    // linear solver data
	Obstacles ObstacleSet `json:"obstacles"` // obstacle geometry
	Out       OutData     `json:"out"`       // output options

	// derived
	DirOut  string // directory to save results
	Key     string // simulation key; e.g. mysim01.top => mysim01
	EncType string // encoder type
}

// Simulation //////////////////////////////////////////////////////////////////////////////////////

// ReadSim reads all simulation data from a .top JSON file
func ReadSim(simfilepath string, erasePrev bool) *Simulation {

	// new sim
	var o Simulation

	// read file
	b, err := os.ReadFile(simfilepath)
	if err != nil {
		chk.Panic("ReadSim: cannot read simulation file %q", simfilepath)
	}

	// set default values
	o.Grid.SetDefault()
	o.Opt.SetDefault()
	o.LinSol.SetDefault()
	o.Out.SetDefault()

	// decode
	err = json.Unmarshal(b, &o)
	if err != nil {
		chk.Panic("ReadSim: cannot unmarshal simulation file %q", simfilepath)
	}

	// input directory and filename key
	dir := filepath.Dir(simfilepath)
	fn := filepath.Base(simfilepath)
	dir = os.ExpandEnv(dir)
	fnkey := io.FnKey(fn)
	o.Key = fnkey

	// output directory
	o.DirOut = o.Data.DirOut
	if o.DirOut == "" {
		o.DirOut = "/tmp/gotop/" + fnkey
	}

	// encoder type
	o.EncType = o.Data.Encoder
	if o.EncType != "gob" && o.EncType != "json" {
		o.EncType = "gob"
	}

	// create directory and erase previous simulation results
	if erasePrev {
		err = os.MkdirAll(o.DirOut, 0777)
		if err != nil {
			chk.Panic("cannot create directory for output results (%s): %v", o.DirOut, err)
		}
		io.RemoveAll(io.Sf("%s/%s*", o.DirOut, fnkey))
	}

	// fix degenerate values
	o.Opt.PostProcess()
	o.Out.PostProcess()

	// obstacles given in an external file
	if o.Obstacles.File != "" {
		o.Obstacles.ReadExtraShapes(dir)
	}
	for _, shape := range o.Obstacles.Shapes {
		shape.Check()
	}

	// results
	return &o
}

// GetInfo returns formatted information
func (o *Simulation) GetInfo(w goio.Writer) (err error) {
	b, err := json.MarshalIndent(o, "", "  ")
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return
}

// Mask builds the obstacle mask for the grid defined in this simulation
func (o *Simulation) Mask() []bool {
	return o.Obstacles.Mask(o.Grid.Nelx, o.Grid.Nely, o.Grid.Nelz)
}

// extra settings //////////////////////////////////////////////////////////////////////////////////

// SetDefault sets default values
func (o *GridData) SetDefault() {
	o.Nelx = 60
	o.Nely = 30
	o.Nelz = 20
}

// SetDefault sets default values
func (o *OptData) SetDefault() {
	o.VolFrac = 0.3
	o.Penal = 3.0
	o.Rmin = 3.0
	o.Tolx = 0.01
	o.MaxLoop = 2000
	o.E0 = 1.0
	o.Emin = 1e-9
	o.Nu = 0.3
	o.Move = 0.2
	o.Nproc = 1
}

// SetDefault sets default values
func (o *LinSolData) SetDefault() {
	o.Name = "umfpack"
	o.Tol = 1e-8
	o.MaxIt = 10000
}

// SetDefault sets default values
func (o *OutData) SetDefault() {
	o.HisEvery = 10
	o.StlLevel = 0.5
	o.SmoothIts = 5
	o.DispThres = 0.5
}

// PostProcess fixes degenerate values after reading the json file
func (o *OptData) PostProcess() {
	if o.Nproc < 1 {
		o.Nproc = 1
	}
}

// PostProcess fixes degenerate values after reading the json file
func (o *OutData) PostProcess() {
	if o.HisEvery < 1 {
		o.HisEvery = 1
	}
	if o.SmoothIts < 0 {
		o.SmoothIts = 0
	}
}
