// Copyright 2020 The Gotop Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package out implements the results manager: density fields, history frames,
// run summaries, benchmark reports, triangulated surfaces and convergence
// plots are written to a per-experiment directory under DirOut
package out

import (
	"bytes"
	"encoding/gob"
	"encoding/json"
	goio "io"
	"os"
	"path"
	"strings"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gotop/bench"
	"github.com/cpmech/gotop/inp"
	"github.com/cpmech/gotop/topo"
)

// Encoder defines encoders; e.g. gob or json
type Encoder interface {
	Encode(e interface{}) error
}

// Decoder defines decoders; e.g. gob or json
type Decoder interface {
	Decode(e interface{}) error
}

// GetEncoder returns a new encoder
func GetEncoder(w goio.Writer, enctype string) Encoder {
	if enctype == "json" {
		return json.NewEncoder(w)
	}
	return gob.NewEncoder(w)
}

// GetDecoder returns a new decoder
func GetDecoder(r goio.Reader, enctype string) Decoder {
	if enctype == "json" {
		return json.NewDecoder(r)
	}
	return gob.NewDecoder(r)
}

// RunSummary collects the facts of one finished run
type RunSummary struct {
	Key        string  `json:"key"`
	Desc       string  `json:"desc"`
	Nelx       int     `json:"nelx"`
	Nely       int     `json:"nely"`
	Nelz       int     `json:"nelz"`
	VolFrac    float64 `json:"volfrac"`
	Penal      float64 `json:"penal"`
	Rmin       float64 `json:"rmin"`
	Solver     string  `json:"solver"`
	Iterations int     `json:"iterations"`
	Converged  bool    `json:"converged"`
	Objective  float64 `json:"objective"`
	Volume     float64 `json:"volume"`
	Change     float64 `json:"change"`
}

// Manager organizes the output files of one experiment. Files are collected
// in DirRes = DirOut/<key> where the experiment key combines the simulation
// filename key with the grid dimensions; e.g. beam01_60x20x4.
type Manager struct {
	Sim     *inp.Simulation // read-only access to input data
	Key     string          // experiment key
	DirRes  string          // results directory
	Verbose bool            // show messages when files are written
}

// NewManager creates the results directory and returns a new manager
func NewManager(sim *inp.Simulation, verbose bool) (o *Manager, err error) {
	o = new(Manager)
	o.Sim = sim
	o.Key = io.Sf("%s_%dx%dx%d", sim.Key, sim.Grid.Nelx, sim.Grid.Nely, sim.Grid.Nelz)
	o.DirRes = path.Join(sim.DirOut, o.Key)
	o.Verbose = verbose
	err = os.MkdirAll(o.DirRes, 0777)
	if err != nil {
		return nil, chk.Err("cannot create results directory %q:\n%v", o.DirRes, err)
	}
	return
}

// SaveDensity saves the final (or an intermediate) density field using the
// encoder selected in the input file. Returns the path of the written file.
func (o *Manager) SaveDensity(fld *topo.Field) (fn string, err error) {
	var buf bytes.Buffer
	enc := GetEncoder(&buf, o.Sim.EncType)
	err = enc.Encode(fld)
	if err != nil {
		return "", chk.Err("cannot encode density field\n%v", err)
	}
	fn = o.densPath()
	return fn, saveFile(fn, &buf, o.Verbose)
}

// LoadDensity reads a density field saved by SaveDensity
func (o *Manager) LoadDensity() (fld *topo.Field, err error) {
	return ReadField(o.densPath())
}

// SaveHistory saves the recorded iteration frames. The history is always
// JSON-encoded since it is meant for post-processing by other tools.
func (o *Manager) SaveHistory(frames []*topo.Frame) (fn string, err error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	err = enc.Encode(frames)
	if err != nil {
		return "", chk.Err("cannot encode history frames\n%v", err)
	}
	fn = path.Join(o.DirRes, io.Sf("%s_hist.json", o.Key))
	return fn, saveFile(fn, &buf, o.Verbose)
}

// SaveSummary saves the facts of a finished run
func (o *Manager) SaveSummary(res *topo.Result) (fn string, err error) {
	sum := RunSummary{
		Key:        o.Key,
		Desc:       o.Sim.Data.Desc,
		Nelx:       o.Sim.Grid.Nelx,
		Nely:       o.Sim.Grid.Nely,
		Nelz:       o.Sim.Grid.Nelz,
		VolFrac:    o.Sim.Opt.VolFrac,
		Penal:      o.Sim.Opt.Penal,
		Rmin:       o.Sim.Opt.Rmin,
		Solver:     o.Sim.LinSol.Name,
		Iterations: res.Iterations,
		Converged:  res.Converged,
		Objective:  res.Objective,
		Volume:     res.Volume,
		Change:     res.Change,
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	err = enc.Encode(&sum)
	if err != nil {
		return "", chk.Err("cannot encode run summary\n%v", err)
	}
	fn = path.Join(o.DirRes, io.Sf("%s_sum.json", o.Key))
	return fn, saveFile(fn, &buf, o.Verbose)
}

// SaveBench saves the benchmark report
func (o *Manager) SaveBench(sum *bench.Summary) (fn string, err error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	err = enc.Encode(sum)
	if err != nil {
		return "", chk.Err("cannot encode benchmark summary\n%v", err)
	}
	fn = path.Join(o.DirRes, io.Sf("%s_bench.json", o.Key))
	return fn, saveFile(fn, &buf, o.Verbose)
}

// SaveConfig saves a copy of the effective simulation data, with all the
// defaults filled in, next to the results it produced
func (o *Manager) SaveConfig() (fn string, err error) {
	var buf bytes.Buffer
	err = o.Sim.GetInfo(&buf)
	if err != nil {
		return "", chk.Err("cannot encode simulation data\n%v", err)
	}
	fn = path.Join(o.DirRes, io.Sf("%s_conf.json", o.Key))
	return fn, saveFile(fn, &buf, o.Verbose)
}

// ReadField reads a density field from a file written by SaveDensity. The
// encoder type is taken from the filename extension.
func ReadField(filename string) (fld *topo.Field, err error) {
	fil, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer fil.Close()
	enctype := strings.TrimPrefix(path.Ext(filename), ".")
	dec := GetDecoder(fil, enctype)
	fld = new(topo.Field)
	err = dec.Decode(fld)
	if err != nil {
		return nil, chk.Err("cannot decode density field from %q:\n%v", filename, err)
	}
	if len(fld.Data) != fld.Nelx*fld.Nely*fld.Nelz {
		return nil, chk.Err("corrupt density field in %q: %d values for %dx%dx%d grid",
			filename, len(fld.Data), fld.Nelx, fld.Nely, fld.Nelz)
	}
	return
}

// auxiliary ///////////////////////////////////////////////////////////////////////////////////////

func (o *Manager) densPath() string {
	return path.Join(o.DirRes, io.Sf("%s_dens.%s", o.Key, o.Sim.EncType))
}

func saveFile(filename string, buf *bytes.Buffer, verbose bool) (err error) {
	fil, err := os.Create(filename)
	if err != nil {
		return
	}
	defer func() {
		if cerr := fil.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	_, err = fil.Write(buf.Bytes())
	if verbose {
		io.Pfblue2("file <%s> written\n", filename)
	}
	return
}
