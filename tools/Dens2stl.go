// Copyright 2020 The Gotop Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build ignore

// Dens2stl converts a saved density field into a binary STL surface.
//
//	go run Dens2stl.go dens.gob [level] [smooth] [output]
package main

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gotop/out"
)

func main() {

	// catch errors
	defer func() {
		if err := recover(); err != nil {
			io.PfRed("ERROR: %v\n", err)
		}
	}()

	// input data
	densfn := io.ArgToString(0, "dens.gob")
	level := io.ArgToFloat(1, 0.5)
	smooth := io.ArgToInt(2, 5)
	stlfn := io.ArgToString(3, io.FnKey(densfn)+".stl")
	io.Pf("\n%v\n", io.ArgsTable("INPUT ARGUMENTS",
		"density filename", "densfn", densfn,
		"iso level", "level", level,
		"smoothing passes", "smooth", smooth,
		"output filename", "stlfn", stlfn,
	))

	// read field
	fld, err := out.ReadField(densfn)
	if err != nil {
		chk.Panic("cannot read density field:\n%v", err)
	}
	io.Pf("grid           = %d x %d x %d\n", fld.Nelx, fld.Nely, fld.Nelz)
	io.Pf("mean density   = %g\n", fld.Mean())

	// extract surface
	msh := out.Isosurface(fld, level)
	if len(msh.T) == 0 {
		chk.Panic("no cells with density >= %g; nothing to export", level)
	}
	msh.Smooth(smooth)
	io.Pf("vertices       = %d\n", len(msh.V))
	io.Pf("triangles      = %d\n", len(msh.T))

	// write stl file
	if err := msh.WriteSTL(stlfn); err != nil {
		chk.Panic("cannot write stl file:\n%v", err)
	}
	io.Pfblue2("file <%s> written\n", stlfn)
}
