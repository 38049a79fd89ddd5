// Copyright 2020 The Gotop Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build ignore

// DensInfo prints a report about a saved density field, including ascii
// pictures of every z-layer.
//
//	go run DensInfo.go dens.gob [level] [pictures]
package main

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gotop/out"
	"gonum.org/v1/gonum/floats"
)

// shades maps density to a character, from void to solid
var shades = []byte(" .:-=+*#%@")

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
	pictures := io.ArgToBool(2, true)
	io.Pf("\n%v\n", io.ArgsTable("INPUT ARGUMENTS",
		"density filename", "densfn", densfn,
		"iso level", "level", level,
		"print layer pictures", "pictures", pictures,
	))

	// read field
	fld, err := out.ReadField(densfn)
	if err != nil {
		chk.Panic("cannot read density field:\n%v", err)
	}

	// report
	nsolid := 0
	for _, v := range fld.Data {
		if v >= level {
			nsolid++
		}
	}
	nele := fld.Nelx * fld.Nely * fld.Nelz
	io.Pf("grid           = %d x %d x %d (%d cells)\n", fld.Nelx, fld.Nely, fld.Nelz, nele)
	io.Pf("mean density   = %g\n", fld.Mean())
	io.Pf("min density    = %g\n", floats.Min(fld.Data))
	io.Pf("max density    = %g\n", floats.Max(fld.Data))
	io.Pf("cells >= %4.2f  = %d (%.1f%%)\n", level, nsolid, 100*float64(nsolid)/float64(nele))
	if !pictures {
		return
	}

	// ascii pictures, one per layer, top row first
	for ez := 0; ez < fld.Nelz; ez++ {
		io.Pf("\nlayer ez = %d\n", ez)
		for ey := 0; ey < fld.Nely; ey++ {
			line := make([]byte, fld.Nelx)
			for ex := 0; ex < fld.Nelx; ex++ {
				idx := int(fld.At(ey, ex, ez) * float64(len(shades)))
				if idx < 0 {
					idx = 0
				}
				if idx >= len(shades) {
					idx = len(shades) - 1
				}
				line[ex] = shades[idx]
			}
			io.Pf("|%s|\n", line)
		}
	}
}
