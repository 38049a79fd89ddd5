// Copyright 2020 The Gotop Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/cpmech/gosl/chk"
)

// Shape defines one obstacle region in normalized domain coordinates: every
// coordinate lies in [0,1] with x pointing right, y up and z outward. A cell
// is masked when its center lies inside the shape.
type Shape struct {
	Kind   string    `json:"kind"`   // "box", "sphere" or "cylinder"
	Center []float64 `json:"center"` // [3] center of the shape
	Size   []float64 `json:"size"`   // [3] box side lengths
	Radius float64   `json:"radius"` // sphere/cylinder radius
	Height float64   `json:"height"` // cylinder height along axis
	Axis   string    `json:"axis"`   // cylinder axis: "x", "y" or "z"
}

// ObstacleSet holds the obstacle geometry definitions of one simulation
type ObstacleSet struct {
	File   string   `json:"file"`   // extra obstacles file; JSON with {"obstacles":[...]}
	Shapes []*Shape `json:"shapes"` // inline obstacle definitions
}

// obstaclesFile is the layout of an external obstacles JSON file
type obstaclesFile struct {
	Obstacles []*Shape `json:"obstacles"`
}

// ObstacleSet //////////////////////////////////////////////////////////////////////////////////////

// ReadExtraShapes appends the shapes defined in the external obstacles file,
// resolved relative to dir
func (o *ObstacleSet) ReadExtraShapes(dir string) {
	fn := o.File
	if !filepath.IsAbs(fn) {
		fn = filepath.Join(dir, fn)
	}
	b, err := io.ReadFile(fn)
	if err != nil {
		chk.Panic("obstacles: cannot read file %q", fn)
	}
	var extra obstaclesFile
	err = json.Unmarshal(b, &extra)
	if err != nil {
		chk.Panic("obstacles: cannot unmarshal file %q", fn)
	}
	o.Shapes = append(o.Shapes, extra.Obstacles...)
}

// Mask builds the obstacle mask for a nelx×nely×nelz grid: one flag per
// element in the global ordering (row first, then column, then layer), true
// marking cells excluded from the design
func (o *ObstacleSet) Mask(nelx, nely, nelz int) (mask []bool) {
	mask = make([]bool, nelx*nely*nelz)
	if len(o.Shapes) == 0 {
		return
	}
	for ez := 0; ez < nelz; ez++ {
		for ex := 0; ex < nelx; ex++ {
			for ey := 0; ey < nely; ey++ {
				x := (float64(ex) + 0.5) / float64(nelx)
				y := (float64(nely-1-ey) + 0.5) / float64(nely) // row counts downward
				z := (float64(ez) + 0.5) / float64(nelz)
				e := ey + ex*nely + ez*nelx*nely
				for _, shape := range o.Shapes {
					if shape.contains(x, y, z) {
						mask[e] = true
						break
					}
				}
			}
		}
	}
	return
}

// Shape ///////////////////////////////////////////////////////////////////////////////////////////

// Check panics if the shape definition is invalid
func (o *Shape) Check() {
	if len(o.Center) != 3 {
		chk.Panic("obstacle shape: center must have 3 components. %v is invalid", o.Center)
	}
	switch o.Kind {
	case "box":
		if len(o.Size) != 3 {
			chk.Panic("obstacle box: size must have 3 components. %v is invalid", o.Size)
		}
		for _, s := range o.Size {
			if s <= 0 {
				chk.Panic("obstacle box: side lengths must be positive. %v is invalid", o.Size)
			}
		}
	case "sphere":
		if o.Radius <= 0 {
			chk.Panic("obstacle sphere: radius must be positive. %g is invalid", o.Radius)
		}
	case "cylinder":
		if o.Radius <= 0 || o.Height <= 0 {
			chk.Panic("obstacle cylinder: radius and height must be positive. r=%g h=%g is invalid", o.Radius, o.Height)
		}
		if o.Axis != "x" && o.Axis != "y" && o.Axis != "z" {
			chk.Panic("obstacle cylinder: axis must be \"x\", \"y\" or \"z\". %q is invalid", o.Axis)
		}
	default:
		chk.Panic("obstacle shape: unknown kind %q", o.Kind)
	}
}

// contains tells whether the normalized point (x,y,z) lies inside the shape
func (o *Shape) contains(x, y, z float64) bool {
	dx := x - o.Center[0]
	dy := y - o.Center[1]
	dz := z - o.Center[2]
	switch o.Kind {
	case "box":
		return abs(dx) <= o.Size[0]/2 && abs(dy) <= o.Size[1]/2 && abs(dz) <= o.Size[2]/2
	case "sphere":
		return dx*dx+dy*dy+dz*dz <= o.Radius*o.Radius
	case "cylinder":
		r2 := o.Radius * o.Radius
		switch o.Axis {
		case "x":
			return dy*dy+dz*dz <= r2 && abs(dx) <= o.Height/2
		case "y":
			return dx*dx+dz*dz <= r2 && abs(dy) <= o.Height/2
		case "z":
			return dx*dx+dy*dy <= r2 && abs(dz) <= o.Height/2
		}
	}
	return false
}

// auxiliary ///////////////////////////////////////////////////////////////////////////////////////

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
