// Copyright 2020 The Gotop Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func Test_obst01(tst *testing.T) {

	/*  centered box of half the domain on a 4x4x4 grid: cell centers at
	 *  0.125, 0.375, 0.625, 0.875 per axis; the box [0.25,0.75]³ holds the
	 *  middle two per axis => 2x2x2 = 8 cells
	 */

	//verbose()
	chk.PrintTitle("obst01. centered box")

	set := ObstacleSet{Shapes: []*Shape{
		{Kind: "box", Center: []float64{0.5, 0.5, 0.5}, Size: []float64{0.5, 0.5, 0.5}},
	}}
	set.Shapes[0].Check()

	mask := set.Mask(4, 4, 4)
	var masked []int
	for e, m := range mask {
		if m {
			masked = append(masked, e)
		}
	}
	io.Pforan("masked = %v\n", masked)
	chk.Int(tst, "masked cells", len(masked), 8)

	// y grows against the row index: rows 1 and 2 hold centers 0.625, 0.375
	var correct []int
	for _, ez := range []int{1, 2} {
		for _, ex := range []int{1, 2} {
			for _, ey := range []int{1, 2} {
				correct = append(correct, ey+ex*4+ez*16)
			}
		}
	}
	chk.Ints(tst, "masked ids", masked, correct)
}

func Test_obst02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("obst02. sphere at the domain origin")

	set := ObstacleSet{Shapes: []*Shape{
		{Kind: "sphere", Center: []float64{0, 0, 0}, Radius: 0.3},
	}}
	set.Shapes[0].Check()

	// only the origin cell center (0.125,0.125,0.125) is within 0.3; its row
	// is the bottom one (ey=3)
	mask := set.Mask(4, 4, 4)
	var masked []int
	for e, m := range mask {
		if m {
			masked = append(masked, e)
		}
	}
	chk.Ints(tst, "masked ids", masked, []int{3})
}

func Test_obst03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("obst03. cylinder along z")

	set := ObstacleSet{Shapes: []*Shape{
		{Kind: "cylinder", Center: []float64{0.5, 0.5, 0.5}, Radius: 0.3, Height: 1.0, Axis: "z"},
	}}
	set.Shapes[0].Check()

	// per layer the 2x2 center block is inside (0.125² + 0.125² < 0.09,
	// 0.375² + 0.125² > 0.09); the height spans all layers
	mask := set.Mask(4, 4, 4)
	nmask := 0
	for _, m := range mask {
		if m {
			nmask++
		}
	}
	io.Pforan("masked cells = %v\n", nmask)
	chk.Int(tst, "masked cells", nmask, 16)

	// layer count is uniform
	for ez := 0; ez < 4; ez++ {
		n := 0
		for e := 16 * ez; e < 16*(ez+1); e++ {
			if mask[e] {
				n++
			}
		}
		chk.Int(tst, io.Sf("masked cells in layer %d", ez), n, 4)
	}
}

func Test_obst04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("obst04. invalid shapes panic")

	shouldPanic := func(msg string, shape *Shape) {
		defer func() {
			if r := recover(); r == nil {
				tst.Errorf("%s must panic", msg)
			} else {
				io.Pfgrey("%s: %v\n", msg, r)
			}
		}()
		shape.Check()
	}

	shouldPanic("unknown kind", &Shape{Kind: "torus", Center: []float64{0, 0, 0}})
	shouldPanic("short center", &Shape{Kind: "box", Center: []float64{0, 0}, Size: []float64{1, 1, 1}})
	shouldPanic("negative side", &Shape{Kind: "box", Center: []float64{0, 0, 0}, Size: []float64{1, -1, 1}})
	shouldPanic("zero radius", &Shape{Kind: "sphere", Center: []float64{0, 0, 0}})
	shouldPanic("bad axis", &Shape{Kind: "cylinder", Center: []float64{0, 0, 0}, Radius: 1, Height: 1, Axis: "w"})
}
