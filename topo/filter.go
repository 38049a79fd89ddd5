// Copyright 2020 The Gotop Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package topo

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
)

// Filter implements the radius-limited linear density/sensitivity filter.
// The weight between two elements closer than rmin (in voxel units) is
// rmin minus their Euclidean distance; H collects all weights and Hs the
// row sums. Both are immutable after construction and safe for concurrent
// readers.
type Filter struct {
	Rmin float64      // filter radius
	H    *la.CCMatrix // [nele][nele] sparse weight matrix
	Hs   la.Vector    // [nele] row sums of H
	nele int
}

// NewFilter builds the weight matrix by enumerating, for each element, the
// neighbors within a bounding box of half-width ceil(rmin)-1
func NewFilter(g *Grid, rmin float64) (o *Filter, err error) {

	// check
	if rmin <= 0 {
		err = chk.Err("filter radius must be positive. rmin=%g is invalid", rmin)
		return
	}

	// estimate the number of nonzeros
	o = new(Filter)
	o.Rmin = rmin
	o.nele = g.Nele
	br := int(math.Ceil(rmin)) - 1
	bw := 2*br + 1
	tt := la.NewTriplet(g.Nele, g.Nele, g.Nele*bw*bw*bw)

	// weights
	o.Hs = la.NewVector(g.Nele)
	for ez := 0; ez < g.Nelz; ez++ {
		for ex := 0; ex < g.Nelx; ex++ {
			for ey := 0; ey < g.Nely; ey++ {
				e1 := g.EleID(ey, ex, ez)
				for jz := imax(ez-br, 0); jz <= imin(ez+br, g.Nelz-1); jz++ {
					for jx := imax(ex-br, 0); jx <= imin(ex+br, g.Nelx-1); jx++ {
						for jy := imax(ey-br, 0); jy <= imin(ey+br, g.Nely-1); jy++ {
							dx := float64(ex - jx)
							dy := float64(ey - jy)
							dz := float64(ez - jz)
							w := rmin - math.Sqrt(dx*dx+dy*dy+dz*dz)
							if w > 0 {
								tt.Put(e1, g.EleID(jy, jx, jz), w)
								o.Hs[e1] += w
							}
						}
					}
				}
			}
		}
	}
	o.H = tt.ToMatrix(nil)
	return
}

// Apply computes the density form of the filter
//  res := (H ⋅ v) / Hs
// res must not alias v
func (o *Filter) Apply(res, v la.Vector) {
	la.SpMatVecMul(res, 1, o.H, v)
	for i := 0; i < o.nele; i++ {
		res[i] /= o.Hs[i]
	}
}

// Weight computes the sensitivity form of the filter
//  res := H ⋅ (v / Hs)
// scratch is a work vector; res must alias neither v nor scratch
func (o *Filter) Weight(res, v, scratch la.Vector) {
	for i := 0; i < o.nele; i++ {
		scratch[i] = v[i] / o.Hs[i]
	}
	la.SpMatVecMul(res, 1, o.H, scratch)
}

// auxiliary ///////////////////////////////////////////////////////////////////////////////////////

func imin(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func imax(a, b int) int {
	if a > b {
		return a
	}
	return b
}
