// Copyright 2020 The Gotop Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package topo implements topology optimization of 3D solid structures using
// the SIMP method (Solid Isotropic Material with Penalization)
package topo

import (
	"math"

	"github.com/cpmech/gosl/la"
)

// natural coordinates of the 8 corners of the hexahedron
var hexNatCoords = [8][3]float64{
	{-1, -1, -1}, {1, -1, -1}, {1, 1, -1}, {-1, 1, -1},
	{-1, -1, 1}, {1, -1, 1}, {1, 1, 1}, {-1, 1, 1},
}

// ElemStiffness computes the 24x24 stiffness matrix of the 8-node trilinear
// hexahedral element with unit edge lengths and unit Young's modulus.
// The local DOF ordering is (ux,uy,uz) per corner, corners numbered
// counter-clockwise on the bottom face first, then on the top face; this is
// the same ordering used by Grid when building the connectivity table.
//  Input:
//   nu -- Poisson's ratio
func ElemStiffness(nu float64) (ke *la.Matrix) {

	// elastic matrix
	dd := elasticD(nu)

	// integration: 2×2×2 Gauss points, weights equal to one
	ke = la.NewMatrix(24, 24)
	bb := la.NewMatrix(6, 24)
	db := la.NewMatrix(6, 24)
	gp := 1.0 / math.Sqrt(3.0)
	detJ := 1.0 / 8.0 // Jacobian determinant of the unit cube mapping
	for _, t := range []float64{-gp, gp} {
		for _, s := range []float64{-gp, gp} {
			for _, r := range []float64{-gp, gp} {

				// strain-displacement matrix at integration point
				calcB(bb, r, s, t)

				// db := D⋅B
				for i := 0; i < 6; i++ {
					for j := 0; j < 24; j++ {
						v := 0.0
						for k := 0; k < 6; k++ {
							v += dd.Get(i, k) * bb.Get(k, j)
						}
						db.Set(i, j, v)
					}
				}

				// ke += Bᵀ⋅D⋅B ⋅ detJ
				for i := 0; i < 24; i++ {
					for j := 0; j < 24; j++ {
						v := 0.0
						for k := 0; k < 6; k++ {
							v += bb.Get(k, i) * db.Get(k, j)
						}
						ke.Set(i, j, ke.Get(i, j)+v*detJ)
					}
				}
			}
		}
	}
	return
}

// elasticD returns the 6x6 isotropic linear-elastic matrix with E = 1.
// Voigt ordering: εxx, εyy, εzz, γxy, γyz, γzx
func elasticD(nu float64) (dd *la.Matrix) {
	dd = la.NewMatrix(6, 6)
	cf := 1.0 / ((1.0 + nu) * (1.0 - 2.0*nu))
	dg := cf * (1.0 - nu)       // diagonal normal terms
	od := cf * nu               // off-diagonal normal terms
	sh := cf * (1.0 - 2.0*nu) / 2.0 // shear terms
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if i == j {
				dd.Set(i, j, dg)
			} else {
				dd.Set(i, j, od)
			}
		}
		dd.Set(3+i, 3+i, sh)
	}
	return
}

// calcB computes the 6x24 strain-displacement matrix at natural coordinates
// (r,s,t) for the unit-cube element. Derivatives with respect to the physical
// coordinates carry the factor 2 from the half-unit mapping.
func calcB(bb *la.Matrix, r, s, t float64) {
	bb.Fill(0)
	for a := 0; a < 8; a++ {
		ra, sa, ta := hexNatCoords[a][0], hexNatCoords[a][1], hexNatCoords[a][2]
		dx := 2.0 * ra * (1.0 + s*sa) * (1.0 + t*ta) / 8.0
		dy := 2.0 * sa * (1.0 + r*ra) * (1.0 + t*ta) / 8.0
		dz := 2.0 * ta * (1.0 + r*ra) * (1.0 + s*sa) / 8.0
		c := 3 * a
		bb.Set(0, c+0, dx)
		bb.Set(1, c+1, dy)
		bb.Set(2, c+2, dz)
		bb.Set(3, c+0, dy)
		bb.Set(3, c+1, dx)
		bb.Set(4, c+1, dz)
		bb.Set(4, c+2, dy)
		bb.Set(5, c+0, dz)
		bb.Set(5, c+2, dx)
	}
}
