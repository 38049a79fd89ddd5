// Copyright 2020 The Gotop Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package topo

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
	"github.com/cpmech/gotop/inp"
)

// LinSolver defines the interface for solvers of the reduced linear system.
// Implementations must detect singular or ill-conditioned systems and return
// an error instead of a garbage solution.
type LinSolver interface {
	Name() string
	Solve(x la.Vector, kk *la.Triplet, b la.Vector) error
}

// JacobiPrec is implemented by solvers accepting a diagonal preconditioner;
// the assembler provides the diagonal of the current matrix
type JacobiPrec interface {
	SetDiag(d la.Vector)
}

// solverAllocators holds all available solvers
var solverAllocators = make(map[string]func(dat *inp.LinSolData) LinSolver)

// NewLinSolver returns a sparse linear solver; e.g. "umfpack" or "cg"
func NewLinSolver(dat *inp.LinSolData) (LinSolver, error) {
	if alloc, ok := solverAllocators[dat.Name]; ok {
		return alloc(dat), nil
	}
	return nil, chk.Err("cannot find linear solver named %q", dat.Name)
}

// set factory of solvers
func init() {
	solverAllocators["umfpack"] = func(dat *inp.LinSolData) LinSolver {
		return &Umfpack{verbose: dat.Verbose}
	}
	solverAllocators["cg"] = func(dat *inp.LinSolData) LinSolver {
		return &ConjGrad{tol: dat.Tol, maxit: dat.MaxIt, verbose: dat.Verbose}
	}
}

// Umfpack ////////////////////////////////////////////////////////////////////////////////////////

// Umfpack solves the reduced system with the direct sparse solver from gosl
type Umfpack struct {
	verbose bool
}

// Name returns the name of this solver
func (o *Umfpack) Name() string { return "umfpack" }

// Solve solves kk⋅x = b
func (o *Umfpack) Solve(x la.Vector, kk *la.Triplet, b la.Vector) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = chk.Err("umfpack failed: %v", r)
		}
	}()
	u := la.SpSolve(kk, b)
	copy(x, u)
	return checkFinite(x)
}

// ConjGrad ///////////////////////////////////////////////////////////////////////////////////////

// ConjGrad solves the reduced system with the (Jacobi preconditioned)
// conjugate gradient method. The system must be symmetric positive-definite.
type ConjGrad struct {
	tol     float64   // tolerance on the relative residual norm
	maxit   int       // maximum number of iterations
	verbose bool      // show final residual
	diag    la.Vector // matrix diagonal for preconditioning; may be nil
}

// Name returns the name of this solver
func (o *ConjGrad) Name() string { return "cg" }

// SetDiag sets the diagonal of the matrix for Jacobi preconditioning
func (o *ConjGrad) SetDiag(d la.Vector) { o.diag = d }

// Solve solves kk⋅x = b
func (o *ConjGrad) Solve(x la.Vector, kk *la.Triplet, b la.Vector) (err error) {
	a := kk.ToMatrix(nil)
	n := len(b)
	r := la.NewVector(n)
	z := la.NewVector(n)
	p := la.NewVector(n)
	ap := la.NewVector(n)

	// initial residual with x = 0
	x.Fill(0)
	copy(r, b)
	bnorm := math.Sqrt(dot(b, b))
	if bnorm == 0 {
		return
	}

	// iterations
	o.applyPrec(z, r)
	copy(p, z)
	rz := dot(r, z)
	for it := 0; it < o.maxit; it++ {
		la.SpMatVecMul(ap, 1, a, p)
		pap := dot(p, ap)
		if pap <= 0 {
			return chk.Err("cg failed: matrix is not positive-definite (pᵀ⋅A⋅p = %g)", pap)
		}
		α := rz / pap
		for i := 0; i < n; i++ {
			x[i] += α * p[i]
			r[i] -= α * ap[i]
		}
		res := math.Sqrt(dot(r, r)) / bnorm
		if res <= o.tol {
			return checkFinite(x)
		}
		o.applyPrec(z, r)
		rznew := dot(r, z)
		β := rznew / rz
		rz = rznew
		for i := 0; i < n; i++ {
			p[i] = z[i] + β*p[i]
		}
	}
	return chk.Err("cg did not converge after %d iterations (relative residual = %g)", o.maxit, math.Sqrt(dot(r, r))/bnorm)
}

// applyPrec computes z = M⁻¹⋅r with the Jacobi preconditioner, or copies r
// when no diagonal was set
func (o *ConjGrad) applyPrec(z, r la.Vector) {
	if o.diag == nil || len(o.diag) != len(r) {
		copy(z, r)
		return
	}
	for i := 0; i < len(r); i++ {
		if math.Abs(o.diag[i]) < 1e-300 {
			z[i] = r[i]
			continue
		}
		z[i] = r[i] / o.diag[i]
	}
}

// auxiliary ///////////////////////////////////////////////////////////////////////////////////////

// checkFinite returns an error if x contains NaN or Inf entries
func checkFinite(x la.Vector) error {
	for i := 0; i < len(x); i++ {
		if math.IsNaN(x[i]) || math.IsInf(x[i], 0) {
			return chk.Err("solution contains non-finite entries (singular or ill-conditioned system)")
		}
	}
	return nil
}

// dot returns the scalar product of two vectors
func dot(u, v la.Vector) (res float64) {
	for i := 0; i < len(u); i++ {
		res += u[i] * v[i]
	}
	return
}
