// Copyright 2020 The Gotop Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package topo

import (
	"github.com/cpmech/gosl/la"
	"gonum.org/v1/gonum/floats"
)

// Field holds one scalar value per grid element, stored flat in the global
// element ordering (row first, then column, then layer)
type Field struct {
	Nelx int       `json:"nelx"` // number of elements along x
	Nely int       `json:"nely"` // number of elements along y
	Nelz int       `json:"nelz"` // number of elements along z
	Data la.Vector `json:"data"` // [nelx*nely*nelz] values
}

// NewField returns a new zeroed field
func NewField(nelx, nely, nelz int) (o *Field) {
	o = new(Field)
	o.Nelx, o.Nely, o.Nelz = nelx, nely, nelz
	o.Data = la.NewVector(nelx * nely * nelz)
	return
}

// At returns the value of the element at row ey, column ex, layer ez
func (o *Field) At(ey, ex, ez int) float64 {
	return o.Data[ey+ex*o.Nely+ez*o.Nelx*o.Nely]
}

// Set sets the value of the element at row ey, column ex, layer ez
func (o *Field) Set(ey, ex, ez int, v float64) {
	o.Data[ey+ex*o.Nely+ez*o.Nelx*o.Nely] = v
}

// Mean returns the average of all values
func (o *Field) Mean() float64 {
	return floats.Sum(o.Data) / float64(len(o.Data))
}

// GetCopy returns a deep copy of this field
func (o *Field) GetCopy() (clone *Field) {
	clone = NewField(o.Nelx, o.Nely, o.Nelz)
	copy(clone.Data, o.Data)
	return
}
