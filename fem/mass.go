// Copyright 2024 The OpenFedem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"gonum.org/v1/gonum/mat"

	"github.com/openfedem/fedem-foundation-sub001/ele"
)

// MassProps holds whole-model mass properties
type MassProps struct {
	Mass float64       // total mass
	Cog  []float64     // center of gravity
	J    *mat.SymDense // inertia tensor about the center of gravity
}

// nearZeroMass is the total mass below which the aggregation result is left
// at its zero-initialized state instead of dividing by zero
const nearZeroMass = 1e-30

// MassProperties integrates per-element mass properties into whole-model
// mass, center of gravity and inertia tensor. A provisional center is taken
// from the bounding box; element inertias are translated there via the
// parallel-axis theorem, and the accumulated tensor is re-translated to the
// exact center computed from the first moment.
func (o *Model) MassProperties() (mp MassProps) {
	mp.Cog = []float64{0, 0, 0}
	mp.J = mat.NewSymDense(3, nil)

	// pass 1: provisional center
	xmin, xmax := o.BBox()
	c0 := []float64{(xmin[0] + xmax[0]) / 2, (xmin[1] + xmax[1]) / 2, (xmin[2] + xmax[2]) / 2}

	// pass 2: accumulate about the provisional center
	var m float64
	mom := []float64{0, 0, 0}
	for _, e := range o.Elems {
		wm, ok := e.(ele.WithMass)
		if !ok {
			continue
		}
		em, ec, eJ, ok := wm.MassProps()
		if !ok || em == 0 {
			continue
		}
		m += em
		d := []float64{ec[0] - c0[0], ec[1] - c0[1], ec[2] - c0[2]}
		for k := 0; k < 3; k++ {
			mom[k] += em * d[k]
		}
		addSym(mp.J, eJ)
		parallelAxis(mp.J, em, d, +1)
	}
	if m < nearZeroMass {
		mp.J = mat.NewSymDense(3, nil)
		return
	}

	// pass 3: exact center of gravity and re-translation of the inertia
	d := []float64{mom[0] / m, mom[1] / m, mom[2] / m}
	for k := 0; k < 3; k++ {
		mp.Cog[k] = c0[k] + d[k]
	}
	parallelAxis(mp.J, m, d, -1)
	mp.Mass = m
	return
}

// addSym accumulates b into a
func addSym(a, b *mat.SymDense) {
	for i := 0; i < 3; i++ {
		for j := i; j < 3; j++ {
			a.SetSym(i, j, a.At(i, j)+b.At(i, j))
		}
	}
}

// parallelAxis adds (sign=+1) or removes (sign=-1) the parallel-axis term
// m·(|d|²·I − d·dᵀ) of a point mass at offset d
func parallelAxis(J *mat.SymDense, m float64, d []float64, sign float64) {
	dd := d[0]*d[0] + d[1]*d[1] + d[2]*d[2]
	for i := 0; i < 3; i++ {
		for j := i; j < 3; j++ {
			term := -d[i] * d[j]
			if i == j {
				term += dd
			}
			J.SetSym(i, j, J.At(i, j)+sign*m*term)
		}
	}
}
