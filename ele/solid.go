// Copyright 2024 The OpenFedem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

import (
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/openfedem/fedem-foundation-sub001/att"
	"github.com/openfedem/fedem-foundation-sub001/msh"
)

// solid element type names
const (
	Tet4Name = "tet4"
	Hex8Name = "hex8"
)

// hex8tets decomposes a hexahedron into six tetrahedra around the 0-6
// diagonal; used for volume and centroid computations
var hex8tets = [6][4]int{
	{0, 1, 2, 6}, {0, 2, 3, 6}, {0, 3, 7, 6},
	{0, 7, 4, 6}, {0, 4, 5, 6}, {0, 5, 1, 6},
}

// tetVol returns the signed volume of the tetrahedron a,b,c,d
func tetVol(a, b, c, d r3.Vec) float64 {
	return r3.Dot(r3.Cross(r3.Sub(b, a), r3.Sub(c, a)), r3.Sub(d, a)) / 6.0
}

// Tet4 is a linear 4-node tetrahedral solid element
type Tet4 struct {
	Core
}

// Volume returns the signed volume; negative means inverted node order
func (o *Tet4) Volume() float64 {
	return tetVol(o.vec(0), o.vec(1), o.vec(2), o.vec(3))
}

// SwapNodes flips the orientation by swapping two nodes
func (o *Tet4) SwapNodes() {
	o.nrefs[1], o.nrefs[2] = o.nrefs[2], o.nrefs[1]
}

// Faces returns the four triangular faces as local node indices
func (o *Tet4) Faces() [][]int {
	return [][]int{{0, 2, 1}, {0, 1, 3}, {1, 2, 3}, {0, 3, 2}}
}

// MassProps returns mass, center of gravity and inertia about the center.
// The inertia of the distributed solid is approximated by a point mass at
// the centroid; the aggregator's parallel-axis translation carries the
// offset terms.
func (o *Tet4) MassProps() (m float64, c []float64, J *mat.SymDense, ok bool) {
	rho := materialRho(o.atf(att.MatName))
	if rho == 0 || !o.resolvedAll() {
		return
	}
	m = rho * absVal(o.Volume())
	c = centroid(o.nrefs)
	J = mat.NewSymDense(3, nil)
	ok = true
	return
}

// Hex8 is a linear 8-node hexahedral solid element
type Hex8 struct {
	Core
}

// Volume returns the signed volume from the six-tetrahedra decomposition
func (o *Hex8) Volume() (v float64) {
	for _, t := range hex8tets {
		v += tetVol(o.vec(t[0]), o.vec(t[1]), o.vec(t[2]), o.vec(t[3]))
	}
	return
}

// SwapNodes flips the orientation by exchanging bottom and top faces
func (o *Hex8) SwapNodes() {
	for i := 0; i < 4; i++ {
		o.nrefs[i], o.nrefs[i+4] = o.nrefs[i+4], o.nrefs[i]
	}
}

// Faces returns the six quadrilateral faces as local node indices
func (o *Hex8) Faces() [][]int {
	return [][]int{
		{0, 3, 2, 1}, {4, 5, 6, 7}, {0, 1, 5, 4},
		{1, 2, 6, 5}, {2, 3, 7, 6}, {3, 0, 4, 7},
	}
}

// MassProps returns mass, center of gravity and inertia about the center
func (o *Hex8) MassProps() (m float64, c []float64, J *mat.SymDense, ok bool) {
	rho := materialRho(o.atf(att.MatName))
	if rho == 0 || !o.resolvedAll() {
		return
	}
	// volume-weighted centroid over the tetrahedral decomposition
	c = []float64{0, 0, 0}
	var vtot float64
	for _, t := range hex8tets {
		a, b, cc, d := o.vec(t[0]), o.vec(t[1]), o.vec(t[2]), o.vec(t[3])
		v := absVal(tetVol(a, b, cc, d))
		c[0] += v * (a.X + b.X + cc.X + d.X) / 4.0
		c[1] += v * (a.Y + b.Y + cc.Y + d.Y) / 4.0
		c[2] += v * (a.Z + b.Z + cc.Z + d.Z) / 4.0
		vtot += v
	}
	if vtot == 0 {
		c = nil
		return
	}
	c[0] /= vtot
	c[1] /= vtot
	c[2] /= vtot
	m = rho * vtot
	J = mat.NewSymDense(3, nil)
	ok = true
	return
}

// materialRho extracts the mass density from a resolved material attribute
func materialRho(a att.Attribute) float64 {
	if mt, ok := a.(*att.Mat); ok && mt != nil {
		return mt.Rho
	}
	return 0
}

// centroid returns the mean position of resolved node references
func centroid(nrefs []*msh.NodeRef) (c []float64) {
	c = []float64{0, 0, 0}
	for _, r := range nrefs {
		for k := 0; k < 3; k++ {
			c[k] += r.Node.X[k]
		}
	}
	for k := 0; k < 3; k++ {
		c[k] /= float64(len(nrefs))
	}
	return
}

// absVal returns |v|
func absVal(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func init() {
	SetAllocator(Tet4Name, func(id int) Element {
		e := new(Tet4)
		e.Init(Tet4Name, Solid, id, 4, msh.TransDofs)
		return e
	})
	SetAllocator(Hex8Name, func(id int) Element {
		e := new(Hex8)
		e.Init(Hex8Name, Solid, id, 8, msh.TransDofs)
		return e
	})
}
