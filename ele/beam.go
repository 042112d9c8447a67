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

// beam element type names
const (
	Beam2Name = "beam2"
	Beam3Name = "beam3"
)

// beamMass computes m, cog and point-mass inertia for a beam of length l
// with midpoint c
func (o *Core) beamMass(l float64, c []float64) (m float64, cog []float64, J *mat.SymDense, ok bool) {
	rho := materialRho(o.atf(att.MatName))
	sec, _ := o.atf(att.BeamSecName).(*att.BeamSec)
	if rho == 0 || sec == nil || l == 0 || !o.resolvedAll() {
		return
	}
	m = rho * sec.A * l
	cog = c
	J = mat.NewSymDense(3, nil)
	ok = true
	return
}

// Beam2 is a linear 2-node beam element
type Beam2 struct {
	Core
}

// Length returns the beam length
func (o *Beam2) Length() float64 {
	return r3.Norm(r3.Sub(o.vec(1), o.vec(0)))
}

// MassProps returns mass, center of gravity and inertia about the center
func (o *Beam2) MassProps() (m float64, c []float64, J *mat.SymDense, ok bool) {
	if !o.resolvedAll() {
		return
	}
	return o.beamMass(o.Length(), centroid(o.nrefs))
}

// Beam3 is a parabolic 3-node beam element with nodes end-mid-end; it is
// unconditionally subdivided into two linear beams during resolution
type Beam3 struct {
	Core
}

// MassProps returns mass, center of gravity and inertia about the center
func (o *Beam3) MassProps() (m float64, c []float64, J *mat.SymDense, ok bool) {
	if !o.resolvedAll() {
		return
	}
	l := r3.Norm(r3.Sub(o.vec(1), o.vec(0))) + r3.Norm(r3.Sub(o.vec(2), o.vec(1)))
	return o.beamMass(l, centroid(o.nrefs))
}

// Split subdivides into two linear beams sharing the mid-side node. No new
// node is needed.
func (o *Beam3) Split(nf NodeFinder, newId func() int, addNode func(x []float64) *msh.Node) (repl []Element, err error) {
	ids := []int{o.nrefs[0].Id, o.nrefs[1].Id, o.nrefs[2].Id}
	for _, pair := range [][]int{{ids[0], ids[1]}, {ids[1], ids[2]}} {
		b := new(Beam2)
		b.Init(Beam2Name, Beam, newId(), 2, msh.AllDofs)
		if err = b.SetNodeIds(pair); err != nil {
			return nil, err
		}
		o.CopyAttsTo(b)
		repl = append(repl, b)
	}
	return
}

func init() {
	SetAllocator(Beam2Name, func(id int) Element {
		e := new(Beam2)
		e.Init(Beam2Name, Beam, id, 2, msh.AllDofs)
		return e
	})
	SetAllocator(Beam3Name, func(id int) Element {
		e := new(Beam3)
		e.Init(Beam3Name, Beam, id, 3, msh.AllDofs)
		return e
	})
}
