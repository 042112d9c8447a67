// Copyright 2024 The OpenFedem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

import (
	"github.com/cpmech/gosl/chk"
	"gonum.org/v1/gonum/mat"

	"github.com/openfedem/fedem-foundation-sub001/att"
	"github.com/openfedem/fedem-foundation-sub001/csum"
	"github.com/openfedem/fedem-foundation-sub001/msh"
)

// spring, mass and strain-coat element type names
const (
	Spring2Name    = "spring2"
	Mass1Name      = "mass1"
	StrainCoatName = "strain coat"
)

// Spring2 is a 2-node spring element; stiffnesses come from a spring
// attribute. Springs also serve as auxiliary coupling elements between free
// nodes and constraint reference nodes.
type Spring2 struct {
	Core
}

// Mass1 is a 1-node concentrated mass element; values come from a lumped
// mass attribute
type Mass1 struct {
	Core
}

// MassProps returns the lumped mass and inertias at the node position
func (o *Mass1) MassProps() (m float64, c []float64, J *mat.SymDense, ok bool) {
	lm, _ := o.atf(att.MassName).(*att.LumpMass)
	if lm == nil || !o.resolvedAll() {
		return
	}
	m = lm.M
	c = []float64{o.nrefs[0].Node.X[0], o.nrefs[0].Node.X[1], o.nrefs[0].Node.X[2]}
	J = mat.NewSymDense(3, nil)
	J.SetSym(0, 0, lm.J[0])
	J.SetSym(1, 1, lm.J[1])
	J.SetSym(2, 2, lm.J[2])
	ok = true
	return
}

// Coat is a zero-DOF strain-coat overlay element for surface stress/fatigue
// recovery: it shares the surface nodes of an underlying structural element
// and references that element by ID. Excluded from stiffness and mass
// assembly.
type Coat struct {
	Core
	Base Ref // underlying element reference
}

// Ref holds an element-to-element reference: initially by ID, later
// resolved to the live instance
type Ref struct {
	Id int      // element ID
	E  Element  // resolved instance; nil while unresolved
}

// Resolved tells whether the reference has been converted to a live link
func (o *Ref) Resolved() bool { return o.E != nil }

// SetBase records the underlying element ID
func (o *Coat) SetBase(id int) { o.Base.Id = id }

// Faces returns the single overlay face
func (o *Coat) Faces() [][]int {
	idx := make([]int, len(o.nrefs))
	for i := range idx {
		idx[i] = i
	}
	return [][]int{idx}
}

// Resolve links nodes, attributes and the underlying element
func (o *Coat) Resolve(nf NodeFinder, ef ElemFinder, af AttFinder, bad ErrSink) {
	o.Core.Resolve(nf, ef, af, bad)
	if o.Base.Resolved() {
		return
	}
	e := ef.FindElem(o.Base.Id)
	if e == nil {
		bad(chk.Err("element {type=%q, id=%d}: cannot resolve underlying element %d", StrainCoatName, o.Id(), o.Base.Id))
		return
	}
	o.Base.E = e
}

// AddToCheckSum folds identity, connectivity and the underlying element ID
func (o *Coat) AddToCheckSum(cs *csum.CheckSum) {
	o.Core.AddToCheckSum(cs)
	cs.AddInt(o.Base.Id)
}

func init() {
	SetAllocator(Spring2Name, func(id int) Element {
		e := new(Spring2)
		e.Init(Spring2Name, Spring, id, 2, msh.AllDofs)
		return e
	})
	SetAllocator(Mass1Name, func(id int) Element {
		e := new(Mass1)
		e.Init(Mass1Name, Mass, id, 1, msh.AllDofs)
		return e
	})
	SetAllocator(StrainCoatName, func(id int) Element {
		e := new(Coat)
		e.Init(StrainCoatName, StrainCoat, id, -1, 0)
		return e
	})
}
