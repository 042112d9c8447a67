// Copyright 2024 The OpenFedem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

import (
	"github.com/cpmech/gosl/chk"

	"github.com/openfedem/fedem-foundation-sub001/msh"
)

// parabolic shell element type names
const (
	Tri6Name  = "tri6"
	Quad8Name = "quad8"
)

// Tri6 is a parabolic 6-node triangular shell: corners 0,1,2 and mid-side
// nodes 3 (0-1), 4 (1-2), 5 (2-0)
type Tri6 struct {
	Core
}

// Volume returns the corner-triangle area (times thickness if attached)
func (o *Tri6) Volume() float64 {
	a := triArea(o.vec(0), o.vec(1), o.vec(2))
	if t := o.thickness(); t > 0 {
		return a * t
	}
	return a
}

// SwapNodes reverses the winding order
func (o *Tri6) SwapNodes() {
	o.nrefs[1], o.nrefs[2] = o.nrefs[2], o.nrefs[1]
	o.nrefs[3], o.nrefs[5] = o.nrefs[5], o.nrefs[3]
}

// Split subdivides into four linear triangles over the existing mid-side
// nodes. No new node is needed.
func (o *Tri6) Split(nf NodeFinder, newId func() int, addNode func(x []float64) *msh.Node) (repl []Element, err error) {
	id := func(i int) int { return o.nrefs[i].Id }
	conn := [4][3]int{
		{id(0), id(3), id(5)},
		{id(3), id(1), id(4)},
		{id(5), id(4), id(2)},
		{id(3), id(4), id(5)},
	}
	for _, c := range conn {
		t := new(Tri3)
		t.Init(Tri3Name, Shell, newId(), 3, msh.AllDofs)
		if err = t.SetNodeIds(c[:]); err != nil {
			return nil, err
		}
		o.CopyAttsTo(t)
		repl = append(repl, t)
	}
	return
}

// Quad8 is a parabolic 8-node quadrilateral shell: corners 0..3 and
// mid-side nodes 4 (0-1), 5 (1-2), 6 (2-3), 7 (3-0)
type Quad8 struct {
	Core
}

// Volume returns the corner-quadrilateral area (times thickness if attached)
func (o *Quad8) Volume() float64 {
	a := triArea(o.vec(0), o.vec(1), o.vec(2)) + triArea(o.vec(0), o.vec(2), o.vec(3))
	if t := o.thickness(); t > 0 {
		return a * t
	}
	return a
}

// SwapNodes reverses the winding order
func (o *Quad8) SwapNodes() {
	o.nrefs[1], o.nrefs[3] = o.nrefs[3], o.nrefs[1]
	o.nrefs[4], o.nrefs[7] = o.nrefs[7], o.nrefs[4]
	o.nrefs[5], o.nrefs[6] = o.nrefs[6], o.nrefs[5]
}

// Split subdivides into four linear quadrilaterals around a new center
// node. The center position follows the serendipity interpolation at the
// element center: half the mid-side sum minus a quarter of the corner sum.
func (o *Quad8) Split(nf NodeFinder, newId func() int, addNode func(x []float64) *msh.Node) (repl []Element, err error) {
	xc := []float64{0, 0, 0}
	for i := 0; i < 8; i++ {
		n := nf.FindNode(o.nrefs[i].Id)
		if n == nil {
			return nil, chk.Err("element {type=%q, id=%d}: cannot split without node %d", Quad8Name, o.Id(), o.nrefs[i].Id)
		}
		w := -0.25
		if i >= 4 {
			w = 0.5
		}
		for k := 0; k < 3; k++ {
			xc[k] += w * n.X[k]
		}
	}
	center := addNode(xc)
	id := func(i int) int { return o.nrefs[i].Id }
	conn := [4][4]int{
		{id(0), id(4), center.Id, id(7)},
		{id(4), id(1), id(5), center.Id},
		{center.Id, id(5), id(2), id(6)},
		{id(7), center.Id, id(6), id(3)},
	}
	for _, c := range conn {
		q := new(Quad4)
		q.Init(Quad4Name, Shell, newId(), 4, msh.AllDofs)
		if err = q.SetNodeIds(c[:]); err != nil {
			return nil, err
		}
		o.CopyAttsTo(q)
		repl = append(repl, q)
	}
	return
}

func init() {
	SetAllocator(Tri6Name, func(id int) Element {
		e := new(Tri6)
		e.Init(Tri6Name, Shell, id, 6, msh.AllDofs)
		return e
	})
	SetAllocator(Quad8Name, func(id int) Element {
		e := new(Quad8)
		e.Init(Quad8Name, Shell, id, 8, msh.AllDofs)
		return e
	})
}
