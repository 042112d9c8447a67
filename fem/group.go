// Copyright 2024 The OpenFedem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/cpmech/gosl/chk"

	"github.com/openfedem/fedem-foundation-sub001/att"
	"github.com/openfedem/fedem-foundation-sub001/ele"
	"github.com/openfedem/fedem-foundation-sub001/msh"
)

// Group is a user-defined ordered subset of elements, referenced by ID and
// resolved to live links; not required for solving
type Group struct {
	Id    int       // group ID; unique
	Name  string    // optional name
	Elems []ele.Ref // ordered element references
}

// NewGroup returns a new group over the given element IDs
func NewGroup(id int, name string, eids []int) (o *Group) {
	o = &Group{Id: id, Name: name}
	for _, eid := range eids {
		o.Elems = append(o.Elems, ele.Ref{Id: eid})
	}
	return
}

// Resolve converts the element-ID list to live links
func (o *Group) Resolve(ef ele.ElemFinder, bad ele.ErrSink) {
	for i := range o.Elems {
		r := &o.Elems[i]
		if r.Resolved() {
			continue
		}
		e := ef.FindElem(r.Id)
		if e == nil {
			bad(chk.Err("group {id=%d}: cannot resolve element %d", o.Id, r.Id))
			continue
		}
		r.E = e
	}
}

// ReplaceElem substitutes one element ID with a set of replacement IDs,
// preserving order; used when a parabolic element is subdivided
func (o *Group) ReplaceElem(oldId int, newIds []int) {
	for i := range o.Elems {
		if o.Elems[i].Id != oldId {
			continue
		}
		tail := make([]ele.Ref, len(o.Elems)-i-1)
		copy(tail, o.Elems[i+1:])
		o.Elems = o.Elems[:i]
		for _, id := range newIds {
			o.Elems = append(o.Elems, ele.Ref{Id: id})
		}
		o.Elems = append(o.Elems, tail...)
		return
	}
}

// RemoveElems drops references to the given element IDs
func (o *Group) RemoveElems(ids map[int]bool) {
	keep := o.Elems[:0]
	for _, r := range o.Elems {
		if ids[r.Id] {
			continue
		}
		keep = append(keep, r)
	}
	o.Elems = keep
}

// Load holds one external load: a value payload applied to a target node or
// element, with an optional orientation attribute. Load IDs may repeat.
type Load struct {
	Id    int         // load ID; not required unique
	Node  msh.NodeRef // target node; Id < 0 when the target is an element
	Elem  ele.Ref     // target element; Id < 0 when the target is a node
	Value []float64   // value payload, e.g. force/moment components
	Csys  att.Ref     // optional orientation; Id < 0 means none
}

// NewNodeLoad returns a load applied to a node
func NewNodeLoad(id, nodeId int, value []float64) *Load {
	return &Load{Id: id, Node: msh.NodeRef{Id: nodeId}, Elem: ele.Ref{Id: -1},
		Value: value, Csys: att.Ref{Type: att.CsysName, Id: -1}}
}

// NewElemLoad returns a load applied to an element
func NewElemLoad(id, elemId int, value []float64) *Load {
	return &Load{Id: id, Node: msh.NodeRef{Id: -1}, Elem: ele.Ref{Id: elemId},
		Value: value, Csys: att.Ref{Type: att.CsysName, Id: -1}}
}

// Resolve converts the load's node/element/attribute references to live links
func (o *Load) Resolve(nf ele.NodeFinder, ef ele.ElemFinder, af ele.AttFinder, bad ele.ErrSink) {
	if o.Node.Id >= 0 && !o.Node.Resolved() {
		n := nf.FindNode(o.Node.Id)
		if n == nil {
			bad(chk.Err("load {id=%d}: cannot resolve node %d", o.Id, o.Node.Id))
		} else {
			o.Node.Node = n // use counts track owning elements only
		}
	}
	if o.Elem.Id >= 0 && !o.Elem.Resolved() {
		e := ef.FindElem(o.Elem.Id)
		if e == nil {
			bad(chk.Err("load {id=%d}: cannot resolve element %d", o.Id, o.Elem.Id))
		} else {
			o.Elem.E = e
		}
	}
	if o.Csys.Id >= 0 && !o.Csys.Resolved() {
		a := af.Find(o.Csys.Type, o.Csys.Id)
		if a == nil {
			bad(chk.Err("load {id=%d}: cannot resolve orientation attribute %d", o.Id, o.Csys.Id))
		} else {
			o.Csys.A = a
			a.IncRef()
		}
	}
}
