// Copyright 2024 The OpenFedem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package ele implements finite elements: the polymorphic element interface,
// its capability sub-interfaces and the concrete topological variants
package ele

import (
	"sort"

	"github.com/cpmech/gosl/chk"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/openfedem/fedem-foundation-sub001/att"
	"github.com/openfedem/fedem-foundation-sub001/csum"
	"github.com/openfedem/fedem-foundation-sub001/msh"
)

// Category classifies elements topologically; consumed by checksum masking,
// proximity filtering and repair logic
type Category int

// element categories
const (
	Solid Category = iota + 1
	Shell
	Beam
	Spring
	Constraint
	Mass
	StrainCoat
	Other
)

// NodeFinder finds a node by external ID; nil when not found
type NodeFinder interface {
	FindNode(id int) *msh.Node
}

// ElemFinder finds an element by external ID; nil when not found
type ElemFinder interface {
	FindElem(id int) Element
}

// AttFinder finds an attribute by type name and ID; nil when not found
type AttFinder interface {
	Find(typeName string, id int) att.Attribute
}

// ErrSink receives per-reference resolution failures. Resolution is
// best-effort: a failed reference is reported and processing continues.
type ErrSink func(err error)

// Element defines what all elements must implement
type Element interface {

	// identity
	Id() int          // returns the element ID
	SetId(id int)     // sets the element ID
	TypeName() string // e.g. "tet4", "wavgm"
	Cat() Category    // topological category

	// connectivity and attributes
	NodeRefs() []*msh.NodeRef     // ordered node references
	SetNodeIds(ids []int) error   // records the node-ID list (import boundary)
	NodeDofs() msh.DofMask        // DOFs granted to every connected node
	AttRefs() map[string]*att.Ref // attribute references keyed by type name
	SetAtt(typeName string, id int)

	// flags and visualization
	Calc() bool      // calculation-enabled flag
	SetCalc(on bool) // sets the calculation-enabled flag
	Viz() *att.Ref   // optional visualization record reference

	// resolution and fingerprinting
	Resolve(nf NodeFinder, ef ElemFinder, af AttFinder, bad ErrSink)
	AddToCheckSum(cs *csum.CheckSum)
}

// WithVolume defines elements with a signed volume (or thickness-volume for
// shells) and a node-order swap to repair inverted elements
type WithVolume interface {
	Element
	Volume() float64 // signed; negative means inverted node order
	SwapNodes()      // swaps node order to flip the orientation
}

// WithMass defines elements that expose mass properties: total mass, center
// of gravity and inertia tensor about the center of gravity
type WithMass interface {
	Element
	MassProps() (m float64, c []float64, J *mat.SymDense, ok bool)
}

// WithFaces defines elements that enumerate their faces as lists of local
// node indices; consumed by the visualization boundary
type WithFaces interface {
	Element
	Faces() [][]int
}

// CanSplit defines higher-order (parabolic) elements that subdivide into the
// equivalent set of linear elements. newId allocates element IDs for the
// replacements; addNode creates any extra mid-side node needed.
type CanSplit interface {
	Element
	Split(nf NodeFinder, newId func() int, addNode func(x []float64) *msh.Node) ([]Element, error)
}

// CanInvertMap defines shell elements with an inverse parametric mapping
// from a global point to element-local coordinates
type CanInvertMap interface {
	Element
	InvMap(x []float64) (xi []float64, ok bool)
}

// ConstraintElem defines rigid and weighted-average constraint elements: a
// reference (spider) node coupled to two or more dependent nodes
type ConstraintElem interface {
	Element
	RefRef() *msh.NodeRef    // reference node
	DepRefs() []*msh.NodeRef // dependent nodes
	DropDep(i int)           // removes dependent i, redistributing weights if applicable
}

// Core implements the identity, connectivity, attribute and resolution part
// shared by all element types. Concrete types embed Core and add geometry.
type Core struct {
	id    int
	tname string
	cat   Category
	nnode int         // expected node count; < 0 means variable (min 2)
	dofs  msh.DofMask // DOFs granted per connected node
	nrefs []*msh.NodeRef
	atts  map[string]*att.Ref
	viz   att.Ref
	calc  bool
}

// Init initialises the shared element data
func (o *Core) Init(tname string, cat Category, id, nnode int, dofs msh.DofMask) {
	o.id = id
	o.tname = tname
	o.cat = cat
	o.nnode = nnode
	o.dofs = dofs
	o.atts = make(map[string]*att.Ref)
	o.viz = att.Ref{Type: att.VizName, Id: -1}
	o.calc = true
}

// Id returns the element ID
func (o *Core) Id() int { return o.id }

// SetId sets the element ID
func (o *Core) SetId(id int) { o.id = id }

// TypeName returns the element type name
func (o *Core) TypeName() string { return o.tname }

// Cat returns the topological category
func (o *Core) Cat() Category { return o.cat }

// NodeRefs returns the ordered node references
func (o *Core) NodeRefs() []*msh.NodeRef { return o.nrefs }

// NodeDofs returns the DOFs this element grants to its nodes
func (o *Core) NodeDofs() msh.DofMask { return o.dofs }

// AttRefs returns the attribute references keyed by type name
func (o *Core) AttRefs() map[string]*att.Ref { return o.atts }

// SetAtt records an attribute reference by type name and ID
func (o *Core) SetAtt(typeName string, id int) {
	o.atts[typeName] = &att.Ref{Type: typeName, Id: id}
}

// Calc returns the calculation-enabled flag
func (o *Core) Calc() bool { return o.calc }

// SetCalc sets the calculation-enabled flag
func (o *Core) SetCalc(on bool) { o.calc = on }

// Viz returns the visualization record reference
func (o *Core) Viz() *att.Ref { return &o.viz }

// SetNodeIds records the node-ID list. The count is validated against the
// element topology.
func (o *Core) SetNodeIds(ids []int) (err error) {
	if o.nnode >= 0 && len(ids) != o.nnode {
		return chk.Err("element {type=%q, id=%d} needs %d nodes; got %d", o.tname, o.id, o.nnode, len(ids))
	}
	if o.nnode < 0 && len(ids) < 2 {
		return chk.Err("element {type=%q, id=%d} needs at least 2 nodes; got %d", o.tname, o.id, len(ids))
	}
	o.nrefs = make([]*msh.NodeRef, len(ids))
	for i, id := range ids {
		o.nrefs[i] = &msh.NodeRef{Id: id}
	}
	return
}

// Resolve converts node and attribute IDs to live links. Each failure goes
// to the bad sink; resolution continues with the remaining references.
func (o *Core) Resolve(nf NodeFinder, ef ElemFinder, af AttFinder, bad ErrSink) {
	for _, r := range o.nrefs {
		if r.Resolved() {
			continue
		}
		n := nf.FindNode(r.Id)
		if n == nil {
			bad(chk.Err("element {type=%q, id=%d}: cannot resolve node %d", o.tname, o.id, r.Id))
			continue
		}
		r.Resolve(n)
		n.Dofs |= o.dofs
	}
	for tn, r := range o.atts {
		if r.Resolved() {
			continue
		}
		a := af.Find(tn, r.Id)
		if a == nil {
			bad(chk.Err("element {type=%q, id=%d}: cannot resolve attribute {type=%q, id=%d}", o.tname, o.id, tn, r.Id))
			continue
		}
		r.A = a
		a.IncRef()
	}
	if o.viz.Id >= 0 && !o.viz.Resolved() {
		a := af.Find(o.viz.Type, o.viz.Id)
		if a == nil {
			bad(chk.Err("element {type=%q, id=%d}: cannot resolve visualization record %d", o.tname, o.id, o.viz.Id))
		} else {
			o.viz.A = a
			a.IncRef()
		}
	}
}

// AddToCheckSum folds identity, connectivity and attribute references
func (o *Core) AddToCheckSum(cs *csum.CheckSum) {
	cs.AddString(o.tname)
	cs.AddInt(o.id)
	for _, r := range o.nrefs {
		cs.AddInt(r.Id)
	}
	names := make([]string, 0, len(o.atts))
	for tn := range o.atts {
		names = append(names, tn)
	}
	sort.Strings(names)
	for _, tn := range names {
		cs.AddString(tn)
		cs.AddInt(o.atts[tn].Id)
	}
	if o.calc {
		cs.AddInt(1)
	} else {
		cs.AddInt(0)
	}
}

// DropNodeAt removes the node reference at position i, decrementing the
// node's use count if resolved
func (o *Core) DropNodeAt(i int) {
	if r := o.nrefs[i]; r.Resolved() {
		r.Node.DecRef()
	}
	o.nrefs = append(o.nrefs[:i], o.nrefs[i+1:]...)
}

// Detach decrements the use counts of every resolved node and attribute;
// called when the element is removed from the model
func (o *Core) Detach() {
	for _, r := range o.nrefs {
		if r.Resolved() {
			r.Node.DecRef()
		}
	}
	for _, r := range o.atts {
		if r.Resolved() {
			r.A.DecRef()
		}
	}
	if o.viz.Resolved() {
		o.viz.A.DecRef()
	}
}

// CopyAttsTo copies attribute references (by ID), the visualization
// reference and the calculation flag to a replacement element
func (o *Core) CopyAttsTo(e Element) {
	for tn, r := range o.atts {
		e.SetAtt(tn, r.Id)
	}
	e.Viz().Id = o.viz.Id
	e.SetCalc(o.calc)
}

// atf returns a resolved attribute by type name, or nil
func (o *Core) atf(typeName string) att.Attribute {
	if r, ok := o.atts[typeName]; ok && r.Resolved() {
		return r.A
	}
	return nil
}

// vec returns the position of node i as an r3 vector; the node reference
// must be resolved
func (o *Core) vec(i int) r3.Vec {
	x := o.nrefs[i].Node.X
	return r3.Vec{X: x[0], Y: x[1], Z: x[2]}
}

// resolvedAll tells whether every node reference is resolved
func (o *Core) resolvedAll() bool {
	for _, r := range o.nrefs {
		if !r.Resolved() {
			return false
		}
	}
	return len(o.nrefs) > 0
}
