// Copyright 2024 The OpenFedem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package msh implements the base mesh entities: nodes, DOF status masks and
// ID-or-pointer node references
package msh

import (
	"math/bits"

	"github.com/cpmech/gosl/chk"

	"github.com/openfedem/fedem-foundation-sub001/att"
)

// DofMask is a bitmask holding the DOF status of a node: one bit per degree
// of freedom plus derived status flags
type DofMask uint16

// DOF bits and status flags
const (
	Tx DofMask = 1 << iota // translation x
	Ty                     // translation y
	Tz                     // translation z
	Rx                     // rotation x
	Ry                     // rotation y
	Rz                     // rotation z
	External               // externally visible node (kept even when unreferenced)
	Internal               // internal node
	Slave                  // dependent node of a constraint element
	RefNode                // reference ("spider") node of a constraint element
)

// composite masks
const (
	TransDofs = Tx | Ty | Tz
	RotDofs   = Rx | Ry | Rz
	AllDofs   = TransDofs | RotDofs
)

// NDofs returns the number of degrees of freedom carried by the mask
func (m DofMask) NDofs() int {
	return bits.OnesCount16(uint16(m & AllDofs))
}

// HasAny tells whether the mask carries at least one of the wanted DOFs
func (m DofMask) HasAny(want DofMask) bool {
	return m&want&AllDofs != 0
}

// HasAll tells whether the mask carries every wanted DOF
func (m DofMask) HasAll(want DofMask) bool {
	return m&want&AllDofs == want&AllDofs
}

// Node holds one mesh node: external ID, position, DOF status, element use
// count and an optional local coordinate system reference
type Node struct {
	Id     int       // external ID; unique within the model
	X      []float64 // position (len 3)
	Dofs   DofMask   // DOF status and flags
	Nrefs  int       // number of elements referencing this node
	Csys   att.Ref   // optional local coordinate system; Id < 0 means none
	RunIdx int       // stable running index for the visualization boundary
}

// NewNode returns a new node at position x
func NewNode(id int, x []float64) (o *Node) {
	if len(x) != 3 {
		chk.Panic("node %d must have a 3-component position; got %d components", id, len(x))
	}
	o = &Node{Id: id, X: x}
	o.Csys.Type = att.CsysName
	o.Csys.Id = -1
	return
}

// IncRef increments the element use count
func (o *Node) IncRef() { o.Nrefs++ }

// DecRef decrements the element use count
func (o *Node) DecRef() {
	if o.Nrefs > 0 {
		o.Nrefs--
	}
}

// NodeRef holds a reference to a node: initially by ID, later resolved to
// the live instance
type NodeRef struct {
	Id   int   // node ID
	Node *Node // resolved instance; nil while unresolved
}

// Resolved tells whether the reference has been converted to a live link
func (o *NodeRef) Resolved() bool { return o.Node != nil }

// Resolve links the node and increments its use count
func (o *NodeRef) Resolve(n *Node) {
	o.Node = n
	n.IncRef()
}
