// Copyright 2024 The OpenFedem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/openfedem/fedem-foundation-sub001/csum"
	"github.com/openfedem/fedem-foundation-sub001/msh"
)

// constraint element type names
const (
	RgdName   = "rgd"
	WavgmName = "wavgm"
)

// Rgd is a rigid constraint element: node 0 is the reference ("spider")
// node, coupled rigidly to the remaining dependent nodes
type Rgd struct {
	Core
}

// RefRef returns the reference node
func (o *Rgd) RefRef() *msh.NodeRef { return o.nrefs[0] }

// DepRefs returns the dependent nodes
func (o *Rgd) DepRefs() []*msh.NodeRef { return o.nrefs[1:] }

// DropDep removes dependent node i. Rigid coupling carries no weights, so
// the node is simply dropped from the list.
func (o *Rgd) DropDep(i int) {
	o.DropNodeAt(i + 1)
}

// Resolve links nodes and flags them with constraint topology status
func (o *Rgd) Resolve(nf NodeFinder, ef ElemFinder, af AttFinder, bad ErrSink) {
	o.Core.Resolve(nf, ef, af, bad)
	markConstraintNodes(o.nrefs)
}

// Wavgm is a weighted-average-motion constraint element: node 0 is the
// reference node whose motion is a weighted combination of the dependent
// nodes' motions.
//
// W holds the weight blocks back to back, one block of nDep values per
// constrained DOF; IndC[d] is the offset of DOF d's block in W, or -1 when
// DOF d is not constrained.
type Wavgm struct {
	Core
	W    []float64 `json:"w"`
	IndC [6]int    `json:"indc"`
}

// RefRef returns the reference node
func (o *Wavgm) RefRef() *msh.NodeRef { return o.nrefs[0] }

// DepRefs returns the dependent nodes
func (o *Wavgm) DepRefs() []*msh.NodeRef { return o.nrefs[1:] }

// WeightSum returns the summed weight of DOF d over all dependent nodes
func (o *Wavgm) WeightSum(d int) float64 {
	if o.IndC[d] < 0 {
		return 0
	}
	nDep := len(o.nrefs) - 1
	return floats.Sum(o.W[o.IndC[d] : o.IndC[d]+nDep])
}

// DropDep removes dependent node i and redistributes its weights: the
// remaining weights of each constrained DOF are rescaled so that the block
// sum is conserved, and the per-DOF offset table is recomputed for the
// smaller node count.
func (o *Wavgm) DropDep(i int) {
	nDep := len(o.nrefs) - 1
	var newW []float64
	var newInd [6]int
	off := 0
	for d := 0; d < 6; d++ {
		if o.IndC[d] < 0 {
			newInd[d] = -1
			continue
		}
		block := o.W[o.IndC[d] : o.IndC[d]+nDep]
		sum := floats.Sum(block)
		rem := sum - block[i]
		nb := make([]float64, 0, nDep-1)
		for j, w := range block {
			if j != i {
				nb = append(nb, w)
			}
		}
		if math.Abs(rem) > 1e-14*math.Abs(sum) {
			f := sum / rem
			for j := range nb {
				nb[j] *= f
			}
		} else {
			// removed node carried the whole sum; spread it evenly
			for j := range nb {
				nb[j] = sum / float64(len(nb))
			}
		}
		newInd[d] = off
		newW = append(newW, nb...)
		off += len(nb)
	}
	o.W = newW
	o.IndC = newInd
	o.DropNodeAt(i + 1)
}

// Resolve links nodes and flags them with constraint topology status
func (o *Wavgm) Resolve(nf NodeFinder, ef ElemFinder, af AttFinder, bad ErrSink) {
	o.Core.Resolve(nf, ef, af, bad)
	markConstraintNodes(o.nrefs)
}

// AddToCheckSum folds identity, connectivity and the weight table
func (o *Wavgm) AddToCheckSum(cs *csum.CheckSum) {
	o.Core.AddToCheckSum(cs)
	cs.AddFloats(o.W)
	cs.AddInts(o.IndC[:])
}

// markConstraintNodes flags the reference node and the dependent nodes of a
// resolved constraint element
func markConstraintNodes(nrefs []*msh.NodeRef) {
	if len(nrefs) == 0 {
		return
	}
	if nrefs[0].Resolved() {
		nrefs[0].Node.Dofs |= msh.RefNode
	}
	for _, r := range nrefs[1:] {
		if r.Resolved() {
			r.Node.Dofs |= msh.Slave
		}
	}
}

func init() {
	SetAllocator(RgdName, func(id int) Element {
		e := new(Rgd)
		e.Init(RgdName, Constraint, id, -1, 0)
		return e
	})
	SetAllocator(WavgmName, func(id int) Element {
		e := new(Wavgm)
		e.Init(WavgmName, Constraint, id, -1, 0)
		return e
	})
}
