// Copyright 2024 The OpenFedem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/openfedem/fedem-foundation-sub001/ele"
	"github.com/openfedem/fedem-foundation-sub001/msh"
)

// twoPanels builds two separated triangular shells in the z=0 plane
func twoPanels(tst *testing.T) *Model {
	m := NewModel(0, 0)
	addNodeAt(tst, m, 1, []float64{0, 0, 0})
	addNodeAt(tst, m, 2, []float64{1, 0, 0})
	addNodeAt(tst, m, 3, []float64{0, 1, 0})
	addNodeAt(tst, m, 4, []float64{10, 0, 0})
	addNodeAt(tst, m, 5, []float64{11, 0, 0})
	addNodeAt(tst, m, 6, []float64{10, 1, 0})
	addElem(tst, m, ele.Tri3Name, 1, []int{1, 2, 3})
	addElem(tst, m, ele.Tri3Name, 2, []int{4, 5, 6})
	m.AddGroup(NewGroup(1, "left", []int{1}))
	if !m.Resolve(false) {
		tst.Fatalf("resolution failed with %d errors\n", m.NErrors())
	}
	return m
}

func Test_search01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("search01. closest node and element")

	m := twoPanels(tst)
	chk.Int(tst, "closest node", m.ClosestNode([]float64{9.9, 0.1, 0}).Id, 4)
	chk.Int(tst, "closest shell", m.ClosestElement([]float64{9.9, 0.1, 0}, ele.Shell).Id(), 2)
	chk.Int(tst, "closest any", m.ClosestElement([]float64{0.1, 0.1, 0}, 0).Id(), 1)
}

func Test_search02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("search02. inverse mapping with group restriction")

	m := twoPanels(tst)

	// point on the far panel
	found, xi := m.InvertMapping([]float64{10.5, 0.2, 0}, nil)
	if found == nil {
		tst.Errorf("inverse mapping found nothing\n")
		return
	}
	chk.Int(tst, "element id", found.Id(), 2)
	chk.Array(tst, "xi", 1e-14, xi, []float64{0.5, 0.2})

	// point on the near panel
	found, _ = m.InvertMapping([]float64{0.2, 0.3, 0}, nil)
	if found == nil || found.Id() != 1 {
		tst.Errorf("inverse mapping missed the near panel\n")
		return
	}

	// restricting to the left group hides the far panel
	found, _ = m.InvertMapping([]float64{10.5, 0.2, 0}, m.FindGroup(1))
	if found != nil {
		tst.Errorf("group restriction not honored\n")
	}
}

func Test_search03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("search03. attachment node: DOF count beats distance")

	m := NewModel(0, 0)
	full := addNodeAt(tst, m, 1, []float64{0.05, 0, 0})
	full.Dofs |= msh.AllDofs
	part := addNodeAt(tst, m, 2, []float64{0.01, 0, 0})
	part.Dofs |= msh.Tx

	best := m.FreeNodeAtPoint([]float64{0, 0, 0}, 0.5, msh.TransDofs)
	if best == nil {
		tst.Errorf("no node found\n")
		return
	}
	chk.Int(tst, "best node", best.Id, 1)

	// nothing inside the tolerance box
	if m.FreeNodeAtPoint([]float64{5, 0, 0}, 0.5, msh.TransDofs) != nil {
		tst.Errorf("tolerance box not honored\n")
	}
}

func Test_search04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("search04. attachment node: reference-node priority chain")

	build := func() (*Model, *msh.Node, *msh.Node) {
		m := NewModel(0, 0)
		ref := addNodeAt(tst, m, 1, []float64{0, 0, 0})
		ref.Dofs |= msh.AllDofs | msh.RefNode
		free := addNodeAt(tst, m, 2, []float64{0.1, 0, 0})
		free.Dofs |= msh.Tx
		return m, ref, free
	}

	// a partially free node loses to the reference node
	m, _, _ := build()
	chk.Int(tst, "ref wins", m.FreeNodeAtPoint([]float64{0, 0, 0}, 1, msh.TransDofs).Id, 1)

	// unless the two are already linked through a coupling element
	m, ref, free := build()
	spring, _ := ele.New(ele.Spring2Name, 1)
	spring.SetNodeIds([]int{1, 2})
	spring.NodeRefs()[0].Resolve(ref)
	spring.NodeRefs()[1].Resolve(free)
	if err := m.AddElement(spring, false); err != nil {
		tst.Errorf("test failed: %v\n", err)
		return
	}
	chk.Int(tst, "coupled free wins", m.FreeNodeAtPoint([]float64{0, 0, 0}, 1, msh.TransDofs).Id, 2)

	// a fully attachable free node beats the reference node outright
	m, _, _ = build()
	att := addNodeAt(tst, m, 3, []float64{0.2, 0, 0})
	att.Dofs |= msh.AllDofs
	chk.Int(tst, "attachable wins", m.FreeNodeAtPoint([]float64{0, 0, 0}, 1, msh.TransDofs).Id, 3)
}

func Test_search05(tst *testing.T) {

	//verbose()
	chk.PrintTitle("search05. attachment node: distance and external tie-breaks")

	m := NewModel(0, 0)
	far := addNodeAt(tst, m, 1, []float64{0.3, 0, 0})
	far.Dofs |= msh.AllDofs
	near := addNodeAt(tst, m, 2, []float64{0.1, 0, 0})
	near.Dofs |= msh.AllDofs
	chk.Int(tst, "closer wins", m.FreeNodeAtPoint([]float64{0, 0, 0}, 1, msh.TransDofs).Id, 2)

	// equal DOFs and distance: external status decides
	m = NewModel(0, 0)
	plain := addNodeAt(tst, m, 1, []float64{0.1, 0, 0})
	plain.Dofs |= msh.AllDofs
	ext := addNodeAt(tst, m, 2, []float64{-0.1, 0, 0})
	ext.Dofs |= msh.AllDofs | msh.External
	chk.Int(tst, "external wins", m.FreeNodeAtPoint([]float64{0, 0, 0}, 1, msh.TransDofs).Id, 2)
}
