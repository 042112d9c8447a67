// Copyright 2024 The OpenFedem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/openfedem/fedem-foundation-sub001/att"
	"github.com/openfedem/fedem-foundation-sub001/msh"
)

// nodeMap implements NodeFinder over a plain map
type nodeMap map[int]*msh.Node

func (m nodeMap) FindNode(id int) *msh.Node { return m[id] }

// elemMap implements ElemFinder over a plain map
type elemMap map[int]Element

func (m elemMap) FindElem(id int) Element { return m[id] }

// buildNodes returns a finder over nodes with ascending IDs starting at 1
func buildNodes(xx ...[]float64) nodeMap {
	nodes := make(nodeMap)
	for i, x := range xx {
		nodes[i+1] = msh.NewNode(i+1, x)
	}
	return nodes
}

// mustNew allocates an element and sets its connectivity
func mustNew(tst *testing.T, typeName string, id int, nodeIds []int) Element {
	e, err := New(typeName, id)
	if err != nil {
		tst.Fatalf("cannot allocate %q: %v\n", typeName, err)
	}
	if err = e.SetNodeIds(nodeIds); err != nil {
		tst.Fatalf("cannot set nodes of %q: %v\n", typeName, err)
	}
	return e
}

// resolveQuiet resolves an element, failing the test on any bad reference
func resolveQuiet(tst *testing.T, e Element, nf NodeFinder, af AttFinder) {
	e.Resolve(nf, elemMap{}, af, func(err error) {
		tst.Errorf("resolution failed: %v\n", err)
	})
}

func Test_solid01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("solid01. tet4 and hex8 volume and mass")

	db := att.NewDb()
	mt, _ := att.New(att.MatName, 1)
	mt.(*att.Mat).Rho = 2.0
	db.Add(mt)

	// unit corner tetrahedron
	nodes := buildNodes([]float64{0, 0, 0}, []float64{1, 0, 0}, []float64{0, 1, 0}, []float64{0, 0, 1})
	tet := mustNew(tst, Tet4Name, 1, []int{1, 2, 3, 4})
	tet.SetAtt(att.MatName, 1)
	resolveQuiet(tst, tet, nodes, db)
	chk.Float64(tst, "tet4 volume", 1e-15, tet.(*Tet4).Volume(), 1.0/6.0)

	// node-order swap inverts the sign
	tet.(*Tet4).SwapNodes()
	chk.Float64(tst, "tet4 inverted volume", 1e-15, tet.(*Tet4).Volume(), -1.0/6.0)
	tet.(*Tet4).SwapNodes()

	m, c, _, ok := tet.(*Tet4).MassProps()
	if !ok {
		tst.Errorf("tet4 mass props failed\n")
		return
	}
	chk.Float64(tst, "tet4 mass", 1e-15, m, 2.0/6.0)
	chk.Array(tst, "tet4 cog", 1e-15, c, []float64{0.25, 0.25, 0.25})

	// connected nodes acquired the translational DOFs
	if !nodes[1].Dofs.HasAll(msh.TransDofs) {
		tst.Errorf("tet4 did not grant translational DOFs\n")
		return
	}
	chk.Int(tst, "node use count", nodes[1].Nrefs, 1)

	// unit cube
	nodes = buildNodes(
		[]float64{0, 0, 0}, []float64{1, 0, 0}, []float64{1, 1, 0}, []float64{0, 1, 0},
		[]float64{0, 0, 1}, []float64{1, 0, 1}, []float64{1, 1, 1}, []float64{0, 1, 1},
	)
	hex := mustNew(tst, Hex8Name, 2, []int{1, 2, 3, 4, 5, 6, 7, 8})
	hex.SetAtt(att.MatName, 1)
	resolveQuiet(tst, hex, nodes, db)
	chk.Float64(tst, "hex8 volume", 1e-14, hex.(*Hex8).Volume(), 1.0)

	m, c, _, ok = hex.(*Hex8).MassProps()
	if !ok {
		tst.Errorf("hex8 mass props failed\n")
		return
	}
	chk.Float64(tst, "hex8 mass", 1e-14, m, 2.0)
	chk.Array(tst, "hex8 cog", 1e-14, c, []float64{0.5, 0.5, 0.5})
	chk.Int(tst, "hex8 nfaces", len(hex.(*Hex8).Faces()), 6)
}

func Test_shell01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("shell01. tri3 and quad4 area, mass and inverse mapping")

	db := att.NewDb()
	mt, _ := att.New(att.MatName, 1)
	mt.(*att.Mat).Rho = 3.0
	db.Add(mt)
	th, _ := att.New(att.ThkName, 1)
	th.(*att.Thk).T = 0.5
	db.Add(th)

	nodes := buildNodes([]float64{0, 0, 0}, []float64{1, 0, 0}, []float64{0, 1, 0})
	tri := mustNew(tst, Tri3Name, 1, []int{1, 2, 3})
	tri.SetAtt(att.MatName, 1)
	tri.SetAtt(att.ThkName, 1)
	resolveQuiet(tst, tri, nodes, db)
	chk.Float64(tst, "tri3 area", 1e-15, tri.(*Tri3).Area(), 0.5)
	chk.Float64(tst, "tri3 volume", 1e-15, tri.(*Tri3).Volume(), 0.25)

	m, c, _, ok := tri.(*Tri3).MassProps()
	if !ok {
		tst.Errorf("tri3 mass props failed\n")
		return
	}
	chk.Float64(tst, "tri3 mass", 1e-15, m, 3.0*0.5*0.5)
	chk.Array(tst, "tri3 cog", 1e-15, c, []float64{1.0 / 3.0, 1.0 / 3.0, 0})

	// inverse mapping: centroid and an outside point
	xi, ok := tri.(*Tri3).InvMap([]float64{1.0 / 3.0, 1.0 / 3.0, 0})
	if !ok {
		tst.Errorf("tri3 inverse mapping failed at centroid\n")
		return
	}
	chk.Array(tst, "tri3 xi", 1e-14, xi, []float64{1.0 / 3.0, 1.0 / 3.0})
	if _, ok := tri.(*Tri3).InvMap([]float64{2, 2, 0}); ok {
		tst.Errorf("tri3 inverse mapping accepted an outside point\n")
		return
	}

	// unit square quad
	nodes = buildNodes([]float64{0, 0, 0}, []float64{1, 0, 0}, []float64{1, 1, 0}, []float64{0, 1, 0})
	qua := mustNew(tst, Quad4Name, 2, []int{1, 2, 3, 4})
	resolveQuiet(tst, qua, nodes, db)
	chk.Float64(tst, "quad4 area", 1e-15, qua.(*Quad4).Area(), 1.0)

	xi, ok = qua.(*Quad4).InvMap([]float64{0.25, 0.75, 0})
	if !ok {
		tst.Errorf("quad4 inverse mapping failed\n")
		return
	}
	chk.Array(tst, "quad4 xi", 1e-10, xi, []float64{-0.5, 0.5})
	if _, ok := qua.(*Quad4).InvMap([]float64{3, 3, 0}); ok {
		tst.Errorf("quad4 inverse mapping accepted an outside point\n")
	}
}

func Test_beam01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("beam01. beam2 length and mass")

	db := att.NewDb()
	mt, _ := att.New(att.MatName, 1)
	mt.(*att.Mat).Rho = 7850.0
	db.Add(mt)
	sec, _ := att.New(att.BeamSecName, 1)
	sec.(*att.BeamSec).A = 0.01
	db.Add(sec)

	nodes := buildNodes([]float64{0, 0, 0}, []float64{3, 4, 0})
	b := mustNew(tst, Beam2Name, 1, []int{1, 2})
	b.SetAtt(att.MatName, 1)
	b.SetAtt(att.BeamSecName, 1)
	resolveQuiet(tst, b, nodes, db)
	chk.Float64(tst, "beam2 length", 1e-14, b.(*Beam2).Length(), 5.0)

	m, c, _, ok := b.(*Beam2).MassProps()
	if !ok {
		tst.Errorf("beam2 mass props failed\n")
		return
	}
	chk.Float64(tst, "beam2 mass", 1e-10, m, 7850.0*0.01*5.0)
	chk.Array(tst, "beam2 cog", 1e-14, c, []float64{1.5, 2, 0})

	// beams grant the full DOF set
	if !nodes[1].Dofs.HasAll(msh.AllDofs) {
		tst.Errorf("beam2 did not grant all DOFs\n")
	}
}

func Test_mass01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("mass01. concentrated mass element")

	db := att.NewDb()
	lm, _ := att.New(att.MassName, 1)
	lm.(*att.LumpMass).M = 12.5
	lm.(*att.LumpMass).J = [3]float64{1, 2, 3}
	db.Add(lm)

	nodes := buildNodes([]float64{1, 2, 3})
	e := mustNew(tst, Mass1Name, 1, []int{1})
	e.SetAtt(att.MassName, 1)
	resolveQuiet(tst, e, nodes, db)

	m, c, J, ok := e.(*Mass1).MassProps()
	if !ok {
		tst.Errorf("mass1 mass props failed\n")
		return
	}
	chk.Float64(tst, "mass", 1e-15, m, 12.5)
	chk.Array(tst, "cog", 1e-15, c, []float64{1, 2, 3})
	chk.Float64(tst, "Jxx", 1e-15, J.At(0, 0), 1)
	chk.Float64(tst, "Jyy", 1e-15, J.At(1, 1), 2)
	chk.Float64(tst, "Jzz", 1e-15, J.At(2, 2), 3)
}

func Test_core01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("core01. connectivity validation and bad references")

	// wrong node count is rejected at the import boundary
	e, err := New(Tet4Name, 1)
	if err != nil {
		tst.Errorf("test failed: %v\n", err)
		return
	}
	if err = e.SetNodeIds([]int{1, 2, 3}); err == nil {
		tst.Errorf("tet4 with 3 nodes must be rejected\n")
		return
	}

	// variable-size elements need at least two nodes
	e, _ = New(RgdName, 2)
	if err = e.SetNodeIds([]int{1}); err == nil {
		tst.Errorf("rgd with 1 node must be rejected\n")
		return
	}

	// missing nodes go to the error sink; resolution continues
	nodes := buildNodes([]float64{0, 0, 0}, []float64{1, 0, 0}, []float64{0, 1, 0})
	e = mustNew(tst, Tet4Name, 1, []int{1, 2, 3, 99})
	nbad := 0
	e.Resolve(nodes, elemMap{}, att.NewDb(), func(err error) { nbad++ })
	chk.Int(tst, "nbad", nbad, 1)
	chk.Int(tst, "nrefs of found node", nodes[1].Nrefs, 1)
}
