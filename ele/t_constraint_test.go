// Copyright 2024 The OpenFedem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/openfedem/fedem-foundation-sub001/att"
	"github.com/openfedem/fedem-foundation-sub001/csum"
	"github.com/openfedem/fedem-foundation-sub001/msh"
)

func Test_rgd01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("rgd01. rigid constraint topology")

	nodes := buildNodes([]float64{0, 0, 0}, []float64{1, 0, 0}, []float64{0, 1, 0})
	e := mustNew(tst, RgdName, 1, []int{1, 2, 3})
	resolveQuiet(tst, e, nodes, att.NewDb())

	c := e.(ConstraintElem)
	chk.Int(tst, "reference node", c.RefRef().Id, 1)
	chk.Int(tst, "number of dependents", len(c.DepRefs()), 2)

	// constraint elements grant no DOFs but flag the topology roles
	chk.Int(tst, "ndofs of reference", nodes[1].Dofs.NDofs(), 0)
	if nodes[1].Dofs&msh.RefNode == 0 {
		tst.Errorf("reference node not flagged\n")
		return
	}
	if nodes[2].Dofs&msh.Slave == 0 || nodes[3].Dofs&msh.Slave == 0 {
		tst.Errorf("dependent nodes not flagged\n")
		return
	}

	// dropping a dependent leaves the reference in place
	c.DropDep(0)
	chk.Int(tst, "dependents after drop", len(c.DepRefs()), 1)
	chk.Int(tst, "remaining dependent", c.DepRefs()[0].Id, 3)
	chk.Int(tst, "nrefs of dropped node", nodes[2].Nrefs, 0)
}

func Test_wavgm01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("wavgm01. weight redistribution conserves per-DOF sums")

	e := mustNew(tst, WavgmName, 1, []int{100, 1, 2, 3})
	w := e.(*Wavgm)
	w.W = []float64{1, 2, 3, 4, 5, 6}
	w.IndC = [6]int{0, 3, -1, -1, -1, -1}

	chk.Float64(tst, "sum tx before", 1e-15, w.WeightSum(0), 6)
	chk.Float64(tst, "sum ty before", 1e-15, w.WeightSum(1), 15)
	chk.Float64(tst, "sum tz before", 1e-15, w.WeightSum(2), 0)

	// drop the middle dependent; remaining weights are rescaled
	w.DropDep(1)
	chk.Int(tst, "dependents after drop", len(w.DepRefs()), 2)
	chk.Float64(tst, "sum tx after", 1e-14, w.WeightSum(0), 6)
	chk.Float64(tst, "sum ty after", 1e-14, w.WeightSum(1), 15)
	chk.Array(tst, "tx block", 1e-14, w.W[0:2], []float64{1.5, 4.5})
	chk.Array(tst, "ty block", 1e-14, w.W[2:4], []float64{6, 9})
	chk.Ints(tst, "offset table", w.IndC[:], []int{0, 2, -1, -1, -1, -1})
}

func Test_wavgm02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("wavgm02. even spread when the dropped node carried the whole sum")

	e := mustNew(tst, WavgmName, 1, []int{100, 1, 2, 3})
	w := e.(*Wavgm)
	w.W = []float64{0, 5, 0}
	w.IndC = [6]int{0, -1, -1, -1, -1, -1}

	w.DropDep(1)
	chk.Array(tst, "tx block", 1e-15, w.W, []float64{2.5, 2.5})
	chk.Float64(tst, "sum tx after", 1e-15, w.WeightSum(0), 5)
}

func Test_wavgm03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("wavgm03. weight table participates in the checksum")

	fold := func(w []float64) uint32 {
		e := mustNew(tst, WavgmName, 1, []int{100, 1, 2})
		wa := e.(*Wavgm)
		wa.W = w
		wa.IndC = [6]int{0, -1, -1, -1, -1, -1}
		cs := csum.New(0)
		wa.AddToCheckSum(cs)
		return cs.Sum()
	}
	if fold([]float64{1, 2}) == fold([]float64{2, 1}) {
		tst.Errorf("checksum ignores the weight table\n")
	}
}
