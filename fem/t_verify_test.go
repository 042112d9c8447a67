// Copyright 2024 The OpenFedem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/openfedem/fedem-foundation-sub001/ele"
)

// degenerateModel builds one sound, one inverted and one zero-volume tet
func degenerateModel(tst *testing.T) *Model {
	m := NewModel(0, 0)
	addNodeAt(tst, m, 1, []float64{0, 0, 0})
	addNodeAt(tst, m, 2, []float64{1, 0, 0})
	addNodeAt(tst, m, 3, []float64{0, 1, 0})
	addNodeAt(tst, m, 4, []float64{0, 0, 1})
	addNodeAt(tst, m, 5, []float64{1, 1, 0}) // coplanar with 1,2,3
	addElem(tst, m, ele.Tet4Name, 1, []int{1, 2, 3, 4})
	addElem(tst, m, ele.Tet4Name, 2, []int{1, 3, 2, 4}) // inverted order
	addElem(tst, m, ele.Tet4Name, 3, []int{1, 2, 3, 5}) // flat
	if !m.Resolve(false) {
		tst.Fatalf("resolution failed with %d errors\n", m.NErrors())
	}
	return m
}

func Test_verify01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("verify01. zero-volume removal, inversion reported")

	m := degenerateModel(tst)
	nzero, nneg := m.Verify(false)
	chk.Int(tst, "nzero", nzero, 1)
	chk.Int(tst, "nneg", nneg, 1)

	// the flat tet is gone, the inverted one is only reported
	if m.FindElem(3) != nil {
		tst.Errorf("flat element not removed\n")
		return
	}
	chk.Int(tst, "solids", m.CountCat(ele.Solid), 2)
	inv, _ := m.FindElem(2).(ele.WithVolume)
	if inv.Volume() >= 0 {
		tst.Errorf("reported element must stay inverted\n")
		return
	}

	// the model stays resolved through the removal
	if !m.Resolved() {
		tst.Errorf("model lost its resolved state\n")
	}
}

func Test_verify02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("verify02. inverted elements repaired by node-order swap")

	m := degenerateModel(tst)
	nzero, nneg := m.Verify(true)
	chk.Int(tst, "nzero", nzero, 1)
	chk.Int(tst, "nneg", nneg, 1)

	inv, _ := m.FindElem(2).(ele.WithVolume)
	chk.Float64(tst, "repaired volume", 1e-15, inv.Volume(), 1.0/6.0)

	// a second pass finds nothing left to repair
	nzero, nneg = m.Verify(true)
	chk.Int(tst, "nzero second pass", nzero, 0)
	chk.Int(tst, "nneg second pass", nneg, 0)
}
