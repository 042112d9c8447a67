// Copyright 2024 The OpenFedem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/openfedem/fedem-foundation-sub001/att"
	"github.com/openfedem/fedem-foundation-sub001/ele"
)

// addLumpMass adds a 1-node mass element with a lumped mass attribute
func addLumpMass(tst *testing.T, m *Model, eid, nid, aid int, mass float64) {
	a, _ := att.New(att.MassName, aid)
	a.(*att.LumpMass).M = mass
	m.AddAttribute(a)
	e := addElem(tst, m, ele.Mass1Name, eid, []int{nid})
	e.SetAtt(att.MassName, aid)
}

func Test_fmass01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("fmass01. two point masses: total, center and inertia")

	m := NewModel(0, 0)
	addNodeAt(tst, m, 1, []float64{0, 0, 0})
	addNodeAt(tst, m, 2, []float64{2, 0, 0})
	addLumpMass(tst, m, 1, 1, 1, 2)
	addLumpMass(tst, m, 2, 2, 2, 2)

	if !m.Resolve(false) {
		tst.Errorf("resolution failed with %d errors\n", m.NErrors())
		return
	}
	mp := m.MassProperties()
	chk.Float64(tst, "total mass", 1e-14, mp.Mass, 4)
	chk.Array(tst, "center of gravity", 1e-14, mp.Cog, []float64{1, 0, 0})

	// two point masses at distance 1 from the center
	chk.Float64(tst, "Jxx", 1e-14, mp.J.At(0, 0), 0)
	chk.Float64(tst, "Jyy", 1e-14, mp.J.At(1, 1), 4)
	chk.Float64(tst, "Jzz", 1e-14, mp.J.At(2, 2), 4)
	chk.Float64(tst, "Jxy", 1e-14, mp.J.At(0, 1), 0)
}

func Test_fmass02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("fmass02. asymmetric masses: center off the bounding-box middle")

	m := NewModel(0, 0)
	addNodeAt(tst, m, 1, []float64{0, 0, 0})
	addNodeAt(tst, m, 2, []float64{4, 0, 0})
	addLumpMass(tst, m, 1, 1, 1, 3)
	addLumpMass(tst, m, 2, 2, 2, 1)

	if !m.Resolve(false) {
		tst.Errorf("resolution failed with %d errors\n", m.NErrors())
		return
	}
	mp := m.MassProperties()
	chk.Float64(tst, "total mass", 1e-14, mp.Mass, 4)
	chk.Array(tst, "center of gravity", 1e-13, mp.Cog, []float64{1, 0, 0})

	// inertia about the exact center: 3*1^2 + 1*3^2
	chk.Float64(tst, "Jyy", 1e-13, mp.J.At(1, 1), 12)
	chk.Float64(tst, "Jzz", 1e-13, mp.J.At(2, 2), 12)
}

func Test_fmass03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("fmass03. solid mass and the massless model")

	m := NewModel(0, 0)
	unitTet(tst, m, 6000)
	if !m.Resolve(false) {
		tst.Errorf("resolution failed with %d errors\n", m.NErrors())
		return
	}
	mp := m.MassProperties()
	chk.Float64(tst, "tet mass", 1e-10, mp.Mass, 1000)
	chk.Array(tst, "tet cog", 1e-13, mp.Cog, []float64{0.25, 0.25, 0.25})

	// a model without mass-carrying elements stays at the zero state
	m2 := NewModel(0, 0)
	addNodeAt(tst, m2, 1, []float64{0, 0, 0})
	addNodeAt(tst, m2, 2, []float64{1, 0, 0})
	addElem(tst, m2, ele.Spring2Name, 1, []int{1, 2})
	if !m2.Resolve(false) {
		tst.Errorf("resolution failed\n")
		return
	}
	mp = m2.MassProperties()
	chk.Float64(tst, "zero mass", 1e-17, mp.Mass, 0)
	chk.Float64(tst, "zero inertia", 1e-17, mp.J.At(1, 1), 0)
}
