// Copyright 2024 The OpenFedem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package att

import (
	"math"

	"github.com/cpmech/gosl/chk"

	"github.com/openfedem/fedem-foundation-sub001/csum"
)

// type names of geometric attributes
const (
	ThkName     = "thickness"
	ThkRefName  = "thickness ref"
	BeamSecName = "beam section"
	SprName     = "spring"
	MassName    = "lumped mass"
)

// Thk holds a shell thickness
type Thk struct {
	Core
	T float64 `json:"t"` // thickness value
}

// TypeName returns the attribute type name
func (o *Thk) TypeName() string { return ThkName }

// Category returns the attribute category
func (o *Thk) Category() Category { return Geometry }

// Equal compares content, ignoring IDs
func (o *Thk) Equal(other Attribute, tol float64) bool {
	b, ok := other.(*Thk)
	if !ok {
		return false
	}
	return math.Abs(o.T-b.T) <= tol
}

// AddToCheckSum folds content, excluding the ID
func (o *Thk) AddToCheckSum(cs *csum.CheckSum) {
	cs.AddString(ThkName)
	cs.AddFloat(o.T)
}

// ThkRef holds an indirect thickness: a reference to a Thk attribute.
// This is the attribute-to-attribute case handled by resolution step 7.
type ThkRef struct {
	Core
	TId int  `json:"tid"` // ID of referenced thickness
	Thk *Thk // resolved reference
}

// TypeName returns the attribute type name
func (o *ThkRef) TypeName() string { return ThkRefName }

// Category returns the attribute category
func (o *ThkRef) Category() Category { return Geometry }

// Equal compares content, ignoring IDs
func (o *ThkRef) Equal(other Attribute, tol float64) bool {
	b, ok := other.(*ThkRef)
	if !ok {
		return false
	}
	return o.TId == b.TId
}

// AddToCheckSum folds content, excluding the ID
func (o *ThkRef) AddToCheckSum(cs *csum.CheckSum) {
	cs.AddString(ThkRefName)
	cs.AddInt(o.TId)
}

// Resolve links the referenced thickness attribute
func (o *ThkRef) Resolve(db *Db) (err error) {
	if o.Thk != nil {
		return
	}
	a := db.Find(ThkName, o.TId)
	if a == nil {
		return chk.Err("cannot resolve thickness ref {id=%d} to thickness {id=%d}", o.Id(), o.TId)
	}
	o.Thk = a.(*Thk)
	a.IncRef()
	return
}

// BeamSec holds beam cross-section properties
type BeamSec struct {
	Core
	A   float64 `json:"a"`   // cross-section area
	I11 float64 `json:"i11"` // second moment of area about axis 1
	I22 float64 `json:"i22"` // second moment of area about axis 2
	Jtt float64 `json:"jtt"` // torsional constant
}

// TypeName returns the attribute type name
func (o *BeamSec) TypeName() string { return BeamSecName }

// Category returns the attribute category
func (o *BeamSec) Category() Category { return Geometry }

// Equal compares content, ignoring IDs
func (o *BeamSec) Equal(other Attribute, tol float64) bool {
	b, ok := other.(*BeamSec)
	if !ok {
		return false
	}
	return math.Abs(o.A-b.A) <= tol && math.Abs(o.I11-b.I11) <= tol &&
		math.Abs(o.I22-b.I22) <= tol && math.Abs(o.Jtt-b.Jtt) <= tol
}

// AddToCheckSum folds content, excluding the ID
func (o *BeamSec) AddToCheckSum(cs *csum.CheckSum) {
	cs.AddString(BeamSecName)
	cs.AddFloats([]float64{o.A, o.I11, o.I22, o.Jtt})
}

// Spr holds translational/rotational spring stiffnesses, one per DOF
type Spr struct {
	Core
	K [6]float64 `json:"k"` // stiffness per DOF: tx,ty,tz,rx,ry,rz
}

// TypeName returns the attribute type name
func (o *Spr) TypeName() string { return SprName }

// Category returns the attribute category
func (o *Spr) Category() Category { return Geometry }

// Equal compares content, ignoring IDs
func (o *Spr) Equal(other Attribute, tol float64) bool {
	b, ok := other.(*Spr)
	if !ok {
		return false
	}
	for i := 0; i < 6; i++ {
		if math.Abs(o.K[i]-b.K[i]) > tol {
			return false
		}
	}
	return true
}

// AddToCheckSum folds content, excluding the ID
func (o *Spr) AddToCheckSum(cs *csum.CheckSum) {
	cs.AddString(SprName)
	cs.AddFloats(o.K[:])
}

// LumpMass holds a concentrated mass with rotational inertias
type LumpMass struct {
	Core
	M float64    `json:"m"` // translational mass
	J [3]float64 `json:"j"` // rotational inertia about x,y,z
}

// TypeName returns the attribute type name
func (o *LumpMass) TypeName() string { return MassName }

// Category returns the attribute category
func (o *LumpMass) Category() Category { return Geometry }

// Equal compares content, ignoring IDs
func (o *LumpMass) Equal(other Attribute, tol float64) bool {
	b, ok := other.(*LumpMass)
	if !ok {
		return false
	}
	return math.Abs(o.M-b.M) <= tol && math.Abs(o.J[0]-b.J[0]) <= tol &&
		math.Abs(o.J[1]-b.J[1]) <= tol && math.Abs(o.J[2]-b.J[2]) <= tol
}

// AddToCheckSum folds content, excluding the ID
func (o *LumpMass) AddToCheckSum(cs *csum.CheckSum) {
	cs.AddString(MassName)
	cs.AddFloat(o.M)
	cs.AddFloats(o.J[:])
}

func init() {
	SetAllocator(ThkName, func(id int) Attribute {
		a := new(Thk)
		a.SetId(id)
		return a
	})
	SetAllocator(ThkRefName, func(id int) Attribute {
		a := new(ThkRef)
		a.SetId(id)
		return a
	})
	SetAllocator(BeamSecName, func(id int) Attribute {
		a := new(BeamSec)
		a.SetId(id)
		return a
	})
	SetAllocator(SprName, func(id int) Attribute {
		a := new(Spr)
		a.SetId(id)
		return a
	})
	SetAllocator(MassName, func(id int) Attribute {
		a := new(LumpMass)
		a.SetId(id)
		return a
	})
}
