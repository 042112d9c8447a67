// Copyright 2024 The OpenFedem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package att

import (
	"math"

	"github.com/openfedem/fedem-foundation-sub001/csum"
)

// CsysName is the type name of local coordinate system attributes
const CsysName = "coord sys"

// Csys holds a local coordinate system: origin plus rotation matrix rows.
// Referenced by nodes (nodal DOF directions) and loads (orientation).
type Csys struct {
	Core
	O [3]float64    `json:"o"` // origin
	R [3][3]float64 `json:"r"` // rotation matrix; rows are the local axes
}

// NewCsysIdentity returns a coordinate system aligned with the global axes
func NewCsysIdentity(id int) (o *Csys) {
	o = new(Csys)
	o.SetId(id)
	o.R[0][0] = 1
	o.R[1][1] = 1
	o.R[2][2] = 1
	return
}

// TypeName returns the attribute type name
func (o *Csys) TypeName() string { return CsysName }

// Category returns the attribute category
func (o *Csys) Category() Category { return Visual }

// Equal compares content, ignoring IDs
func (o *Csys) Equal(other Attribute, tol float64) bool {
	b, ok := other.(*Csys)
	if !ok {
		return false
	}
	for i := 0; i < 3; i++ {
		if math.Abs(o.O[i]-b.O[i]) > tol {
			return false
		}
		for j := 0; j < 3; j++ {
			if math.Abs(o.R[i][j]-b.R[i][j]) > tol {
				return false
			}
		}
	}
	return true
}

// AddToCheckSum folds content, excluding the ID
func (o *Csys) AddToCheckSum(cs *csum.CheckSum) {
	cs.AddString(CsysName)
	cs.AddFloats(o.O[:])
	for i := 0; i < 3; i++ {
		cs.AddFloats(o.R[i][:])
	}
}

func init() {
	SetAllocator(CsysName, func(id int) Attribute {
		a := new(Csys)
		a.SetId(id)
		return a
	})
}
