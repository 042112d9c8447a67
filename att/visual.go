// Copyright 2024 The OpenFedem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package att

import "github.com/openfedem/fedem-foundation-sub001/csum"

// VizName is the type name of visualization detail attributes
const VizName = "visual detail"

// Viz holds a visualization detail record referenced by elements; consumed
// by the tessellation pipeline, never by the solver
type Viz struct {
	Core
	On int `json:"on"` // 1 if the element is shown
}

// TypeName returns the attribute type name
func (o *Viz) TypeName() string { return VizName }

// Category returns the attribute category
func (o *Viz) Category() Category { return Visual }

// Equal compares content, ignoring IDs
func (o *Viz) Equal(other Attribute, tol float64) bool {
	b, ok := other.(*Viz)
	if !ok {
		return false
	}
	return o.On == b.On
}

// AddToCheckSum folds content, excluding the ID
func (o *Viz) AddToCheckSum(cs *csum.CheckSum) {
	cs.AddString(VizName)
	cs.AddInt(o.On)
}

func init() {
	SetAllocator(VizName, func(id int) Attribute {
		a := new(Viz)
		a.SetId(id)
		return a
	})
}
