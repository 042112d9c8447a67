// Copyright 2024 The OpenFedem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package att

import (
	"math"

	"github.com/openfedem/fedem-foundation-sub001/csum"
)

// MatName is the type name of isotropic material attributes
const MatName = "material"

// Mat holds an isotropic linear-elastic material: Young's modulus, shear
// modulus, Poisson's ratio and mass density
type Mat struct {
	Core
	E   float64 `json:"e"`   // Young's modulus
	G   float64 `json:"g"`   // shear modulus
	Nu  float64 `json:"nu"`  // Poisson's ratio
	Rho float64 `json:"rho"` // mass density
}

// TypeName returns the attribute type name
func (o *Mat) TypeName() string { return MatName }

// Category returns the attribute category
func (o *Mat) Category() Category { return Material }

// Equal compares content, ignoring IDs
func (o *Mat) Equal(other Attribute, tol float64) bool {
	b, ok := other.(*Mat)
	if !ok {
		return false
	}
	return math.Abs(o.E-b.E) <= tol && math.Abs(o.G-b.G) <= tol &&
		math.Abs(o.Nu-b.Nu) <= tol && math.Abs(o.Rho-b.Rho) <= tol
}

// AddToCheckSum folds content, excluding the ID
func (o *Mat) AddToCheckSum(cs *csum.CheckSum) {
	cs.AddString(MatName)
	cs.AddFloats([]float64{o.E, o.G, o.Nu, o.Rho})
}

func init() {
	SetAllocator(MatName, func(id int) Attribute {
		a := new(Mat)
		a.SetId(id)
		return a
	})
}
