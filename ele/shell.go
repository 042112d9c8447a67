// Copyright 2024 The OpenFedem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/openfedem/fedem-foundation-sub001/att"
	"github.com/openfedem/fedem-foundation-sub001/msh"
)

// linear shell element type names
const (
	Tri3Name  = "tri3"
	Quad4Name = "quad4"
)

// invMapTol is the parametric containment tolerance of inverse mappings
const invMapTol = 1e-4

// thickness returns the shell thickness from a direct or indirect thickness
// attribute; zero when neither is resolved
func (o *Core) thickness() float64 {
	if a := o.atf(att.ThkName); a != nil {
		return a.(*att.Thk).T
	}
	if a := o.atf(att.ThkRefName); a != nil {
		if tr := a.(*att.ThkRef); tr.Thk != nil {
			return tr.Thk.T
		}
	}
	return 0
}

// shellMass computes m, cog and point-mass inertia for a shell with area a
func (o *Core) shellMass(a float64) (m float64, c []float64, J *mat.SymDense, ok bool) {
	rho := materialRho(o.atf(att.MatName))
	t := o.thickness()
	if rho == 0 || t == 0 || a == 0 || !o.resolvedAll() {
		return
	}
	m = rho * t * a
	c = centroid(o.nrefs)
	J = mat.NewSymDense(3, nil)
	ok = true
	return
}

// triArea returns the area of the triangle a,b,c
func triArea(a, b, c r3.Vec) float64 {
	return r3.Norm(r3.Cross(r3.Sub(b, a), r3.Sub(c, a))) / 2.0
}

// Tri3 is a linear 3-node triangular shell element
type Tri3 struct {
	Core
}

// Area returns the element area
func (o *Tri3) Area() float64 {
	return triArea(o.vec(0), o.vec(1), o.vec(2))
}

// Volume returns area times thickness, or the bare area when no thickness
// attribute is attached
func (o *Tri3) Volume() float64 {
	a := o.Area()
	if t := o.thickness(); t > 0 {
		return a * t
	}
	return a
}

// SwapNodes reverses the winding order
func (o *Tri3) SwapNodes() {
	o.nrefs[1], o.nrefs[2] = o.nrefs[2], o.nrefs[1]
}

// Faces returns the single face
func (o *Tri3) Faces() [][]int {
	return [][]int{{0, 1, 2}}
}

// MassProps returns mass, center of gravity and inertia about the center
func (o *Tri3) MassProps() (m float64, c []float64, J *mat.SymDense, ok bool) {
	return o.shellMass(o.Area())
}

// InvMap inverts the parametric mapping by projecting x onto the element
// plane and solving for the area coordinates
func (o *Tri3) InvMap(x []float64) (xi []float64, ok bool) {
	p0, p1, p2 := o.vec(0), o.vec(1), o.vec(2)
	e1 := r3.Sub(p1, p0)
	e2 := r3.Sub(p2, p0)
	d := r3.Sub(r3.Vec{X: x[0], Y: x[1], Z: x[2]}, p0)
	a11 := r3.Dot(e1, e1)
	a12 := r3.Dot(e1, e2)
	a22 := r3.Dot(e2, e2)
	det := a11*a22 - a12*a12
	if det == 0 {
		return
	}
	b1 := r3.Dot(d, e1)
	b2 := r3.Dot(d, e2)
	u := (a22*b1 - a12*b2) / det
	v := (a11*b2 - a12*b1) / det
	if u < -invMapTol || v < -invMapTol || u+v > 1+invMapTol {
		return
	}
	return []float64{u, v}, true
}

// Quad4 is a linear 4-node quadrilateral shell element
type Quad4 struct {
	Core
}

// Area returns the element area from its two-triangle subdivision
func (o *Quad4) Area() float64 {
	return triArea(o.vec(0), o.vec(1), o.vec(2)) + triArea(o.vec(0), o.vec(2), o.vec(3))
}

// Volume returns area times thickness, or the bare area when no thickness
// attribute is attached
func (o *Quad4) Volume() float64 {
	a := o.Area()
	if t := o.thickness(); t > 0 {
		return a * t
	}
	return a
}

// SwapNodes reverses the winding order
func (o *Quad4) SwapNodes() {
	o.nrefs[1], o.nrefs[3] = o.nrefs[3], o.nrefs[1]
}

// Faces returns the single face
func (o *Quad4) Faces() [][]int {
	return [][]int{{0, 1, 2, 3}}
}

// MassProps returns mass, center of gravity and inertia about the center
func (o *Quad4) MassProps() (m float64, c []float64, J *mat.SymDense, ok bool) {
	return o.shellMass(o.Area())
}

// InvMap inverts the bilinear mapping with a Newton iteration on the
// normal equations of the overdetermined 3x2 system
func (o *Quad4) InvMap(x []float64) (xi []float64, ok bool) {
	p := [4]r3.Vec{o.vec(0), o.vec(1), o.vec(2), o.vec(3)}
	target := r3.Vec{X: x[0], Y: x[1], Z: x[2]}
	var s, t float64 // parametric coordinates in [-1,1]
	for it := 0; it < 25; it++ {
		// shape functions and derivatives
		n := [4]float64{
			(1 - s) * (1 - t) / 4.0,
			(1 + s) * (1 - t) / 4.0,
			(1 + s) * (1 + t) / 4.0,
			(1 - s) * (1 + t) / 4.0,
		}
		dns := [4]float64{-(1 - t) / 4.0, (1 - t) / 4.0, (1 + t) / 4.0, -(1 + t) / 4.0}
		dnt := [4]float64{-(1 - s) / 4.0, -(1 + s) / 4.0, (1 + s) / 4.0, (1 - s) / 4.0}
		var pos, ds, dt r3.Vec
		for i := 0; i < 4; i++ {
			pos = r3.Add(pos, r3.Scale(n[i], p[i]))
			ds = r3.Add(ds, r3.Scale(dns[i], p[i]))
			dt = r3.Add(dt, r3.Scale(dnt[i], p[i]))
		}
		res := r3.Sub(pos, target)
		// normal equations: (JᵀJ) δ = -Jᵀ r
		a11 := r3.Dot(ds, ds)
		a12 := r3.Dot(ds, dt)
		a22 := r3.Dot(dt, dt)
		det := a11*a22 - a12*a12
		if det == 0 {
			return
		}
		b1 := -r3.Dot(ds, res)
		b2 := -r3.Dot(dt, res)
		d1 := (a22*b1 - a12*b2) / det
		d2 := (a11*b2 - a12*b1) / det
		s += d1
		t += d2
		if math.Abs(d1) < 1e-12 && math.Abs(d2) < 1e-12 {
			break
		}
	}
	if math.Abs(s) > 1+invMapTol || math.Abs(t) > 1+invMapTol {
		return
	}
	return []float64{s, t}, true
}

func init() {
	SetAllocator(Tri3Name, func(id int) Element {
		e := new(Tri3)
		e.Init(Tri3Name, Shell, id, 3, msh.AllDofs)
		return e
	})
	SetAllocator(Quad4Name, func(id int) Element {
		e := new(Quad4)
		e.Init(Quad4Name, Shell, id, 4, msh.AllDofs)
		return e
	})
}
