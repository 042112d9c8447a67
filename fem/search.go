// Copyright 2024 The OpenFedem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"math"

	"github.com/openfedem/fedem-foundation-sub001/ele"
	"github.com/openfedem/fedem-foundation-sub001/msh"
)

// ClosestNode returns the node nearest to point x by a linear scan; ties
// are broken by first-encountered in store order
func (o *Model) ClosestNode(x []float64) (best *msh.Node) {
	dmin := math.MaxFloat64
	for _, n := range o.Nodes {
		if d := distSq(n.X, x); d < dmin {
			dmin = d
			best = n
		}
	}
	return
}

// ClosestElement returns the element whose node-centroid is nearest to
// point x, restricted to one category when cat > 0; ties are broken by
// first-encountered in store order
func (o *Model) ClosestElement(x []float64, cat ele.Category) (best ele.Element) {
	dmin := math.MaxFloat64
	for _, e := range o.Elems {
		if cat > 0 && e.Cat() != cat {
			continue
		}
		c, ok := elemCentroid(e)
		if !ok {
			continue
		}
		if d := distSq(c, x); d < dmin {
			dmin = d
			best = e
		}
	}
	return
}

// InvertMapping finds the shell element whose inverse parametric mapping
// contains point x, optionally restricted to a group. The nearest element
// is tried first; on failure every shell whose node-centroid lies within
// its circumscribing-ball radius of x is scanned, and the first success
// wins. Returns nil when no element's mapping contains the point.
func (o *Model) InvertMapping(x []float64, group *Group) (found ele.Element, xi []float64) {
	inGroup := func(e ele.Element) bool {
		if group == nil {
			return true
		}
		for _, r := range group.Elems {
			if r.E == e {
				return true
			}
		}
		return false
	}

	// nearest first
	var nearest ele.CanInvertMap
	dmin := math.MaxFloat64
	for _, e := range o.Elems {
		im, ok := e.(ele.CanInvertMap)
		if !ok || e.Cat() != ele.Shell || !inGroup(e) {
			continue
		}
		c, ok := elemCentroid(e)
		if !ok {
			continue
		}
		if d := distSq(c, x); d < dmin {
			dmin = d
			nearest = im
		}
	}
	if nearest == nil {
		return
	}
	if loc, ok := nearest.InvMap(x); ok {
		return nearest, loc
	}

	// fall back to every shell whose ball contains the point
	for _, e := range o.Elems {
		im, ok := e.(ele.CanInvertMap)
		if !ok || e.Cat() != ele.Shell || !inGroup(e) || im == nearest {
			continue
		}
		c, ok := elemCentroid(e)
		if !ok {
			continue
		}
		if distSq(c, x) > ballRadiusSq(e, c) {
			continue
		}
		if loc, ok := im.InvMap(x); ok {
			return e, loc
		}
	}
	return
}

// FreeNodeAtPoint finds a node near point x suitable for attaching the mesh
// to an outer multibody system. Candidates lie within the cubical tolerance
// box (and the derived spherical tolerance) and either carry the wanted DOF
// set, are externally visible, or are constraint reference nodes.
//
// Selection follows a priority chain, not a total order: (1) a node
// attachable as a free replacement beats a constrained reference node;
// (2) a reference node beats a free node, unless the two are already linked
// through an auxiliary coupling element, in which case the free node wins;
// (3) among the rest, more DOFs win, then closer distance, then external
// status. With a large tolerance box the outcome can depend on the store's
// iteration order; this sensitivity is inherent to the chain and is kept
// as documented behavior.
func (o *Model) FreeNodeAtPoint(x []float64, tol float64, want msh.DofMask) (best *msh.Node) {
	rsq := 3 * tol * tol // circumscribing sphere of the tolerance box
	bestD := 0.0
	for _, n := range o.Nodes {
		if math.Abs(n.X[0]-x[0]) > tol || math.Abs(n.X[1]-x[1]) > tol || math.Abs(n.X[2]-x[2]) > tol {
			continue
		}
		d := distSq(n.X, x)
		if d > rsq {
			continue
		}
		if !n.Dofs.HasAny(want) && n.Dofs&(msh.External|msh.RefNode) == 0 {
			continue
		}
		if best == nil || o.preferNode(n, d, best, bestD, want) {
			best = n
			bestD = d
		}
	}
	return
}

// preferNode reports whether candidate b (at squared distance db) should
// replace the currently held node a in the FreeNodeAtPoint chain
func (o *Model) preferNode(b *msh.Node, db float64, a *msh.Node, da float64, want msh.DofMask) bool {
	attachable := func(n *msh.Node) bool {
		return n.Dofs.HasAll(want) && n.Dofs&msh.RefNode == 0
	}
	isRef := func(n *msh.Node) bool { return n.Dofs&msh.RefNode != 0 }

	// (1) attachable free replacement vs constrained reference node
	if attachable(b) && isRef(a) {
		return true
	}
	if attachable(a) && isRef(b) {
		return false
	}

	// (2) reference node vs free node, with the coupling exception
	if isRef(a) != isRef(b) {
		if isRef(b) {
			return !o.linkedByCoupling(b, a)
		}
		return o.linkedByCoupling(a, b)
	}

	// (3) more DOFs, then closer, then external status
	if na, nb := a.Dofs.NDofs(), b.Dofs.NDofs(); na != nb {
		return nb > na
	}
	if db != da {
		return db < da
	}
	if ae, be := a.Dofs&msh.External != 0, b.Dofs&msh.External != 0; ae != be {
		return be
	}
	return false // first encountered wins
}

// linkedByCoupling tells whether a reference node and a free node are
// already connected through an auxiliary coupling element (spring or beam)
func (o *Model) linkedByCoupling(ref, free *msh.Node) bool {
	for _, e := range o.Elems {
		if e.Cat() != ele.Spring && e.Cat() != ele.Beam {
			continue
		}
		hasRef, hasFree := false, false
		for _, r := range e.NodeRefs() {
			if r.Node == ref {
				hasRef = true
			}
			if r.Node == free {
				hasFree = true
			}
		}
		if hasRef && hasFree {
			return true
		}
	}
	return false
}

// elemCentroid returns the node-centroid of an element with resolved nodes
func elemCentroid(e ele.Element) (c []float64, ok bool) {
	nrefs := e.NodeRefs()
	if len(nrefs) == 0 {
		return
	}
	c = []float64{0, 0, 0}
	for _, r := range nrefs {
		if !r.Resolved() {
			return nil, false
		}
		for k := 0; k < 3; k++ {
			c[k] += r.Node.X[k]
		}
	}
	for k := 0; k < 3; k++ {
		c[k] /= float64(len(nrefs))
	}
	return c, true
}

// ballRadiusSq returns the squared circumscribing-ball radius of an element
// about its centroid c
func ballRadiusSq(e ele.Element, c []float64) (r float64) {
	for _, nr := range e.NodeRefs() {
		if d := distSq(nr.Node.X, c); d > r {
			r = d
		}
	}
	return
}

// distSq returns the squared distance between two points
func distSq(a, b []float64) float64 {
	dx := a[0] - b[0]
	dy := a[1] - b[1]
	dz := a[2] - b[2]
	return dx*dx + dy*dy + dz*dz
}
