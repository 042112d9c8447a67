// Copyright 2024 The OpenFedem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/cpmech/gosl/io"

	"github.com/openfedem/fedem-foundation-sub001/msh"
)

// reporting caps: resolution failures and unused-entity notes beyond these
// counts are suppressed while processing continues
const (
	maxErrReports  = 100
	maxNoteReports = 50
)

// Resolve converts every ID-based cross-reference recorded during import
// into a live link, performing the structural repair passes on the way.
// Parabolic beams are always subdivided into linear ones; parabolic shells
// only when splitParaShells is set.
//
// Failures are per-entity and non-fatal: the pass continues best-effort and
// the model ends Resolved only when no error occurred. A partially resolved
// store is valid for further repair and diagnostics, not for solving.
func (o *Model) Resolve(splitParaShells bool) bool {

	// short-circuit: nothing to do on a resolved model
	if o.state == stResolved {
		return true
	}
	o.state = stResolving
	o.nErrors = 0

	// 1: canonicalize ordering; duplicates are reported but never deleted
	// here, since deletion after pointer-linking is unsafe
	o.sortNodes(false)
	o.sortElems(false)
	o.sortGroups(false)
	o.Atts.Sort(false)

	// 2: subdivide parabolic elements
	o.splitParabolic(splitParaShells)

	// 3: node local coordinate systems
	for _, n := range o.Nodes {
		if n.Csys.Id >= 0 && !n.Csys.Resolved() {
			if err := n.Csys.Resolve(o.Atts); err != nil {
				o.badRef(err)
			}
		}
	}

	// 4: element node/element/attribute/visualization references
	for _, e := range o.Elems {
		e.Resolve(o, o, o.Atts, o.badRef)
	}

	// 5: loads
	for _, l := range o.Loads {
		l.Resolve(o, o, o.Atts, o.badRef)
	}

	// 6: groups
	for _, g := range o.Groups {
		g.Resolve(o, o.badRef)
	}

	// 7: attribute-to-attribute references
	o.Atts.ResolveAll(o.badRef)

	// 8: constraint repair
	o.repairConstraints()

	// 9: unused entities
	o.purgeUnused()

	// 10: final state
	o.looseNodes = false
	for _, n := range o.Nodes {
		if n.Dofs.NDofs() == 0 {
			o.looseNodes = true
			break
		}
	}
	for i, n := range o.Nodes {
		n.RunIdx = i
	}
	if o.nErrors == 0 {
		o.state = stResolved
		return true
	}
	io.PfRed("model resolution failed with %d errors\n", o.nErrors)
	o.state = stUnresolved
	return false
}

// badRef counts one resolution failure and reports it up to the cap
func (o *Model) badRef(err error) {
	o.nErrors++
	if o.nErrors <= maxErrReports {
		io.Pforan("warning: %v\n", err)
		return
	}
	if o.nErrors == maxErrReports+1 {
		io.Pf("note: further resolution errors suppressed\n")
	}
}

// purgeUnused deletes nodes and attributes whose reference count is zero
// after resolution. External nodes and load targets are kept regardless.
func (o *Model) purgeUnused() {
	pinned := make(map[*msh.Node]bool)
	for _, l := range o.Loads {
		if l.Node.Resolved() {
			pinned[l.Node.Node] = true
		}
	}
	ndel := 0
	keep := o.Nodes[:0]
	for _, n := range o.Nodes {
		if n.Nrefs == 0 && n.Dofs&msh.External == 0 && !pinned[n] {
			if ndel < maxNoteReports {
				io.Pf("note: removing unused node {id=%d}\n", n.Id)
			}
			ndel++
			if n.Csys.Resolved() {
				n.Csys.A.DecRef()
			}
			continue
		}
		keep = append(keep, n)
	}
	if ndel > maxNoteReports {
		io.Pf("note: %d further unused nodes removed (reports suppressed)\n", ndel-maxNoteReports)
	}
	o.Nodes = keep
	o.Atts.PurgeUnused(maxNoteReports)
}
