// Copyright 2024 The OpenFedem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/openfedem/fedem-foundation-sub001/att"
	"github.com/openfedem/fedem-foundation-sub001/csum"
	"github.com/openfedem/fedem-foundation-sub001/ele"
	"github.com/openfedem/fedem-foundation-sub001/msh"
)

// CsMask selects which entity categories participate in the whole-model
// checksum
type CsMask uint32

// checksum exclusion flags
const (
	CsNoGroups     CsMask = 1 << iota // exclude group membership
	CsNoStrainCoat                    // exclude strain-coat elements
	CsNoVisuals                       // exclude visualization records
	CsNoExternal                      // exclude node external metadata
)

// CheckSum produces a deterministic fingerprint of the model over a fixed
// traversal order: elements in ID order, nodes in ID order, loads in store
// order, attributes in type-then-ID order, then groups in ID order. Two
// models are considered equivalent for the masked categories iff their
// checksums match; this is hash equality, collisions are accepted.
//
// A precision > 0 truncates floating fields to that many significant digits
// before folding, making the digest stable across representation noise.
func (o *Model) CheckSum(mask CsMask, precision int) uint32 {
	cs := csum.New(precision)

	for _, e := range o.Elems {
		if mask&CsNoStrainCoat != 0 && e.Cat() == ele.StrainCoat {
			continue
		}
		e.AddToCheckSum(cs)
	}

	for _, n := range o.Nodes {
		cs.AddInt(n.Id)
		cs.AddFloats(n.X)
		dofs := n.Dofs
		if mask&CsNoExternal != 0 {
			dofs &^= msh.External
		}
		cs.AddInt(int(dofs))
		cs.AddInt(n.Csys.Id)
	}

	for _, l := range o.Loads {
		cs.AddInt(l.Id)
		cs.AddInt(l.Node.Id)
		cs.AddInt(l.Elem.Id)
		cs.AddFloats(l.Value)
		cs.AddInt(l.Csys.Id)
	}

	o.Atts.Each(func(a att.Attribute) {
		if mask&CsNoVisuals != 0 && a.Category() == att.Visual {
			return
		}
		cs.AddInt(a.Id())
		a.AddToCheckSum(cs)
	})

	if mask&CsNoGroups == 0 {
		for _, g := range o.Groups {
			cs.AddInt(g.Id)
			cs.AddString(g.Name)
			for _, r := range g.Elems {
				cs.AddInt(r.Id)
			}
		}
	}
	return cs.Sum()
}
