// Copyright 2024 The OpenFedem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/openfedem/fedem-foundation-sub001/ele"
	"github.com/openfedem/fedem-foundation-sub001/msh"
)

// splitParabolic subdivides every parabolic beam, and every parabolic shell
// when splitShells is set, into the equivalent linear elements. Replacement
// elements take fresh IDs above the current maximum; extra mid-side nodes
// take fresh node IDs likewise. Groups that referenced a subdivided element
// are remapped to the replacement IDs. Runs on sorted collections, before
// any reference has been linked.
func (o *Model) splitParabolic(splitShells bool) {

	// fresh-ID allocators; collections are sorted, so the maxima sit last
	maxEid := 0
	if n := len(o.Elems); n > 0 {
		maxEid = o.Elems[n-1].Id()
	}
	maxNid := 0
	if n := len(o.Nodes); n > 0 {
		maxNid = o.Nodes[n-1].Id
	}
	newEid := func() int {
		maxEid++
		return maxEid
	}
	addNode := func(x []float64) *msh.Node {
		maxNid++
		n := msh.NewNode(maxNid, x)
		n.Dofs |= msh.Internal
		o.Nodes = append(o.Nodes, n) // ascending IDs keep the order sorted
		return n
	}

	doomed := make(map[ele.Element]bool)
	var added []ele.Element
	for _, e := range o.Elems {
		s, ok := e.(ele.CanSplit)
		if !ok {
			continue
		}
		if e.Cat() == ele.Shell && !splitShells {
			continue
		}
		repl, err := s.Split(o, newEid, addNode)
		if err != nil {
			o.badRef(err)
			continue
		}
		newIds := make([]int, len(repl))
		for i, r := range repl {
			newIds[i] = r.Id()
		}
		for _, g := range o.Groups {
			g.ReplaceElem(e.Id(), newIds)
		}
		doomed[e] = true
		added = append(added, repl...)
	}
	if len(doomed) == 0 {
		return
	}
	o.removeElems(doomed)
	o.Elems = append(o.Elems, added...)
	o.elemsSorted = false
	o.sortElems(false)
}
