// Copyright 2024 The OpenFedem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package fem implements the in-memory model store for one finite-element
// part: it owns all nodes, elements, attributes, groups and loads, and
// guarantees their mutual referential and topological consistency
package fem

import (
	"sort"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/openfedem/fedem-foundation-sub001/att"
	"github.com/openfedem/fedem-foundation-sub001/ele"
	"github.com/openfedem/fedem-foundation-sub001/msh"
)

// resolution states of the store
const (
	stUnresolved = iota
	stResolving
	stResolved
)

// Model is the mesh store: the single owner of every node, element,
// attribute, group and load of one FE part. Elements hold non-owning
// references into the node and attribute collections; all bookkeeping is by
// reference counts.
//
// Usage follows a strict add-then-resolve-then-query phase discipline: any
// Add call clears the resolved state and all lazily built caches, and
// queries that need resolved pointers must not be interleaved with
// unresolved mutations.
type Model struct {

	// configuration
	MaxNodes int // unsorted node-insert cap; 0 means unlimited
	MaxElems int // unsorted element-insert cap; 0 means unlimited

	// collections
	Nodes  []*msh.Node   // all nodes
	Elems  []ele.Element // all elements
	Atts   *att.Db       // all attributes
	Groups []*Group      // user-defined element subsets
	Loads  []*Load       // external loads; IDs may repeat

	// state
	state      int  // resolution state machine
	oversized  bool // a size cap was hit; further unsorted inserts rejected
	looseNodes bool // some nodes carry no DOFs after resolution
	nErrors    int  // accumulated resolution errors

	// lazily built caches, invalidated on mutation
	nodesSorted  bool
	elemsSorted  bool
	groupsSorted bool
	countsOk     bool
	catCounts    map[ele.Category]int
	calcCount    int
}

// NewModel returns a new empty model store. maxNodes/maxElems of zero mean
// no size limit.
func NewModel(maxNodes, maxElems int) (o *Model) {
	o = new(Model)
	o.MaxNodes = maxNodes
	o.MaxElems = maxElems
	o.Atts = att.NewDb()
	o.nodesSorted = true
	o.elemsSorted = true
	o.groupsSorted = true
	return
}

// Resolved tells whether every ID-based cross-reference has been converted
// to a live link
func (o *Model) Resolved() bool { return o.state == stResolved }

// HasLooseNodes tells whether some nodes carried no DOFs after resolution
func (o *Model) HasLooseNodes() bool { return o.looseNodes }

// NErrors returns the number of errors accumulated by the last resolution
func (o *Model) NErrors() int { return o.nErrors }

// AddNode appends a node. With sortOnInsert the collection is kept sorted;
// otherwise only the size cap is enforced.
func (o *Model) AddNode(n *msh.Node, sortOnInsert bool) (err error) {
	if !sortOnInsert {
		if o.oversized || (o.MaxNodes > 0 && len(o.Nodes) >= o.MaxNodes) {
			o.oversized = true
			return chk.Err("node limit (%d) exceeded; cannot add node %d", o.MaxNodes, n.Id)
		}
	}
	o.mutated()
	if sortOnInsert {
		i := sort.Search(len(o.Nodes), func(i int) bool { return o.Nodes[i].Id >= n.Id })
		o.Nodes = append(o.Nodes, nil)
		copy(o.Nodes[i+1:], o.Nodes[i:])
		o.Nodes[i] = n
		return
	}
	o.nodesSorted = o.nodesSorted && (len(o.Nodes) == 0 || o.Nodes[len(o.Nodes)-1].Id < n.Id)
	o.Nodes = append(o.Nodes, n)
	return
}

// AddElement appends an element. With sortOnInsert the collection is kept
// sorted; otherwise only the size cap is enforced.
func (o *Model) AddElement(e ele.Element, sortOnInsert bool) (err error) {
	if !sortOnInsert {
		if o.oversized || (o.MaxElems > 0 && len(o.Elems) >= o.MaxElems) {
			o.oversized = true
			return chk.Err("element limit (%d) exceeded; cannot add element %d", o.MaxElems, e.Id())
		}
	}
	o.mutated()
	if sortOnInsert {
		i := sort.Search(len(o.Elems), func(i int) bool { return o.Elems[i].Id() >= e.Id() })
		o.Elems = append(o.Elems, nil)
		copy(o.Elems[i+1:], o.Elems[i:])
		o.Elems[i] = e
		return
	}
	o.elemsSorted = o.elemsSorted && (len(o.Elems) == 0 || o.Elems[len(o.Elems)-1].Id() < e.Id())
	o.Elems = append(o.Elems, e)
	return
}

// AddAttribute appends an attribute to the attribute database
func (o *Model) AddAttribute(a att.Attribute) {
	o.mutated()
	o.Atts.Add(a)
}

// AddGroup appends a group
func (o *Model) AddGroup(g *Group) {
	o.mutated()
	o.groupsSorted = o.groupsSorted && (len(o.Groups) == 0 || o.Groups[len(o.Groups)-1].Id < g.Id)
	o.Groups = append(o.Groups, g)
}

// AddLoad appends a load. Load IDs are not required unique: multiple loads
// may share an ID, e.g. the components of one load case.
func (o *Model) AddLoad(l *Load) {
	o.mutated()
	o.Loads = append(o.Loads, l)
}

// FindNode returns the node with given ID, or nil. The collection is lazily
// sorted before the binary search.
func (o *Model) FindNode(id int) *msh.Node {
	if !o.nodesSorted {
		o.sortNodes(false)
	}
	i := sort.Search(len(o.Nodes), func(i int) bool { return o.Nodes[i].Id >= id })
	if i < len(o.Nodes) && o.Nodes[i].Id == id {
		return o.Nodes[i]
	}
	return nil
}

// FindElem returns the element with given ID, or nil
func (o *Model) FindElem(id int) ele.Element {
	if !o.elemsSorted {
		o.sortElems(false)
	}
	i := sort.Search(len(o.Elems), func(i int) bool { return o.Elems[i].Id() >= id })
	if i < len(o.Elems) && o.Elems[i].Id() == id {
		return o.Elems[i]
	}
	return nil
}

// FindGroup returns the group with given ID, or nil
func (o *Model) FindGroup(id int) *Group {
	if !o.groupsSorted {
		o.sortGroups(false)
	}
	i := sort.Search(len(o.Groups), func(i int) bool { return o.Groups[i].Id >= id })
	if i < len(o.Groups) && o.Groups[i].Id == id {
		return o.Groups[i]
	}
	return nil
}

// ElemByIndex returns the element at internal index i (insertion/sorted
// order); used by solver-facing code that iterates densely
func (o *Model) ElemByIndex(i int) ele.Element {
	if i < 0 || i >= len(o.Elems) {
		return nil
	}
	return o.Elems[i]
}

// SortNodes canonicalizes the node ordering. Duplicate IDs are warnings;
// the later occurrence is deleted if delDup. Sorting is rejected once the
// model is resolved, since pointer cross-references would dangle after a
// deletion.
func (o *Model) SortNodes(delDup bool) (err error) {
	if o.state == stResolved {
		return chk.Err("cannot sort nodes after the model has been resolved")
	}
	o.sortNodes(delDup)
	return
}

// SortElems canonicalizes the element ordering; see SortNodes
func (o *Model) SortElems(delDup bool) (err error) {
	if o.state == stResolved {
		return chk.Err("cannot sort elements after the model has been resolved")
	}
	o.sortElems(delDup)
	return
}

// SortGroups canonicalizes the group ordering; see SortNodes
func (o *Model) SortGroups(delDup bool) (err error) {
	if o.state == stResolved {
		return chk.Err("cannot sort groups after the model has been resolved")
	}
	o.sortGroups(delDup)
	return
}

// CountCat returns the number of elements in one category; cached until the
// element collection mutates
func (o *Model) CountCat(cat ele.Category) int {
	o.updateCounts()
	return o.catCounts[cat]
}

// CountCalc returns the number of calculation-enabled elements; cached
// until the element collection mutates
func (o *Model) CountCalc() int {
	o.updateCounts()
	return o.calcCount
}

// BBox returns the bounding box of all node positions
func (o *Model) BBox() (xmin, xmax []float64) {
	xmin = []float64{0, 0, 0}
	xmax = []float64{0, 0, 0}
	for i, n := range o.Nodes {
		for k := 0; k < 3; k++ {
			if i == 0 || n.X[k] < xmin[k] {
				xmin[k] = n.X[k]
			}
			if i == 0 || n.X[k] > xmax[k] {
				xmax[k] = n.X[k]
			}
		}
	}
	return
}

// VertexArray returns node positions as a dense xyz-interleaved array
// addressable by each node's running index; the visualization boundary
// builds its own adjacency structures on top of this
func (o *Model) VertexArray() (xyz []float64) {
	xyz = make([]float64, 3*len(o.Nodes))
	for _, n := range o.Nodes {
		copy(xyz[3*n.RunIdx:], n.X)
	}
	return
}

// String returns a one-line summary of the store
func (o *Model) String() string {
	return io.Sf("model{nodes=%d, elems=%d, atts=%d, groups=%d, loads=%d, resolved=%v}",
		len(o.Nodes), len(o.Elems), o.Atts.Count(), len(o.Groups), len(o.Loads), o.Resolved())
}

// auxiliary functions //////////////////////////////////////////////////////////////////////////////

// mutated clears the resolved state and all lazily built caches
func (o *Model) mutated() {
	o.state = stUnresolved
	o.countsOk = false
}

// updateCounts rebuilds the cached element counters
func (o *Model) updateCounts() {
	if o.countsOk {
		return
	}
	o.catCounts = make(map[ele.Category]int)
	o.calcCount = 0
	for _, e := range o.Elems {
		o.catCounts[e.Cat()]++
		if e.Calc() {
			o.calcCount++
		}
	}
	o.countsOk = true
}

// sortNodes sorts and reports/deletes duplicates
func (o *Model) sortNodes(delDup bool) (ndup int) {
	if !o.nodesSorted {
		sort.SliceStable(o.Nodes, func(i, j int) bool { return o.Nodes[i].Id < o.Nodes[j].Id })
	}
	keep := o.Nodes[:0]
	for i, n := range o.Nodes {
		if i > 0 && n.Id == keep[len(keep)-1].Id {
			ndup++
			io.Pforan("warning: duplicated node {id=%d}\n", n.Id)
			if delDup {
				continue
			}
		}
		keep = append(keep, n)
	}
	o.Nodes = keep
	o.nodesSorted = true
	return
}

// sortElems sorts and reports/deletes duplicates. An ID is duplicated only
// within the same topological category.
func (o *Model) sortElems(delDup bool) (ndup int) {
	if !o.elemsSorted {
		sort.SliceStable(o.Elems, func(i, j int) bool { return o.Elems[i].Id() < o.Elems[j].Id() })
	}
	keep := o.Elems[:0]
	seen := make(map[ele.Category]bool) // categories kept within the current equal-ID run
	runId := 0
	for i, e := range o.Elems {
		if i == 0 || e.Id() != runId {
			runId = e.Id()
			clear(seen)
		}
		if seen[e.Cat()] {
			ndup++
			io.Pforan("warning: duplicated element {type=%q, id=%d}\n", e.TypeName(), e.Id())
			if delDup {
				continue
			}
		}
		seen[e.Cat()] = true
		keep = append(keep, e)
	}
	o.Elems = keep
	o.elemsSorted = true
	o.countsOk = false
	return
}

// sortGroups sorts and reports/deletes duplicates
func (o *Model) sortGroups(delDup bool) (ndup int) {
	if !o.groupsSorted {
		sort.SliceStable(o.Groups, func(i, j int) bool { return o.Groups[i].Id < o.Groups[j].Id })
	}
	keep := o.Groups[:0]
	for i, g := range o.Groups {
		if i > 0 && g.Id == keep[len(keep)-1].Id {
			ndup++
			io.Pforan("warning: duplicated group {id=%d}\n", g.Id)
			if delDup {
				continue
			}
		}
		keep = append(keep, g)
	}
	o.Groups = keep
	o.groupsSorted = true
	return
}

// removeElems deletes the given elements from the collection and purges
// them from every group; use counts of their nodes and attributes are
// decremented
func (o *Model) removeElems(doomed map[ele.Element]bool) {
	if len(doomed) == 0 {
		return
	}
	type detacher interface{ Detach() }
	keep := o.Elems[:0]
	for _, e := range o.Elems {
		if doomed[e] {
			if d, ok := e.(detacher); ok {
				d.Detach()
			}
			continue
		}
		keep = append(keep, e)
	}
	o.Elems = keep
	o.countsOk = false
	ids := make(map[int]bool)
	for e := range doomed {
		ids[e.Id()] = true
	}
	for _, g := range o.Groups {
		g.RemoveElems(ids)
	}
}
