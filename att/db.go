// Copyright 2024 The OpenFedem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package att

import (
	"sort"

	"github.com/cpmech/gosl/io"

	"github.com/openfedem/fedem-foundation-sub001/csum"
)

// EqualTol is the tolerance used when comparing float fields of two
// attributes for structural equality
const EqualTol = 1e-10

// Db implements the attribute database: per-type collections with lazy
// ID-sorting, binary-search lookup and content-based deduplication.
//
// The two deduplication strategies (AddUnique and AddUniqueCS) implement the
// same contract but must not be mixed on the same attribute type within one
// model: the checksum index only sees attributes inserted through
// AddUniqueCS, so mixing would leave it incomplete.
type Db struct {
	all    map[string][]Attribute // type name => collection
	sorted map[string]bool        // type name => ID-ascending since last mutation
	csidx  map[string]map[uint32]Attribute // type name => content checksum => canonical instance
}

// NewDb returns a new attribute database
func NewDb() (o *Db) {
	o = new(Db)
	o.all = make(map[string][]Attribute)
	o.sorted = make(map[string]bool)
	o.csidx = make(map[string]map[uint32]Attribute)
	return
}

// Add appends an attribute to its type's collection
func (o *Db) Add(a Attribute) {
	tn := a.TypeName()
	n := len(o.all[tn])
	o.sorted[tn] = n == 0 || (o.sorted[tn] && o.all[tn][n-1].Id() < a.Id())
	o.all[tn] = append(o.all[tn], a)
}

// Find returns the attribute with given type name and ID, or nil. The
// collection is lazily sorted before the binary search.
func (o *Db) Find(typeName string, id int) Attribute {
	o.sortOne(typeName, false)
	list := o.all[typeName]
	i := sort.Search(len(list), func(i int) bool { return list[i].Id() >= id })
	if i < len(list) && list[i].Id() == id {
		return list[i]
	}
	return nil
}

// AddUnique inserts a by direct comparison: if a structurally identical
// attribute of the same type already exists, its ID is returned and the
// candidate is discarded; otherwise the candidate is inserted and its own ID
// returned.
func (o *Db) AddUnique(a Attribute) (id int) {
	for _, b := range o.all[a.TypeName()] {
		if b.Equal(a, EqualTol) {
			return b.Id()
		}
	}
	o.Add(a)
	return a.Id()
}

// AddUniqueCS inserts a using the checksum index: the candidate's content
// checksum (excluding its ID) is looked up in the type's index and, on a hit,
// the canonical instance's ID is returned and the candidate discarded.
// O(1) expected; equivalent to AddUnique as long as checksums do not collide.
func (o *Db) AddUniqueCS(a Attribute) (id int) {
	tn := a.TypeName()
	idx, ok := o.csidx[tn]
	if !ok {
		idx = make(map[uint32]Attribute)
		o.csidx[tn] = idx
	}
	cs := csum.New(0)
	a.AddToCheckSum(cs)
	if b, ok := idx[cs.Sum()]; ok {
		return b.Id()
	}
	idx[cs.Sum()] = a
	o.Add(a)
	return a.Id()
}

// Sort canonicalizes the ordering of every type's collection. Duplicate IDs
// within one type are reported; the later occurrence is deleted if delDup.
func (o *Db) Sort(delDup bool) (ndup int) {
	for tn := range o.all {
		ndup += o.sortOne(tn, delDup)
	}
	return
}

// ResolveAll resolves attribute-to-attribute references. Each failure is
// passed to the bad sink.
func (o *Db) ResolveAll(bad func(err error)) {
	for _, list := range o.all {
		for _, a := range list {
			if err := a.Resolve(o); err != nil {
				bad(err)
			}
		}
	}
}

// PurgeUnused deletes attributes whose reference count is zero, emitting an
// informational note for each up to maxReports
func (o *Db) PurgeUnused(maxReports int) (ndel int) {
	for tn, list := range o.all {
		keep := list[:0]
		var gone []Attribute
		for _, a := range list {
			if a.Nrefs() == 0 {
				if ndel < maxReports {
					io.Pf("note: removing unused attribute {type=%q, id=%d}\n", tn, a.Id())
				}
				ndel++
				gone = append(gone, a)
				continue
			}
			keep = append(keep, a)
		}
		o.all[tn] = keep
		o.dropFromIdx(tn, gone)
	}
	if ndel > maxReports {
		io.Pf("note: %d further unused attributes removed (reports suppressed)\n", ndel-maxReports)
	}
	return
}

// Count returns the total number of stored attributes
func (o *Db) Count() (n int) {
	for _, list := range o.all {
		n += len(list)
	}
	return
}

// CountType returns the number of attributes of one type
func (o *Db) CountType(typeName string) int {
	return len(o.all[typeName])
}

// Each calls fcn for every attribute in type-name-then-ID order. This is the
// deterministic traversal used by the model checksum.
func (o *Db) Each(fcn func(a Attribute)) {
	names := make([]string, 0, len(o.all))
	for tn := range o.all {
		names = append(names, tn)
	}
	sort.Strings(names)
	for _, tn := range names {
		o.sortOne(tn, false)
		for _, a := range o.all[tn] {
			fcn(a)
		}
	}
}

// sortOne sorts one type's collection if needed and handles duplicates
func (o *Db) sortOne(typeName string, delDup bool) (ndup int) {
	if o.sorted[typeName] && !delDup {
		return
	}
	list := o.all[typeName]
	if !o.sorted[typeName] {
		sort.SliceStable(list, func(i, j int) bool { return list[i].Id() < list[j].Id() })
	}
	keep := list[:0]
	var gone []Attribute
	for i, a := range list {
		if i > 0 && a.Id() == keep[len(keep)-1].Id() {
			ndup++
			io.Pforan("warning: duplicated attribute {type=%q, id=%d}\n", typeName, a.Id())
			if delDup {
				gone = append(gone, a)
				continue
			}
		}
		keep = append(keep, a)
	}
	o.all[typeName] = keep
	o.sorted[typeName] = true
	o.dropFromIdx(typeName, gone)
	return
}

// dropFromIdx removes checksum-index entries whose canonical instance was
// deleted, so later AddUniqueCS calls cannot hand out a dead ID
func (o *Db) dropFromIdx(typeName string, gone []Attribute) {
	idx := o.csidx[typeName]
	if idx == nil || len(gone) == 0 {
		return
	}
	dead := make(map[Attribute]bool, len(gone))
	for _, a := range gone {
		dead[a] = true
	}
	for cs, a := range idx {
		if dead[a] {
			delete(idx, cs)
		}
	}
}
