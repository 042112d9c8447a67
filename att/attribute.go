// Copyright 2024 The OpenFedem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package att implements material/geometric attributes attached to finite
// elements, including the attribute database with content-based deduplication
package att

import (
	"github.com/cpmech/gosl/chk"

	"github.com/openfedem/fedem-foundation-sub001/csum"
)

// Category classifies attributes for checksum masking and repair logic
type Category int

// attribute categories
const (
	Material Category = iota + 1
	Geometry
	Visual
	Other
)

// Attribute defines what all attribute types must implement. An attribute is
// identified by its type name plus an integer ID unique within that type.
type Attribute interface {

	// identity
	Id() int            // ID within type name
	SetId(id int)       // sets ID
	TypeName() string   // e.g. "material", "thickness"
	Category() Category // category for masking/filters

	// structural content
	Equal(other Attribute, tol float64) bool // field-by-field comparison, tol for floats
	AddToCheckSum(cs *csum.CheckSum)         // folds all fields except the ID

	// cross-references and bookkeeping
	Resolve(db *Db) (err error) // resolves attribute-to-attribute references
	Nrefs() int                 // number of elements/nodes using this attribute
	IncRef()                    // attach bookkeeping
	DecRef()                    // detach bookkeeping
}

// Core implements the identity and bookkeeping part shared by all attribute
// types. Concrete types embed Core and provide content and category.
type Core struct {
	id    int
	nrefs int
}

// Id returns the attribute ID
func (o *Core) Id() int { return o.id }

// SetId sets the attribute ID
func (o *Core) SetId(id int) { o.id = id }

// Nrefs returns the current reference count
func (o *Core) Nrefs() int { return o.nrefs }

// IncRef increments the reference count
func (o *Core) IncRef() { o.nrefs++ }

// DecRef decrements the reference count
func (o *Core) DecRef() {
	if o.nrefs > 0 {
		o.nrefs--
	}
}

// Resolve is a no-op for attributes without cross-references
func (o *Core) Resolve(db *Db) (err error) { return }

// Ref holds a reference to an attribute: initially by type name and ID,
// later resolved to the live instance. The two representations are never
// aliased: Id stays valid after resolution.
type Ref struct {
	Type string    // attribute type name
	Id   int       // attribute ID within type
	A    Attribute // resolved instance; nil while unresolved
}

// Resolved tells whether the reference has been converted to a live link
func (o *Ref) Resolved() bool { return o.A != nil }

// Resolve finds the referenced attribute in db and links it, incrementing
// its reference count
func (o *Ref) Resolve(db *Db) (err error) {
	a := db.Find(o.Type, o.Id)
	if a == nil {
		return chk.Err("cannot resolve reference to attribute {type=%q, id=%d}", o.Type, o.Id)
	}
	o.A = a
	a.IncRef()
	return
}
