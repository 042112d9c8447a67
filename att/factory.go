// Copyright 2024 The OpenFedem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package att

import "github.com/cpmech/gosl/chk"

// AllocatorType defines a function that allocates an attribute with a given ID
type AllocatorType func(id int) Attribute

// New returns a new attribute from the factory
func New(typeName string, id int) (a Attribute, err error) {
	fcn, ok := allocators[typeName]
	if !ok {
		err = chk.Err("cannot get allocator for attribute {type=%q, id=%d}", typeName, id)
		return
	}
	a = fcn(id)
	if a == nil {
		err = chk.Err("attribute {type=%q, id=%d} is not available", typeName, id)
	}
	return
}

// SetAllocator sets a new callback function to allocate an attribute
func SetAllocator(typeName string, fcn AllocatorType) {
	if _, ok := allocators[typeName]; ok {
		chk.Panic("cannot set allocator for %q because attribute type exists already", typeName)
	}
	allocators[typeName] = fcn
}

// TypeNames returns all registered attribute type names
func TypeNames() (names []string) {
	for name := range allocators {
		names = append(names, name)
	}
	return
}

// allocators holds all attribute allocators
var allocators = make(map[string]AllocatorType)
