// Copyright 2024 The OpenFedem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

import "github.com/cpmech/gosl/chk"

// AllocatorType defines a function that allocates an element with a given ID
type AllocatorType func(id int) Element

// New returns a new element from the factory
func New(typeName string, id int) (e Element, err error) {
	fcn, ok := allocators[typeName]
	if !ok {
		err = chk.Err("cannot get allocator for element {type=%q, id=%d}", typeName, id)
		return
	}
	e = fcn(id)
	if e == nil {
		err = chk.Err("element {type=%q, id=%d} is not available", typeName, id)
	}
	return
}

// SetAllocator sets a new callback function to allocate an element
func SetAllocator(typeName string, fcn AllocatorType) {
	if _, ok := allocators[typeName]; ok {
		chk.Panic("cannot set allocator for %q because element type exists already", typeName)
	}
	allocators[typeName] = fcn
}

// TypeNames returns all registered element type names
func TypeNames() (names []string) {
	for name := range allocators {
		names = append(names, name)
	}
	return
}

// allocators holds all element allocators
var allocators = make(map[string]AllocatorType)
