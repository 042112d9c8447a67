// Copyright 2024 The OpenFedem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package inp implements the native JSON model reader. It is a producer at
// the import boundary: entities are pushed into the model store with Add
// calls and ID-based cross-references only, followed by one Resolve.
package inp

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/cpmech/gosl/chk"

	"github.com/openfedem/fedem-foundation-sub001/att"
	"github.com/openfedem/fedem-foundation-sub001/ele"
	"github.com/openfedem/fedem-foundation-sub001/fem"
	"github.com/openfedem/fedem-foundation-sub001/msh"
)

// NodeData holds node input data. A csys of zero means none; coordinate
// system IDs in model files start at one.
type NodeData struct {
	Id   int       `json:"id"`   // external node ID
	X    []float64 `json:"x"`    // position
	Ext  bool      `json:"ext"`  // externally visible node
	Csys int       `json:"csys"` // local coordinate system ID; 0 means none
}

// AttData holds attribute input data; values are decoded per registered type
type AttData struct {
	Type   string          `json:"type"`   // attribute type name
	Id     int             `json:"id"`     // ID within type
	Values json.RawMessage `json:"values"` // type-specific fields
}

// ElemData holds element input data
type ElemData struct {
	Id    int             `json:"id"`    // external element ID
	Type  string          `json:"type"`  // element type name
	Nodes []int           `json:"nodes"` // node-ID connectivity
	Atts  map[string]int  `json:"atts"`  // attribute type name => ID
	Off   bool            `json:"off"`   // disables the calculation flag
	Base  int             `json:"base"`  // underlying element ID (strain coats); 0 means none
	Viz   int             `json:"viz"`   // visualization record ID; 0 means none
	Extra json.RawMessage `json:"extra"` // type-specific fields, e.g. WAVGM weights
}

// GroupData holds group input data
type GroupData struct {
	Id    int    `json:"id"`    // group ID
	Name  string `json:"name"`  // optional name
	Elems []int  `json:"elems"` // element IDs
}

// LoadData holds load input data; exactly one of node/elem must be nonzero
type LoadData struct {
	Id    int       `json:"id"`    // load ID; may repeat
	Node  int       `json:"node"`  // target node ID; 0 means none
	Elem  int       `json:"elem"`  // target element ID; 0 means none
	Value []float64 `json:"value"` // value payload
	Csys  int       `json:"csys"`  // orientation coordinate system ID; 0 means none
}

// ModelData holds the complete content of one model file
type ModelData struct {
	Desc     string       `json:"desc"`     // description
	MaxNodes int          `json:"maxnodes"` // node cap; 0 means unlimited
	MaxElems int          `json:"maxelems"` // element cap; 0 means unlimited
	Nodes    []*NodeData  `json:"nodes"`
	Atts     []*AttData   `json:"atts"`
	Elems    []*ElemData  `json:"elems"`
	Groups   []*GroupData `json:"groups"`
	Loads    []*LoadData  `json:"loads"`
}

// ReadModel reads a model from a JSON file, pushes all entities into a new
// store and resolves it. A model with unresolved references is returned
// together with an error, for diagnostics.
func ReadModel(dir, fn string, splitParaShells bool) (m *fem.Model, err error) {

	// read and decode file
	b, err := os.ReadFile(filepath.Join(dir, fn))
	if err != nil {
		return nil, chk.Err("cannot read model file %q:\n%v", fn, err)
	}
	dat := new(ModelData)
	if err = json.Unmarshal(b, dat); err != nil {
		return nil, chk.Err("cannot decode model file %q:\n%v", fn, err)
	}

	// push entities through the import boundary
	m = fem.NewModel(dat.MaxNodes, dat.MaxElems)
	for _, nd := range dat.Nodes {
		n := msh.NewNode(nd.Id, nd.X)
		if nd.Ext {
			n.Dofs |= msh.External
		}
		if nd.Csys > 0 {
			n.Csys.Id = nd.Csys
		}
		if err = m.AddNode(n, false); err != nil {
			return
		}
	}
	for _, ad := range dat.Atts {
		a, e := att.New(ad.Type, ad.Id)
		if e != nil {
			return nil, e
		}
		if len(ad.Values) > 0 {
			if err = json.Unmarshal(ad.Values, a); err != nil {
				return nil, chk.Err("cannot decode attribute {type=%q, id=%d}:\n%v", ad.Type, ad.Id, err)
			}
		}
		m.AddAttribute(a)
	}
	for _, ed := range dat.Elems {
		e, err2 := newElement(ed)
		if err2 != nil {
			return nil, err2
		}
		if err = m.AddElement(e, false); err != nil {
			return
		}
	}
	for _, gd := range dat.Groups {
		m.AddGroup(fem.NewGroup(gd.Id, gd.Name, gd.Elems))
	}
	for _, ld := range dat.Loads {
		var l *fem.Load
		switch {
		case ld.Node > 0:
			l = fem.NewNodeLoad(ld.Id, ld.Node, ld.Value)
		case ld.Elem > 0:
			l = fem.NewElemLoad(ld.Id, ld.Elem, ld.Value)
		default:
			return nil, chk.Err("load {id=%d} has neither node nor element target", ld.Id)
		}
		if ld.Csys > 0 {
			l.Csys.Id = ld.Csys
		}
		m.AddLoad(l)
	}

	// resolve once, after all entities of the file are in
	if !m.Resolve(splitParaShells) {
		err = chk.Err("model %q did not resolve; %d errors", fn, m.NErrors())
	}
	return
}

// newElement allocates one element from its input data
func newElement(ed *ElemData) (e ele.Element, err error) {
	e, err = ele.New(ed.Type, ed.Id)
	if err != nil {
		return
	}
	if err = e.SetNodeIds(ed.Nodes); err != nil {
		return
	}
	for tn, id := range ed.Atts {
		e.SetAtt(tn, id)
	}
	if ed.Off {
		e.SetCalc(false)
	}
	if ed.Viz > 0 {
		e.Viz().Id = ed.Viz
	}
	if sc, ok := e.(*ele.Coat); ok {
		if ed.Base <= 0 {
			return nil, chk.Err("strain coat {id=%d} needs an underlying element", ed.Id)
		}
		sc.SetBase(ed.Base)
	}
	if len(ed.Extra) > 0 {
		if err = json.Unmarshal(ed.Extra, e); err != nil {
			return nil, chk.Err("cannot decode extra data of element {type=%q, id=%d}:\n%v", ed.Type, ed.Id, err)
		}
	}
	return
}
