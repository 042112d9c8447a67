// Copyright 2024 The OpenFedem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"math"

	"github.com/cpmech/gosl/io"

	"github.com/openfedem/fedem-foundation-sub001/ele"
)

// zeroVolTol is the absolute volume below which an element is degenerate
const zeroVolTol = 1e-14

// Verify runs the post-resolution geometric check over all elements with a
// volume: zero-volume elements are removed with a warning; negative-volume
// elements (inverted node order) are repaired by a node-order swap when
// fixNegative, otherwise reported and left as-is.
func (o *Model) Verify(fixNegative bool) (nzero, nneg int) {
	if o.state != stResolved {
		return
	}
	doomed := make(map[ele.Element]bool)
	for _, e := range o.Elems {
		wv, ok := e.(ele.WithVolume)
		if !ok {
			continue
		}
		v := wv.Volume()
		if math.Abs(v) <= zeroVolTol {
			io.Pforan("warning: removing element {type=%q, id=%d} with zero volume\n", e.TypeName(), e.Id())
			doomed[e] = true
			nzero++
			continue
		}
		if v < 0 {
			nneg++
			if fixNegative {
				wv.SwapNodes()
				io.Pf("note: swapped node order of inverted element {type=%q, id=%d}\n", e.TypeName(), e.Id())
			} else {
				io.Pforan("warning: element {type=%q, id=%d} has negative volume %g\n", e.TypeName(), e.Id(), v)
			}
		}
	}
	o.removeElems(doomed)
	return
}
