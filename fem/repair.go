// Copyright 2024 The OpenFedem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/cpmech/gosl/io"

	"github.com/openfedem/fedem-foundation-sub001/ele"
	"github.com/openfedem/fedem-foundation-sub001/msh"
)

// repairConstraints maintains the rigid and weighted-average constraint
// elements after DOF resolution:
//   - an internal reference node without DOFs disconnects the whole element;
//     an external one is granted a full DOF set (it is an attachment point);
//   - dependent nodes without DOFs are "loose": external ones are granted a
//     full DOF set so they stay addressable, internal ones are removed with
//     their weights redistributed (WAVGM) or simply dropped (RGD);
//   - an element left with fewer than two connected dependents has no
//     effect and is removed.
//
// Removals are informational notes, not errors; removed elements are purged
// from every group.
func (o *Model) repairConstraints() {
	doomed := make(map[ele.Element]bool)
	for _, e := range o.Elems {
		c, ok := e.(ele.ConstraintElem)
		if !ok {
			continue
		}

		// reference node connectivity
		ref := c.RefRef()
		if !ref.Resolved() {
			continue // already counted as a resolution error
		}
		if ref.Node.Dofs.NDofs() == 0 {
			if ref.Node.Dofs&msh.External != 0 {
				ref.Node.Dofs |= msh.AllDofs
			} else {
				io.Pf("note: removing constraint {type=%q, id=%d}: reference node %d has no DOFs\n",
					c.TypeName(), c.Id(), ref.Node.Id)
				doomed[c] = true
				continue
			}
		}

		// classify loose dependents
		var loose []int
		alive := 0
		for i, r := range c.DepRefs() {
			if !r.Resolved() {
				loose = append(loose, i)
				continue
			}
			if r.Node.Dofs.NDofs() == 0 {
				if r.Node.Dofs&msh.External != 0 {
					r.Node.Dofs |= msh.AllDofs
					alive++
				} else {
					loose = append(loose, i)
				}
				continue
			}
			alive++
		}
		if len(loose) == 0 {
			continue
		}
		if alive < 2 {
			io.Pf("note: removing constraint {type=%q, id=%d}: fewer than two connected dependents remain\n",
				c.TypeName(), c.Id())
			doomed[c] = true
			continue
		}

		// drop loose dependents, highest index first so the remaining
		// indices stay valid
		for k := len(loose) - 1; k >= 0; k-- {
			io.Pf("note: constraint {type=%q, id=%d}: removing loose dependent node %d\n",
				c.TypeName(), c.Id(), c.DepRefs()[loose[k]].Id)
			c.DropDep(loose[k])
		}
	}
	o.removeElems(doomed)
}
