// Copyright 2017 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package heap

import "fmt"

// newActivation builds a fresh frame with the supplied argument values and,
// unless parent has no arena attached, a parent link one level up the
// chain. The global activation is built with hasParent left false.
func newActivation(args []Value, parent Pointer[Activation], hasParent bool) Activation {
	slots := make([]Value, len(args))
	copy(slots, args)
	return Activation{Slots: slots, parent: parent, hasParent: hasParent && parent.arena != nil}
}

// Fetch walks i parent links up from a, then returns slot j of the
// activation it lands on. Per spec.md's error taxonomy, an out-of-range
// (i, j) is a BadCoordinate: a bug in the binding resolver that produced
// the coordinate, not a condition a caller can recover from, so it's a
// fatal assertion rather than a returned error.
func (a *Activation) Fetch(i, j int) Value {
	cur := a
	for i > 0 {
		if !cur.hasParent {
			panic(fmt.Sprintf("heap: BadCoordinate: fetch(%d,%d) walked off the top of the activation chain", i, j))
		}
		cur = cur.parent.Deref()
		i--
	}
	if j < 0 || j >= len(cur.Slots) {
		panic(fmt.Sprintf("heap: BadCoordinate: fetch(%d,%d) slot out of range (len=%d)", i, j, len(cur.Slots)))
	}
	return cur.Slots[j]
}

// Update is Fetch's write-side symmetric twin.
func (a *Activation) Update(i, j int, v Value) {
	cur := a
	for i > 0 {
		if !cur.hasParent {
			panic(fmt.Sprintf("heap: BadCoordinate: update(%d,%d) walked off the top of the activation chain", i, j))
		}
		cur = cur.parent.Deref()
		i--
	}
	if j < 0 || j >= len(cur.Slots) {
		panic(fmt.Sprintf("heap: BadCoordinate: update(%d,%d) slot out of range (len=%d)", i, j, len(cur.Slots)))
	}
	cur.Slots[j] = v
}

// Push appends a new slot holding v, returning its index. This is how
// `define` inside a non-global frame grows the runtime activation to match
// the slot the compile-time Environment already promised — see the Open
// Question resolution in SPEC_FULL.md §10.1: the evaluator must pair every
// such Environment.Define with exactly one Push on the current activation.
func (a *Activation) Push(v Value) int {
	a.Slots = append(a.Slots, v)
	return len(a.Slots) - 1
}

// Len reports the number of slots currently held.
func (a *Activation) Len() int {
	return len(a.Slots)
}

// HasParent reports whether this activation has an enclosing frame; only
// the global activation does not.
func (a *Activation) HasParent() bool {
	return a.hasParent
}
