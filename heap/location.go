// Copyright 2017 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package heap

import "fmt"

// Location is where a pair was read from: the reader calls Enlocate after
// constructing each pair so later error messages can point back at source
// text.
type Location struct {
	File   string
	Line   int
	Column int
}

func (l Location) String() string {
	return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
}

// unknownLocation is returned by Locate for a pair that was never
// registered.
var unknownLocation = Location{File: "<unknown>"}

// locationTable maps a pair's slot handle to the (file, line, column) it
// was read from. Registering a pair here implicitly roots it — the reader
// may produce pairs before the evaluator has any other reference to them,
// and they must survive any GC that runs in between (spec.md §4.9).
type locationTable struct {
	byPair map[Pointer[Cons]]Location
}

func newLocationTable() *locationTable {
	return &locationTable{byPair: make(map[Pointer[Cons]]Location)}
}

// Enlocate records loc for cons and roots cons for the heap's lifetime —
// there is no corresponding "forget" operation (spec.md §8, scenario on
// location-registry survival), so a located pair is retained until the
// process exits.
func (h *Heap) Enlocate(loc Location, cons Pointer[Cons]) {
	if _, already := h.locations.byPair[cons]; !already {
		h.roots.add(consThing{cons})
	}
	h.locations.byPair[cons] = loc
}

// Locate returns the location cons was registered with, or unknownLocation
// if it was never registered.
func (h *Heap) Locate(cons Pointer[Cons]) Location {
	if loc, ok := h.locations.byPair[cons]; ok {
		return loc
	}
	return unknownLocation
}

// forEach calls fn once per registered pair; used by root enumeration.
func (l *locationTable) forEach(fn func(Pointer[Cons])) {
	for ptr := range l.byPair {
		fn(ptr)
	}
}
