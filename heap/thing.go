// Copyright 2017 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package heap

// Cons is a pair: two value slots, car and cdr. A fresh slot defaults to
// (EmptyList, EmptyList) for free, since the zero Value has KindEmptyList.
type Cons struct {
	Car, Cdr Value
}

// Str is a mutable sequence of runes: the representation shared by Scheme
// strings and interned symbol names, distinguished only by the ValueKind
// tag on the Value that points at them. Str carries no outgoing references,
// so it is a trace leaf.
type Str struct {
	Data []rune
}

func (s *Str) String() string { return string(s.Data) }

// Reset overwrites the string's contents in place, as the in-place
// reset-and-fill data model calls for.
func (s *Str) Reset(text string) {
	s.Data = []rune(text)
}

// Activation is a runtime frame: an ordered list of argument/local value
// slots plus an optional parent link. The global activation is the only
// one with no parent.
type Activation struct {
	Slots     []Value
	parent    Pointer[Activation]
	hasParent bool
}

// Procedure captures everything needed to invoke a closure: its formal
// parameter-name list (a Cons chain of symbols, EmptyList if nullary), its
// body expression, the activation it closed over, and arity metadata the
// evaluator checks before pushing a new call frame.
type Procedure struct {
	Params   Value // KindEmptyList or a Cons chain of KindSymbol values
	Body     Value
	Env      Pointer[Activation]
	MinArgs  int
	Variadic bool
}

// gcThingKind tags which of the collector's four managed object kinds a
// thing wraps. Distinct from ValueKind: Activation is collector-managed but
// is never itself a surface Value.
type gcThingKind uint8

const (
	thingCons gcThingKind = iota
	thingString
	thingActivation
	thingProcedure
)

func (k gcThingKind) String() string {
	return [...]string{"Cons", "String", "Activation", "Procedure"}[k]
}

// thing is the sole currency of the collector: every heap-managed object
// kind knows how to mark itself, report whether it's already marked, and
// enumerate the things it points to directly. Exported only through the
// wrapper values below — every object kind the collector manages is
// defined in this package, so external packages never implement it.
type thing interface {
	mark()
	isMarked() bool
	trace() []thing
	gcKind() gcThingKind
}

type consThing struct{ ptr Pointer[Cons] }

func (t consThing) mark()             { t.ptr.mark() }
func (t consThing) isMarked() bool    { return t.ptr.isMarked() }
func (t consThing) gcKind() gcThingKind { return thingCons }
func (t consThing) trace() []thing {
	c := t.ptr.Deref()
	var out []thing
	if th, ok := c.Car.thing(); ok {
		out = append(out, th)
	}
	if th, ok := c.Cdr.thing(); ok {
		out = append(out, th)
	}
	return out
}

type strThing struct{ ptr Pointer[Str] }

func (t strThing) mark()             { t.ptr.mark() }
func (t strThing) isMarked() bool    { return t.ptr.isMarked() }
func (t strThing) gcKind() gcThingKind { return thingString }
func (t strThing) trace() []thing    { return nil }

type activationThing struct{ ptr Pointer[Activation] }

func (t activationThing) mark()             { t.ptr.mark() }
func (t activationThing) isMarked() bool    { return t.ptr.isMarked() }
func (t activationThing) gcKind() gcThingKind { return thingActivation }
func (t activationThing) trace() []thing {
	a := t.ptr.Deref()
	var out []thing
	for _, v := range a.Slots {
		if th, ok := v.thing(); ok {
			out = append(out, th)
		}
	}
	if a.hasParent {
		out = append(out, activationThing{a.parent})
	}
	return out
}

type procedureThing struct{ ptr Pointer[Procedure] }

func (t procedureThing) mark()             { t.ptr.mark() }
func (t procedureThing) isMarked() bool    { return t.ptr.isMarked() }
func (t procedureThing) gcKind() gcThingKind { return thingProcedure }
func (t procedureThing) trace() []thing {
	p := t.ptr.Deref()
	var out []thing
	if th, ok := p.Params.thing(); ok {
		out = append(out, th)
	}
	if th, ok := p.Body.thing(); ok {
		out = append(out, th)
	}
	out = append(out, activationThing{p.Env})
	return out
}
