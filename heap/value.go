// Copyright 2017 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package heap

import "fmt"

// ValueKind tags the variant a Value currently holds. The naming and the
// String() table mirror the style of a DWARF/runtime Kind enum: one
// constant per variant, plus a parallel string table rather than a
// stringer-generated file, since the set is small and fixed.
type ValueKind uint8

const (
	KindEmptyList ValueKind = iota
	KindInteger
	KindBoolean
	KindCharacter
	KindPair
	KindString
	KindSymbol
	KindProcedure
)

func (k ValueKind) String() string {
	return [...]string{
		"EmptyList",
		"Integer",
		"Boolean",
		"Character",
		"Pair",
		"String",
		"Symbol",
		"Procedure",
	}[k]
}

// Value is the surface datum the reader, evaluator, and primitives trade in.
// It is either a leaf (copied freely, never heap-managed) or a slot handle
// into one of the kind-specific arenas. Symbols and strings share the
// String arena; a Value is a Symbol only by virtue of its Kind tag, not a
// distinct representation underneath.
//
// This duplicates information the Thing/Trace machinery already encodes
// per-kind. That's intentional, matching the original source's split
// between its heap-internal GcThing and its evaluator-facing Value: the two
// audiences (collector vs. language semantics) want different views of the
// same handles, and collapsing them into one type would force the
// evaluator to depend on collector internals it has no business touching.
type Value struct {
	kind ValueKind
	leaf int64 // integer value, boolean (0/1), or rune, depending on kind

	pair      Pointer[Cons]
	str       Pointer[Str]
	procedure Pointer[Procedure]
}

func EmptyList() Value { return Value{kind: KindEmptyList} }

func Integer(n int64) Value { return Value{kind: KindInteger, leaf: n} }

func Boolean(b bool) Value {
	v := Value{kind: KindBoolean}
	if b {
		v.leaf = 1
	}
	return v
}

func Character(r rune) Value { return Value{kind: KindCharacter, leaf: int64(r)} }

func PairValue(p Pointer[Cons]) Value { return Value{kind: KindPair, pair: p} }

func StringValue(p Pointer[Str]) Value { return Value{kind: KindString, str: p} }

func SymbolValue(p Pointer[Str]) Value { return Value{kind: KindSymbol, str: p} }

func ProcedureValue(p Pointer[Procedure]) Value { return Value{kind: KindProcedure, procedure: p} }

func (v Value) Kind() ValueKind { return v.kind }

func (v Value) IsEmptyList() bool { return v.kind == KindEmptyList }

// Integer returns the integer this value carries. ok is false for any
// other kind (TypeMismatch policy: returned as optional, never fatal).
func (v Value) Integer() (n int64, ok bool) {
	if v.kind != KindInteger {
		return 0, false
	}
	return v.leaf, true
}

func (v Value) Boolean() (b bool, ok bool) {
	if v.kind != KindBoolean {
		return false, false
	}
	return v.leaf != 0, true
}

func (v Value) Character() (r rune, ok bool) {
	if v.kind != KindCharacter {
		return 0, false
	}
	return rune(v.leaf), true
}

func (v Value) Pair() (Pointer[Cons], bool) {
	if v.kind != KindPair {
		return Pointer[Cons]{}, false
	}
	return v.pair, true
}

func (v Value) StringHandle() (Pointer[Str], bool) {
	if v.kind != KindString && v.kind != KindSymbol {
		return Pointer[Str]{}, false
	}
	return v.str, true
}

func (v Value) Procedure() (Pointer[Procedure], bool) {
	if v.kind != KindProcedure {
		return Pointer[Procedure]{}, false
	}
	return v.procedure, true
}

// Equal implements Value equality on slot-carrying variants as pointer
// identity, and on leaves as value identity; EmptyList is a singleton kind.
func (v Value) Equal(w Value) bool {
	if v.kind != w.kind {
		return false
	}
	switch v.kind {
	case KindEmptyList:
		return true
	case KindInteger, KindBoolean, KindCharacter:
		return v.leaf == w.leaf
	case KindPair:
		return v.pair.Equal(w.pair)
	case KindString, KindSymbol:
		return v.str.Equal(w.str)
	case KindProcedure:
		return v.procedure.Equal(w.procedure)
	}
	return false
}

// ErrImproperList is returned by Len when walking a pair chain hits a
// non-EmptyList tail.
var ErrImproperList = fmt.Errorf("heap: improper list has no length")

// Len returns the number of cons cells in a proper list. If v is not a
// pair chain terminated by the empty list, it returns ErrImproperList.
func Len(v Value) (int, error) {
	n := 0
	for {
		if v.IsEmptyList() {
			return n, nil
		}
		p, ok := v.Pair()
		if !ok {
			return 0, ErrImproperList
		}
		n++
		v = p.Deref().Cdr
	}
}

// thing extracts the Thing wrapper for v's slot handle, if it has one.
// Leaves (EmptyList, Integer, Boolean, Character) carry no reference and
// report ok=false.
func (v Value) thing() (thing, bool) {
	switch v.kind {
	case KindPair:
		return consThing{v.pair}, true
	case KindString, KindSymbol:
		return strThing{v.str}, true
	case KindProcedure:
		return procedureThing{v.procedure}, true
	default:
		return nil, false
	}
}
