// Copyright 2017 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package heap

// Heap owns every arena set, the root table, the symbol interner, the
// source-location registry, and the global activation. It is the only
// piece of process-wide state in this core, and it is deliberately not a
// package-level global: each interpreter instance constructs its own Heap
// and threads it explicitly, the way Process is threaded through
// golang.org/x/debug/internal/gocore rather than kept in a global.
type Heap struct {
	cons        *ArenaSet[Cons]
	strings     *ArenaSet[Str]
	activations *ArenaSet[Activation]
	procedures  *ArenaSet[Procedure]

	roots     *rootTable
	symbols   *symbolTable
	locations *locationTable

	global *Rooted[Activation]

	pressure int // recomputed against pressureThreshold(); see increaseGCPressure
}

// DefaultCapacity is the floor under defaultCapacity[K]'s page-size-aware
// calculation, matching spec.md §6: "optional compile-time default
// capacities (cons, strings, activations, procedures — all 1024 by
// default)".
const DefaultCapacity = 1024

// Option configures a Heap at construction time.
type Option func(*heapConfig)

type heapConfig struct {
	consCapacity       int
	stringCapacity     int
	activationCapacity int
	procedureCapacity  int
}

// WithConsCapacity overrides the per-arena capacity for cons cells.
func WithConsCapacity(n int) Option { return func(c *heapConfig) { c.consCapacity = n } }

// WithStringCapacity overrides the per-arena capacity for strings.
func WithStringCapacity(n int) Option { return func(c *heapConfig) { c.stringCapacity = n } }

// WithActivationCapacity overrides the per-arena capacity for activations.
func WithActivationCapacity(n int) Option { return func(c *heapConfig) { c.activationCapacity = n } }

// WithProcedureCapacity overrides the per-arena capacity for procedures.
func WithProcedureCapacity(n int) Option { return func(c *heapConfig) { c.procedureCapacity = n } }

// New constructs a Heap with its global activation already allocated and
// alive (spec.md §3: "the global activation is always alive"). Absent a
// With*Capacity override, each kind's arenas are sized by defaultCapacity[K],
// not the bare DefaultCapacity constant — defaultCapacity[K] folds in the
// host's page size so a kind's backing slice lands on a whole number of OS
// pages, falling back to DefaultCapacity as a floor.
func New(opts ...Option) *Heap {
	cfg := heapConfig{
		consCapacity:       defaultCapacity[Cons](),
		stringCapacity:     defaultCapacity[Str](),
		activationCapacity: defaultCapacity[Activation](),
		procedureCapacity:  defaultCapacity[Procedure](),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	h := &Heap{
		cons:        NewArenaSet[Cons](cfg.consCapacity),
		strings:     NewArenaSet[Str](cfg.stringCapacity),
		activations: NewArenaSet[Activation](cfg.activationCapacity),
		procedures:  NewArenaSet[Procedure](cfg.procedureCapacity),
		roots:       newRootTable(),
		symbols:     newSymbolTable(),
		locations:   newLocationTable(),
	}

	globalPtr := h.activations.Allocate()
	*globalPtr.Deref() = newActivation(nil, Pointer[Activation]{}, false)
	h.global = newRooted(h, globalPtr, func(p Pointer[Activation]) thing { return activationThing{p} })

	return h
}

// GlobalActivation returns the rooted handle to the process-wide global
// frame (spec.md §4.5).
func (h *Heap) GlobalActivation() *Rooted[Activation] {
	return h.global
}

// AllocateCons allocates a fresh pair, initialized to (EmptyList,
// EmptyList), and returns it rooted.
func (h *Heap) AllocateCons() *Rooted[Cons] {
	h.increaseGCPressure()
	ptr := h.cons.Allocate()
	*ptr.Deref() = Cons{Car: EmptyList(), Cdr: EmptyList()}
	return newRooted(h, ptr, func(p Pointer[Cons]) thing { return consThing{p} })
}

// AllocateString allocates a fresh mutable string filled with initial and
// returns it rooted.
func (h *Heap) AllocateString(initial string) *Rooted[Str] {
	h.increaseGCPressure()
	ptr := h.strings.Allocate()
	ptr.Deref().Reset(initial)
	return newRooted(h, ptr, func(p Pointer[Str]) thing { return strThing{p} })
}

// AllocateActivation allocates a fresh activation whose parent is parent
// and whose slots hold args, in order, and returns it rooted.
func (h *Heap) AllocateActivation(parent Pointer[Activation], args []Value) *Rooted[Activation] {
	h.increaseGCPressure()
	ptr := h.activations.Allocate()
	*ptr.Deref() = newActivation(args, parent, true)
	return newRooted(h, ptr, func(p Pointer[Activation]) thing { return activationThing{p} })
}

// AllocateProcedure allocates a fresh closure and returns it rooted.
func (h *Heap) AllocateProcedure(params, body Value, env Pointer[Activation], minArgs int, variadic bool) *Rooted[Procedure] {
	h.increaseGCPressure()
	ptr := h.procedures.Allocate()
	*ptr.Deref() = Procedure{Params: params, Body: body, Env: env, MinArgs: minArgs, Variadic: variadic}
	return newRooted(h, ptr, func(p Pointer[Procedure]) thing { return procedureThing{p} })
}

// GetOrCreateSymbol returns name's canonical interned symbol value.
func (h *Heap) GetOrCreateSymbol(name string) Value {
	return h.symbols.getOrCreate(h, name)
}

// pressureThreshold is the sum, over every arena set, of (capacity/2) *
// arena_count — spec.md §4.5's adaptive GC-pressure policy: every doubling
// of live capacity buys roughly a half-capacity's worth of allocation
// headroom before the next collection.
func (h *Heap) pressureThreshold() int {
	return h.cons.pressureBudget() +
		h.strings.pressureBudget() +
		h.activations.pressureBudget() +
		h.procedures.pressureBudget()
}

// increaseGCPressure accounts for one allocation and triggers a collection
// once the running count exceeds the dynamic threshold.
func (h *Heap) increaseGCPressure() {
	h.pressure++
	if h.pressure > h.pressureThreshold() {
		h.CollectGarbage()
	}
}

// Stats summarizes the heap's current shape, for diagnostics and tests.
type Stats struct {
	ConsArenas, StringArenas, ActivationArenas, ProcedureArenas int
	Pressure, Threshold                                        int
}

func (h *Heap) Stats() Stats {
	return Stats{
		ConsArenas:       h.cons.arenaCount(),
		StringArenas:     h.strings.arenaCount(),
		ActivationArenas: h.activations.arenaCount(),
		ProcedureArenas:  h.procedures.arenaCount(),
		Pressure:         h.pressure,
		Threshold:        h.pressureThreshold(),
	}
}

// CollectGarbage resets pressure, gathers roots, transitively marks every
// object reachable from them with an explicit worklist (not recursion —
// spec.md §9 calls out deep list chains as a stack-overflow hazard for a
// recursive tracer), then sweeps every arena set.
func (h *Heap) CollectGarbage() {
	h.pressure = 0

	var worklist []thing
	mark := func(t thing) {
		if t.isMarked() {
			return
		}
		t.mark()
		worklist = append(worklist, t)
	}

	h.symbols.forEach(func(p Pointer[Str]) { mark(strThing{p}) })
	mark(activationThing{h.global.Get()})
	h.roots.forEach(mark)
	h.locations.forEach(func(p Pointer[Cons]) { mark(consThing{p}) })

	for len(worklist) > 0 {
		n := len(worklist)
		t := worklist[n-1]
		worklist = worklist[:n-1]
		for _, child := range t.trace() {
			mark(child)
		}
	}

	h.cons.sweep()
	h.strings.sweep()
	h.activations.sweep()
	h.procedures.sweep()
}
