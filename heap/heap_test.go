// Copyright 2017 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package heap

import "testing"

func newTestHeap(t *testing.T) *Heap {
	t.Helper()
	return New(
		WithConsCapacity(4),
		WithStringCapacity(4),
		WithActivationCapacity(4),
		WithProcedureCapacity(4),
	)
}

func TestCollectionReclaimsUnreachablePair(t *testing.T) {
	h := newTestHeap(t)
	c := h.AllocateCons()
	c.Release()

	if got := h.Stats().ConsArenas; got != 1 {
		t.Fatalf("expected one cons arena before GC, got %d", got)
	}
	h.CollectGarbage()
	if got := h.Stats().ConsArenas; got != 0 {
		t.Fatalf("expected the unreachable cons arena to be swept away, got %d arenas", got)
	}
}

func TestRootingPreservesAcrossGC(t *testing.T) {
	h := newTestHeap(t)
	c := h.AllocateCons()
	defer c.Release()
	c.Deref().Car = Integer(7)

	h.CollectGarbage()

	n, ok := c.Deref().Car.Integer()
	if !ok || n != 7 {
		t.Fatalf("rooted cons did not survive collection: got (%d, %v)", n, ok)
	}
}

func TestCyclicPairSurvivesThenIsReclaimed(t *testing.T) {
	h := newTestHeap(t)
	a := h.AllocateCons()
	b := h.AllocateCons()

	a.Deref().Cdr = PairValue(b.Get())
	b.Deref().Cdr = PairValue(a.Get())

	h.CollectGarbage()
	if got := h.Stats().ConsArenas; got != 1 {
		t.Fatalf("expected the rooted cyclic pair chain to survive collection, got %d arenas", got)
	}
	if !a.Deref().Cdr.Equal(PairValue(b.Get())) {
		t.Fatal("rooted cyclic pair lost its cdr across collection")
	}

	aPtr := a.Get()
	a.Release()
	b.Release()

	h.CollectGarbage()
	if got := h.Stats().ConsArenas; got != 0 {
		t.Fatalf("expected a cyclic-but-unrooted pair chain to be fully reclaimed, got %d arenas", got)
	}
	_ = aPtr
}

func TestArenaGrowsThenShrinksOnSweep(t *testing.T) {
	h := newTestHeap(t)
	var rooted []*Rooted[Cons]
	for i := 0; i < 10; i++ {
		rooted = append(rooted, h.AllocateCons())
	}
	if got := h.Stats().ConsArenas; got < 3 {
		t.Fatalf("expected at least 3 cons arenas for 10 live cells at capacity 4, got %d", got)
	}
	for _, r := range rooted {
		r.Release()
	}
	h.CollectGarbage()
	if got := h.Stats().ConsArenas; got != 0 {
		t.Fatalf("expected all cons arenas to shrink away once everything is unrooted, got %d", got)
	}
}

func TestActivationChainFetchWalksParents(t *testing.T) {
	h := newTestHeap(t)
	grandparent := h.AllocateActivation(Pointer[Activation]{}, []Value{Integer(1)})
	defer grandparent.Release()
	parent := h.AllocateActivation(grandparent.Get(), []Value{Integer(2)})
	defer parent.Release()
	child := h.AllocateActivation(parent.Get(), []Value{Integer(3)})
	defer child.Release()

	if n, _ := child.Deref().Fetch(0, 0).Integer(); n != 3 {
		t.Fatalf("Fetch(0,0) = %d, want 3", n)
	}
	if n, _ := child.Deref().Fetch(1, 0).Integer(); n != 2 {
		t.Fatalf("Fetch(1,0) = %d, want 2", n)
	}
	if n, _ := child.Deref().Fetch(2, 0).Integer(); n != 1 {
		t.Fatalf("Fetch(2,0) = %d, want 1", n)
	}
}

func TestActivationFetchOutOfRangeIsFatal(t *testing.T) {
	h := newTestHeap(t)

	defer func() {
		if recover() == nil {
			t.Fatal("expected Fetch with an out-of-range coordinate to panic")
		}
	}()
	h.GlobalActivation().Deref().Fetch(5, 0)
}

func TestPushGrowsActivationForDefine(t *testing.T) {
	h := newTestHeap(t)
	a := h.AllocateActivation(Pointer[Activation]{}, nil)
	defer a.Release()

	slot := a.Deref().Push(Integer(42))
	if slot != 0 {
		t.Fatalf("Push returned slot %d, want 0", slot)
	}
	if n, _ := a.Deref().Fetch(0, 0).Integer(); n != 42 {
		t.Fatalf("Fetch after Push = %d, want 42", n)
	}
}

func TestSymbolInterningSharesOneHandle(t *testing.T) {
	h := newTestHeap(t)
	a := h.GetOrCreateSymbol("foo")
	b := h.GetOrCreateSymbol("foo")
	if !a.Equal(b) {
		t.Fatal("two interned lookups of the same name produced different handles")
	}
	c := h.GetOrCreateSymbol("bar")
	if a.Equal(c) {
		t.Fatal("two different names interned to the same handle")
	}
}

func TestSourceLocationRegistryRootsPermanently(t *testing.T) {
	h := newTestHeap(t)
	cons := h.AllocateCons()
	ptr := cons.Get()
	h.Enlocate(Location{File: "test.scm", Line: 1, Column: 1}, ptr)
	cons.Release()

	h.CollectGarbage()

	if got := h.Locate(ptr); got.File != "test.scm" {
		t.Fatalf("located pair did not survive collection: %+v", got)
	}
	if got := h.Stats().ConsArenas; got == 0 {
		t.Fatalf("expected the located pair's arena to survive collection")
	}
}

func TestGlobalActivationAlwaysAlive(t *testing.T) {
	h := newTestHeap(t)
	h.CollectGarbage()
	if h.GlobalActivation().Deref().HasParent() {
		t.Fatal("global activation should have no parent")
	}
}

func TestLenRejectsImproperList(t *testing.T) {
	h := newTestHeap(t)
	c := h.AllocateCons()
	defer c.Release()
	c.Deref().Car = Integer(1)
	c.Deref().Cdr = Integer(2)

	if _, err := Len(PairValue(c.Get())); err != ErrImproperList {
		t.Fatalf("Len on an improper list = %v, want ErrImproperList", err)
	}
}
