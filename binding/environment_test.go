package binding

import "testing"

func TestDefineThenLookupInSameFrame(t *testing.T) {
	e := New()
	depth, slot := e.Define("x")
	if depth != 0 || slot != 0 {
		t.Fatalf("Define(x) = (%d,%d), want (0,0)", depth, slot)
	}
	d, s, ok := e.Lookup("x")
	if !ok || d != 0 || s != 0 {
		t.Fatalf("Lookup(x) = (%d,%d,%v), want (0,0,true)", d, s, ok)
	}
}

func TestLexicalShadowing(t *testing.T) {
	e := New()
	e.Define("x")
	e.Extend([]string{"x"})

	depth, slot, ok := e.Lookup("x")
	if !ok || depth != 0 || slot != 0 {
		t.Fatalf("inner Lookup(x) = (%d,%d,%v), want (0,0,true)", depth, slot, ok)
	}

	e.Pop()
	depth, slot, ok = e.Lookup("x")
	if !ok || depth != 0 || slot != 0 {
		t.Fatalf("outer Lookup(x) after Pop = (%d,%d,%v), want (0,0,true)", depth, slot, ok)
	}
}

func TestLookupUnboundFails(t *testing.T) {
	e := New()
	if _, _, ok := e.Lookup("nope"); ok {
		t.Fatal("Lookup of an unbound name reported ok=true")
	}
}

func TestPopGlobalPanics(t *testing.T) {
	e := New()
	defer func() {
		if recover() == nil {
			t.Fatal("expected Pop on the global frame to panic")
		}
	}()
	e.Pop()
}

func TestWithExtendedPopsOnPanic(t *testing.T) {
	e := New()
	func() {
		defer func() { recover() }()
		e.WithExtended([]string{"y"}, func() error {
			panic("boom")
		})
	}()
	if e.Depth() != 1 {
		t.Fatalf("Depth after a panicking WithExtended = %d, want 1", e.Depth())
	}
}

func TestWithExtendedPopsOnError(t *testing.T) {
	e := New()
	wantErr := ErrUnbound
	err := e.WithExtended([]string{"z"}, func() error {
		return wantErr
	})
	if err != wantErr {
		t.Fatalf("WithExtended returned %v, want %v", err, wantErr)
	}
	if e.Depth() != 1 {
		t.Fatalf("Depth after WithExtended = %d, want 1", e.Depth())
	}
}

func TestDefineTwiceInSameFrameRebinds(t *testing.T) {
	e := New()
	_, slot1 := e.Define("x")
	_, slot2 := e.Define("x")
	if slot1 != slot2 {
		t.Fatalf("redefining x in the same frame produced slots %d and %d, want equal", slot1, slot2)
	}
	if got := len(e.NamesAt(0)); got != 1 {
		t.Fatalf("NamesAt(0) has %d names, want 1", got)
	}
}

func TestRedefineInNestedFrameShadowsOuter(t *testing.T) {
	e := New()
	e.Define("x")
	e.Extend(nil)
	depth, slot := e.Define("x")
	if depth != 0 {
		t.Fatalf("Define(x) in a fresh inner frame = depth %d, want 0", depth)
	}
	if slot != 0 {
		t.Fatalf("Define(x) in a fresh inner frame = slot %d, want 0", slot)
	}
}
