package binding

import (
	"testing"

	"github.com/oxischeme/schemecore/heap"
)

func TestStandardLibraryConsCarCdr(t *testing.T) {
	h := heap.New()
	lib := StandardLibrary()

	cons, ok := lib.Lookup("cons")
	if !ok {
		t.Fatal("cons not registered")
	}
	v, err := cons(h, []heap.Value{heap.Integer(1), heap.Integer(2)})
	if err != nil {
		t.Fatalf("cons: %v", err)
	}

	car, _ := lib.Lookup("car")
	got, err := car(h, []heap.Value{v})
	if err != nil {
		t.Fatalf("car: %v", err)
	}
	if n, _ := got.Integer(); n != 1 {
		t.Fatalf("car(cons(1,2)) = %d, want 1", n)
	}

	cdr, _ := lib.Lookup("cdr")
	got, err = cdr(h, []heap.Value{v})
	if err != nil {
		t.Fatalf("cdr: %v", err)
	}
	if n, _ := got.Integer(); n != 2 {
		t.Fatalf("cdr(cons(1,2)) = %d, want 2", n)
	}
}

func TestStandardLibraryArityErrors(t *testing.T) {
	h := heap.New()
	lib := StandardLibrary()
	car, _ := lib.Lookup("car")
	if _, err := car(h, nil); err == nil {
		t.Fatal("car with zero arguments should report an arity error")
	}
}

func TestStandardLibraryArithmetic(t *testing.T) {
	h := heap.New()
	lib := StandardLibrary()
	plus, _ := lib.Lookup("+")
	v, err := plus(h, []heap.Value{heap.Integer(2), heap.Integer(3), heap.Integer(4)})
	if err != nil {
		t.Fatalf("+: %v", err)
	}
	if n, _ := v.Integer(); n != 9 {
		t.Fatalf("+(2,3,4) = %d, want 9", n)
	}

	minus, _ := lib.Lookup("-")
	v, err = minus(h, []heap.Value{heap.Integer(10), heap.Integer(3)})
	if err != nil {
		t.Fatalf("-: %v", err)
	}
	if n, _ := v.Integer(); n != 7 {
		t.Fatalf("-(10,3) = %d, want 7", n)
	}
}

func TestBootstrapKeepsEnvironmentAndActivationInSync(t *testing.T) {
	h := heap.New()
	env := New()
	lib := StandardLibrary()
	lib.Bootstrap(h, env, h.GlobalActivation())

	depth, slot, ok := env.Lookup("cons")
	if !ok {
		t.Fatal("cons not bound after Bootstrap")
	}
	if depth != 0 {
		t.Fatalf("cons bound at depth %d, want 0 (global frame)", depth)
	}
	// The activation slot must exist at the same coordinate.
	_ = h.GlobalActivation().Deref().Fetch(depth, slot)
}

func TestPrinterWriteAndDisplay(t *testing.T) {
	h := heap.New()
	p := NewPrinter(h)

	text, err := p.Write(heap.Integer(42))
	if err != nil || text != "42" {
		t.Fatalf("Write(42) = (%q, %v), want (\"42\", nil)", text, err)
	}

	str := h.AllocateString("hi")
	defer str.Release()
	v := heap.StringValue(str.Get())

	written, _ := p.Write(v)
	if written != `"hi"` {
		t.Fatalf("Write(string) = %q, want %q", written, `"hi"`)
	}
	displayed, _ := p.Display(v)
	if displayed != "hi" {
		t.Fatalf("Display(string) = %q, want %q", displayed, "hi")
	}
}

func TestPrinterDetectsCycles(t *testing.T) {
	h := heap.New()
	a := h.AllocateCons()
	defer a.Release()
	a.Deref().Car = heap.Integer(1)
	a.Deref().Cdr = heap.PairValue(a.Get())

	p := NewPrinter(h)
	if _, err := p.Write(heap.PairValue(a.Get())); err != ErrCyclicValue {
		t.Fatalf("Write on a self-referential pair = %v, want ErrCyclicValue", err)
	}
}
