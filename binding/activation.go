// Copyright 2014 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package binding

import (
	"bytes"
	"fmt"

	"github.com/oxischeme/schemecore/heap"
)

// Printer pretty-prints heap.Values and activation frames. It can be reused
// across calls to avoid reallocating its scratch buffer, but it is not safe
// for concurrent use.
type Printer struct {
	h       *heap.Heap
	err     error // sticky error, set by the first failure in a print
	buf     bytes.Buffer
	visited map[heap.Pointer[heap.Cons]]bool // guards against looping on a circular pair chain
}

// NewPrinter returns a Printer bound to h.
func NewPrinter(h *heap.Heap) *Printer {
	return &Printer{h: h, visited: make(map[heap.Pointer[heap.Cons]]bool)}
}

func (p *Printer) reset() {
	p.err = nil
	p.buf.Reset()
	for k := range p.visited {
		delete(p.visited, k)
	}
}

func (p *Printer) printf(format string, args ...interface{}) {
	if p.err != nil {
		return
	}
	fmt.Fprintf(&p.buf, format, args...)
}

func (p *Printer) errorf(format string, args ...interface{}) {
	if p.err != nil {
		return
	}
	p.err = fmt.Errorf(format, args...)
}

// ErrCyclicValue is the sticky error set when Write detects a pair chain
// that loops back on itself; Display sets it too, since it renders every
// non-string value through Write's logic.
var ErrCyclicValue = fmt.Errorf("binding: value contains a cyclic pair chain")

// Write renders v in read/write syntax (strings quoted, characters as
// #\x) and returns the result, or an error if v's pair structure is
// cyclic — spec.md's testable-property scenario "cyclic pair survives GC"
// covers allocation and collection, not printing, so a cyclic pair is a
// reportable error here rather than an infinite loop.
func (p *Printer) Write(v heap.Value) (string, error) {
	p.reset()
	p.write(v)
	if p.err != nil {
		return "", p.err
	}
	return p.buf.String(), nil
}

func (p *Printer) write(v heap.Value) {
	if p.err != nil {
		return
	}
	switch v.Kind() {
	case heap.KindEmptyList:
		p.printf("()")
	case heap.KindBoolean:
		b, _ := v.Boolean()
		if b {
			p.printf("#t")
		} else {
			p.printf("#f")
		}
	case heap.KindInteger:
		n, _ := v.Integer()
		p.printf("%d", n)
	case heap.KindCharacter:
		r, _ := v.Character()
		p.printf("#\\%c", r)
	case heap.KindSymbol:
		ptr, _ := v.StringHandle()
		p.printf("%s", ptr.Deref().String())
	case heap.KindString:
		ptr, _ := v.StringHandle()
		p.printf("%q", ptr.Deref().String())
	case heap.KindProcedure:
		p.printf("#<procedure>")
	case heap.KindPair:
		p.writePair(v)
	default:
		p.errorf("binding: Write: unrecognized value kind %v", v.Kind())
	}
}

func (p *Printer) writePair(v heap.Value) {
	p.printf("(")
	cur := v
	first := true
	for {
		ptr, ok := cur.Pair()
		if !ok {
			break
		}
		if p.visited[ptr] {
			if !first {
				p.printf(" ")
			}
			p.printf(". #<cycle>)")
			if p.err == nil {
				p.err = ErrCyclicValue
			}
			return
		}
		p.visited[ptr] = true

		if !first {
			p.printf(" ")
		}
		first = false
		p.write(ptr.Deref().Car)
		cur = ptr.Deref().Cdr
	}
	if !cur.IsEmptyList() {
		p.printf(" . ")
		p.write(cur)
	}
	p.printf(")")
}

// Display renders v the way a user-facing REPL would: like Write, but a
// string value prints without surrounding quotes. Only a top-level string
// is unquoted; strings nested inside a pair print quoted, as in Write.
func (p *Printer) Display(v heap.Value) (string, error) {
	p.reset()
	p.display(v)
	if p.err != nil {
		return "", p.err
	}
	return p.buf.String(), nil
}

func (p *Printer) display(v heap.Value) {
	if v.Kind() == heap.KindString {
		ptr, _ := v.StringHandle()
		p.printf("%s", ptr.Deref().String())
		return
	}
	p.write(v)
}

// DescribeActivation renders a one-line summary of an activation frame's
// slot values — grounded on the teacher's Frame/local-slot access style of describing a call frame
// without needing to evaluate anything in it.
func DescribeActivation(p *Printer, slots []heap.Value) string {
	p.reset()
	p.printf("(")
	for i, v := range slots {
		if i > 0 {
			p.printf(" ")
		}
		p.write(v)
	}
	p.printf(")")
	if p.err != nil {
		return fmt.Sprintf("<unprintable: %s>", p.err)
	}
	return p.buf.String()
}
