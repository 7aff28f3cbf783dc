// Copyright 2017 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package heap

// symbolTable interns name strings so that equal names share one heap
// object: two lookups of the same name return Values whose StringHandle
// compares equal by pointer identity.
type symbolTable struct {
	byName map[string]Pointer[Str]
}

func newSymbolTable() *symbolTable {
	return &symbolTable{byName: make(map[string]Pointer[Str])}
}

// getOrCreate returns name's canonical interned handle, allocating and
// interning a new Str on first sight. h is needed only on the miss path.
func (s *symbolTable) getOrCreate(h *Heap, name string) Value {
	if ptr, ok := s.byName[name]; ok {
		return SymbolValue(ptr)
	}
	ptr := h.strings.Allocate()
	ptr.Deref().Reset(name)
	s.byName[name] = ptr
	return SymbolValue(ptr)
}

// forEach calls fn once for every interned string's slot handle; used by
// root enumeration (every interned symbol's string handle is an implicit
// root, per spec.md §4.5).
func (s *symbolTable) forEach(fn func(Pointer[Str])) {
	for _, ptr := range s.byName {
		fn(ptr)
	}
}

// Well-known symbol names, each reachable through a dedicated accessor
// below (spec.md §4.8). New does not intern them; each is interned the
// first time its accessor is called. symEOF contains whitespace so it can never collide with a symbol the reader could ever
// produce from source text.
const (
	symQuote       = "quote"
	symIf          = "if"
	symBegin       = "begin"
	symDefine      = "define"
	symSetBang     = "set!"
	symUnspecified = "unspecified"
	symLambda      = "lambda"
	symEOF         = "#<eof object>"
)

// QuoteSymbol, IfSymbol, BeginSymbol, DefineSymbol, SetBangSymbol,
// UnspecifiedSymbol, LambdaSymbol, and EOFSymbol return the heap's single
// canonical instance of each well-known symbol, interning it on first use.
func (h *Heap) QuoteSymbol() Value       { return h.symbols.getOrCreate(h, symQuote) }
func (h *Heap) IfSymbol() Value          { return h.symbols.getOrCreate(h, symIf) }
func (h *Heap) BeginSymbol() Value       { return h.symbols.getOrCreate(h, symBegin) }
func (h *Heap) DefineSymbol() Value      { return h.symbols.getOrCreate(h, symDefine) }
func (h *Heap) SetBangSymbol() Value     { return h.symbols.getOrCreate(h, symSetBang) }
func (h *Heap) UnspecifiedSymbol() Value { return h.symbols.getOrCreate(h, symUnspecified) }
func (h *Heap) LambdaSymbol() Value      { return h.symbols.getOrCreate(h, symLambda) }
func (h *Heap) EOFSymbol() Value         { return h.symbols.getOrCreate(h, symEOF) }
