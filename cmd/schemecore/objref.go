package main

import (
	"fmt"
	"strings"

	"github.com/oxischeme/schemecore/heap"
)

// objNode is one pair in a reference tree rooted at a starting Value,
// built by a recursive depth-first walk that tracks visited slot handles —
// the same shape as the teacher's ObjNode/visitedNodes walk over a live
// object graph, generalized from core-dump addresses to heap.Pointer[Cons]
// handles.
type objNode struct {
	label string
	kids  []*objNode
}

// renderObjectTree walks v's pair structure depth-first (each car subtree
// before its cdr), stopping at any
// handle already visited (so a cyclic or shared structure prints once,
// with a back-reference marker instead of looping), and renders the result
// as an indented tree.
func renderObjectTree(h *heap.Heap, v heap.Value) string {
	visited := make(map[heap.Pointer[heap.Cons]]bool)
	root := buildObjNode(h, v, visited)

	var b strings.Builder
	writeObjNode(&b, root, 0)
	return b.String()
}

func buildObjNode(h *heap.Heap, v heap.Value, visited map[heap.Pointer[heap.Cons]]bool) *objNode {
	switch v.Kind() {
	case heap.KindPair:
		ptr, _ := v.Pair()
		if visited[ptr] {
			return &objNode{label: "#<cycle>"}
		}
		visited[ptr] = true
		n := &objNode{label: "pair"}
		n.kids = append(n.kids, labeled("car", buildObjNode(h, ptr.Deref().Car, visited)))
		n.kids = append(n.kids, labeled("cdr", buildObjNode(h, ptr.Deref().Cdr, visited)))
		return n
	case heap.KindInteger:
		n, _ := v.Integer()
		return &objNode{label: fmt.Sprintf("integer %d", n)}
	case heap.KindEmptyList:
		return &objNode{label: "()"}
	case heap.KindSymbol:
		ptr, _ := v.StringHandle()
		return &objNode{label: fmt.Sprintf("symbol %q", ptr.Deref().String())}
	case heap.KindString:
		ptr, _ := v.StringHandle()
		return &objNode{label: fmt.Sprintf("string %q", ptr.Deref().String())}
	default:
		return &objNode{label: v.Kind().String()}
	}
}

func labeled(prefix string, n *objNode) *objNode {
	n.label = prefix + ": " + n.label
	return n
}

func writeObjNode(b *strings.Builder, n *objNode, depth int) {
	b.WriteString(strings.Repeat("  ", depth))
	b.WriteString(n.label)
	b.WriteString("\n")
	for _, k := range n.kids {
		writeObjNode(b, k, depth+1)
	}
}
