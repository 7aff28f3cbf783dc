// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// The schemecore tool is a command-line exerciser for the heap/binding
// core: it allocates cons cells, interns symbols, extends and pops
// environment frames, and forces collections, all by typed command — it
// does not read or evaluate Scheme source. Run "schemecore help" for a
// list of commands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/oxischeme/schemecore/binding"
	"github.com/oxischeme/schemecore/heap"
)

var consCapacity int
var stringCapacity int
var activationCapacity int
var procedureCapacity int

// newHeap builds the heap the rest of the CLI operates on. A capacity flag
// left at its zero default is not passed on at all: no With*Capacity option
// is built for it, so heap.New falls back to its own page-size-aware
// default, rather than the CLI hardcoding one.
func newHeap() *heap.Heap {
	var opts []heap.Option
	if consCapacity > 0 {
		opts = append(opts, heap.WithConsCapacity(consCapacity))
	}
	if stringCapacity > 0 {
		opts = append(opts, heap.WithStringCapacity(stringCapacity))
	}
	if activationCapacity > 0 {
		opts = append(opts, heap.WithActivationCapacity(activationCapacity))
	}
	if procedureCapacity > 0 {
		opts = append(opts, heap.WithProcedureCapacity(procedureCapacity))
	}
	return heap.New(opts...)
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "schemecore",
		Short: "Exercise the heap/binding core of a small Scheme interpreter",
	}
	root.PersistentFlags().IntVar(&consCapacity, "cons-capacity", 0, "slots per cons arena (0: use the page-size-aware default)")
	root.PersistentFlags().IntVar(&stringCapacity, "string-capacity", 0, "slots per string arena (0: use the page-size-aware default)")
	root.PersistentFlags().IntVar(&activationCapacity, "activation-capacity", 0, "slots per activation arena (0: use the page-size-aware default)")
	root.PersistentFlags().IntVar(&procedureCapacity, "procedure-capacity", 0, "slots per procedure arena (0: use the page-size-aware default)")

	root.AddCommand(statsCmd())
	root.AddCommand(gcCmd())
	root.AddCommand(replCmd())
	root.AddCommand(rootsCmd())
	return root
}

func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print arena, root, and GC-pressure counters for a freshly constructed heap",
		RunE: func(cmd *cobra.Command, args []string) error {
			h := newHeap()
			printStats(cmd, h)
			return nil
		},
	}
}

func printStats(cmd *cobra.Command, h *heap.Heap) {
	s := h.Stats()
	fmt.Fprintf(cmd.OutOrStdout(), "cons arenas:       %d\n", s.ConsArenas)
	fmt.Fprintf(cmd.OutOrStdout(), "string arenas:     %d\n", s.StringArenas)
	fmt.Fprintf(cmd.OutOrStdout(), "activation arenas: %d\n", s.ActivationArenas)
	fmt.Fprintf(cmd.OutOrStdout(), "procedure arenas:  %d\n", s.ProcedureArenas)
	fmt.Fprintf(cmd.OutOrStdout(), "pressure/threshold: %d/%d\n", s.Pressure, s.Threshold)
}

func gcCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "gc",
		Short: "Allocate a small working set, force a collection, and print before/after counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			h := newHeap()
			for i := 0; i < 8; i++ {
				c := h.AllocateCons()
				c.Release()
			}
			fmt.Fprintln(cmd.OutOrStdout(), "before:")
			printStats(cmd, h)
			h.CollectGarbage()
			fmt.Fprintln(cmd.OutOrStdout(), "after:")
			printStats(cmd, h)
			return nil
		},
	}
}

func replCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Interactively allocate cons cells, intern symbols, and manage environment frames",
		Long: `repl starts a line-oriented shell over the heap/binding core. It does not
evaluate Scheme — it is the exerciser the reader/evaluator will eventually
sit behind. Supported commands:

  cons              allocate a pair, keeping only the newest one rooted
  intern NAME       intern a symbol, print its name
  extend NAME...    push an environment frame binding the given names
  pop               pop the innermost environment frame
  gc                force a collection
  stats             print heap counters
  quit              exit
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runREPL(cmd, newHeap(), binding.New())
		},
	}
}

func rootsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "roots",
		Short: "Allocate a small object graph and print it as a tree reachable from the roots",
		RunE: func(cmd *cobra.Command, args []string) error {
			h := newHeap()
			tail := h.AllocateCons()
			defer tail.Release()
			head := h.AllocateCons()
			defer head.Release()
			head.Deref().Car = heap.Integer(1)
			head.Deref().Cdr = heap.PairValue(tail.Get())

			fmt.Fprintln(cmd.OutOrStdout(), renderObjectTree(h, head.Get()))
			return nil
		},
	}
}

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
