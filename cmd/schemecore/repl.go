package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/oxischeme/schemecore/binding"
	"github.com/oxischeme/schemecore/heap"
)

// runREPL drives the typed-command exerciser described by replCmd's Long
// text. It holds one heap and one Environment for the life of the session,
// plus the cons cell most recently allocated by "cons", kept rooted until
// the next "cons" releases it.
func runREPL(cmd *cobra.Command, h *heap.Heap, env *binding.Environment) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "schemecore> ",
		HistoryFile:     "",
		InterruptPrompt: "^C",
		EOFPrompt:       "quit",
		Stdout:          cmd.OutOrStdout(),
		Stderr:          cmd.ErrOrStderr(),
	})
	if err != nil {
		return fmt.Errorf("schemecore: repl: %w", err)
	}
	defer rl.Close()

	printer := binding.NewPrinter(h)
	var lastCons *heap.Rooted[heap.Cons]

	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("schemecore: repl: %w", err)
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		out := cmd.OutOrStdout()

		switch fields[0] {
		case "quit", "exit":
			return nil

		case "cons":
			if lastCons != nil {
				lastCons.Release()
			}
			lastCons = h.AllocateCons()
			fmt.Fprintf(out, "allocated a cons cell\n")

		case "intern":
			if len(fields) != 2 {
				fmt.Fprintln(out, "usage: intern NAME")
				continue
			}
			sym := h.GetOrCreateSymbol(fields[1])
			text, _ := printer.Write(sym)
			fmt.Fprintf(out, "%s\n", text)

		case "extend":
			env.Extend(fields[1:])
			fmt.Fprintf(out, "pushed a frame with %d names (depth now %d)\n", len(fields[1:]), env.Depth())

		case "pop":
			func() {
				defer func() {
					if r := recover(); r != nil {
						fmt.Fprintf(out, "error: %v\n", r)
					}
				}()
				env.Pop()
				fmt.Fprintf(out, "popped a frame (depth now %d)\n", env.Depth())
			}()

		case "gc":
			h.CollectGarbage()
			fmt.Fprintln(out, "collection complete")

		case "stats":
			printStats(cmd, h)

		default:
			fmt.Fprintf(out, "unrecognized command %q\n", fields[0])
		}
	}
}
