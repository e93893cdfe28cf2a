// ABOUTME: The analyze subcommand: reachability report for a final heap state
// ABOUTME: Accepts a script (run silently) or a JSON dump written by run

package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/prateek/rootlens/dump"
	"github.com/prateek/rootlens/frame"
	"github.com/prateek/rootlens/graph"
	"github.com/prateek/rootlens/heap"
	"github.com/prateek/rootlens/script"
)

func newAnalyzeCommand(opts *options) *cobra.Command {
	var (
		fromDump bool
		maxPaths int
	)

	cmd := &cobra.Command{
		Use:   "analyze <script|dump>",
		Short: "Report reachability, retained sizes and root paths of the final state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var g graph.Graph
			if fromDump {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("opening dump: %w", err)
				}
				defer f.Close()
				if g, err = dump.ReadJSON(f); err != nil {
					return err
				}
			} else {
				p, err := loadProgram(args[0])
				if err != nil {
					return err
				}
				h, err := heap.New(&frame.Discard{})
				if err != nil {
					return err
				}
				if err := script.Run(p, h); err != nil {
					return err
				}
				g = h.Graph()
			}
			return report(cmd.OutOrStdout(), g, maxPaths)
		},
	}

	cmd.Flags().BoolVar(&fromDump, "dump", false, "treat the argument as a JSON dump")
	cmd.Flags().IntVar(&maxPaths, "paths", 1, "root paths to show per object")
	return cmd
}

func report(w io.Writer, g graph.Graph, maxPaths int) error {
	marked := graph.Reachable(g)
	retained := graph.RetainedSize(g)

	_, err := fmt.Fprintf(w, "objects: %d, roots: %d, unreachable: %d\n",
		g.NumObjects(), len(g.GetRoots().IDs), len(graph.Unreachable(g)))
	if err != nil {
		return err
	}

	g.ForEachObject(func(obj *graph.Object) {
		if err != nil {
			return
		}
		status := "unreachable"
		if marked[obj.ID] {
			status = fmt.Sprintf("retains %d", retained[obj.ID])
		}
		desc := obj.Type
		if obj.Value != "" {
			desc += " " + obj.Value
		}
		_, err = fmt.Fprintf(w, "%d\t%s\t%s\n", obj.ID, desc, status)

		for _, ref := range graph.RootsOf(g, obj.ID) {
			if err == nil {
				_, err = fmt.Fprintf(w, "\troot %s:%d\n", ref.Scope, ref.Slot)
			}
		}
		for _, p := range graph.PathsToRoots(g, obj.ID, maxPaths) {
			if err != nil || len(p.IDs) < 2 {
				continue
			}
			ids := make([]string, len(p.IDs))
			for i, id := range p.IDs {
				ids[i] = fmt.Sprint(id)
			}
			_, err = fmt.Fprintf(w, "\tpath %s\n", strings.Join(ids, " <- "))
		}
	})
	return err
}
