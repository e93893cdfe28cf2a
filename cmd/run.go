// ABOUTME: The run subcommand: execute a script and write its frames
// ABOUTME: Frames go to numbered files or stdout, with optional state dumps

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/prateek/rootlens/dump"
	"github.com/prateek/rootlens/frame"
	"github.com/prateek/rootlens/heap"
	"github.com/prateek/rootlens/script"
)

type runFlags struct {
	stdout    bool
	jsonPath  string
	structure string
}

func newRunCommand(opts *options) *cobra.Command {
	flags := &runFlags{}

	cmd := &cobra.Command{
		Use:   "run <script>",
		Short: "Run a script and write one frame per heap mutation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := opts.cfg
			f := cmd.Flags()
			if f.Changed("out") {
				cfg.OutDir, _ = f.GetString("out")
			}
			if f.Changed("prefix") {
				cfg.Prefix, _ = f.GetString("prefix")
			}
			if f.Changed("ext") {
				cfg.Ext, _ = f.GetString("ext")
			}
			if f.Changed("initial-frame") {
				cfg.InitialFrame, _ = f.GetBool("initial-frame")
			}
			if f.Changed("reachability") {
				cfg.Reachability, _ = f.GetBool("reachability")
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			p, err := loadProgram(args[0])
			if err != nil {
				return err
			}

			var sink heap.Sink
			var files *frame.FileSequence
			if flags.stdout {
				sink = frame.NewStreamSeparator(cmd.OutOrStdout(), cfg.Separator)
			} else {
				files, err = frame.NewFileSequence(cfg.OutDir, cfg.Prefix, cfg.Ext)
				if err != nil {
					return err
				}
				defer files.Close()
				sink = files
			}

			h, err := heap.New(sink, cfg.HeapOptions()...)
			if err != nil {
				return err
			}
			runErr := script.Run(p, h)

			if flags.jsonPath != "" {
				if err := writeFile(flags.jsonPath, func(w *os.File) error { return dump.WriteJSON(w, h) }); err != nil {
					return err
				}
			}
			if flags.structure != "" {
				if err := writeFile(flags.structure, func(w *os.File) error {
					dump.WriteStructure(w, h)
					return nil
				}); err != nil {
					return err
				}
			}
			if runErr != nil {
				return runErr
			}

			if files != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "wrote %d frames to %s\n", h.Frames(), cfg.OutDir)
			}
			return nil
		},
	}

	cmd.Flags().StringP("out", "o", "frames", "directory for numbered frame files")
	cmd.Flags().String("prefix", "", "frame file name prefix")
	cmd.Flags().String("ext", ".dot", "frame file extension")
	cmd.Flags().Bool("initial-frame", false, "emit an opening frame before the first step")
	cmd.Flags().Bool("reachability", false, "dash heap objects no root reaches")
	cmd.Flags().BoolVar(&flags.stdout, "stdout", false, "stream frames to stdout instead of files")
	cmd.Flags().StringVar(&flags.jsonPath, "dump-json", "", "write the final heap state as JSON")
	cmd.Flags().StringVar(&flags.structure, "dump-structure", "", "write the final heap storage layout as dot")
	return cmd
}

func writeFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
