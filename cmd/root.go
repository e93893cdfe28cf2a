// ABOUTME: Root cobra command and shared flag handling
// ABOUTME: Loads configuration and installs tracing before subcommands run

package cmd

import (
	"fmt"
	"os"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/spf13/cobra"

	"github.com/prateek/rootlens/config"
	"github.com/prateek/rootlens/script"
)

type options struct {
	configPath string
	verbose    bool
	cfg        *config.Config
}

// NewRootCommand builds the rootlens command tree
func NewRootCommand() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "rootlens",
		Short: "Animate GC roots of a toy heap as graph frames",
		Long: `rootlens runs a script of scope, allocation and root operations against a
toy heap and writes one graph description per operation, ready to be laid
out and stitched into an animation.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Default()
			if opts.configPath != "" {
				loaded, err := config.Load(opts.configPath)
				if err != nil {
					return err
				}
				cfg = loaded
			}
			if opts.verbose {
				cfg.Verbose = true
			}
			if cfg.Verbose {
				gtrace.CoreTracer = gologadapter.New()
				gtrace.CoreTracer.SetTraceLevel(tracing.LevelDebug)
			}
			opts.cfg = cfg
			return nil
		},
	}

	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "YAML config file")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "trace every frame")

	root.AddCommand(newRunCommand(opts))
	root.AddCommand(newAnalyzeCommand(opts))
	root.AddCommand(newVersionCommand())
	return root
}

// Execute runs the root command and exits non-zero on failure
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func loadProgram(path string) (*script.Program, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening script: %w", err)
	}
	defer f.Close()

	p, err := script.Load(f)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	if p.Name == "" {
		p.Name = path
	}
	return p, nil
}
