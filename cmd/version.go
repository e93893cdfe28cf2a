// ABOUTME: The version subcommand
// ABOUTME: Prints the rootlens version string

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/prateek/rootlens"
)

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "rootlens %s\n", rootlens.Version)
		},
	}
}
