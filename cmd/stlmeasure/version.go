package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/philipparndt/stlmeasure/version"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		// No config or logging needed
		PersistentPreRun: func(*cobra.Command, []string) {},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "stlmeasure", version.GetFullVersion())
		},
	}
}
