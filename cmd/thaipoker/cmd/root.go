// Package cmd wires the thaipoker CLI: build the probability and
// cluster tables, query completion probabilities, sample training
// pairs, and hold those tables loaded in a long-running process.
package cmd

import (
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root thaipoker command. It is called once
// from main.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "thaipoker",
		Short:         "Exact completion probabilities and hand-cluster abstraction for reduced-deck thai poker",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.PersistentFlags().String("prob-table", "TTP0.bin", "path to the persisted probability table")
	root.PersistentFlags().String("cluster-table", "HCL0.bin", "path to the persisted cluster table")

	root.AddCommand(newBuildCmd())
	root.AddCommand(newQueryCmd())
	root.AddCommand(newSampleCmd())
	root.AddCommand(newServeCmd())

	return root
}
