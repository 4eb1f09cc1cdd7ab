package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/behrlich/thaipoker/pkg/cluster"
)

func newSampleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sample <h1-size> <h2-size>",
		Short: "Draw a uniform pair of disjoint hands from the (h1-size, h2-size) cluster",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			clusterPath, _ := cmd.Flags().GetString("cluster-table")

			h1Size, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid h1-size: %w", err)
			}
			h2Size, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid h2-size: %w", err)
			}

			clusters, err := cluster.Load(clusterPath)
			if err != nil {
				return err
			}

			s, err := clusters.Sample(h1Size, h2Size)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "h1=%s (block %d)\n", s.H1, s.H1Block)
			fmt.Fprintf(cmd.OutOrStdout(), "h2=%s (block %d)\n", s.H2, s.H2Block)
			return nil
		},
	}
	return cmd
}
