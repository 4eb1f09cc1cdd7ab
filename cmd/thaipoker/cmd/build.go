package cmd

import (
	"github.com/spf13/cobra"

	"github.com/behrlich/thaipoker/internal/buildlog"
	"github.com/behrlich/thaipoker/pkg/cluster"
	"github.com/behrlich/thaipoker/pkg/probability"
)

func newBuildCmd() *cobra.Command {
	var k, iters int

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Construct the probability and cluster tables and persist them to disk",
		RunE: func(cmd *cobra.Command, args []string) error {
			log := buildlog.New("cli")
			probPath, _ := cmd.Flags().GetString("prob-table")
			clusterPath, _ := cmd.Flags().GetString("cluster-table")

			log.Info().Msg("building probability table")
			prob, err := probability.Build(cmd.Context())
			if err != nil {
				return err
			}
			if err := prob.Save(probPath); err != nil {
				return err
			}
			log.Info().Str("path", probPath).Msg("probability table persisted")

			log.Info().Int("k", k).Int("iters", iters).Msg("building cluster table")
			clusters, err := cluster.Build(cmd.Context(), prob, k, iters)
			if err != nil {
				return err
			}
			if err := clusters.Save(clusterPath); err != nil {
				return err
			}
			log.Info().Str("path", clusterPath).Msg("cluster table persisted")

			return nil
		},
	}

	cmd.Flags().IntVar(&k, "k", cluster.DefaultK, "target centroid count per (own_size, opp_size) pair")
	cmd.Flags().IntVar(&iters, "iters", cluster.DefaultIters, "maximum k-means iterations per pair")

	return cmd
}
