package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/behrlich/thaipoker/internal/buildlog"
	"github.com/behrlich/thaipoker/pkg/cards"
	"github.com/behrlich/thaipoker/pkg/cluster"
	"github.com/behrlich/thaipoker/pkg/probability"
)

// newServeCmd loads both persisted tables once and then blocks,
// demonstrating the read-only, concurrency-safe lifecycle a CFR
// trainer process would run under: one load, unsynchronized
// concurrent queries for the rest of the process's life.
func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Load the persisted tables and idle, ready for concurrent queries until terminated",
		RunE: func(cmd *cobra.Command, args []string) error {
			log := buildlog.New("cli")
			probPath, _ := cmd.Flags().GetString("prob-table")
			clusterPath, _ := cmd.Flags().GetString("cluster-table")

			log.Info().Str("path", probPath).Msg("loading probability table")
			prob, err := probability.Load(probPath)
			if err != nil {
				return err
			}

			log.Info().Str("path", clusterPath).Msg("loading cluster table")
			clusters, err := cluster.Load(clusterPath)
			if err != nil {
				return err
			}

			if _, err := prob.Probability(cards.HIGH_STRAIGHT, cards.CardNB, 0); err != nil {
				return err
			}
			if _, err := clusters.Sample(0, 0); err != nil {
				return err
			}

			log.Info().Msg("tables loaded, serving until signaled")

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
			<-sigCh

			log.Info().Msg("shutting down")
			return nil
		},
	}
	return cmd
}
