package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/behrlich/thaipoker/pkg/cards"
	"github.com/behrlich/thaipoker/pkg/probability"
)

func newQueryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query <bet> <n> <hand>",
		Short: "Print the exact completion count and probability for a bet, target size, and partial hand",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			probPath, _ := cmd.Flags().GetString("prob-table")

			bet, err := cards.ParseBet(args[0])
			if err != nil {
				return err
			}
			n, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid n: %w", err)
			}
			hand, err := cards.ParseHand(args[2])
			if err != nil {
				return err
			}

			tbl, err := probability.Load(probPath)
			if err != nil {
				return err
			}

			count, err := tbl.CompletionCount(bet, n, hand)
			if err != nil {
				return err
			}
			prob, err := tbl.Probability(bet, n, hand)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "completion_count(%s, %d, %s) = %d\n", bet, n, hand, count)
			fmt.Fprintf(cmd.OutOrStdout(), "probability(%s, %d, %s) = %.6f\n", bet, n, hand, prob)
			return nil
		},
	}
	return cmd
}
