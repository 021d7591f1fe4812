package cmd

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/zeu5/blackjack-mc/benchmarks/blackjack"
)

func TrainCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "train",
		Short: "Train the Monte-Carlo agent and print the learned strategy",
		RunE: func(cmd *cobra.Command, args []string) error {
			cmp, err := blackjack.PrepareTrainComparison(flags, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			return runComparison(cmp)
		},
	}
}

func CompareCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "compare",
		Short: "Compare the Monte-Carlo agent with the random and avoid-bust baselines",
		RunE: func(cmd *cobra.Command, args []string) error {
			cmp, err := blackjack.PrepareComparison(flags, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			return runComparison(cmp)
		},
	}
}

func formatSeed(seed uint64) string {
	return strconv.FormatUint(seed, 10)
}
