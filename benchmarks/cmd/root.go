package cmd

import (
	"context"
	"os"
	"os/signal"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/zeu5/blackjack-mc/benchmarks/blackjack"
	"github.com/zeu5/blackjack-mc/core"
	"github.com/zeu5/blackjack-mc/logging"
)

func RootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "blackjack-mc",
		Short:         "Train a Monte-Carlo blackjack player",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := UpdateFlags(cmd.Flags()); err != nil {
				return err
			}
			logging.Init(logging.Config{
				Level:  flags.LogLevel,
				Format: flags.LogFormat,
				Output: os.Stderr,
			})
			if err := flags.Validate(); err != nil {
				return err
			}
			if flags.Seed == 0 {
				flags.Seed = uint64(time.Now().UnixNano())
			}
			flags.RunID = uuid.NewString()
			if err := flags.Record(); err != nil {
				return err
			}
			logging.Info().
				Add(logging.RunID(flags.RunID)).
				Add(logging.Str("results", flags.ResultsPath())).
				Add(logging.Str("seed", formatSeed(flags.Seed))).
				Msg("configuration recorded")
			return nil
		},
	}
	AddFlags(cmd.PersistentFlags())

	cmd.AddCommand(
		TrainCommand(),
		CompareCommand(),
	)

	return cmd
}

// runComparison runs until done or until the process is interrupted.
func runComparison(cmp *core.ParallelComparison) error {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt) // channel for interrupts from os
	defer signal.Stop(sigCh)

	doneCh := make(chan struct{}) // channel for done signal from application

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		select {
		case <-sigCh:
		case <-doneCh:
		}
		cancel()
	}()

	results, err := cmp.Run(ctx, flags.NumRuns, blackjack.RunConfig(flags), flags.Parallelism)
	close(doneCh)
	for run, rr := range results {
		for name, r := range rr {
			logging.Info().
				Add(logging.Run(run)).
				Add(logging.Experiment(name)).
				Add(logging.Episodes(r.CompletedEpisodes)).
				Add(logging.Int("errors", r.ErrorEpisodes)).
				Add(logging.Reward("mean_reward", r.MeanReward())).
				Msg("result")
		}
	}
	return err
}
