package cmd

import (
	"github.com/spf13/pflag"

	"github.com/zeu5/blackjack-mc/benchmarks/common"
)

var (
	flags      *common.Flags = common.DefaultFlags()
	configPath string
)

func AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&configPath, "config", "", "YAML file with flag values, explicit flags take precedence")
	fs.StringVar(&flags.SavePath, "save-path", flags.SavePath, "Path to save results")

	fs.IntVar(&flags.NumRuns, "num-runs", flags.NumRuns, "Number of runs")
	fs.IntVar(&flags.Episodes, "episodes", flags.Episodes, "Number of episodes")
	fs.IntVar(&flags.Horizon, "horizon", flags.Horizon, "Maximum decisions per episode, 0 for no limit")
	fs.IntVar(&flags.MaxConsecutiveErrors, "max-consecutive-errors", flags.MaxConsecutiveErrors, "Maximum number of consecutive errors")

	fs.Float64Var(&flags.Epsilon, "epsilon", flags.Epsilon, "Probability of a random choice")
	fs.Float64Var(&flags.StandProbability, "stand-probability", flags.StandProbability, "Probability of standing on a random choice or a tie")
	fs.IntVar(&flags.ForcedHitThreshold, "forced-hit-threshold", flags.ForcedHitThreshold, "Totals up to this value always hit")
	fs.Float64Var(&flags.Discount, "discount", flags.Discount, "Discount factor")

	fs.IntVar(&flags.Decks, "decks", flags.Decks, "Decks in the shoe, 0 for an infinite deck")
	fs.BoolVar(&flags.HitSoft17, "hit-soft-17", flags.HitSoft17, "Dealer hits on soft 17")
	fs.Float64Var(&flags.BlackjackPayout, "blackjack-payout", flags.BlackjackPayout, "Reward of a player natural")

	fs.IntVar(&flags.Parallelism, "parallelism", flags.Parallelism, "Number of parallel experiments")
	fs.Uint64Var(&flags.Seed, "seed", flags.Seed, "Random seed, 0 picks one from the clock")
	fs.IntVar(&flags.Window, "window", flags.Window, "Episodes averaged per point of the learning curve")
	fs.BoolVar(&flags.Debug, "debug", flags.Debug, "Save the traces of the last episodes")
	fs.StringVar(&flags.LogLevel, "log-level", flags.LogLevel, "Log level (debug, info, warn, error)")
	fs.StringVar(&flags.LogFormat, "log-format", flags.LogFormat, "Log format (auto, console, json)")
}

// UpdateFlags loads the config file, if any, underneath the flags that were set on
// the command line.
func UpdateFlags(fs *pflag.FlagSet) error {
	if configPath == "" {
		return nil
	}
	explicit := make(map[string]string)
	fs.Visit(func(f *pflag.Flag) {
		explicit[f.Name] = f.Value.String()
	})
	if err := flags.LoadFile(configPath); err != nil {
		return err
	}
	for name, value := range explicit {
		if err := fs.Set(name, value); err != nil {
			return err
		}
	}
	return nil
}
