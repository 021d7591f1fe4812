package blackjack

import (
	"fmt"
	"io"

	"github.com/zeu5/blackjack-mc/analysis"
	"github.com/zeu5/blackjack-mc/benchmarks/common"
	"github.com/zeu5/blackjack-mc/core"
	"github.com/zeu5/blackjack-mc/game"
	"github.com/zeu5/blackjack-mc/policies"
)

const (
	MonteCarloExperiment = "MonteCarlo"
	RandomExperiment     = "Random"
	AvoidBustExperiment  = "AvoidBust"
)

// PrepareTrainComparison sets up the Monte-Carlo agent alone.
func PrepareTrainComparison(flags *common.Flags, out io.Writer) (*core.ParallelComparison, error) {
	cmp, mc, err := newComparison(flags, out)
	if err != nil {
		return nil, err
	}
	cmp.AddExperiment(&core.ParallelExperiment{
		Name:        MonteCarloExperiment,
		Environment: tableConstructor(flags),
		Policy:      mc,
	})
	return cmp, nil
}

// PrepareComparison sets up the Monte-Carlo agent next to the random and the
// avoid-bust baselines.
func PrepareComparison(flags *common.Flags, out io.Writer) (*core.ParallelComparison, error) {
	cmp, mc, err := newComparison(flags, out)
	if err != nil {
		return nil, err
	}
	cmp.AddExperiment(&core.ParallelExperiment{
		Name:        MonteCarloExperiment,
		Environment: tableConstructor(flags),
		Policy:      mc,
	})
	cmp.AddExperiment(&core.ParallelExperiment{
		Name:        RandomExperiment,
		Environment: tableConstructor(flags),
		Policy: &policies.RandomPolicyConstructor{
			Eval: game.NonBustingTotals,
			Seed: flags.Seed,
		},
	})
	cmp.AddExperiment(&core.ParallelExperiment{
		Name:        AvoidBustExperiment,
		Environment: tableConstructor(flags),
		Policy:      &policies.AvoidBustPolicyConstructor{Eval: game.NonBustingTotals},
	})
	return cmp, nil
}

func newComparison(flags *common.Flags, out io.Writer) (*core.ParallelComparison, *policies.MonteCarloConstructor, error) {
	mc, err := policies.NewMonteCarloConstructor(game.NonBustingTotals, policies.MonteCarloParams{
		ProbabilityOfRandomChoice: flags.Epsilon,
		ProbabilityOfStand:        flags.StandProbability,
		ForcedHitThreshold:        flags.ForcedHitThreshold,
		Discount:                  flags.Discount,
		Seed:                      flags.Seed,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", common.ErrInvalidFlags, err)
	}

	savePath := flags.ResultsPath()
	cmp := core.NewParallelComparison()
	cmp.Output = out

	if flags.Debug {
		cmp.AddAnalysis("Debug", analysis.NewPrintDebugAnalyzerConstructor(savePath, flags.Episodes-10), analysis.NewNoOpComparatorConstructor())
	}
	cmp.AddAnalysis("Errors", analysis.NewErrorAnalyzerConstructor(savePath), analysis.NewNoOpComparatorConstructor())
	cmp.AddAnalysis("Rewards", analysis.NewRewardAnalyzerConstructor(flags.Window), analysis.NewRewardComparatorConstructor(savePath))
	cmp.Reports = analysis.NewStrategyComparatorConstructor(savePath, out)
	return cmp, mc, nil
}

// tableConstructor is called once per experiment so every experiment deals from
// the same sequence of shoes.
func tableConstructor(flags *common.Flags) *game.TableConstructor {
	return game.NewTableConstructor(game.TableConfig{
		Decks:           flags.Decks,
		HitSoft17:       flags.HitSoft17,
		BlackjackPayout: flags.BlackjackPayout,
		Seed:            flags.Seed,
	})
}

// RunConfig translates the flags into the runner configuration.
func RunConfig(flags *common.Flags) *core.RunConfig {
	return &core.RunConfig{
		Episodes:                   flags.Episodes,
		Horizon:                    flags.Horizon,
		ThresholdConsecutiveErrors: flags.MaxConsecutiveErrors,
	}
}
