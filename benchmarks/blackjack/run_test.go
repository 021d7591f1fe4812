package blackjack

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeu5/blackjack-mc/benchmarks/common"
	"github.com/zeu5/blackjack-mc/policies"
)

func testFlags(t *testing.T) *common.Flags {
	f := common.DefaultFlags()
	f.SavePath = t.TempDir()
	f.RunID = "test"
	f.Episodes = 2000
	f.Window = 500
	f.Seed = 5
	f.Parallelism = 2
	f.LogLevel = "error"
	return f
}

func TestPrepareComparison(t *testing.T) {
	flags := testFlags(t)
	out := new(bytes.Buffer)

	cmp, err := PrepareComparison(flags, out)
	require.NoError(t, err)
	require.Len(t, cmp.Experiments, 3)

	results, err := cmp.Run(t.Context(), 1, RunConfig(flags), flags.Parallelism)
	require.NoError(t, err)
	require.Len(t, results, 1)

	for _, name := range []string{MonteCarloExperiment, RandomExperiment, AvoidBustExperiment} {
		r, ok := results[0][name]
		require.True(t, ok, name)
		assert.False(t, r.IsError(), name)
		assert.Equal(t, flags.Episodes, r.CompletedEpisodes, name)
		assert.Equal(t, 0, r.ErrorEpisodes, name)
	}

	report, ok := results[0][MonteCarloExperiment].Report.(*policies.StrategyReport)
	require.True(t, ok)
	assert.NotEmpty(t, report.Entries)
	assert.Nil(t, results[0][RandomExperiment].Report)

	runDir := filepath.Join(flags.ResultsPath(), "0")
	assert.FileExists(t, filepath.Join(runDir, "rewards.json"))
	assert.FileExists(t, filepath.Join(runDir, "learning_curve.html"))
	assert.FileExists(t, filepath.Join(runDir, "strategy_MonteCarlo.json"))
	assert.Contains(t, out.String(), "Learned strategy: MonteCarlo")
}

func TestPrepareTrainComparisonRejectsInvalidAgent(t *testing.T) {
	flags := testFlags(t)
	flags.Epsilon = 3

	_, err := PrepareTrainComparison(flags, new(bytes.Buffer))
	assert.ErrorIs(t, err, common.ErrInvalidFlags)
}

func TestRunConfig(t *testing.T) {
	flags := testFlags(t)
	rc := RunConfig(flags)
	assert.Equal(t, flags.Episodes, rc.Episodes)
	assert.Equal(t, flags.Horizon, rc.Horizon)
	assert.Equal(t, flags.MaxConsecutiveErrors, rc.ThresholdConsecutiveErrors)
}
