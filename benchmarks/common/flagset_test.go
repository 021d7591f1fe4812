package common

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultFlagsAreValid(t *testing.T) {
	assert.NoError(t, DefaultFlags().Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Flags)
	}{
		{"no save path", func(f *Flags) { f.SavePath = "" }},
		{"no runs", func(f *Flags) { f.NumRuns = 0 }},
		{"no episodes", func(f *Flags) { f.Episodes = 0 }},
		{"negative horizon", func(f *Flags) { f.Horizon = -1 }},
		{"epsilon above one", func(f *Flags) { f.Epsilon = 1.2 }},
		{"negative stand probability", func(f *Flags) { f.StandProbability = -0.1 }},
		{"zero discount", func(f *Flags) { f.Discount = 0 }},
		{"negative decks", func(f *Flags) { f.Decks = -2 }},
		{"negative payout", func(f *Flags) { f.BlackjackPayout = -1 }},
		{"no workers", func(f *Flags) { f.Parallelism = 0 }},
		{"empty window", func(f *Flags) { f.Window = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := DefaultFlags()
			tt.modify(f)
			assert.ErrorIs(t, f.Validate(), ErrInvalidFlags)
		})
	}
}

func TestValidateReportsEveryProblem(t *testing.T) {
	f := DefaultFlags()
	f.Episodes = 0
	f.Window = -1

	err := f.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "episodes must be positive")
	assert.Contains(t, err.Error(), "window must be positive")
}

func TestLoadFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(file, []byte(`
episodes: 1000
epsilon: 0.2
decks: 0
hit_soft_17: true
log_format: json
`), 0644))

	f := DefaultFlags()
	require.NoError(t, f.LoadFile(file))

	assert.Equal(t, 1000, f.Episodes)
	assert.Equal(t, 0.2, f.Epsilon)
	assert.Equal(t, 0, f.Decks)
	assert.True(t, f.HitSoft17)
	assert.Equal(t, "json", f.LogFormat)
	// untouched keys keep their defaults
	assert.Equal(t, 0.5, f.StandProbability)
	assert.Equal(t, "results", f.SavePath)
}

func TestLoadFileRejectsUnknownKeys(t *testing.T) {
	file := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(file, []byte("episodez: 10\n"), 0644))

	err := DefaultFlags().LoadFile(file)
	assert.ErrorIs(t, err, ErrInvalidFlags)
}

func TestLoadFileMissing(t *testing.T) {
	err := DefaultFlags().LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRecord(t *testing.T) {
	f := DefaultFlags()
	f.SavePath = t.TempDir()
	f.RunID = "abc"
	f.Seed = 17
	require.NoError(t, f.Record())

	bs, err := os.ReadFile(filepath.Join(f.SavePath, "abc", "config.json"))
	require.NoError(t, err)

	var recorded map[string]interface{}
	require.NoError(t, json.Unmarshal(bs, &recorded))
	assert.Equal(t, "abc", recorded["run_id"])
	assert.Equal(t, float64(17), recorded["seed"])
	assert.Equal(t, float64(500000), recorded["episodes"])
}

func TestResultsPath(t *testing.T) {
	f := DefaultFlags()
	assert.Equal(t, "results", f.ResultsPath())
	f.RunID = "x"
	assert.Equal(t, filepath.Join("results", "x"), f.ResultsPath())
}
