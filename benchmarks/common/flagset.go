package common

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path"

	"gopkg.in/yaml.v3"

	"github.com/zeu5/blackjack-mc/util"
)

var ErrInvalidFlags = errors.New("invalid flags")

type Flags struct {
	SavePath   string `yaml:"save_path" json:"save_path"`
	RunID      string `yaml:"-" json:"run_id"`
	RunFlags   `yaml:",inline"`
	AgentFlags `yaml:",inline"`
	TableFlags `yaml:",inline"`

	Parallelism int    `yaml:"parallelism" json:"parallelism"`
	Seed        uint64 `yaml:"seed" json:"seed"`
	Window      int    `yaml:"window" json:"window"`
	Debug       bool   `yaml:"debug" json:"debug"`
	LogLevel    string `yaml:"log_level" json:"log_level"`
	LogFormat   string `yaml:"log_format" json:"log_format"`
}

type RunFlags struct {
	NumRuns              int `yaml:"num_runs" json:"num_runs"`
	Episodes             int `yaml:"episodes" json:"episodes"`
	Horizon              int `yaml:"horizon" json:"horizon"`
	MaxConsecutiveErrors int `yaml:"max_consecutive_errors" json:"max_consecutive_errors"`
}

type AgentFlags struct {
	Epsilon            float64 `yaml:"epsilon" json:"epsilon"`
	StandProbability   float64 `yaml:"stand_probability" json:"stand_probability"`
	ForcedHitThreshold int     `yaml:"forced_hit_threshold" json:"forced_hit_threshold"`
	Discount           float64 `yaml:"discount" json:"discount"`
}

type TableFlags struct {
	Decks           int     `yaml:"decks" json:"decks"`
	HitSoft17       bool    `yaml:"hit_soft_17" json:"hit_soft_17"`
	BlackjackPayout float64 `yaml:"blackjack_payout" json:"blackjack_payout"`
}

func DefaultFlags() *Flags {
	return &Flags{
		SavePath: "results",
		RunFlags: RunFlags{
			NumRuns:              1,
			Episodes:             500000,
			Horizon:              25,
			MaxConsecutiveErrors: 20,
		},
		AgentFlags: AgentFlags{
			Epsilon:            0.05,
			StandProbability:   0.5,
			ForcedHitThreshold: 11,
			Discount:           1,
		},
		TableFlags: TableFlags{
			Decks:           6,
			HitSoft17:       false,
			BlackjackPayout: 1.5,
		},
		Parallelism: 4,
		Seed:        0,
		Window:      5000,
		Debug:       false,
		LogLevel:    "info",
		LogFormat:   "auto",
	}
}

// LoadFile overlays the values of a YAML file onto f. Unknown keys are rejected.
func (f *Flags) LoadFile(file string) error {
	data, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("reading config: %w", err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(f); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidFlags, file, err)
	}
	return nil
}

func (f *Flags) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...interface{}) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}
	check(f.SavePath != "", "save path is empty")
	check(f.NumRuns > 0, "num runs must be positive, got %d", f.NumRuns)
	check(f.Episodes > 0, "episodes must be positive, got %d", f.Episodes)
	check(f.Horizon >= 0, "horizon must not be negative, got %d", f.Horizon)
	check(f.Epsilon >= 0 && f.Epsilon <= 1, "epsilon must be within [0, 1], got %v", f.Epsilon)
	check(f.StandProbability >= 0 && f.StandProbability <= 1, "stand probability must be within [0, 1], got %v", f.StandProbability)
	check(f.Discount > 0 && f.Discount <= 1, "discount must be within (0, 1], got %v", f.Discount)
	check(f.Decks >= 0, "decks must not be negative, got %d", f.Decks)
	check(f.BlackjackPayout >= 0, "blackjack payout must not be negative, got %v", f.BlackjackPayout)
	check(f.Parallelism > 0, "parallelism must be positive, got %d", f.Parallelism)
	check(f.Window > 0, "window must be positive, got %d", f.Window)
	if len(errs) > 0 {
		return fmt.Errorf("%w: %v", ErrInvalidFlags, errors.Join(errs...))
	}
	return nil
}

// ResultsPath is where everything of this invocation is written.
func (f *Flags) ResultsPath() string {
	if f.RunID == "" {
		return f.SavePath
	}
	return path.Join(f.SavePath, f.RunID)
}

func (f *Flags) Record() error {
	return util.SaveJson(path.Join(f.ResultsPath(), "config.json"), f)
}
