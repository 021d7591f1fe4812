package core

import (
	"context"
	"encoding/json"
	"fmt"
)

type Action int

const (
	Hit Action = iota
	Stand
)

func (a Action) String() string {
	switch a {
	case Hit:
		return "HIT"
	case Stand:
		return "STAND"
	}
	return fmt.Sprintf("Action(%d)", int(a))
}

func (a Action) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

func (a *Action) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch s {
	case "HIT":
		*a = Hit
	case "STAND":
		*a = Stand
	default:
		return fmt.Errorf("unknown action: %s", s)
	}
	return nil
}

// Observation is what the player sees at a decision point. Once Done is set the
// episode is over and Reward holds the terminal reward.
type Observation struct {
	Hand       Hand
	DealerCard Card
	Done       bool
	Reward     float64
}

type Environment interface {
	Reset() (*Observation, error)
	Step(Action) (*Observation, error)
}

type EnvironmentConstructor interface {
	// NewEnvironment creates a new environment with the given instance number.
	NewEnvironment(int) Environment
}

type EpisodeContext struct {
	Context context.Context
	Episode int
	Run     int

	Trace  *Trace
	Reward float64

	err error
}

func NewEpisodeContext(ctx context.Context) *EpisodeContext {
	return &EpisodeContext{
		Context: ctx,
		Trace:   NewTrace(),
	}
}

func (e *EpisodeContext) Error(err error) {
	e.err = err
}

func (e *EpisodeContext) Err() error {
	return e.err
}

func (e *EpisodeContext) IsError() bool {
	return e.err != nil
}

type StepContext struct {
	Step int
	*EpisodeContext
}
