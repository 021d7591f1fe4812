package policies

import (
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	erand "golang.org/x/exp/rand"

	"github.com/zeu5/blackjack-mc/core"
)

const (
	DefaultProbabilityOfRandomChoice = 1e-3
	DefaultProbabilityOfStand        = 0.5
	// DefaultForcedHitThreshold is the largest total that cannot bust on a hit,
	// standing there is never better than hitting.
	DefaultForcedHitThreshold = 11
	DefaultDiscount           = 1.0
)

var (
	ErrInvalidProbability = errors.New("probability must be within [0, 1]")
	ErrInvalidDiscount    = errors.New("discount factor must be within (0, 1]")
)

// Agent learns the value of hitting and standing by every-visit Monte-Carlo
// averaging of the terminal reward.
type Agent struct {
	store *ValueStore
	eval  HandEvaluator
	rng   Sampler

	probabilityOfRandomChoice float64
	probabilityOfStand        float64
	forcedHitThreshold        int
	discount                  float64
}

var (
	_ core.Policy   = &Agent{}
	_ core.Reporter = &Agent{}
)

type AgentOption func(*Agent) error

// WithStore trains into an existing store instead of a fresh one.
func WithStore(store *ValueStore) AgentOption {
	return func(a *Agent) error {
		a.store = store
		return nil
	}
}

func WithSampler(rng Sampler) AgentOption {
	return func(a *Agent) error {
		a.rng = rng
		return nil
	}
}

func WithSeed(seed uint64) AgentOption {
	return WithSampler(erand.New(erand.NewSource(seed)))
}

func WithProbabilityOfRandomChoice(p float64) AgentOption {
	return func(a *Agent) error {
		return a.SetProbabilityOfRandomChoice(p)
	}
}

func WithDefaultProbabilityOfStand(p float64) AgentOption {
	return func(a *Agent) error {
		if err := checkProbability(p); err != nil {
			return fmt.Errorf("stand probability: %w", err)
		}
		a.probabilityOfStand = p
		return nil
	}
}

func WithForcedHitThreshold(total int) AgentOption {
	return func(a *Agent) error {
		a.forcedHitThreshold = total
		return nil
	}
}

// WithDiscount sets the discount UpdateEpisode uses.
func WithDiscount(discount float64) AgentOption {
	return func(a *Agent) error {
		if err := checkDiscount(discount); err != nil {
			return err
		}
		a.discount = discount
		return nil
	}
}

func NewAgent(eval HandEvaluator, opts ...AgentOption) (*Agent, error) {
	a := &Agent{
		store:                     NewValueStore(),
		eval:                      eval,
		probabilityOfRandomChoice: DefaultProbabilityOfRandomChoice,
		probabilityOfStand:        DefaultProbabilityOfStand,
		forcedHitThreshold:        DefaultForcedHitThreshold,
		discount:                  DefaultDiscount,
	}
	for _, opt := range opts {
		if err := opt(a); err != nil {
			return nil, err
		}
	}
	if a.rng == nil {
		a.rng = erand.New(erand.NewSource(uint64(time.Now().UnixNano())))
	}
	return a, nil
}

func (a *Agent) Store() *ValueStore {
	return a.store
}

func (a *Agent) ProbabilityOfRandomChoice() float64 {
	return a.probabilityOfRandomChoice
}

func (a *Agent) SetProbabilityOfRandomChoice(p float64) error {
	if err := checkProbability(p); err != nil {
		return fmt.Errorf("random choice probability: %w", err)
	}
	a.probabilityOfRandomChoice = p
	return nil
}

// ChooseAction decides for the hand against the dealer's visible card. Totals up to
// the forced hit threshold always hit without consulting the table or drawing
// randomness. A busted hand is rejected with ErrBustedHand.
func (a *Agent) ChooseAction(hand core.Hand, opponent core.Card) (core.Action, error) {
	total, err := maximalTotal(a.eval, hand)
	if err != nil {
		return core.Hit, err
	}
	if total <= a.forcedHitThreshold {
		return core.Hit, nil
	}

	state, err := DeriveState(a.eval, hand, opponent)
	if err != nil {
		return core.Hit, err
	}
	return EpsilonGreedy(
		a.store.Value(state, core.Hit),
		a.store.Value(state, core.Stand),
		a.probabilityOfRandomChoice,
		a.probabilityOfStand,
		a.rng,
	), nil
}

// FinishEpisode walks the visits from the last decision back to the first. The last
// decision is credited with the terminal reward itself and every earlier one with
// the reward discounted once more per step. Each credit moves the stored value to
// the running mean of everything credited to that pair so far.
func (a *Agent) FinishEpisode(reward float64, visits []Visit, discount float64) error {
	if err := checkDiscount(discount); err != nil {
		return err
	}
	discounted := reward
	for i := len(visits) - 1; i >= 0; i-- {
		state, action := visits[i].State, visits[i].Action
		value := a.store.Value(state, action)
		n := float64(1 + a.store.Visits(state, action))
		a.store.Update(state, action, value+(discounted-value)/n)
		discounted *= discount
	}
	return nil
}

func (a *Agent) PickAction(_ *core.StepContext, hand core.Hand, dealerCard core.Card) (core.Action, error) {
	return a.ChooseAction(hand, dealerCard)
}

// UpdateEpisode replays the recorded trace through FinishEpisode. Forced hits are
// left out, ChooseAction never reads their values.
func (a *Agent) UpdateEpisode(eCtx *core.EpisodeContext) error {
	visits := make([]Visit, 0, eCtx.Trace.Len())
	for i := 0; i < eCtx.Trace.Len(); i++ {
		step := eCtx.Trace.Step(i)
		state, err := DeriveState(a.eval, step.Hand, step.DealerCard)
		if err != nil {
			return fmt.Errorf("episode %d step %d: %w", eCtx.Episode, i, err)
		}
		if state.Total <= a.forcedHitThreshold {
			continue
		}
		visits = append(visits, Visit{State: state, Action: step.Action})
	}
	return a.FinishEpisode(eCtx.Reward, visits, a.discount)
}

func (a *Agent) Report() core.DataSet {
	return NewStrategyReport(a.store)
}

func checkProbability(p float64) error {
	if !(p >= 0 && p <= 1) {
		return fmt.Errorf("%w: %v", ErrInvalidProbability, p)
	}
	return nil
}

func checkDiscount(d float64) error {
	if !(d > 0 && d <= 1) {
		return fmt.Errorf("%w: %v", ErrInvalidDiscount, d)
	}
	return nil
}

type MonteCarloParams struct {
	ProbabilityOfRandomChoice float64
	ProbabilityOfStand        float64
	ForcedHitThreshold        int
	Discount                  float64
	Seed                      uint64
}

func DefaultMonteCarloParams() MonteCarloParams {
	return MonteCarloParams{
		ProbabilityOfRandomChoice: DefaultProbabilityOfRandomChoice,
		ProbabilityOfStand:        DefaultProbabilityOfStand,
		ForcedHitThreshold:        DefaultForcedHitThreshold,
		Discount:                  DefaultDiscount,
		Seed:                      1,
	}
}

type MonteCarloConstructor struct {
	eval    HandEvaluator
	params  MonteCarloParams
	created atomic.Uint64
}

var _ core.PolicyConstructor = &MonteCarloConstructor{}

// NewMonteCarloConstructor validates the parameters once so NewPolicy cannot fail.
func NewMonteCarloConstructor(eval HandEvaluator, params MonteCarloParams) (*MonteCarloConstructor, error) {
	c := &MonteCarloConstructor{eval: eval, params: params}
	if _, err := c.newAgent(params.Seed); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *MonteCarloConstructor) newAgent(seed uint64) (*Agent, error) {
	return NewAgent(
		c.eval,
		WithSeed(seed),
		WithProbabilityOfRandomChoice(c.params.ProbabilityOfRandomChoice),
		WithDefaultProbabilityOfStand(c.params.ProbabilityOfStand),
		WithForcedHitThreshold(c.params.ForcedHitThreshold),
		WithDiscount(c.params.Discount),
	)
}

// NewPolicy builds an agent with its own store and its own seed.
func (c *MonteCarloConstructor) NewPolicy(_ int) core.Policy {
	agent, err := c.newAgent(c.params.Seed + c.created.Add(1))
	if err != nil {
		// parameters were validated in NewMonteCarloConstructor
		panic(err)
	}
	return agent
}
