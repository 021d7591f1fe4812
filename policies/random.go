package policies

import (
	"sync/atomic"

	erand "golang.org/x/exp/rand"

	"github.com/zeu5/blackjack-mc/core"
)

// RandomPolicy hits or stands with equal probability and learns nothing.
type RandomPolicy struct {
	eval HandEvaluator
	rand *erand.Rand
}

var _ core.Policy = &RandomPolicy{}

func NewRandomPolicy(eval HandEvaluator, seed uint64) *RandomPolicy {
	return &RandomPolicy{
		eval: eval,
		rand: erand.New(erand.NewSource(seed)),
	}
}

func (r *RandomPolicy) PickAction(_ *core.StepContext, hand core.Hand, _ core.Card) (core.Action, error) {
	if _, err := maximalTotal(r.eval, hand); err != nil {
		return core.Hit, err
	}
	if r.rand.Intn(2) == 0 {
		return core.Hit, nil
	}
	return core.Stand, nil
}

func (r *RandomPolicy) UpdateEpisode(_ *core.EpisodeContext) error {
	return nil
}

type RandomPolicyConstructor struct {
	Eval HandEvaluator
	Seed uint64

	created atomic.Uint64
}

var _ core.PolicyConstructor = &RandomPolicyConstructor{}

// NewPolicy seeds the n-th policy it builds with Seed + n, whichever worker asks.
func (r *RandomPolicyConstructor) NewPolicy(_ int) core.Policy {
	return NewRandomPolicy(r.Eval, r.Seed+r.created.Add(1)-1)
}
