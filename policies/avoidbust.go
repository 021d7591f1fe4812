package policies

import "github.com/zeu5/blackjack-mc/core"

const DefaultAvoidBustStandTotal = 12

// AvoidBustPolicy stands as soon as the best total reaches StandTotal, ignoring
// the dealer card. It is the fixed baseline the learner is compared against.
type AvoidBustPolicy struct {
	eval       HandEvaluator
	StandTotal int
}

var _ core.Policy = &AvoidBustPolicy{}

func NewAvoidBustPolicy(eval HandEvaluator) *AvoidBustPolicy {
	return &AvoidBustPolicy{
		eval:       eval,
		StandTotal: DefaultAvoidBustStandTotal,
	}
}

func (p *AvoidBustPolicy) PickAction(_ *core.StepContext, hand core.Hand, _ core.Card) (core.Action, error) {
	total, err := maximalTotal(p.eval, hand)
	if err != nil {
		return core.Hit, err
	}
	if total >= p.StandTotal {
		return core.Stand, nil
	}
	return core.Hit, nil
}

func (p *AvoidBustPolicy) UpdateEpisode(_ *core.EpisodeContext) error {
	return nil
}

type AvoidBustPolicyConstructor struct {
	Eval HandEvaluator
}

func (c *AvoidBustPolicyConstructor) NewPolicy(_ int) core.Policy {
	return NewAvoidBustPolicy(c.Eval)
}
