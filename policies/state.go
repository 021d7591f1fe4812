package policies

import (
	"errors"
	"fmt"

	"github.com/zeu5/blackjack-mc/core"
)

var ErrBustedHand = errors.New("hand has no non-busting total")

// HandEvaluator returns the totals of a hand that do not bust, an empty result
// means the hand is bust.
type HandEvaluator func(core.Hand) []int

// State is the abstraction the values are learned for. Hands that agree on the
// best total, the dealer's visible rank and whether an Ace still counts 11 are
// played the same way.
type State struct {
	Total        int       `json:"total"`
	OpponentCard core.Rank `json:"opponent_card"`
	Flexible     bool      `json:"flexible"`
}

func (s State) String() string {
	kind := "hard"
	if s.Flexible {
		kind = "soft"
	}
	return fmt.Sprintf("%s %d vs %s", kind, s.Total, s.OpponentCard)
}

// DeriveState recomputes the state from the hand, it is never cached since the
// hand grows between calls.
func DeriveState(eval HandEvaluator, hand core.Hand, opponent core.Card) (State, error) {
	totals := eval(hand)
	if len(totals) == 0 {
		return State{}, fmt.Errorf("%w: %s", ErrBustedHand, hand)
	}
	return State{
		Total:        maxTotal(totals),
		OpponentCard: opponent.Rank(),
		Flexible:     len(totals) > 1,
	}, nil
}

// maximalTotal evaluates the hand and returns its best total.
func maximalTotal(eval HandEvaluator, hand core.Hand) (int, error) {
	totals := eval(hand)
	if len(totals) == 0 {
		return 0, fmt.Errorf("%w: %s", ErrBustedHand, hand)
	}
	return maxTotal(totals), nil
}

func maxTotal(totals []int) int {
	best := totals[0]
	for _, t := range totals[1:] {
		if t > best {
			best = t
		}
	}
	return best
}

// Key identifies one entry of the value table.
type Key struct {
	State  State
	Action core.Action
}

// Visit is one decision of an episode, already abstracted.
type Visit struct {
	State  State
	Action core.Action
}
