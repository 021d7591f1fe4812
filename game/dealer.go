package game

import "github.com/zeu5/blackjack-mc/core"

const dealerStandsOn = 17

// DealerShouldHit applies the house rule: hit below 17, and on a soft 17 when
// hitSoft17 is set.
func DealerShouldHit(hand core.Hand, hitSoft17 bool) bool {
	total, ok := BestTotal(hand)
	if !ok {
		return false
	}
	if total < dealerStandsOn {
		return true
	}
	return hitSoft17 && total == dealerStandsOn && IsSoft(hand)
}

// PlayDealer draws for the dealer until the house rule says stand or the hand busts.
func PlayDealer(hand core.Hand, draw func() (core.Card, error), hitSoft17 bool) (core.Hand, error) {
	for DealerShouldHit(hand, hitSoft17) {
		c, err := draw()
		if err != nil {
			return hand, err
		}
		hand = append(hand, c)
	}
	return hand, nil
}
