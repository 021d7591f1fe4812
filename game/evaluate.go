// Package game holds the blackjack table the learner is trained against: hand
// evaluation, the shoe, the dealer and the reward settlement.
package game

import "github.com/zeu5/blackjack-mc/core"

const (
	BustThreshold = 21
	// aceBonus is what an Ace adds when it is counted as 11 instead of 1
	aceBonus = 10
)

// NonBustingTotals returns the distinct totals of the hand that do not exceed
// BustThreshold, in ascending order. Every Ace can count 1 or 11. A busted hand
// yields an empty slice.
func NonBustingTotals(hand core.Hand) []int {
	hard := 0
	aces := 0
	for _, c := range hand {
		hard += c.Rank().Points()
		if c.Rank() == core.Ace {
			aces++
		}
	}

	totals := make([]int, 0, aces+1)
	for promoted := 0; promoted <= aces; promoted++ {
		total := hard + promoted*aceBonus
		if total > BustThreshold {
			break
		}
		totals = append(totals, total)
	}
	return totals
}

// BestTotal is the largest non-busting total, ok is false when the hand is bust.
func BestTotal(hand core.Hand) (total int, ok bool) {
	totals := NonBustingTotals(hand)
	if len(totals) == 0 {
		return 0, false
	}
	return totals[len(totals)-1], true
}

// IsSoft reports whether the best total counts an Ace as 11.
func IsSoft(hand core.Hand) bool {
	return len(NonBustingTotals(hand)) > 1
}

// IsNatural reports a two card 21.
func IsNatural(hand core.Hand) bool {
	total, ok := BestTotal(hand)
	return ok && len(hand) == 2 && total == BustThreshold
}
