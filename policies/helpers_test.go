package policies

import "github.com/zeu5/blackjack-mc/core"

// fixedSampler replays values in a loop and counts the draws.
type fixedSampler struct {
	values []float64
	calls  int
}

func newFixedSampler(values ...float64) *fixedSampler {
	return &fixedSampler{values: values}
}

func (f *fixedSampler) Float64() float64 {
	v := f.values[f.calls%len(f.values)]
	f.calls++
	return v
}

// testTotals mirrors the table's evaluator so the package tests do not depend on it.
func testTotals(hand core.Hand) []int {
	hard, aces := 0, 0
	for _, c := range hand {
		hard += c.Rank().Points()
		if c.Rank() == core.Ace {
			aces++
		}
	}
	totals := []int{}
	for i := 0; i <= aces && hard+10*i <= 21; i++ {
		totals = append(totals, hard+10*i)
	}
	return totals
}

func hand(ranks ...core.Rank) core.Hand {
	h := make(core.Hand, len(ranks))
	for i, r := range ranks {
		h[i] = core.NewCard(core.Suit(i%4), r)
	}
	return h
}

func card(r core.Rank) core.Card {
	return core.NewCard(core.Spades, r)
}
