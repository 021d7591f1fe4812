package game

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/zeu5/blackjack-mc/core"
)

func hand(ranks ...core.Rank) core.Hand {
	h := make(core.Hand, len(ranks))
	for i, r := range ranks {
		h[i] = core.NewCard(core.Suit(i%4), r)
	}
	return h
}

func TestNonBustingTotals(t *testing.T) {
	tests := []struct {
		name string
		hand core.Hand
		want []int
	}{
		{"empty", hand(), []int{0}},
		{"single ace", hand(core.Ace), []int{1, 11}},
		{"pair of aces", hand(core.Ace, core.Ace), []int{2, 12}},
		{"soft blackjack", hand(core.Ace, core.King), []int{11, 21}},
		{"hard", hand(10, 7), []int{17}},
		{"faces count ten", hand(core.Jack, core.Queen), []int{20}},
		{"ace forced low", hand(core.Ace, 5, core.King), []int{16}},
		{"two aces soft", hand(core.Ace, core.Ace, 9), []int{11, 21}},
		{"bust", hand(core.King, core.Queen, 2), []int{}},
		{"four aces", hand(core.Ace, core.Ace, core.Ace, core.Ace), []int{4, 14}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NonBustingTotals(tt.hand))
		})
	}
}

func TestBestTotal(t *testing.T) {
	total, ok := BestTotal(hand(core.Ace, 6))
	assert.True(t, ok)
	assert.Equal(t, 17, total)

	_, ok = BestTotal(hand(10, 6, 8))
	assert.False(t, ok)
}

func TestIsSoftAndNatural(t *testing.T) {
	assert.True(t, IsSoft(hand(core.Ace, 6)))
	assert.False(t, IsSoft(hand(core.Ace, 6, 10)))
	assert.False(t, IsSoft(hand(10, 6)))

	assert.True(t, IsNatural(hand(core.Ace, core.Queen)))
	assert.True(t, IsNatural(hand(10, core.Ace)))
	assert.False(t, IsNatural(hand(core.Ace, 5, 5)))
	assert.False(t, IsNatural(hand(10, 10)))
}
