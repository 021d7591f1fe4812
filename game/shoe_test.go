package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	erand "golang.org/x/exp/rand"

	"github.com/zeu5/blackjack-mc/core"
)

func TestShoeDealsEveryCardOnce(t *testing.T) {
	shoe := NewShoe(1, erand.NewSource(3))
	require.Equal(t, cardsPerDeck, shoe.Remaining())

	seen := make(map[core.Card]bool)
	for i := 0; i < cardsPerDeck; i++ {
		c, err := shoe.Draw()
		require.NoError(t, err)
		require.False(t, seen[c], "card %s dealt twice", c)
		seen[c] = true
	}
	assert.Len(t, seen, cardsPerDeck)
	assert.Equal(t, 0, shoe.Remaining())

	// an exhausted shoe reshuffles on the next draw
	_, err := shoe.Draw()
	require.NoError(t, err)
	assert.Equal(t, cardsPerDeck-1, shoe.Remaining())
}

func TestShoeCardCounts(t *testing.T) {
	decks := 2
	shoe := NewShoe(decks, erand.NewSource(11))

	counts := make(map[core.Card]int)
	for i := 0; i < decks*cardsPerDeck; i++ {
		c, err := shoe.Draw()
		require.NoError(t, err)
		counts[c]++
	}
	require.Len(t, counts, cardsPerDeck)
	for c, n := range counts {
		assert.Equal(t, decks, n, "card %s", c)
	}
}

func TestShoeNeedsShuffle(t *testing.T) {
	shoe := NewShoe(1, erand.NewSource(5))
	assert.False(t, shoe.NeedsShuffle())

	// a quarter of 52 is 13, dealing 40 leaves 12
	for i := 0; i < 40; i++ {
		_, err := shoe.Draw()
		require.NoError(t, err)
	}
	assert.True(t, shoe.NeedsShuffle())

	shoe.Shuffle()
	assert.False(t, shoe.NeedsShuffle())
	assert.Equal(t, cardsPerDeck, shoe.Remaining())
}

func TestShuffleKeepsCardsInPlayOut(t *testing.T) {
	shoe := NewShoe(1, erand.NewSource(13))
	inPlay := []core.Card{core.NewCard(core.Spades, core.Ace), core.NewCard(core.Diamonds, core.King)}
	shoe.Shuffle(inPlay...)
	require.Equal(t, cardsPerDeck-2, shoe.Remaining())

	for shoe.Remaining() > 0 {
		c, err := shoe.Draw()
		require.NoError(t, err)
		assert.NotContains(t, inPlay, c)
	}
}

func TestInfiniteShoe(t *testing.T) {
	shoe := NewShoe(infiniteDecks, erand.NewSource(9))
	assert.Equal(t, -1, shoe.Remaining())

	seen := make(map[core.Card]int)
	for i := 0; i < 1000; i++ {
		c, err := shoe.Draw()
		require.NoError(t, err)
		seen[c]++
	}
	assert.False(t, shoe.NeedsShuffle())
	assert.Equal(t, -1, shoe.Remaining())
	// the same card keeps coming back
	assert.Less(t, len(seen), 1000)
}

func TestShoeIsReproducible(t *testing.T) {
	a := NewShoe(6, erand.NewSource(42))
	b := NewShoe(6, erand.NewSource(42))
	for i := 0; i < 100; i++ {
		x, err := a.Draw()
		require.NoError(t, err)
		y, err := b.Draw()
		require.NoError(t, err)
		require.Equal(t, x, y)
	}
}
