package game

import (
	"errors"

	erand "golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/sampleuv"

	"github.com/zeu5/blackjack-mc/core"
)

const (
	cardsPerDeck  = 52
	ranksPerSuit  = 13
	suitsPerDeck  = 4
	infiniteDecks = 0

	// ReshufflePenetration is the fraction of the shoe left when it gets reshuffled
	ReshufflePenetration = 0.25
)

var ErrEmptyShoe = errors.New("shoe is empty")

// Shoe deals cards from a number of decks shuffled together. A shoe built with zero
// decks never runs out, every draw is independent of the previous ones.
type Shoe struct {
	decks     int
	counts    []float64
	remaining int
	src       erand.Source
	sampler   sampleuv.Weighted
}

func NewShoe(decks int, src erand.Source) *Shoe {
	if decks < 0 {
		decks = infiniteDecks
	}
	s := &Shoe{
		decks:  decks,
		counts: make([]float64, cardsPerDeck),
		src:    src,
	}
	s.Shuffle()
	return s
}

// Shuffle puts every card back in the shoe except the ones still in play.
func (s *Shoe) Shuffle(inPlay ...core.Card) {
	perCard := float64(s.decks)
	if s.decks == infiniteDecks {
		perCard = 1
	}
	for i := range s.counts {
		s.counts[i] = perCard
	}
	s.remaining = s.decks * cardsPerDeck
	if s.decks != infiniteDecks {
		for _, c := range inPlay {
			if i := cardIndex(c); s.counts[i] > 0 {
				s.counts[i]--
				s.remaining--
			}
		}
	}
	s.sampler = sampleuv.NewWeighted(s.counts, s.src)
}

// Remaining is the number of cards left, -1 for an infinite shoe.
func (s *Shoe) Remaining() int {
	if s.decks == infiniteDecks {
		return -1
	}
	return s.remaining
}

// NeedsShuffle reports whether the shoe went below the reshuffle penetration.
func (s *Shoe) NeedsShuffle() bool {
	if s.decks == infiniteDecks {
		return false
	}
	return float64(s.remaining) < ReshufflePenetration*float64(s.decks*cardsPerDeck)
}

// Draw removes one card from the shoe. An exhausted shoe is reshuffled first, callers
// with cards in play reshuffle through Shuffle themselves.
func (s *Shoe) Draw() (core.Card, error) {
	if s.decks != infiniteDecks && s.remaining == 0 {
		s.Shuffle()
	}
	i, ok := s.sampler.Take()
	if !ok {
		return 0, ErrEmptyShoe
	}
	// Take zeroes the weight of the drawn index, restore what is left of that card
	if s.decks != infiniteDecks {
		s.counts[i]--
		s.remaining--
	}
	s.sampler.Reweight(i, s.counts[i])
	return cardAt(i), nil
}

func cardIndex(c core.Card) int {
	return int(c.Suit())*ranksPerSuit + int(c.Rank()) - 1
}

func cardAt(i int) core.Card {
	return core.NewCard(core.Suit(i/ranksPerSuit), core.Rank(i%ranksPerSuit+1))
}
