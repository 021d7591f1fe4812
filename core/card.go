package core

import (
	"fmt"
	"strings"
)

type Suit byte

const (
	Spades Suit = iota
	Hearts
	Clubs
	Diamonds
)

var suitSymbols = [...]string{"♠", "♥", "♣", "♦"}

func (s Suit) String() string {
	if int(s) < len(suitSymbols) {
		return suitSymbols[s]
	}
	return "?"
}

// Rank is the face of a card, Ace=1 through King=13
type Rank byte

const (
	Ace   Rank = 1
	Ten   Rank = 10
	Jack  Rank = 11
	Queen Rank = 12
	King  Rank = 13
)

func (r Rank) String() string {
	switch r {
	case Ace:
		return "A"
	case Ten:
		return "T"
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	}
	if r > 1 && r < 10 {
		return fmt.Sprintf("%d", r)
	}
	return "?"
}

// Points is the hard value of the rank. Aces count 1 here, the evaluator decides
// whether one of them is promoted to 11.
func (r Rank) Points() int {
	if r >= Ten {
		return 10
	}
	return int(r)
}

// Card encodes the suit in the high nibble and the rank in the low nibble.
type Card byte

func NewCard(s Suit, r Rank) Card {
	return Card(byte(s)<<4 | byte(r)&0x0F)
}

func (c Card) Rank() Rank {
	return Rank(c & 0x0F)
}

func (c Card) Suit() Suit {
	return Suit(c >> 4)
}

func (c Card) String() string {
	return c.Suit().String() + c.Rank().String()
}

type Hand []Card

// Copy returns a snapshot of the hand that is safe to keep after more cards are dealt.
func (h Hand) Copy() Hand {
	out := make(Hand, len(h))
	copy(out, h)
	return out
}

func (h Hand) String() string {
	parts := make([]string, len(h))
	for i, c := range h {
		parts[i] = c.String()
	}
	return "[" + strings.Join(parts, " ") + "]"
}
