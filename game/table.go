package game

import (
	"errors"
	"fmt"
	"sync/atomic"

	erand "golang.org/x/exp/rand"

	"github.com/zeu5/blackjack-mc/core"
)

const (
	RewardWin  = 1.0
	RewardLoss = -1.0
	RewardPush = 0.0
)

var (
	ErrEpisodeFinished = errors.New("episode already finished")
	ErrUnknownAction   = errors.New("unknown action")
)

type TableConfig struct {
	// Decks in the shoe, 0 deals from an infinite deck
	Decks           int
	HitSoft17       bool
	BlackjackPayout float64
	Seed            uint64
}

func DefaultTableConfig() TableConfig {
	return TableConfig{
		Decks:           6,
		HitSoft17:       false,
		BlackjackPayout: 1.5,
		Seed:            1,
	}
}

// Table is a single player blackjack table.
type Table struct {
	config TableConfig
	shoe   *Shoe

	player core.Hand
	dealer core.Hand
	done   bool
	reward float64
}

var _ core.Environment = &Table{}

func NewTable(config TableConfig) *Table {
	return &Table{
		config: config,
		shoe:   NewShoe(config.Decks, erand.NewSource(config.Seed)),
		done:   true,
	}
}

// draw deals from the shoe. An exhausted shoe mid-round is refilled without the
// cards on the table.
func (t *Table) draw() (core.Card, error) {
	if t.shoe.Remaining() == 0 {
		inPlay := append(t.player.Copy(), t.dealer...)
		t.shoe.Shuffle(inPlay...)
	}
	return t.shoe.Draw()
}

// Reset deals a new round. A natural on either side settles the round at once.
// The shoe is only reshuffled here, between rounds, so no card in play goes back.
func (t *Table) Reset() (*core.Observation, error) {
	if t.shoe.NeedsShuffle() {
		t.shoe.Shuffle()
	}
	t.player = make(core.Hand, 0, 4)
	t.dealer = make(core.Hand, 0, 4)
	t.done = false
	t.reward = 0

	for i := 0; i < 2; i++ {
		c, err := t.draw()
		if err != nil {
			return nil, err
		}
		t.player = append(t.player, c)
		c, err = t.draw()
		if err != nil {
			return nil, err
		}
		t.dealer = append(t.dealer, c)
	}

	playerNatural, dealerNatural := IsNatural(t.player), IsNatural(t.dealer)
	switch {
	case playerNatural && dealerNatural:
		t.finish(RewardPush)
	case playerNatural:
		t.finish(t.config.BlackjackPayout)
	case dealerNatural:
		t.finish(RewardLoss)
	}
	return t.observation(), nil
}

func (t *Table) Step(action core.Action) (*core.Observation, error) {
	if t.done {
		return nil, ErrEpisodeFinished
	}
	switch action {
	case core.Hit:
		c, err := t.draw()
		if err != nil {
			return nil, err
		}
		t.player = append(t.player, c)
		if _, ok := BestTotal(t.player); !ok {
			t.finish(RewardLoss)
		}
	case core.Stand:
		dealer, err := PlayDealer(t.dealer, t.draw, t.config.HitSoft17)
		if err != nil {
			return nil, err
		}
		t.dealer = dealer
		t.finish(Settle(t.player, t.dealer))
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownAction, action)
	}
	return t.observation(), nil
}

// DealerHand is the full dealer hand, only meaningful once the round is over.
func (t *Table) DealerHand() core.Hand {
	return t.dealer.Copy()
}

func (t *Table) finish(reward float64) {
	t.done = true
	t.reward = reward
}

func (t *Table) observation() *core.Observation {
	return &core.Observation{
		Hand:       t.player,
		DealerCard: t.dealer[0],
		Done:       t.done,
		Reward:     t.reward,
	}
}

// Settle compares a standing player hand with the finished dealer hand.
func Settle(player, dealer core.Hand) float64 {
	playerTotal, ok := BestTotal(player)
	if !ok {
		return RewardLoss
	}
	dealerTotal, ok := BestTotal(dealer)
	if !ok {
		return RewardWin
	}
	switch {
	case playerTotal > dealerTotal:
		return RewardWin
	case playerTotal < dealerTotal:
		return RewardLoss
	}
	return RewardPush
}

type TableConstructor struct {
	config  TableConfig
	created atomic.Uint64
}

var _ core.EnvironmentConstructor = &TableConstructor{}

func NewTableConstructor(config TableConfig) *TableConstructor {
	return &TableConstructor{config: config}
}

// NewEnvironment gives every table it builds its own shoe seed.
func (c *TableConstructor) NewEnvironment(_ int) core.Environment {
	config := c.config
	config.Seed = c.config.Seed + c.created.Add(1) - 1
	return NewTable(config)
}
