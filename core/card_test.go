package core

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCardEncoding(t *testing.T) {
	for s := Spades; s <= Diamonds; s++ {
		for r := Ace; r <= King; r++ {
			c := NewCard(s, r)
			assert.Equal(t, s, c.Suit())
			assert.Equal(t, r, c.Rank())
		}
	}
	assert.Equal(t, "♥T", NewCard(Hearts, Ten).String())
	assert.Equal(t, "♠A", NewCard(Spades, Ace).String())
}

func TestRankPoints(t *testing.T) {
	assert.Equal(t, 1, Ace.Points())
	assert.Equal(t, 7, Rank(7).Points())
	for _, r := range []Rank{Ten, Jack, Queen, King} {
		assert.Equal(t, 10, r.Points(), "rank %s", r)
	}
}

func TestHandCopyIsIndependent(t *testing.T) {
	h := Hand{NewCard(Spades, 5), NewCard(Clubs, King)}
	snapshot := h.Copy()
	h[0] = NewCard(Diamonds, Ace)

	assert.Len(t, snapshot, 2)
	assert.Equal(t, NewCard(Spades, 5), snapshot[0])
	assert.Equal(t, "[♠5 ♣K]", snapshot.String())
}

func TestActionJSON(t *testing.T) {
	bs, err := json.Marshal([]Action{Hit, Stand})
	require.NoError(t, err)
	assert.JSONEq(t, `["HIT","STAND"]`, string(bs))

	var actions []Action
	require.NoError(t, json.Unmarshal(bs, &actions))
	assert.Equal(t, []Action{Hit, Stand}, actions)

	var a Action
	assert.Error(t, json.Unmarshal([]byte(`"SPLIT"`), &a))
}
