package policies

import (
	"sort"

	"github.com/zeu5/blackjack-mc/core"
)

// ValueStore holds the learned value of every (state, action) pair together with
// the number of updates that went into it. Missing entries read as zero.
type ValueStore struct {
	values map[Key]float64
	visits map[Key]int
}

func NewValueStore() *ValueStore {
	return &ValueStore{
		values: make(map[Key]float64),
		visits: make(map[Key]int),
	}
}

func (v *ValueStore) Value(state State, action core.Action) float64 {
	return v.values[Key{state, action}]
}

func (v *ValueStore) SetValue(state State, action core.Action, value float64) {
	v.values[Key{state, action}] = value
}

func (v *ValueStore) Visits(state State, action core.Action) int {
	return v.visits[Key{state, action}]
}

func (v *ValueStore) IncrementVisits(state State, action core.Action) {
	v.visits[Key{state, action}] = 1 + v.Visits(state, action)
}

// Update writes a new value and counts the visit that produced it.
func (v *ValueStore) Update(state State, action core.Action, value float64) {
	v.SetValue(state, action, value)
	v.IncrementVisits(state, action)
}

// Len is the number of (state, action) pairs with a value.
func (v *ValueStore) Len() int {
	return len(v.values)
}

type Entry struct {
	State  State       `json:"state"`
	Action core.Action `json:"action"`
	Value  float64     `json:"value"`
	Visits int         `json:"visits"`
}

// Entries lists the table ordered by softness, total, opponent card and action.
func (v *ValueStore) Entries() []Entry {
	out := make([]Entry, 0, len(v.values))
	for k, val := range v.values {
		out = append(out, Entry{
			State:  k.State,
			Action: k.Action,
			Value:  val,
			Visits: v.visits[k],
		})
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.State.Flexible != b.State.Flexible {
			return !a.State.Flexible
		}
		if a.State.Total != b.State.Total {
			return a.State.Total < b.State.Total
		}
		if a.State.OpponentCard != b.State.OpponentCard {
			return a.State.OpponentCard < b.State.OpponentCard
		}
		return a.Action < b.Action
	})
	return out
}
