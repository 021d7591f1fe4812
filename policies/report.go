package policies

import "github.com/zeu5/blackjack-mc/core"

// Decision is the greedy choice the learned table makes in one state. Equal values
// set Tie and report Hit; the agent itself breaks such ties at random.
type Decision struct {
	State      State       `json:"state"`
	Action     core.Action `json:"action"`
	Tie        bool        `json:"tie,omitempty"`
	HitValue   float64     `json:"hit_value"`
	StandValue float64     `json:"stand_value"`
	Visits     int         `json:"visits"`
}

// StrategyReport is a read-only snapshot of a value table.
type StrategyReport struct {
	Entries   []Entry    `json:"entries"`
	Decisions []Decision `json:"decisions"`
}

func NewStrategyReport(store *ValueStore) *StrategyReport {
	entries := store.Entries()
	report := &StrategyReport{
		Entries:   entries,
		Decisions: make([]Decision, 0),
	}
	// entries are sorted by state first so both actions of a state are adjacent
	for i := 0; i < len(entries); {
		state := entries[i].State
		d := Decision{State: state}
		for ; i < len(entries) && entries[i].State == state; i++ {
			switch entries[i].Action {
			case core.Hit:
				d.HitValue = entries[i].Value
			case core.Stand:
				d.StandValue = entries[i].Value
			}
			d.Visits += entries[i].Visits
		}
		d.Action = core.Hit
		d.Tie = d.StandValue == d.HitValue
		if d.StandValue > d.HitValue {
			d.Action = core.Stand
		}
		report.Decisions = append(report.Decisions, d)
	}
	return report
}

// Decision looks up the greedy choice for a state.
func (r *StrategyReport) Decision(state State) (Decision, bool) {
	for _, d := range r.Decisions {
		if d.State == state {
			return d, true
		}
	}
	return Decision{}, false
}
