package analysis

import "github.com/zeu5/blackjack-mc/core"

// NoOpComparator is paired with analyzers that write their own output.
type NoOpComparator struct{}

var (
	_ core.Comparator            = NoOpComparator{}
	_ core.ComparatorConstructor = NoOpComparator{}
)

func NewNoOpComparatorConstructor() NoOpComparator {
	return NoOpComparator{}
}

func (NoOpComparator) Compare(_ []string, _ []core.DataSet) {}

func (n NoOpComparator) NewComparator(_ int) core.Comparator {
	return n
}
