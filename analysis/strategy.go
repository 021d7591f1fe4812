package analysis

import (
	"fmt"
	"io"
	"os"
	"path"
	"strconv"

	"github.com/logrusorgru/aurora"

	"github.com/zeu5/blackjack-mc/core"
	"github.com/zeu5/blackjack-mc/logging"
	"github.com/zeu5/blackjack-mc/policies"
	"github.com/zeu5/blackjack-mc/util"
)

const (
	gridLowTotal  = 12
	gridHighTotal = 21
)

// RenderStrategy prints the greedy decision of every learned state as two grids,
// hard and soft totals against the dealer's visible rank. S is stand, H is hit, a
// question mark is a state whose values are still equal and a dot marks a state that
// was never visited.
func RenderStrategy(w io.Writer, report *policies.StrategyReport, colors bool) {
	au := aurora.NewAurora(colors)
	for _, soft := range []bool{false, true} {
		title := "hard"
		if soft {
			title = "soft"
		}
		fmt.Fprintf(w, "%-5s", title)
		for r := core.Ace; r <= core.King; r++ {
			fmt.Fprintf(w, " %s", r)
		}
		fmt.Fprintln(w)

		for total := gridLowTotal; total <= gridHighTotal; total++ {
			fmt.Fprintf(w, "%5d", total)
			for r := core.Ace; r <= core.King; r++ {
				d, ok := report.Decision(policies.State{Total: total, OpponentCard: r, Flexible: soft})
				switch {
				case !ok:
					fmt.Fprint(w, " .")
				case d.Tie:
					fmt.Fprint(w, " ?")
				case d.Action == core.Stand:
					fmt.Fprint(w, " ", au.Green("S"))
				default:
					fmt.Fprint(w, " ", au.Red("H"))
				}
			}
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w)
	}
}

// StrategyComparator receives the policy reports of a run, saves the ones that are
// strategy reports and prints their grids.
type StrategyComparator struct {
	savePath string
	out      io.Writer
	colors   bool
}

var _ core.Comparator = &StrategyComparator{}

func NewStrategyComparator(savePath string, out io.Writer) *StrategyComparator {
	return &StrategyComparator{
		savePath: savePath,
		out:      out,
		colors:   logging.IsTerminal(out),
	}
}

func (c *StrategyComparator) Compare(experimentNames []string, reports []core.DataSet) {
	for i, name := range experimentNames {
		report, ok := reports[i].(*policies.StrategyReport)
		if !ok || report == nil {
			continue
		}
		file := path.Join(c.savePath, fmt.Sprintf("strategy_%s.json", name))
		if err := util.SaveJson(file, report); err != nil {
			logging.Warn().Add(logging.Experiment(name)).Add(logging.ErrorField(err)).Msg("saving strategy failed")
		}
		if c.out != nil {
			fmt.Fprintf(c.out, "Learned strategy: %s (%d entries)\n", name, len(report.Entries))
			RenderStrategy(c.out, report, c.colors)
		}
	}
}

type StrategyComparatorConstructor struct {
	savePath string
	out      io.Writer
}

var _ core.ComparatorConstructor = &StrategyComparatorConstructor{}

// NewStrategyComparatorConstructor prints to stdout when out is nil.
func NewStrategyComparatorConstructor(savePath string, out io.Writer) *StrategyComparatorConstructor {
	if out == nil {
		out = os.Stdout
	}
	return &StrategyComparatorConstructor{savePath: savePath, out: out}
}

func (c *StrategyComparatorConstructor) NewComparator(run int) core.Comparator {
	return NewStrategyComparator(path.Join(c.savePath, strconv.Itoa(run)), c.out)
}
