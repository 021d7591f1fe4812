package analysis

import (
	"fmt"
	"os"
	"path"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"gonum.org/v1/gonum/stat"

	"github.com/zeu5/blackjack-mc/core"
	"github.com/zeu5/blackjack-mc/logging"
	"github.com/zeu5/blackjack-mc/util"
)

type rewardDataset struct {
	// Episodes is the number of completed episodes at the end of each window
	Episodes       []int     `json:"episodes"`
	WindowMean     []float64 `json:"window_mean"`
	CumulativeMean []float64 `json:"cumulative_mean"`

	Wins   int `json:"wins"`
	Losses int `json:"losses"`
	Pushes int `json:"pushes"`
}

func (r *rewardDataset) Copy() *rewardDataset {
	return &rewardDataset{
		Episodes:       append([]int(nil), r.Episodes...),
		WindowMean:     append([]float64(nil), r.WindowMean...),
		CumulativeMean: append([]float64(nil), r.CumulativeMean...),
		Wins:           r.Wins,
		Losses:         r.Losses,
		Pushes:         r.Pushes,
	}
}

// RewardAnalyzer tracks the terminal reward of completed episodes and averages
// it over fixed windows to give a learning curve.
type RewardAnalyzer struct {
	window  int
	current []float64
	total   float64
	count   int
	dataset *rewardDataset
}

var _ core.Analyzer = &RewardAnalyzer{}

func NewRewardAnalyzer(window int) *RewardAnalyzer {
	if window < 1 {
		window = 1
	}
	return &RewardAnalyzer{
		window:  window,
		current: make([]float64, 0, window),
		dataset: &rewardDataset{
			Episodes:       make([]int, 0),
			WindowMean:     make([]float64, 0),
			CumulativeMean: make([]float64, 0),
		},
	}
}

func (r *RewardAnalyzer) Analyze(eCtx *core.EpisodeContext, _ *core.Trace) {
	if eCtx.IsError() {
		return
	}
	reward := eCtx.Reward
	switch {
	case reward > 0:
		r.dataset.Wins++
	case reward < 0:
		r.dataset.Losses++
	default:
		r.dataset.Pushes++
	}

	r.total += reward
	r.count++
	r.current = append(r.current, reward)
	if len(r.current) == r.window {
		r.flush()
	}
}

func (r *RewardAnalyzer) flush() {
	r.dataset.Episodes = append(r.dataset.Episodes, r.count)
	r.dataset.WindowMean = append(r.dataset.WindowMean, stat.Mean(r.current, nil))
	r.dataset.CumulativeMean = append(r.dataset.CumulativeMean, r.total/float64(r.count))
	r.current = r.current[:0]
}

func (r *RewardAnalyzer) DataSet() core.DataSet {
	return r.dataset.Copy()
}

type RewardAnalyzerConstructor struct {
	window int
}

var _ core.AnalyzerConstructor = &RewardAnalyzerConstructor{}

func NewRewardAnalyzerConstructor(window int) *RewardAnalyzerConstructor {
	return &RewardAnalyzerConstructor{window: window}
}

func (c *RewardAnalyzerConstructor) NewAnalyzer(_ string, _ int) core.Analyzer {
	return NewRewardAnalyzer(c.window)
}

// RewardComparator saves the learning curves of all experiments as json and
// renders them into one line chart.
type RewardComparator struct {
	savePath string
}

var _ core.Comparator = &RewardComparator{}

func NewRewardComparator(savePath string) *RewardComparator {
	return &RewardComparator{savePath: savePath}
}

func (c *RewardComparator) Compare(experimentNames []string, datasets []core.DataSet) {
	out := make(map[string]*rewardDataset)
	for i, name := range experimentNames {
		if ds, ok := datasets[i].(*rewardDataset); ok {
			out[name] = ds
		}
	}

	if err := util.SaveJson(path.Join(c.savePath, "rewards.json"), out); err != nil {
		logging.Warn().Add(logging.ErrorField(err)).Msg("saving rewards failed")
	}
	if err := c.plot(experimentNames, out); err != nil {
		logging.Warn().Add(logging.ErrorField(err)).Msg("rendering learning curve failed")
	}
}

func (c *RewardComparator) plot(experimentNames []string, datasets map[string]*rewardDataset) error {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title: "Average reward per window",
		}),
		charts.WithXAxisOpts(opts.XAxis{Name: "episodes"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "reward"}),
	)

	var xAxis []string
	for _, name := range experimentNames {
		ds, ok := datasets[name]
		if !ok {
			continue
		}
		if len(ds.Episodes) > len(xAxis) {
			xAxis = xAxis[:0]
			for _, e := range ds.Episodes {
				xAxis = append(xAxis, strconv.Itoa(e))
			}
		}
	}
	line.SetXAxis(xAxis)

	for _, name := range experimentNames {
		ds, ok := datasets[name]
		if !ok {
			continue
		}
		items := make([]opts.LineData, 0, len(ds.WindowMean))
		for _, v := range ds.WindowMean {
			items = append(items, opts.LineData{Value: v})
		}
		line.AddSeries(name, items)
	}

	if err := util.EnsureDir(c.savePath); err != nil {
		return err
	}
	f, err := os.Create(path.Join(c.savePath, "learning_curve.html"))
	if err != nil {
		return fmt.Errorf("creating chart file: %w", err)
	}
	defer f.Close()

	page := components.NewPage()
	page.AddCharts(line)
	return page.Render(f)
}

type RewardComparatorConstructor struct {
	savePath string
}

var _ core.ComparatorConstructor = &RewardComparatorConstructor{}

func NewRewardComparatorConstructor(savePath string) *RewardComparatorConstructor {
	return &RewardComparatorConstructor{savePath: savePath}
}

func (c *RewardComparatorConstructor) NewComparator(run int) core.Comparator {
	return NewRewardComparator(path.Join(c.savePath, strconv.Itoa(run)))
}
