package analysis

import (
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/zeu5/blackjack-mc/core"
	"github.com/zeu5/blackjack-mc/logging"
	"github.com/zeu5/blackjack-mc/util"
)

// episodeFiles writes one text file per episode into dir, named after the run, the
// experiment and the episode.
type episodeFiles struct {
	dir  string
	exp  string
	kind string
}

func newEpisodeFiles(savePath, sub, exp, kind string) episodeFiles {
	dir := path.Join(savePath, sub)
	if err := util.EnsureDir(dir); err != nil {
		logging.Warn().Add(logging.Str("dir", dir)).Add(logging.ErrorField(err)).Msg("creating output directory failed")
	}
	return episodeFiles{dir: dir, exp: exp, kind: kind}
}

func (f episodeFiles) write(eCtx *core.EpisodeContext, content string) {
	name := fmt.Sprintf("%d_%s_%d.txt", eCtx.Run, f.kind, eCtx.Episode)
	if f.exp != "" {
		name = fmt.Sprintf("%d_%s_%s_%d.txt", eCtx.Run, f.exp, f.kind, eCtx.Episode)
	}
	if err := os.WriteFile(path.Join(f.dir, name), []byte(content), 0644); err != nil {
		logging.Debug().Add(logging.Experiment(f.exp)).Add(logging.ErrorField(err)).Msg("writing episode file failed")
	}
}

func traceToString(trace *core.Trace) string {
	b := new(strings.Builder)
	for i := 0; i < trace.Len(); i++ {
		step := trace.Step(i)
		fmt.Fprintf(b, "Step %d: hand %s, dealer %s, action %s\n", i, step.Hand, step.DealerCard, step.Action)
	}
	return b.String()
}

// PrintDebugAnalyzer dumps the decisions and reward of every episode from
// thresholdEpisode on, usually the last few of a run.
type PrintDebugAnalyzer struct {
	files            episodeFiles
	thresholdEpisode int
}

var _ core.Analyzer = &PrintDebugAnalyzer{}

func (a *PrintDebugAnalyzer) Analyze(ctx *core.EpisodeContext, trace *core.Trace) {
	if ctx.Episode < a.thresholdEpisode {
		return
	}
	content := traceToString(trace)
	if !ctx.IsError() {
		content += fmt.Sprintf("Reward: %v\n", ctx.Reward)
	}
	a.files.write(ctx, content)
}

func (a *PrintDebugAnalyzer) DataSet() core.DataSet {
	return nil
}

type PrintDebugAnalyzerConstructor struct {
	SavePath         string
	ThresholdEpisode int
}

var _ core.AnalyzerConstructor = &PrintDebugAnalyzerConstructor{}

func NewPrintDebugAnalyzerConstructor(savePath string, thresholdEpisode int) *PrintDebugAnalyzerConstructor {
	return &PrintDebugAnalyzerConstructor{
		SavePath:         savePath,
		ThresholdEpisode: thresholdEpisode,
	}
}

func (c *PrintDebugAnalyzerConstructor) NewAnalyzer(exp string, _ int) core.Analyzer {
	return &PrintDebugAnalyzer{
		files:            newEpisodeFiles(c.SavePath, "traces", exp, "trace"),
		thresholdEpisode: c.ThresholdEpisode,
	}
}
