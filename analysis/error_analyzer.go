package analysis

import (
	"fmt"

	"github.com/zeu5/blackjack-mc/core"
)

// ErrorAnalyzer dumps every failed episode with its partial trace.
type ErrorAnalyzer struct {
	files episodeFiles
	count int
}

var _ core.Analyzer = &ErrorAnalyzer{}

func (a *ErrorAnalyzer) Analyze(ctx *core.EpisodeContext, trace *core.Trace) {
	err := ctx.Err()
	if err == nil {
		return
	}
	a.count++
	a.files.write(ctx, fmt.Sprintf("Error: %s\n%s", err, traceToString(trace)))
}

// DataSet is the number of failed episodes.
func (a *ErrorAnalyzer) DataSet() core.DataSet {
	return a.count
}

type ErrorAnalyzerConstructor struct {
	SavePath string
}

var _ core.AnalyzerConstructor = &ErrorAnalyzerConstructor{}

func NewErrorAnalyzerConstructor(savePath string) *ErrorAnalyzerConstructor {
	return &ErrorAnalyzerConstructor{SavePath: savePath}
}

func (e *ErrorAnalyzerConstructor) NewAnalyzer(exp string, _ int) core.Analyzer {
	return &ErrorAnalyzer{files: newEpisodeFiles(e.SavePath, "errors", exp, "error")}
}
