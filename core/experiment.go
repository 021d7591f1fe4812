package core

import (
	"io"
	"time"
)

type ParallelExperiment struct {
	Name        string
	Environment EnvironmentConstructor
	Policy      PolicyConstructor
}

type DataSet interface{}

type Analyzer interface {
	Analyze(*EpisodeContext, *Trace)
	DataSet() DataSet
}

type AnalyzerConstructor interface {
	// new analyzer based on experiment name and run
	NewAnalyzer(string, int) Analyzer
}

type Comparator interface {
	Compare([]string, []DataSet)
}

type ComparatorConstructor interface {
	NewComparator(int) Comparator
}

type ParallelComparison struct {
	Experiments []*ParallelExperiment
	Analyzers   map[string]AnalyzerConstructor
	Comparators map[string]ComparatorConstructor
	// Reports receives the policy reports of every experiment after each run
	Reports ComparatorConstructor

	// Output is where progress is printed, stdout when nil
	Output           io.Writer
	ProgressInterval time.Duration
}

type RunConfig struct {
	Episodes int
	// Horizon caps the number of decisions in one episode, 0 disables the cap
	Horizon int

	ThresholdConsecutiveErrors int
}

func NewParallelComparison() *ParallelComparison {
	return &ParallelComparison{
		Analyzers:        make(map[string]AnalyzerConstructor),
		Comparators:      make(map[string]ComparatorConstructor),
		Experiments:      make([]*ParallelExperiment, 0),
		ProgressInterval: 500 * time.Millisecond,
	}
}

func (c *ParallelComparison) AddExperiment(e *ParallelExperiment) {
	c.Experiments = append(c.Experiments, e)
}

func (c *ParallelComparison) AddAnalysis(name string, a AnalyzerConstructor, cmp ComparatorConstructor) {
	c.Analyzers[name] = a
	c.Comparators[name] = cmp
}

type Experiment struct {
	Name        string
	Environment Environment
	Policy      Policy
}
