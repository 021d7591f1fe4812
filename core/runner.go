package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/zeu5/blackjack-mc/logging"
	"github.com/zeu5/blackjack-mc/util"
)

var (
	ErrTooManyErrors  = errors.New("too many errors")
	ErrHorizonReached = errors.New("horizon reached before the episode finished")
)

const progressEvery = 100

type experimentRunContext struct {
	run       int
	ctx       context.Context
	analyzers map[string]Analyzer

	output *util.ParallelOutput

	*RunConfig
}

type ExperimentResult struct {
	CompletedEpisodes int
	TotalEpisodes     int
	ErrorEpisodes     int
	TotalTimeSteps    int
	TotalReward       float64

	Error    error
	Datasets map[string]DataSet
	Report   DataSet
}

func (r *ExperimentResult) IsError() bool {
	return r.Error != nil
}

// MeanReward is the average terminal reward over completed episodes.
func (r *ExperimentResult) MeanReward() float64 {
	if r.CompletedEpisodes == 0 {
		return 0
	}
	return r.TotalReward / float64(r.CompletedEpisodes)
}

// RunResults maps experiment names to their result for one run.
type RunResults map[string]*ExperimentResult

// runEpisode plays one episode to the end and hands it to the policy.
func (e *Experiment) runEpisode(eCtx *EpisodeContext, horizon int) error {
	obs, err := e.Environment.Reset()
	if err != nil {
		return fmt.Errorf("reset: %w", err)
	}
	for step := 0; !obs.Done; step++ {
		if horizon > 0 && step >= horizon {
			return ErrHorizonReached
		}
		sCtx := &StepContext{Step: step, EpisodeContext: eCtx}
		action, err := e.Policy.PickAction(sCtx, obs.Hand, obs.DealerCard)
		if err != nil {
			return fmt.Errorf("step %d: %w", step, err)
		}
		eCtx.Trace.AddStep(&Step{
			Hand:       obs.Hand.Copy(),
			DealerCard: obs.DealerCard,
			Action:     action,
		})
		obs, err = e.Environment.Step(action)
		if err != nil {
			return fmt.Errorf("step %d: %w", step, err)
		}
	}
	eCtx.Reward = obs.Reward
	return e.Policy.UpdateEpisode(eCtx)
}

func (e *Experiment) run(ctx *experimentRunContext) *ExperimentResult {
	result := &ExperimentResult{
		Datasets: make(map[string]DataSet),
	}
	start := time.Now()
	logging.Info().
		Add(logging.Experiment(e.Name)).
		Add(logging.Run(ctx.run)).
		Add(logging.Episodes(ctx.Episodes)).
		Msg("experiment started")

	consecutiveErrors := 0
EpisodeLoop:
	for episode := 0; episode < ctx.Episodes; episode++ {
		select {
		case <-ctx.ctx.Done():
			result.Error = ctx.ctx.Err()
			break EpisodeLoop
		default:
		}

		if episode%progressEvery == 0 && ctx.output != nil {
			ctx.output.TrySet(e.progress(ctx.run, episode, ctx.Episodes, result))
		}

		eCtx := NewEpisodeContext(ctx.ctx)
		eCtx.Run = ctx.run
		eCtx.Episode = episode

		if err := e.runEpisode(eCtx, ctx.Horizon); err != nil {
			eCtx.Error(err)
			result.ErrorEpisodes++
			logging.Debug().
				Add(logging.Experiment(e.Name)).
				Add(logging.Int("episode", episode)).
				Add(logging.ErrorField(err)).
				Msg("episode failed")
			consecutiveErrors++
		} else {
			consecutiveErrors = 0
			result.CompletedEpisodes++
			result.TotalTimeSteps += eCtx.Trace.Len()
			result.TotalReward += eCtx.Reward
		}
		result.TotalEpisodes++

		for _, a := range ctx.analyzers {
			a.Analyze(eCtx, eCtx.Trace)
		}

		if ctx.ThresholdConsecutiveErrors > 0 && consecutiveErrors >= ctx.ThresholdConsecutiveErrors {
			result.Error = fmt.Errorf("%w: last: %v", ErrTooManyErrors, eCtx.Err())
			break EpisodeLoop
		}
	}
	if ctx.output != nil {
		ctx.output.Set(e.progress(ctx.run, result.TotalEpisodes, ctx.Episodes, result))
	}

	if result.Error != nil {
		logging.Error().
			Add(logging.Experiment(e.Name)).
			Add(logging.Run(ctx.run)).
			Add(logging.ErrorField(result.Error)).
			Msg("experiment aborted")
	} else {
		logging.Info().
			Add(logging.Experiment(e.Name)).
			Add(logging.Run(ctx.run)).
			Add(logging.Episodes(result.CompletedEpisodes)).
			Add(logging.Reward("mean_reward", result.MeanReward())).
			Add(logging.Duration(time.Since(start))).
			Msg("experiment finished")
	}

	for name, a := range ctx.analyzers {
		result.Datasets[name] = a.DataSet()
	}
	if r, ok := e.Policy.(Reporter); ok {
		result.Report = r.Report()
	}
	return result
}

func (e *Experiment) progress(run, episode, total int, result *ExperimentResult) string {
	return fmt.Sprintf(
		"Experiment: %s, Run %d, Episode %d/%d, Errors: %d, Mean reward: %.4f",
		e.Name, run, episode, total, result.ErrorEpisodes, result.MeanReward(),
	)
}

// parallelWorker is a worker that runs experiments
type parallelWorker struct {
	id int
}

// parallelWork is a struct that contains all the information needed to run an experiment
type parallelWork struct {
	experiment *ParallelExperiment
	comp       *ParallelComparison
	runNumber  int
	output     *util.ParallelOutput
	rConfig    *RunConfig
}

// parallelResult is a struct that contains the result of running an experiment
type parallelResult struct {
	experimentName string
	run            int
	result         *ExperimentResult
}

// Worker main loop that consumes work from a channel
func (w *parallelWorker) run(ctx context.Context, workCh <-chan *parallelWork, resultsCh chan<- *parallelResult) {
	for {
		select {
		case <-ctx.Done():
			return
		case work, more := <-workCh:
			if !more {
				return
			}
			resultsCh <- w.runWork(ctx, work)
		}
	}
}

// Run an experiment by constructing the experiment context, *Experiment
func (w *parallelWorker) runWork(ctx context.Context, work *parallelWork) *parallelResult {
	eCtx := &experimentRunContext{
		run:       work.runNumber,
		ctx:       ctx,
		analyzers: make(map[string]Analyzer),
		output:    work.output,
		RunConfig: work.rConfig,
	}

	for name, aC := range work.comp.Analyzers {
		eCtx.analyzers[name] = aC.NewAnalyzer(work.experiment.Name, work.runNumber)
	}

	// Every experiment gets its own environment and policy, nothing learned is shared
	exp := &Experiment{
		Name:        work.experiment.Name,
		Environment: work.experiment.Environment.NewEnvironment(w.id),
		Policy:      work.experiment.Policy.NewPolicy(w.id),
	}

	return &parallelResult{
		experimentName: work.experiment.Name,
		run:            work.runNumber,
		result:         exp.run(eCtx),
	}
}

// Run executes every experiment once per run on a pool of parallelism workers and
// feeds the collected datasets to the comparators.
func (c *ParallelComparison) Run(ctx context.Context, runs int, rConfig *RunConfig, parallelism int) ([]RunResults, error) {
	if parallelism < 1 {
		parallelism = 1
	}
	allResults := make([]RunResults, 0, runs)
	for run := 0; run < runs; run++ {
		select {
		case <-ctx.Done():
			return allResults, ctx.Err()
		default:
		}

		printer := util.NewTerminalPrinter(c.ProgressInterval, c.Output)
		outputs := make([]*util.ParallelOutput, len(c.Experiments))
		for i := range c.Experiments {
			outputs[i] = printer.NewOutput()
		}
		printer.Start(ctx)

		workCh := make(chan *parallelWork)
		resultsCh := make(chan *parallelResult, len(c.Experiments))

		for i := 0; i < parallelism; i++ {
			w := &parallelWorker{id: i}
			go w.run(ctx, workCh, resultsCh)
		}

		go func(run int) {
			defer close(workCh)
			for i, e := range c.Experiments {
				select {
				case <-ctx.Done():
					return
				case workCh <- &parallelWork{
					experiment: e,
					comp:       c,
					runNumber:  run,
					output:     outputs[i],
					rConfig:    rConfig,
				}:
				}
			}
		}(run)

		results := make(RunResults)
		for len(results) < len(c.Experiments) {
			select {
			case <-ctx.Done():
				printer.Stop()
				return allResults, ctx.Err()
			case r := <-resultsCh:
				results[r.experimentName] = r.result
			}
		}
		printer.Stop()
		allResults = append(allResults, results)

		c.compare(run, results)
	}
	return allResults, nil
}

// compare hands the datasets of one run to the comparators, in experiment order.
func (c *ParallelComparison) compare(run int, results RunResults) {
	experimentNames := make([]string, 0, len(c.Experiments))
	for _, e := range c.Experiments {
		experimentNames = append(experimentNames, e.Name)
	}

	for name, cmpC := range c.Comparators {
		datasets := make([]DataSet, len(experimentNames))
		for i, exp := range experimentNames {
			if result := results[exp]; !result.IsError() {
				datasets[i] = result.Datasets[name]
			}
		}
		cmpC.NewComparator(run).Compare(experimentNames, datasets)
	}

	if c.Reports != nil {
		reports := make([]DataSet, len(experimentNames))
		for i, exp := range experimentNames {
			reports[i] = results[exp].Report
		}
		c.Reports.NewComparator(run).Compare(experimentNames, reports)
	}
}
