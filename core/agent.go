package core

type Policy interface {
	PickAction(*StepContext, Hand, Card) (Action, error)
	UpdateEpisode(*EpisodeContext) error
}

type PolicyConstructor interface {
	// NewPolicy creates a policy for the given worker instance.
	NewPolicy(int) Policy
}

// Reporter is implemented by policies that can describe what they learned.
// The report is collected once the experiment finishes.
type Reporter interface {
	Report() DataSet
}
