package policies

import "github.com/zeu5/blackjack-mc/core"

// Sampler is the source of uniform draws in [0, 1). *rand.Rand satisfies it.
type Sampler interface {
	Float64() float64
}

// EpsilonGreedy explores with probability epsilon, standing with probability
// pStand when it does. Otherwise it takes the better valued action and breaks
// exact ties with pStand as well.
func EpsilonGreedy(hitValue, standValue, epsilon, pStand float64, rng Sampler) core.Action {
	if rng.Float64() <= epsilon {
		return coinFlip(pStand, rng)
	}
	switch {
	case standValue > hitValue:
		return core.Stand
	case hitValue > standValue:
		return core.Hit
	}
	return coinFlip(pStand, rng)
}

func coinFlip(pStand float64, rng Sampler) core.Action {
	if rng.Float64() <= pStand {
		return core.Stand
	}
	return core.Hit
}
