package inversion

import (
	"geoinv/internal/errors"
)

// Prior describes independent Gaussian prior marginals, one per model
// parameter. The sampler draws candidate values directly from these
// marginals, so they double as the proposal distribution.
type Prior struct {
	Means   []float64
	StdDevs []float64
}

// Len returns the number of model parameters
func (p Prior) Len() int {
	return len(p.Means)
}

// Validate checks the prior is usable before any sampling starts
func (p Prior) Validate() error {
	if len(p.Means) == 0 {
		return errors.InvalidInput("prior has no parameters")
	}
	if len(p.Means) != len(p.StdDevs) {
		return errors.DimensionMismatch("prior has %d means but %d standard deviations", len(p.Means), len(p.StdDevs))
	}
	for _, sd := range p.StdDevs {
		if sd <= 0 {
			return errors.InvalidInput("prior standard deviation must be positive")
		}
	}
	return nil
}
