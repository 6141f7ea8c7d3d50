package survey

import (
	"geoinv/internal/errors"
)

// Observations holds one gravity survey: station coordinates and the
// anomaly measured at each station. Fixed for the duration of a run.
type Observations struct {
	X []float64 // station positions [m]
	D []float64 // measured anomaly per station
}

// New builds an observation set from parallel coordinate/value slices
func New(x, d []float64) (*Observations, error) {
	obs := &Observations{X: x, D: d}
	if err := obs.Validate(); err != nil {
		return nil, err
	}
	return obs, nil
}

// Len returns the number of stations
func (o *Observations) Len() int {
	return len(o.D)
}

// Validate checks structural consistency
func (o *Observations) Validate() error {
	if len(o.X) == 0 {
		return errors.InvalidInput("observation set is empty")
	}
	if len(o.X) != len(o.D) {
		return errors.DimensionMismatch("got %d station coordinates but %d measurements", len(o.X), len(o.D))
	}
	return nil
}
