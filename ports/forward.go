package ports

import (
	"context"
)

// ForwardModelPort maps a candidate model vector to a predicted data vector.
// Implementations must be deterministic and side-effect free: the sampler
// calls Predict once per iteration and relies on identical output for
// identical input.
type ForwardModelPort interface {
	// Predict evaluates the forward model for m. The returned slice is a
	// fresh value owned by the caller.
	Predict(ctx context.Context, m []float64) ([]float64, error)

	// Dims returns the model length M and data length N the model accepts
	// and produces.
	Dims() (modelLen, dataLen int)
}
