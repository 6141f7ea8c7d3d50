package testkit

import (
	"geoinv/domain/inversion"
	"geoinv/internal/errors"
)

// Valley is a discretized glacier valley: column midpoints, the parabolic
// prior over column thickness, and the column width.
type Valley struct {
	Midpoints []float64
	Prior     inversion.Prior
	Width     float64
}

// ValleyPrior discretizes [x0, xn] into nModel columns and builds a
// parabolic thickness prior: zero at the valley edges, maxDepth at the
// center, with per-column prior standard deviation relStd times the prior
// thickness.
func ValleyPrior(nModel int, x0, xn, maxDepth, relStd float64) (*Valley, error) {
	if nModel <= 0 {
		return nil, errors.InvalidInput("valley needs at least one column")
	}
	if xn <= x0 {
		return nil, errors.InvalidInput("valley extent is inverted")
	}
	if maxDepth <= 0 || relStd <= 0 {
		return nil, errors.InvalidInput("valley depth and relative std must be positive")
	}

	width := (xn - x0) / float64(nModel)

	// Parabola through zero at both valley edges with vertex maxDepth at
	// the center: thickness(dx) = -(a·dx² + b·dx)·maxDepth for dx = x - x0.
	half := (xn - x0) / 2
	a := 1 / (half * half)
	b := -2 / half

	midpoints := make([]float64, nModel)
	means := make([]float64, nModel)
	stds := make([]float64, nModel)
	for i := 0; i < nModel; i++ {
		midpoints[i] = x0 + (float64(i)+0.5)*width
		dx := midpoints[i] - x0
		means[i] = -(a*dx*dx + b*dx) * maxDepth
		stds[i] = means[i] * relStd
	}

	return &Valley{
		Midpoints: midpoints,
		Prior:     inversion.Prior{Means: means, StdDevs: stds},
		Width:     width,
	}, nil
}
