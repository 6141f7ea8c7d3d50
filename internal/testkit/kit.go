// Package testkit builds synthetic inversion problems with known ground
// truth: a parabolic glacier valley for the gravity sampler and a
// diagonal-ray grid for the tomography solver. Everything is seeded so
// fixtures replay exactly.
package testkit

import (
	"geoinv/internal/errors"
)

// Linspace returns n evenly spaced values from start to stop inclusive
func Linspace(start, stop float64, n int) ([]float64, error) {
	if n <= 0 {
		return nil, errors.InvalidInput("linspace needs a positive point count")
	}
	if n == 1 {
		return []float64{start}, nil
	}
	out := make([]float64, n)
	step := (stop - start) / float64(n-1)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	return out, nil
}
