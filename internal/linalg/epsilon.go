package linalg

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"

	"geoinv/internal/errors"
)

// EpsilonSelection is the outcome of a discrepancy-principle search over a
// candidate damping grid. Warning is non-nil (code UNREACHABLE_TARGET) when
// the grid never brackets the noise floor and a boundary candidate was
// returned instead; the selection is still usable.
type EpsilonSelection struct {
	Epsilon   float64
	Index     int
	Epsilons  []float64 // candidates, ascending
	Residuals []float64 // residual norm per candidate
	Warning   *errors.AppError
}

// LogSpace builds count log-spaced candidates from min to max inclusive
func LogSpace(min, max float64, count int) ([]float64, error) {
	if count <= 0 {
		return nil, errors.InvalidInput("candidate count must be positive")
	}
	if min <= 0 || max < min {
		return nil, errors.InvalidInput("log-spaced grid needs 0 < min <= max")
	}
	if count == 1 {
		return []float64{min}, nil
	}
	out := make([]float64, count)
	logMin, logMax := math.Log10(min), math.Log10(max)
	step := (logMax - logMin) / float64(count-1)
	for i := range out {
		out[i] = math.Pow(10, logMin+float64(i)*step)
	}
	return out, nil
}

// FindOptimalEpsilon applies the discrepancy principle: among the candidate
// damping values it selects the smallest ε whose residual norm
// ‖d - G·m_est(ε)‖ is at least the noise norm, so the fit is never better
// than the noise floor. Candidates are evaluated in ascending order.
//
// Boundary policy: if every candidate's residual stays below the noise norm
// the largest candidate is returned; if even the smallest candidate already
// sits at or above it the smallest is returned. Both cases carry an
// UNREACHABLE_TARGET warning rather than failing, since the search is an
// exploratory diagnostic.
func FindOptimalEpsilon(g *mat.Dense, d []float64, candidates []float64, noiseNorm float64) (*EpsilonSelection, error) {
	if len(candidates) == 0 {
		return nil, errors.InvalidInput("epsilon search needs at least one candidate")
	}
	if noiseNorm < 0 {
		return nil, errors.InvalidInput("noise norm cannot be negative")
	}

	epsilons := make([]float64, len(candidates))
	copy(epsilons, candidates)
	sort.Float64s(epsilons)

	residuals := make([]float64, len(epsilons))
	for i, eps := range epsilons {
		mEst, err := TikhonovSolve(g, d, eps)
		if err != nil {
			return nil, errors.Wrapf(err, "solving candidate ε=%g", eps)
		}
		rn, err := ResidualNorm(g, d, mEst)
		if err != nil {
			return nil, err
		}
		residuals[i] = rn
	}

	sel := &EpsilonSelection{Epsilons: epsilons, Residuals: residuals}

	idx := -1
	for i, rn := range residuals {
		if rn >= noiseNorm {
			idx = i
			break
		}
	}

	switch {
	case idx == -1:
		// Every candidate overfits past the noise floor; fall back to the
		// most regularized choice.
		sel.Index = len(epsilons) - 1
		sel.Warning = errors.UnreachableTarget("all candidate residuals fall below the noise norm; returning the largest candidate")
	case idx == 0:
		// Even the least regularization cannot reach the noise floor, so
		// the grid never bracketed it from below.
		sel.Index = 0
		sel.Warning = errors.UnreachableTarget("all candidate residuals sit at or above the noise norm; returning the smallest candidate")
	default:
		sel.Index = idx
	}
	sel.Epsilon = epsilons[sel.Index]

	return sel, nil
}
