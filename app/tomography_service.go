package app

import (
	"context"

	"gonum.org/v1/gonum/mat"

	"geoinv/domain/core"
	"geoinv/internal"
	"geoinv/internal/errors"
	"geoinv/internal/linalg"
)

// TomographyService solves a discretized linear tomography problem with
// Tikhonov damping, choosing the damping strength by the discrepancy
// principle over a candidate grid.
type TomographyService struct {
	logger *internal.Logger
}

// NewTomographyService creates a tomography solver service
func NewTomographyService(logger *internal.Logger) *TomographyService {
	return &TomographyService{logger: logger}
}

// TomographyResult bundles the sweep outcome and the model estimate at the
// selected damping value
type TomographyResult struct {
	SweepID       core.SweepID
	Selection     *linalg.EpsilonSelection
	ModelEstimate []float64
}

// Run sweeps the candidate grid, selects ε, and solves at the selection.
// An UNREACHABLE_TARGET outcome is logged and carried on the result's
// Selection, never returned as an error.
func (s *TomographyService) Run(ctx context.Context, g *mat.Dense, d []float64, candidates []float64, noiseNorm float64) (*TomographyResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rows, _ := g.Dims()
	if rows != len(d) {
		return nil, errors.DimensionMismatch("operator has %d rows but data has %d components", rows, len(d))
	}

	sweepID := core.NewSweepID()
	s.logger.Infof("sweep %s: %d damping candidates, noise norm %.6g", sweepID, len(candidates), noiseNorm)

	selection, err := linalg.FindOptimalEpsilon(g, d, candidates, noiseNorm)
	if err != nil {
		return nil, errors.Wrap(err, "epsilon search failed")
	}
	if selection.Warning != nil {
		s.logger.Warnf("sweep %s: %v", sweepID, selection.Warning)
	}

	estimate, err := linalg.TikhonovSolve(g, d, selection.Epsilon)
	if err != nil {
		return nil, errors.Wrapf(err, "solving at selected ε=%g", selection.Epsilon)
	}

	s.logger.Infof("sweep %s: selected ε=%.6g (candidate %d/%d), residual %.6g",
		sweepID, selection.Epsilon, selection.Index+1, len(selection.Epsilons), selection.Residuals[selection.Index])

	return &TomographyResult{
		SweepID:       sweepID,
		Selection:     selection,
		ModelEstimate: estimate,
	}, nil
}
