package testkit

import (
	"context"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"geoinv/domain/survey"
	"geoinv/internal/errors"
	"geoinv/ports"
)

// SyntheticSurvey forwards a true model through fwd and perturbs every
// station value with seeded Gaussian noise, producing the observation set a
// field campaign would have measured.
func SyntheticSurvey(ctx context.Context, fwd ports.ForwardModelPort, stationX, truth []float64, noiseStd float64, seed uint64) (*survey.Observations, error) {
	if noiseStd <= 0 {
		return nil, errors.InvalidInput("noise standard deviation must be positive")
	}
	pred, err := fwd.Predict(ctx, truth)
	if err != nil {
		return nil, errors.Wrap(err, "forwarding the true model")
	}
	if len(pred) != len(stationX) {
		return nil, errors.DimensionMismatch("forward model predicts %d stations but %d coordinates given", len(pred), len(stationX))
	}

	noise := distuv.Normal{Mu: 0, Sigma: noiseStd, Src: rand.NewSource(seed)}
	d := make([]float64, len(pred))
	for i, v := range pred {
		d[i] = v + noise.Rand()
	}
	return survey.New(stationX, d)
}
