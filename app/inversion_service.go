package app

import (
	"context"
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	astats "geoinv/adapters/stats"
	"geoinv/domain/core"
	"geoinv/domain/inversion"
	"geoinv/domain/survey"
	"geoinv/internal"
	"geoinv/internal/errors"
	"geoinv/ports"
)

// InversionService runs a Metropolis-Hastings inversion of a gravity survey.
//
// The chain perturbs one parameter per iteration by redrawing it from its
// prior marginal (an independence-style proposal, not a random walk) and
// accepts or rejects on the likelihood ratio. Every iteration appends the
// live chain state to an archive the caller receives when the run finishes.
type InversionService struct {
	forward    ports.ForwardModelPort
	likelihood *astats.GaussianLikelihood
	prior      inversion.Prior
	obs        *survey.Observations
	iterations int
	burnIn     int
	logger     *internal.Logger

	rng       *rand.Rand
	marginals []distuv.Normal
}

// NewInversionService wires a sampler run and fail-fast validates every
// dimension and scalar before any iteration happens.
func NewInversionService(
	forward ports.ForwardModelPort,
	likelihood *astats.GaussianLikelihood,
	prior inversion.Prior,
	obs *survey.Observations,
	iterations, burnIn int,
	seed uint64,
	logger *internal.Logger,
) (*InversionService, error) {
	if iterations <= 0 {
		return nil, errors.ConfigInvalid("iteration count must be positive")
	}
	if burnIn < 0 || burnIn >= iterations {
		return nil, errors.ConfigInvalid("burn-in length must be in [0, iterations)")
	}
	if err := prior.Validate(); err != nil {
		return nil, err
	}
	if err := obs.Validate(); err != nil {
		return nil, err
	}

	modelLen, dataLen := forward.Dims()
	if modelLen != prior.Len() {
		return nil, errors.DimensionMismatch("forward model expects %d parameters but prior has %d", modelLen, prior.Len())
	}
	if dataLen != obs.Len() {
		return nil, errors.DimensionMismatch("forward model predicts %d stations but survey has %d", dataLen, obs.Len())
	}
	if likelihood.Len() != obs.Len() {
		return nil, errors.DimensionMismatch("likelihood covers %d stations but survey has %d", likelihood.Len(), obs.Len())
	}

	// One seeded source drives the parameter picker, the uniform draw and
	// the prior marginals, so the whole chain replays from the seed.
	src := rand.NewSource(seed)
	marginals := make([]distuv.Normal, prior.Len())
	for i := range marginals {
		marginals[i] = distuv.Normal{Mu: prior.Means[i], Sigma: prior.StdDevs[i], Src: src}
	}

	return &InversionService{
		forward:    forward,
		likelihood: likelihood,
		prior:      prior,
		obs:        obs,
		iterations: iterations,
		burnIn:     burnIn,
		logger:     logger,
		rng:        rand.New(src),
		marginals:  marginals,
	}, nil
}

// Run executes the fixed iteration budget and returns the posterior archive
func (s *InversionService) Run(ctx context.Context) (*inversion.Archive, error) {
	model := cloneVec(s.prior.Means)
	pred, err := s.forward.Predict(ctx, model)
	if err != nil {
		return nil, errors.Wrap(err, "evaluating the initial model")
	}
	logLike, err := s.likelihood.LogLikelihood(s.obs.D, pred)
	if err != nil {
		return nil, errors.Wrap(err, "scoring the initial model")
	}

	archive := inversion.NewArchive(core.NewRunID(), s.iterations)
	s.logger.Infof("run %s: %d iterations over %d parameters, initial log-likelihood %.4f",
		archive.RunID, s.iterations, len(model), logLike)

	for i := 0; i < s.iterations; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		// Candidate = fresh copy of the current model with exactly one
		// parameter redrawn from its prior marginal. Ownership of the
		// current state only transfers on acceptance.
		idx := s.rng.Intn(len(model))
		candidate := cloneVec(model)
		candidate[idx] = s.marginals[idx].Rand()

		candPred, err := s.forward.Predict(ctx, candidate)
		if err != nil {
			return nil, errors.Wrapf(err, "evaluating candidate at iteration %d", i)
		}
		candLogLike, err := s.likelihood.LogLikelihood(s.obs.D, candPred)
		if err != nil {
			return nil, errors.Wrapf(err, "scoring candidate at iteration %d", i)
		}

		accepted := acceptCandidate(candLogLike, logLike, s.rng.Float64())
		if accepted {
			model, pred, logLike = candidate, candPred, candLogLike
		}

		archive.Append(inversion.Snapshot{
			Model:         cloneVec(model),
			Predicted:     cloneVec(pred),
			LogLikelihood: logLike,
			Accepted:      accepted,
		})

		if s.iterations >= 10 && (i+1)%(s.iterations/10) == 0 {
			s.logger.Debugf("run %s: iteration %d/%d, acceptance %.3f, log-likelihood %.4f",
				archive.RunID, i+1, s.iterations, archive.AcceptanceRatio(), logLike)
		}
	}

	s.logger.Infof("run %s finished: accepted %d/%d (%.3f)",
		archive.RunID, archive.AcceptedCount(), archive.Len(), archive.AcceptanceRatio())
	return archive, nil
}

// Summarize computes posterior moments over the post-burn-in archive
func (s *InversionService) Summarize(archive *inversion.Archive) (*inversion.Summary, error) {
	retained, err := archive.PostBurnIn(s.burnIn)
	if err != nil {
		return nil, err
	}
	return astats.Summarize(archive.RunID, retained)
}

// acceptCandidate applies the Metropolis test in log space: accept iff
// u < L_cand/L_curr. Ratios ≥ 1 accept unconditionally, and working with
// the log-likelihood difference avoids dividing by a vanishing likelihood.
func acceptCandidate(candLogLike, currLogLike, u float64) bool {
	diff := candLogLike - currLogLike
	if diff >= 0 {
		return true
	}
	return u < math.Exp(diff)
}

func cloneVec(v []float64) []float64 {
	out := make([]float64, len(v))
	copy(out, v)
	return out
}
