package stats

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"geoinv/internal/errors"
)

// GaussianLikelihood evaluates the unnormalized Gaussian data likelihood
// exp(-½ rᵀ Cd⁻¹ r) for a residual r = d_obs - g(m). All work happens in
// log space; Likelihood only exponentiates at the end, so large misfits
// underflow to zero there but never poison an acceptance ratio computed
// from LogLikelihood differences.
type GaussianLikelihood struct {
	variances []float64     // diagonal covariance fast path
	chol      *mat.Cholesky // general positive-definite covariance
	n         int
}

// NewDiagonalLikelihood builds a likelihood for independent per-station
// noise with the given standard deviations.
func NewDiagonalLikelihood(stddevs []float64) (*GaussianLikelihood, error) {
	if len(stddevs) == 0 {
		return nil, errors.InvalidInput("likelihood needs at least one data component")
	}
	variances := make([]float64, len(stddevs))
	for i, sd := range stddevs {
		if sd <= 0 {
			return nil, errors.InvalidInput("noise standard deviation must be positive")
		}
		variances[i] = sd * sd
	}
	return &GaussianLikelihood{variances: variances, n: len(stddevs)}, nil
}

// NewUniformLikelihood builds a diagonal likelihood with one shared noise
// standard deviation for all n stations.
func NewUniformLikelihood(n int, stddev float64) (*GaussianLikelihood, error) {
	if n <= 0 {
		return nil, errors.InvalidInput("likelihood needs at least one data component")
	}
	stddevs := make([]float64, n)
	for i := range stddevs {
		stddevs[i] = stddev
	}
	return NewDiagonalLikelihood(stddevs)
}

// NewCovarianceLikelihood builds a likelihood for a full positive-definite
// data covariance. The covariance is Cholesky-factorized once; every
// evaluation is a triangular solve, never an explicit inverse.
func NewCovarianceLikelihood(cov *mat.SymDense) (*GaussianLikelihood, error) {
	n := cov.SymmetricDim()
	if n == 0 {
		return nil, errors.InvalidInput("likelihood needs at least one data component")
	}
	chol := &mat.Cholesky{}
	if ok := chol.Factorize(cov); !ok {
		return nil, errors.NumericalSingularity("data covariance is not positive definite")
	}
	return &GaussianLikelihood{chol: chol, n: n}, nil
}

// Len returns the expected data vector length
func (l *GaussianLikelihood) Len() int {
	return l.n
}

// LogLikelihood returns -½ rᵀ Cd⁻¹ r for r = obs - pred
func (l *GaussianLikelihood) LogLikelihood(obs, pred []float64) (float64, error) {
	if len(obs) != l.n || len(pred) != l.n {
		return 0, errors.DimensionMismatch("likelihood expects %d components, got %d observed and %d predicted", l.n, len(obs), len(pred))
	}

	if l.variances != nil {
		sum := 0.0
		for i := range obs {
			r := obs[i] - pred[i]
			sum += r * r / l.variances[i]
		}
		return -0.5 * sum, nil
	}

	r := mat.NewVecDense(l.n, nil)
	for i := range obs {
		r.SetVec(i, obs[i]-pred[i])
	}
	var x mat.VecDense
	if err := l.chol.SolveVecTo(&x, r); err != nil {
		return 0, &errors.AppError{Code: errors.CodeNumericalSingularity, Message: "covariance solve failed", Cause: err}
	}
	return -0.5 * mat.Dot(r, &x), nil
}

// Likelihood returns exp(LogLikelihood), always in [0, 1]
func (l *GaussianLikelihood) Likelihood(obs, pred []float64) (float64, error) {
	ll, err := l.LogLikelihood(obs, pred)
	if err != nil {
		return 0, err
	}
	return math.Exp(ll), nil
}
