package linalg

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"geoinv/internal/errors"
)

// TikhonovSolve computes the damped least-squares estimate
// m_est = (GᵗG + ε²I)⁻¹ Gᵗ d_obs for an N×M forward operator G. The
// normal-equations matrix is Cholesky-factorized and solved; no explicit
// inverse is ever formed. For ε > 0 the system is positive definite
// regardless of the rank of G; with ε = 0 and a rank-deficient GᵗG the
// factorization fails and the call returns a NUMERICAL_SINGULARITY error.
func TikhonovSolve(g *mat.Dense, d []float64, epsilon float64) ([]float64, error) {
	n, m := g.Dims()
	if len(d) != n {
		return nil, errors.DimensionMismatch("operator has %d rows but data has %d components", n, len(d))
	}
	if epsilon < 0 {
		return nil, errors.InvalidInput("damping parameter cannot be negative")
	}

	var gtg mat.Dense
	gtg.Mul(g.T(), g)

	eps2 := epsilon * epsilon
	sym := mat.NewSymDense(m, nil)
	for i := 0; i < m; i++ {
		for j := i; j < m; j++ {
			v := gtg.At(i, j)
			if i == j {
				v += eps2
			}
			sym.SetSym(i, j, v)
		}
	}

	var chol mat.Cholesky
	if ok := chol.Factorize(sym); !ok {
		return nil, errors.NumericalSingularity("GᵗG + ε²I is not positive definite; supply ε > 0 for a rank-deficient operator")
	}

	var rhs mat.VecDense
	rhs.MulVec(g.T(), mat.NewVecDense(n, d))

	var x mat.VecDense
	if err := chol.SolveVecTo(&x, &rhs); err != nil {
		return nil, &errors.AppError{Code: errors.CodeNumericalSingularity, Message: "damped normal-equations solve failed", Cause: err}
	}

	out := make([]float64, m)
	for i := range out {
		out[i] = x.AtVec(i)
	}
	return out, nil
}

// ResidualNorm returns the 2-norm of d - G·m
func ResidualNorm(g *mat.Dense, d, m []float64) (float64, error) {
	n, cols := g.Dims()
	if len(d) != n {
		return 0, errors.DimensionMismatch("operator has %d rows but data has %d components", n, len(d))
	}
	if len(m) != cols {
		return 0, errors.DimensionMismatch("operator has %d columns but model has %d parameters", cols, len(m))
	}

	var pred mat.VecDense
	pred.MulVec(g, mat.NewVecDense(cols, m))

	sum := 0.0
	for i := 0; i < n; i++ {
		r := d[i] - pred.AtVec(i)
		sum += r * r
	}
	return math.Sqrt(sum), nil
}
