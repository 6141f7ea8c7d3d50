package linalg

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"geoinv/internal/errors"
)

func TestTikhonovSolve_ZeroDampingMatchesLeastSquares(t *testing.T) {
	// Overdetermined full-column-rank system: the damped solve with ε=0
	// must agree with a QR least-squares reference solve.
	g := mat.NewDense(4, 2, []float64{
		1, 1,
		1, 2,
		1, 3,
		1, 4,
	})
	d := []float64{6, 5, 7, 10}

	got, err := TikhonovSolve(g, d, 0)
	require.NoError(t, err)

	var ref mat.VecDense
	require.NoError(t, ref.SolveVec(g, mat.NewVecDense(4, d)))

	for i := range got {
		want := ref.AtVec(i)
		require.InEpsilon(t, want, got[i], 1e-8, "component %d", i)
	}
}

func TestTikhonovSolve_SingularWithoutDamping(t *testing.T) {
	// A zero column makes GᵗG rank deficient.
	g := mat.NewDense(3, 2, []float64{
		1, 0,
		2, 0,
		3, 0,
	})
	d := []float64{1, 2, 3}

	_, err := TikhonovSolve(g, d, 0)
	require.Error(t, err)
	require.Equal(t, errors.CodeNumericalSingularity, errors.GetCode(err))

	// Any positive damping restores invertibility.
	m, err := TikhonovSolve(g, d, 1e-3)
	require.NoError(t, err)
	require.Len(t, m, 2)
	for _, v := range m {
		require.False(t, math.IsNaN(v) || math.IsInf(v, 0))
	}
}

func TestTikhonovSolve_UnderdeterminedWithDamping(t *testing.T) {
	// More parameters than data: only the damping makes this solvable.
	g := mat.NewDense(2, 4, []float64{
		1, 0, 1, 0,
		0, 1, 0, 1,
	})
	d := []float64{2, 4}

	m, err := TikhonovSolve(g, d, 0.5)
	require.NoError(t, err)
	require.Len(t, m, 4)

	// Symmetric columns receive symmetric weight.
	require.InDelta(t, m[0], m[2], 1e-12)
	require.InDelta(t, m[1], m[3], 1e-12)
}

func TestTikhonovSolve_Validation(t *testing.T) {
	g := mat.NewDense(2, 2, []float64{1, 0, 0, 1})

	_, err := TikhonovSolve(g, []float64{1}, 1)
	require.Equal(t, errors.CodeDimensionMismatch, errors.GetCode(err))

	_, err = TikhonovSolve(g, []float64{1, 2}, -1)
	require.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
}

func TestResidualNorm(t *testing.T) {
	g := mat.NewDense(2, 1, []float64{1, 1})
	d := []float64{3, 5}

	// m = 4 leaves residual (-1, 1), norm √2.
	rn, err := ResidualNorm(g, d, []float64{4})
	require.NoError(t, err)
	require.InDelta(t, math.Sqrt2, rn, 1e-12)

	_, err = ResidualNorm(g, d, []float64{1, 2})
	require.Equal(t, errors.CodeDimensionMismatch, errors.GetCode(err))
	_, err = ResidualNorm(g, []float64{1}, []float64{1})
	require.Equal(t, errors.CodeDimensionMismatch, errors.GetCode(err))
}
