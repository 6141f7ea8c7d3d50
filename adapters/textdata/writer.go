package textdata

import (
	"bufio"
	"fmt"
	"os"

	"geoinv/domain/inversion"
	"geoinv/internal/errors"
)

// WritePosteriorSummary writes the per-column posterior moments alongside
// the prior means as whitespace text, one row per model parameter.
func WritePosteriorSummary(path string, midpoints []float64, prior inversion.Prior, s *inversion.Summary) error {
	if len(midpoints) != len(s.ModelMean) {
		return errors.DimensionMismatch("got %d midpoints but %d posterior means", len(midpoints), len(s.ModelMean))
	}
	header := fmt.Sprintf("# run %s, %d retained samples\n# midpoint prior_mean posterior_mean posterior_std",
		s.RunID, s.Retained)
	return writeColumns(path, header, midpoints, prior.Means, s.ModelMean, s.ModelStd)
}

// WriteTrajectories writes per-iteration acceptance ratio and chain
// log-likelihood as whitespace text.
func WriteTrajectories(path string, acceptance, loglik []float64) error {
	return writeColumns(path, "# acceptance_ratio log_likelihood", acceptance, loglik)
}

// WriteEpsilonSweep writes the damping candidates and their residual norms
func WriteEpsilonSweep(path string, epsilons, residuals []float64) error {
	return writeColumns(path, "# epsilon residual_norm", epsilons, residuals)
}

// WriteModelEstimate writes a single model vector, one value per row
func WriteModelEstimate(path string, m []float64) error {
	return writeColumns(path, "# model_estimate", m)
}

func writeColumns(path, header string, cols ...[]float64) error {
	if len(cols) == 0 {
		return errors.InvalidInput("no columns to write")
	}
	n := len(cols[0])
	for _, c := range cols[1:] {
		if len(c) != n {
			return errors.DimensionMismatch("column lengths differ: %d vs %d", n, len(c))
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "creating output file %s", path)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if header != "" {
		fmt.Fprintln(w, header)
	}
	for i := 0; i < n; i++ {
		for j, c := range cols {
			if j > 0 {
				fmt.Fprint(w, " ")
			}
			fmt.Fprintf(w, "%.10g", c[i])
		}
		fmt.Fprintln(w)
	}
	if err := w.Flush(); err != nil {
		return errors.Wrapf(err, "writing output file %s", path)
	}
	return nil
}
