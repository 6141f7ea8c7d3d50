package stats

import (
	mstats "github.com/montanaflynn/stats"

	"geoinv/domain/core"
	"geoinv/domain/inversion"
	"geoinv/internal/errors"
)

// Summarize computes posterior moments over a post-burn-in snapshot slice:
// mean and standard deviation per model parameter and per predicted-data
// component. The caller chooses the burn-in by passing Archive.PostBurnIn
// output; Summarize never discards anything itself.
func Summarize(runID core.RunID, snapshots []inversion.Snapshot) (*inversion.Summary, error) {
	if len(snapshots) == 0 {
		return nil, errors.InvalidInput("cannot summarize an empty sample set")
	}

	modelLen := len(snapshots[0].Model)
	dataLen := len(snapshots[0].Predicted)

	summary := &inversion.Summary{
		RunID:         runID,
		Retained:      len(snapshots),
		ModelMean:     make([]float64, modelLen),
		ModelStd:      make([]float64, modelLen),
		PredictedMean: make([]float64, dataLen),
		PredictedStd:  make([]float64, dataLen),
	}

	series := make([]float64, len(snapshots))
	for p := 0; p < modelLen; p++ {
		for k, s := range snapshots {
			if len(s.Model) != modelLen {
				return nil, errors.DimensionMismatch("snapshot %d has %d model parameters, expected %d", k, len(s.Model), modelLen)
			}
			series[k] = s.Model[p]
		}
		mean, std, err := momentsOf(series)
		if err != nil {
			return nil, err
		}
		summary.ModelMean[p] = mean
		summary.ModelStd[p] = std
	}

	for p := 0; p < dataLen; p++ {
		for k, s := range snapshots {
			if len(s.Predicted) != dataLen {
				return nil, errors.DimensionMismatch("snapshot %d has %d predicted components, expected %d", k, len(s.Predicted), dataLen)
			}
			series[k] = s.Predicted[p]
		}
		mean, std, err := momentsOf(series)
		if err != nil {
			return nil, err
		}
		summary.PredictedMean[p] = mean
		summary.PredictedStd[p] = std
	}

	return summary, nil
}

func momentsOf(series []float64) (mean, std float64, err error) {
	mean, err = mstats.Mean(series)
	if err != nil {
		return 0, 0, errors.Wrap(err, "computing posterior mean")
	}
	std, err = mstats.StandardDeviation(series)
	if err != nil {
		return 0, 0, errors.Wrap(err, "computing posterior standard deviation")
	}
	return mean, std, nil
}
