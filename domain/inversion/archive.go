package inversion

import (
	"geoinv/domain/core"
	"geoinv/internal/errors"
)

// Snapshot captures the live chain state after one iteration: the current
// model, its forward prediction, and its log-likelihood. Accepted records
// whether this iteration's candidate replaced the previous state.
type Snapshot struct {
	Model         []float64
	Predicted     []float64
	LogLikelihood float64
	Accepted      bool
}

// Archive is the append-only posterior sample record for one sampler run.
// It is created and owned by the sampler and handed to the caller when the
// run finishes; nothing is ever rewritten after Append.
type Archive struct {
	RunID core.RunID

	snapshots []Snapshot
	accepted  int
	ratios    []float64
}

// NewArchive creates an empty archive sized for the given iteration budget
func NewArchive(runID core.RunID, iterations int) *Archive {
	return &Archive{
		RunID:     runID,
		snapshots: make([]Snapshot, 0, iterations),
		ratios:    make([]float64, 0, iterations),
	}
}

// Append records one iteration's snapshot and updates the acceptance
// diagnostics. The acceptance ratio at iteration i is accepted/(i+1), so
// it is defined from the very first iteration.
func (a *Archive) Append(s Snapshot) {
	if s.Accepted {
		a.accepted++
	}
	a.snapshots = append(a.snapshots, s)
	a.ratios = append(a.ratios, float64(a.accepted)/float64(len(a.snapshots)))
}

// Len returns the number of recorded iterations
func (a *Archive) Len() int {
	return len(a.snapshots)
}

// Snapshots returns the full iteration history
func (a *Archive) Snapshots() []Snapshot {
	return a.snapshots
}

// PostBurnIn returns the retained suffix after discarding the first burnIn
// snapshots. It is a read-only view: the archive itself is not truncated.
func (a *Archive) PostBurnIn(burnIn int) ([]Snapshot, error) {
	if burnIn < 0 {
		return nil, errors.InvalidInput("burn-in length cannot be negative")
	}
	if burnIn >= len(a.snapshots) {
		return nil, errors.InvalidInput("burn-in discards the entire archive")
	}
	return a.snapshots[burnIn:], nil
}

// AcceptedCount returns the number of accepted candidates so far
func (a *Archive) AcceptedCount() int {
	return a.accepted
}

// AcceptanceRatio returns the final acceptance ratio, accepted/iterations
func (a *Archive) AcceptanceRatio() float64 {
	if len(a.snapshots) == 0 {
		return 0
	}
	return float64(a.accepted) / float64(len(a.snapshots))
}

// AcceptanceTrajectory returns the per-iteration acceptance ratio
func (a *Archive) AcceptanceTrajectory() []float64 {
	return a.ratios
}

// LogLikelihoodTrajectory returns the per-iteration chain log-likelihood
func (a *Archive) LogLikelihoodTrajectory() []float64 {
	traj := make([]float64, len(a.snapshots))
	for i, s := range a.snapshots {
		traj[i] = s.LogLikelihood
	}
	return traj
}

// Summary holds posterior moments computed over the post-burn-in archive
type Summary struct {
	RunID    core.RunID
	Retained int

	// Per model parameter
	ModelMean []float64
	ModelStd  []float64

	// Per predicted-data component
	PredictedMean []float64
	PredictedStd  []float64
}
