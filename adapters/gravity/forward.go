package gravity

import (
	"context"
	"math"

	"golang.org/x/sync/errgroup"

	"geoinv/internal/errors"
)

// DefaultDelta is the singularity regularizer added to the squared
// station-column distance so the log term stays finite when a station
// sits exactly above a column edge.
const DefaultDelta = 1e-15

// Params configures a gravity forward model over a fixed survey geometry
type Params struct {
	Midpoints       []float64 // column midpoint positions [m]
	Stations        []float64 // observation station positions [m]
	Width           float64   // column width Δx [m]
	DensityContrast float64   // Δρ between ice and bedrock [kg/m³]
	GravConst       float64   // gravitational constant [m³/(kg·s²)]
	Delta           float64   // singularity regularizer, DefaultDelta if zero
	Workers         int       // >1 enables station-parallel evaluation
}

// Model predicts the gravity anomaly at each station for a candidate
// ice-thickness profile. Evaluation is O(M·N) and deterministic; it is the
// cost that dominates a sampler run.
type Model struct {
	midpoints []float64
	stations  []float64
	width     float64
	contrast  float64
	gravConst float64
	delta     float64
	workers   int
}

// NewModel validates the survey geometry and builds a forward model
func NewModel(p Params) (*Model, error) {
	if len(p.Midpoints) == 0 {
		return nil, errors.InvalidInput("forward model needs at least one column midpoint")
	}
	if len(p.Stations) == 0 {
		return nil, errors.InvalidInput("forward model needs at least one station")
	}
	if p.Width <= 0 {
		return nil, errors.InvalidInput("column width must be positive")
	}
	if p.GravConst <= 0 {
		return nil, errors.InvalidInput("gravitational constant must be positive")
	}
	delta := p.Delta
	if delta == 0 {
		delta = DefaultDelta
	}
	if delta < 0 {
		return nil, errors.InvalidInput("singularity regularizer must be positive")
	}
	return &Model{
		midpoints: p.Midpoints,
		stations:  p.Stations,
		width:     p.Width,
		contrast:  p.DensityContrast,
		gravConst: p.GravConst,
		delta:     delta,
		workers:   p.Workers,
	}, nil
}

// Dims returns the model length and data length
func (m *Model) Dims() (modelLen, dataLen int) {
	return len(m.midpoints), len(m.stations)
}

// Predict computes the anomaly at every station for the thickness profile
// model. The result is a fresh slice; model is never modified.
func (m *Model) Predict(ctx context.Context, model []float64) ([]float64, error) {
	if len(model) != len(m.midpoints) {
		return nil, errors.DimensionMismatch("model has %d parameters, geometry has %d columns", len(model), len(m.midpoints))
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := make([]float64, len(m.stations))
	if m.workers > 1 {
		g, _ := errgroup.WithContext(ctx)
		g.SetLimit(m.workers)
		for j := range m.stations {
			j := j
			g.Go(func() error {
				out[j] = m.stationAnomaly(m.stations[j], model)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
		return out, nil
	}

	for j, xj := range m.stations {
		out[j] = m.stationAnomaly(xj, model)
	}
	return out, nil
}

// stationAnomaly accumulates the contribution of every column at one
// station. Each column adds ln((dx² + h² + δ)/(dx² + δ)) scaled by the
// shared G·Δρ·Δx factor. δ appears in both terms so the ratio stays finite
// and positive even for a zero-thickness column directly under a station.
func (m *Model) stationAnomaly(xj float64, model []float64) float64 {
	sum := 0.0
	for i, xi := range m.midpoints {
		dx := xi - xj
		h := model[i]
		sum += math.Log((dx*dx + h*h + m.delta) / (dx*dx + m.delta))
	}
	return m.gravConst * m.contrast * m.width * sum
}
