package gravity

import (
	"context"
	"math"
	"testing"
)

func TestModel_SingleColumnClosedForm(t *testing.T) {
	// One 1000 m wide column at x=0 with 10 m of ice, one station directly
	// above it. Checked against the anomaly formula evaluated by hand, not
	// against the implementation.
	const (
		gravConst = 6.67e-11
		contrast  = -1733.0
		width     = 1000.0
		delta     = 1e-15
		thickness = 10.0
	)

	m, err := NewModel(Params{
		Midpoints:       []float64{0},
		Stations:        []float64{0},
		Width:           width,
		DensityContrast: contrast,
		GravConst:       gravConst,
		Delta:           delta,
	})
	if err != nil {
		t.Fatalf("NewModel: %v", err)
	}

	got, err := m.Predict(context.Background(), []float64{thickness})
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 station value, got %d", len(got))
	}

	expected := gravConst * contrast * width * math.Log((thickness*thickness+delta)/delta)
	if math.Abs(got[0]-expected) > math.Abs(expected)*1e-12 {
		t.Errorf("anomaly = %g, want %g", got[0], expected)
	}
	if got[0] >= 0 {
		t.Errorf("anomaly should be negative for a negative density contrast, got %g", got[0])
	}
}

func TestModel_DefinedForAllInputs(t *testing.T) {
	m, err := NewModel(Params{
		Midpoints:       []float64{-1000, 0, 1000},
		Stations:        []float64{-1000, 0, 500, 1000},
		Width:           1000,
		DensityContrast: -1733,
		GravConst:       6.67e-11,
	})
	if err != nil {
		t.Fatalf("NewModel: %v", err)
	}

	cases := []struct {
		name  string
		model []float64
	}{
		{"typical thickness", []float64{100, 900, 300}},
		{"zero thickness everywhere", []float64{0, 0, 0}},
		{"zero column under a station", []float64{0, 500, 200}},
		{"negative thickness (not physical, still defined)", []float64{-50, 100, -900}},
		{"huge thickness", []float64{1e6, 1e6, 1e6}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := m.Predict(context.Background(), tc.model)
			if err != nil {
				t.Fatalf("Predict: %v", err)
			}
			for j, v := range out {
				if math.IsNaN(v) || math.IsInf(v, 0) {
					t.Errorf("station %d: anomaly is %v", j, v)
				}
			}
		})
	}
}

func TestModel_ParallelMatchesSequential(t *testing.T) {
	midpoints := make([]float64, 20)
	stations := make([]float64, 17)
	model := make([]float64, 20)
	for i := range midpoints {
		midpoints[i] = float64(i) * 500
		model[i] = 100 + 40*float64(i%7)
	}
	for j := range stations {
		stations[j] = float64(j)*600 - 300
	}

	seq, err := NewModel(Params{
		Midpoints: midpoints, Stations: stations, Width: 500,
		DensityContrast: -1733, GravConst: 6.67e-11,
	})
	if err != nil {
		t.Fatalf("NewModel sequential: %v", err)
	}
	par, err := NewModel(Params{
		Midpoints: midpoints, Stations: stations, Width: 500,
		DensityContrast: -1733, GravConst: 6.67e-11, Workers: 4,
	})
	if err != nil {
		t.Fatalf("NewModel parallel: %v", err)
	}

	want, err := seq.Predict(context.Background(), model)
	if err != nil {
		t.Fatalf("sequential Predict: %v", err)
	}
	got, err := par.Predict(context.Background(), model)
	if err != nil {
		t.Fatalf("parallel Predict: %v", err)
	}
	for j := range want {
		if got[j] != want[j] {
			t.Errorf("station %d: parallel %g != sequential %g", j, got[j], want[j])
		}
	}
}

func TestModel_DimensionMismatch(t *testing.T) {
	m, err := NewModel(Params{
		Midpoints:       []float64{0, 1000},
		Stations:        []float64{0},
		Width:           1000,
		DensityContrast: -1733,
		GravConst:       6.67e-11,
	})
	if err != nil {
		t.Fatalf("NewModel: %v", err)
	}
	if _, err := m.Predict(context.Background(), []float64{10}); err == nil {
		t.Error("expected an error for a short model vector")
	}
}

func TestNewModel_Validation(t *testing.T) {
	base := Params{
		Midpoints:       []float64{0},
		Stations:        []float64{0},
		Width:           1000,
		DensityContrast: -1733,
		GravConst:       6.67e-11,
	}

	cases := []struct {
		name   string
		mutate func(*Params)
	}{
		{"no midpoints", func(p *Params) { p.Midpoints = nil }},
		{"no stations", func(p *Params) { p.Stations = nil }},
		{"zero width", func(p *Params) { p.Width = 0 }},
		{"zero gravitational constant", func(p *Params) { p.GravConst = 0 }},
		{"negative delta", func(p *Params) { p.Delta = -1e-15 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := base
			tc.mutate(&p)
			if _, err := NewModel(p); err == nil {
				t.Error("expected a validation error")
			}
		})
	}
}
