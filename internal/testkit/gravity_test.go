package testkit

import (
	"context"
	"testing"

	"geoinv/adapters/gravity"
)

func TestSyntheticSurvey_Reproducible(t *testing.T) {
	v, err := ValleyPrior(6, 0, 6000, 900, 0.25)
	if err != nil {
		t.Fatalf("ValleyPrior: %v", err)
	}
	fwd, err := gravity.NewModel(gravity.Params{
		Midpoints:       v.Midpoints,
		Stations:        v.Midpoints,
		Width:           v.Width,
		DensityContrast: -1733,
		GravConst:       6.67e-11,
	})
	if err != nil {
		t.Fatalf("NewModel: %v", err)
	}

	ctx := context.Background()
	a, err := SyntheticSurvey(ctx, fwd, v.Midpoints, v.Prior.Means, 1e-5, 11)
	if err != nil {
		t.Fatalf("SyntheticSurvey: %v", err)
	}
	b, err := SyntheticSurvey(ctx, fwd, v.Midpoints, v.Prior.Means, 1e-5, 11)
	if err != nil {
		t.Fatalf("SyntheticSurvey: %v", err)
	}

	if a.Len() != 6 {
		t.Fatalf("survey has %d stations, want 6", a.Len())
	}
	for i := range a.D {
		if a.D[i] != b.D[i] {
			t.Fatalf("station %d differs for the same seed", i)
		}
	}

	if _, err := SyntheticSurvey(ctx, fwd, v.Midpoints, v.Prior.Means, 0, 11); err == nil {
		t.Error("expected an error for non-positive noise")
	}
}
