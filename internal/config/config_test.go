package config

import (
	"testing"

	"geoinv/internal/errors"
)

func TestLoadSampler_Defaults(t *testing.T) {
	cfg, err := LoadSampler()
	if err != nil {
		t.Fatalf("LoadSampler: %v", err)
	}
	if cfg.Iterations <= 0 || cfg.BurnIn >= cfg.Iterations {
		t.Errorf("default iteration budget is unusable: %d iterations, %d burn-in", cfg.Iterations, cfg.BurnIn)
	}
	if cfg.GravConst != 6.67e-11 {
		t.Errorf("GravConst = %g, want 6.67e-11", cfg.GravConst)
	}
}

func TestLoadSampler_EnvOverrides(t *testing.T) {
	t.Setenv("MCMC_ITERATIONS", "5000")
	t.Setenv("MCMC_BURN_IN", "500")
	t.Setenv("RNG_SEED", "123")
	t.Setenv("NOISE_STD", "2.5e-6")

	cfg, err := LoadSampler()
	if err != nil {
		t.Fatalf("LoadSampler: %v", err)
	}
	if cfg.Iterations != 5000 || cfg.BurnIn != 500 || cfg.Seed != 123 || cfg.NoiseStd != 2.5e-6 {
		t.Errorf("overrides not applied: %+v", cfg)
	}
}

func TestSamplerConfig_Validate(t *testing.T) {
	valid := SamplerConfig{
		Iterations: 100, BurnIn: 10,
		NoiseStd: 1e-5, DensityContrast: -1733, GravConst: 6.67e-11,
		Delta: 1e-15, Seed: 1,
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*SamplerConfig)
	}{
		{"zero iterations", func(c *SamplerConfig) { c.Iterations = 0 }},
		{"negative burn-in", func(c *SamplerConfig) { c.BurnIn = -1 }},
		{"burn-in not below iterations", func(c *SamplerConfig) { c.BurnIn = 100 }},
		{"non-positive noise", func(c *SamplerConfig) { c.NoiseStd = 0 }},
		{"non-positive gravitational constant", func(c *SamplerConfig) { c.GravConst = 0 }},
		{"non-positive delta", func(c *SamplerConfig) { c.Delta = 0 }},
		{"negative workers", func(c *SamplerConfig) { c.Workers = -1 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid
			tc.mutate(&cfg)
			err := cfg.Validate()
			if errors.GetCode(err) != errors.CodeConfigInvalid {
				t.Errorf("got %v, want CONFIG_INVALID", err)
			}
		})
	}
}

func TestTomographyConfig_Validate(t *testing.T) {
	valid := TomographyConfig{EpsilonMin: 1, EpsilonMax: 1e4, EpsilonCount: 50, NoiseStd: 0.05, Seed: 1}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*TomographyConfig)
	}{
		{"zero candidates", func(c *TomographyConfig) { c.EpsilonCount = 0 }},
		{"non-positive minimum", func(c *TomographyConfig) { c.EpsilonMin = 0 }},
		{"inverted range", func(c *TomographyConfig) { c.EpsilonMax = 0.5 }},
		{"non-positive noise", func(c *TomographyConfig) { c.NoiseStd = 0 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid
			tc.mutate(&cfg)
			err := cfg.Validate()
			if errors.GetCode(err) != errors.CodeConfigInvalid {
				t.Errorf("got %v, want CONFIG_INVALID", err)
			}
		})
	}
}
