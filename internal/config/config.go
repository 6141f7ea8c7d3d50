package config

import (
	"os"
	"strconv"

	"geoinv/internal/errors"
)

// SamplerConfig holds every scalar parameter of one glacier MCMC run.
// All values are fixed at run start; there is no dynamic reconfiguration.
type SamplerConfig struct {
	Iterations int
	BurnIn     int

	NoiseStd        float64 // per-station measurement noise standard deviation
	DensityContrast float64 // ice/bedrock Δρ [kg/m³]
	GravConst       float64 // gravitational constant
	Delta           float64 // forward-model singularity regularizer
	Seed            uint64  // RNG seed, required for reproducible runs
	Workers         int     // >1 enables station-parallel forward evaluation

	StationFile string // optional; synthetic survey is generated when empty
	OutputDir   string
}

// TomographyConfig holds the parameters of one epsilon sweep
type TomographyConfig struct {
	EpsilonMin   float64
	EpsilonMax   float64
	EpsilonCount int

	NoiseStd  float64
	Seed      uint64
	OutputDir string
}

// LoadSampler reads the glacier run configuration from the environment
func LoadSampler() (*SamplerConfig, error) {
	cfg := &SamplerConfig{
		Iterations:      getEnvIntOrDefault("MCMC_ITERATIONS", 100000),
		BurnIn:          getEnvIntOrDefault("MCMC_BURN_IN", 10000),
		NoiseStd:        getEnvFloatOrDefault("NOISE_STD", 1e-5),
		DensityContrast: getEnvFloatOrDefault("DENSITY_CONTRAST", -1733),
		GravConst:       getEnvFloatOrDefault("GRAV_CONST", 6.67e-11),
		Delta:           getEnvFloatOrDefault("FORWARD_DELTA", 1e-15),
		Seed:            getEnvUintOrDefault("RNG_SEED", 42),
		Workers:         getEnvIntOrDefault("FORWARD_WORKERS", 0),
		StationFile:     getEnvOrDefault("STATION_FILE", ""),
		OutputDir:       getEnvOrDefault("OUTPUT_DIR", "."),
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "sampler configuration validation failed")
	}
	return cfg, nil
}

// Validate enforces the fail-fast conditions before any sampling begins
func (c *SamplerConfig) Validate() error {
	if c.Iterations <= 0 {
		return errors.ConfigInvalid("iteration count must be positive")
	}
	if c.BurnIn < 0 {
		return errors.ConfigInvalid("burn-in length cannot be negative")
	}
	if c.BurnIn >= c.Iterations {
		return errors.ConfigInvalid("burn-in length must be smaller than the iteration count")
	}
	if c.NoiseStd <= 0 {
		return errors.ConfigInvalid("data noise standard deviation must be positive")
	}
	if c.GravConst <= 0 {
		return errors.ConfigInvalid("gravitational constant must be positive")
	}
	if c.Delta <= 0 {
		return errors.ConfigInvalid("forward-model regularizer must be positive")
	}
	if c.Workers < 0 {
		return errors.ConfigInvalid("worker count cannot be negative")
	}
	return nil
}

// LoadTomography reads the epsilon-sweep configuration from the environment
func LoadTomography() (*TomographyConfig, error) {
	cfg := &TomographyConfig{
		EpsilonMin:   getEnvFloatOrDefault("EPSILON_MIN", 1),
		EpsilonMax:   getEnvFloatOrDefault("EPSILON_MAX", 1e4),
		EpsilonCount: getEnvIntOrDefault("EPSILON_COUNT", 50),
		NoiseStd:     getEnvFloatOrDefault("NOISE_STD", 0.05),
		Seed:         getEnvUintOrDefault("RNG_SEED", 42),
		OutputDir:    getEnvOrDefault("OUTPUT_DIR", "."),
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "tomography configuration validation failed")
	}
	return cfg, nil
}

// Validate enforces the fail-fast conditions before any solve begins
func (c *TomographyConfig) Validate() error {
	if c.EpsilonCount <= 0 {
		return errors.ConfigInvalid("epsilon candidate count must be positive")
	}
	if c.EpsilonMin <= 0 {
		return errors.ConfigInvalid("smallest epsilon candidate must be positive")
	}
	if c.EpsilonMax < c.EpsilonMin {
		return errors.ConfigInvalid("epsilon range is inverted")
	}
	if c.NoiseStd <= 0 {
		return errors.ConfigInvalid("data noise standard deviation must be positive")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvUintOrDefault(key string, defaultValue uint64) uint64 {
	if value := os.Getenv(key); value != "" {
		if uintValue, err := strconv.ParseUint(value, 10, 64); err == nil {
			return uintValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
