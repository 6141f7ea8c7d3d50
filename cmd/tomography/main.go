package main

import (
	"context"
	"flag"
	"log"
	"path/filepath"

	"github.com/joho/godotenv"

	"geoinv/adapters/textdata"
	"geoinv/app"
	"geoinv/internal"
	"geoinv/internal/config"
	"geoinv/internal/linalg"
	"geoinv/internal/testkit"
)

// Synthetic grid: 13 columns by 11 rows of 1 km cells crossed by 45° rays
// from both vertical edges, with a slow block buried mid-grid.
const (
	gridWidth  = 13
	gridHeight = 11
	cellSize   = 1.0
)

func main() {
	_ = godotenv.Load()

	epsMin := flag.Float64("eps-min", 0, "smallest damping candidate (overrides EPSILON_MIN)")
	epsMax := flag.Float64("eps-max", 0, "largest damping candidate (overrides EPSILON_MAX)")
	epsCount := flag.Int("eps-count", 0, "number of candidates (overrides EPSILON_COUNT)")
	seed := flag.Uint64("seed", 0, "RNG seed (overrides RNG_SEED)")
	outputDir := flag.String("out", "", "output directory (overrides OUTPUT_DIR)")
	flag.Parse()

	cfg, err := config.LoadTomography()
	if err != nil {
		log.Fatalf("tomography: %v", err)
	}
	if *epsMin > 0 {
		cfg.EpsilonMin = *epsMin
	}
	if *epsMax > 0 {
		cfg.EpsilonMax = *epsMax
	}
	if *epsCount > 0 {
		cfg.EpsilonCount = *epsCount
	}
	if *seed > 0 {
		cfg.Seed = *seed
	}
	if *outputDir != "" {
		cfg.OutputDir = *outputDir
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("tomography: %v", err)
	}

	logger := internal.NewDefaultLogger()
	ctx := context.Background()

	rays := testkit.DiagonalRays(gridHeight)
	g, err := testkit.BuildRayOperator(gridWidth, gridHeight, rays, cellSize)
	if err != nil {
		log.Fatalf("tomography: %v", err)
	}

	truth, err := testkit.BlockAnomaly(gridWidth, gridHeight, 4, 7, 3, 6, 0, 0.3)
	if err != nil {
		log.Fatalf("tomography: %v", err)
	}

	d, noiseNorm, err := testkit.SyntheticTravelTimes(g, truth, cfg.NoiseStd, cfg.Seed)
	if err != nil {
		log.Fatalf("tomography: %v", err)
	}

	candidates, err := linalg.LogSpace(cfg.EpsilonMin, cfg.EpsilonMax, cfg.EpsilonCount)
	if err != nil {
		log.Fatalf("tomography: %v", err)
	}

	service := app.NewTomographyService(logger)
	result, err := service.Run(ctx, g, d, candidates, noiseNorm)
	if err != nil {
		log.Fatalf("tomography: %v", err)
	}

	sweepPath := filepath.Join(cfg.OutputDir, "epsilon_sweep.txt")
	if err := textdata.WriteEpsilonSweep(sweepPath, result.Selection.Epsilons, result.Selection.Residuals); err != nil {
		log.Fatalf("tomography: %v", err)
	}
	modelPath := filepath.Join(cfg.OutputDir, "model_estimate.txt")
	if err := textdata.WriteModelEstimate(modelPath, result.ModelEstimate); err != nil {
		log.Fatalf("tomography: %v", err)
	}

	logger.Infof("wrote %s and %s (selected ε=%.6g)", sweepPath, modelPath, result.Selection.Epsilon)
}
