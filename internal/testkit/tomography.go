package testkit

import (
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"geoinv/internal/errors"
)

// Ray is a straight 45° ray crossing the tomography grid: it enters one
// vertical edge at depth Intercept (in cells) and ascends to the surface.
type Ray struct {
	FromLeft  bool
	Intercept int
}

// DiagonalRays builds a cross-borehole survey: one ray per integer
// intercept from 2 to height, entering first the left edge and then the
// right edge.
func DiagonalRays(height int) []Ray {
	var rays []Ray
	for c := 2; c <= height; c++ {
		rays = append(rays, Ray{FromLeft: true, Intercept: c})
	}
	for c := height; c >= 2; c-- {
		rays = append(rays, Ray{FromLeft: false, Intercept: c})
	}
	return rays
}

// BuildRayOperator assembles the forward operator for a width×height grid
// of square cells: G[k][cell] is the path length of ray k inside that cell
// (cellSize·√2 for every crossed cell, 0 elsewhere). Cells are indexed
// row-major with row 0 at the surface.
func BuildRayOperator(width, height int, rays []Ray, cellSize float64) (*mat.Dense, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.InvalidInput("grid dimensions must be positive")
	}
	if cellSize <= 0 {
		return nil, errors.InvalidInput("cell size must be positive")
	}
	if len(rays) == 0 {
		return nil, errors.InvalidInput("operator needs at least one ray")
	}

	segment := cellSize * math.Sqrt2
	g := mat.NewDense(len(rays), width*height, nil)
	for k, r := range rays {
		c := r.Intercept
		if c < 1 || c > height || c > width {
			return nil, errors.InvalidInput("ray intercept leaves the grid")
		}
		for t := 0; t < c; t++ {
			col := t
			if !r.FromLeft {
				col = width - 1 - t
			}
			row := c - 1 - t
			g.Set(k, row*width+col, segment)
		}
	}
	return g, nil
}

// BlockAnomaly builds a slowness model that is background everywhere except
// a rectangular block [colMin,colMax]×[rowMin,rowMax] set to anomaly.
// Bounds are inclusive cell indices.
func BlockAnomaly(width, height, colMin, colMax, rowMin, rowMax int, background, anomaly float64) ([]float64, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.InvalidInput("grid dimensions must be positive")
	}
	if colMin < 0 || colMax >= width || rowMin < 0 || rowMax >= height || colMin > colMax || rowMin > rowMax {
		return nil, errors.InvalidInput("anomaly block leaves the grid")
	}
	m := make([]float64, width*height)
	for row := 0; row < height; row++ {
		for col := 0; col < width; col++ {
			v := background
			if col >= colMin && col <= colMax && row >= rowMin && row <= rowMax {
				v = anomaly
			}
			m[row*width+col] = v
		}
	}
	return m, nil
}

// SyntheticTravelTimes forwards a true model through the ray operator and
// adds seeded Gaussian noise. It returns the noisy data and the realized
// noise norm ‖n‖, the target for the discrepancy principle.
func SyntheticTravelTimes(g *mat.Dense, truth []float64, noiseStd float64, seed uint64) (d []float64, noiseNorm float64, err error) {
	rows, cols := g.Dims()
	if len(truth) != cols {
		return nil, 0, errors.DimensionMismatch("operator has %d columns but model has %d parameters", cols, len(truth))
	}
	if noiseStd <= 0 {
		return nil, 0, errors.InvalidInput("noise standard deviation must be positive")
	}

	var clean mat.VecDense
	clean.MulVec(g, mat.NewVecDense(cols, truth))

	noise := distuv.Normal{Mu: 0, Sigma: noiseStd, Src: rand.NewSource(seed)}
	d = make([]float64, rows)
	sum := 0.0
	for i := range d {
		n := noise.Rand()
		d[i] = clean.AtVec(i) + n
		sum += n * n
	}
	return d, math.Sqrt(sum), nil
}
