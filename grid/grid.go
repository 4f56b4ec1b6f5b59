package grid

import (
	"errors"
	"math"
	"sort"
)

var (
	// ErrTooShort indicates fewer wavelength samples than the operation needs.
	ErrTooShort = errors.New("grid: need at least two wavelengths")
	// ErrInvalidStep indicates a non-positive or non-finite grid step.
	ErrInvalidStep = errors.New("grid: step must be positive and finite")
	// ErrNonPositive indicates wavelengths unusable on a logarithmic scale.
	ErrNonPositive = errors.New("grid: wavelengths must be positive")
)

// config holds log-grid generation options.
type config struct {
	step     float64
	haveStep bool
}

// Option configures log-uniform grid generation.
type Option func(*config)

// WithStep sets the linear dispersion (wavelength units per pixel) used
// to derive the pixel count of the output grid. The default is the
// median spacing of the input grid.
func WithStep(step float64) Option {
	return func(c *config) {
		c.step = step
		c.haveStep = true
	}
}

// MedianStep returns the median spacing between consecutive samples.
// Spacings are taken as-is, so a decreasing grid yields a negative step.
func MedianStep(wave []float64) (float64, error) {
	if len(wave) < 2 {
		return 0, ErrTooShort
	}

	diffs := make([]float64, len(wave)-1)
	for i := range diffs {
		diffs[i] = wave[i+1] - wave[i]
	}
	sort.Float64s(diffs)

	m := len(diffs) / 2
	if len(diffs)%2 == 0 {
		return 0.5 * (diffs[m-1] + diffs[m]), nil
	}

	return diffs[m], nil
}

// Edges converts the N pixel center positions to the N+1 pixel boundary
// positions. Interior boundaries sit midway between neighboring centers;
// the outermost boundaries extend half the adjacent spacing beyond the
// first and last centers.
func Edges(wave []float64) ([]float64, error) {
	n := len(wave)
	if n < 2 {
		return nil, ErrTooShort
	}

	edges := make([]float64, n+1)
	for i := 1; i < n; i++ {
		edges[i] = (wave[i-1] + wave[i]) / 2
	}
	edges[0] = wave[0] - (wave[1]-wave[0])/2
	edges[n] = wave[n-1] + (wave[n-1]-wave[n-2])/2

	return edges, nil
}

// Log10 builds a log10-uniform grid covering the wavelength range of
// the input. The pixel count is the input range divided by the linear
// step, truncated, plus one; both range endpoints are included. With a
// degenerate range the grid collapses to a single point.
func Log10(wave []float64, opts ...Option) ([]float64, error) {
	if len(wave) < 2 {
		return nil, ErrTooShort
	}

	var cfg config
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	step := cfg.step
	if !cfg.haveStep {
		var err error
		step, err = MedianStep(wave)
		if err != nil {
			return nil, err
		}
	}
	if !(step > 0) || math.IsInf(step, 0) {
		return nil, ErrInvalidStep
	}

	lo, hi := minMax(wave)
	if lo <= 0 {
		return nil, ErrNonPositive
	}

	npix := int((hi-lo)/step) + 1
	if npix < 1 {
		return nil, ErrInvalidStep
	}

	return logspace(math.Log10(lo), math.Log10(hi), npix), nil
}

// minMax returns the smallest and largest values in data.
func minMax(data []float64) (lo, hi float64) {
	lo, hi = data[0], data[0]
	for _, v := range data[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}

	return lo, hi
}

// logspace returns num values spaced uniformly in log10 between 10^start
// and 10^stop, with the final value pinned to exactly 10^stop.
func logspace(start, stop float64, num int) []float64 {
	out := make([]float64, num)
	if num == 1 {
		out[0] = math.Pow(10, start)
		return out
	}

	step := (stop - start) / float64(num-1)
	for i := range out {
		out[i] = math.Pow(10, start+float64(i)*step)
	}
	out[num-1] = math.Pow(10, stop)

	return out
}
