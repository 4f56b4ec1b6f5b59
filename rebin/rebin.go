package rebin

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-spectro/grid"
	"github.com/cwbudde/algo-vecmath"
)

var (
	// ErrGridTooShort indicates a wavelength grid with fewer than two pixels.
	ErrGridTooShort = errors.New("rebin: grid needs at least two pixels")
	// ErrNotIncreasing indicates a wavelength grid that is not strictly increasing.
	ErrNotIncreasing = errors.New("rebin: wavelengths must be strictly increasing")
	// ErrShapeMismatch indicates an array whose length differs from the grid.
	ErrShapeMismatch = errors.New("rebin: array length does not match grid")
)

// Spectrum bundles the per-pixel arrays of a sampled spectrum. Any
// field may be nil; nil fields are skipped when rebinning.
type Spectrum struct {
	Flux    []float64
	FluxErr []float64 // per-pixel 1-sigma uncertainties
	Mask    []bool    // true marks a bad pixel
}

// Result holds a rebinned spectrum on its target grid. Fields that were
// nil in the input Spectrum stay nil.
type Result struct {
	Grid    []float64
	Flux    []float64
	FluxErr []float64
	Mask    []bool
}

// config holds target-grid options.
type config struct {
	newWave []float64
	step    float64
}

// Option configures how the target grid is chosen.
type Option func(*config)

// WithGrid sets the target wavelength grid explicitly. It takes
// precedence over WithStep.
func WithGrid(wave []float64) Option {
	return func(cfg *config) {
		cfg.newWave = wave
	}
}

// WithStep sets the linear dispersion used to size the derived
// log10-uniform target grid. Non-positive values are ignored.
func WithStep(step float64) Option {
	return func(cfg *config) {
		if step > 0 {
			cfg.step = step
		}
	}
}

// Rebinner resamples spectra from one fixed wavelength grid onto
// another. The pixel-overlap geometry is computed once at construction,
// so rebinning many spectra sampled on the same grid costs one pass per
// array. A Rebinner is immutable and safe for concurrent use.
type Rebinner struct {
	n       int // input grid length
	newWave []float64
	spans   []span
}

// New creates a Rebinner from the input grid wave onto a target grid.
// Both grids must be strictly increasing with at least two pixels. The
// target grid is taken from WithGrid when given, otherwise derived with
// grid.Log10 (sized by WithStep when given); deriving requires positive
// wavelengths.
func New(wave []float64, opts ...Option) (*Rebinner, error) {
	if err := checkGrid(wave); err != nil {
		return nil, err
	}

	var cfg config

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	newWave := cfg.newWave
	if newWave == nil {
		var gopts []grid.Option
		if cfg.step > 0 {
			gopts = append(gopts, grid.WithStep(cfg.step))
		}

		derived, err := grid.Log10(wave, gopts...)
		if err != nil {
			return nil, err
		}
		newWave = derived
	}
	if err := checkGrid(newWave); err != nil {
		return nil, err
	}

	oldEdges, err := grid.Edges(wave)
	if err != nil {
		return nil, err
	}
	newEdges, err := grid.Edges(newWave)
	if err != nil {
		return nil, err
	}

	// New pixel boundaries measured in input pixel index units. The
	// interpolation nodes are the first N boundary positions, matching
	// index values 0..N-1.
	pos := edgePositions(oldEdges[:len(wave)], newEdges)

	target := make([]float64, len(newWave))
	copy(target, newWave)

	return &Rebinner{
		n:       len(wave),
		newWave: target,
		spans:   buildSpans(pos),
	}, nil
}

// Len returns the number of pixels in the target grid.
func (r *Rebinner) Len() int {
	return len(r.newWave)
}

// Grid returns a copy of the target wavelength grid.
func (r *Rebinner) Grid() []float64 {
	out := make([]float64, len(r.newWave))
	copy(out, r.newWave)

	return out
}

// Covered reports which target pixels lie entirely inside the span of
// the input grid. Pixels outside rebin to NaN flux.
func (r *Rebinner) Covered() []bool {
	out := make([]bool, len(r.spans))
	for i, s := range r.spans {
		out[i] = s.valid
	}

	return out
}

// Flux rebins one flux array onto the target grid. The value of each
// covered target pixel is the sum of the input pixel contents it
// overlaps, weighted by overlap fraction at the two partially covered
// ends; uncovered pixels are NaN.
func (r *Rebinner) Flux(flux []float64) ([]float64, error) {
	if len(flux) != r.n {
		return nil, fmt.Errorf("%w: flux has %d pixels, grid has %d", ErrShapeMismatch, len(flux), r.n)
	}

	out := make([]float64, len(r.spans))
	for i, s := range r.spans {
		if !s.valid {
			out[i] = math.NaN()
			continue
		}

		sum := 0.0
		for j := s.lo; j < s.hi; j++ {
			sum += flux[j]
		}
		out[i] = sum - flux[s.lo]*s.loFrac + flux[s.hi]*s.hiFrac
	}

	return out, nil
}

// FluxError rebins one uncertainty array onto the target grid.
// Uncertainties combine in quadrature over the same overlaps Flux uses;
// uncovered pixels are NaN.
func (r *Rebinner) FluxError(fluxErr []float64) ([]float64, error) {
	if len(fluxErr) != r.n {
		return nil, fmt.Errorf("%w: flux errors have %d pixels, grid has %d", ErrShapeMismatch, len(fluxErr), r.n)
	}

	sq := make([]float64, len(fluxErr))
	vecmath.MulBlock(sq, fluxErr, fluxErr)

	out := make([]float64, len(r.spans))
	for i, s := range r.spans {
		if !s.valid {
			out[i] = math.NaN()
			continue
		}

		sum := 0.0
		for j := s.lo; j < s.hi; j++ {
			sum += sq[j]
		}
		out[i] = math.Sqrt(sum - sq[s.lo]*s.loFrac + sq[s.hi]*s.hiFrac)
	}

	return out, nil
}

// Mask rebins one bad-pixel mask onto the target grid. A target pixel
// is masked when any input pixel it touches is masked, including the
// pixel holding its upper boundary; uncovered pixels stay unmasked.
func (r *Rebinner) Mask(mask []bool) ([]bool, error) {
	if len(mask) != r.n {
		return nil, fmt.Errorf("%w: mask has %d pixels, grid has %d", ErrShapeMismatch, len(mask), r.n)
	}

	out := make([]bool, len(r.spans))
	for i, s := range r.spans {
		if !s.valid {
			continue
		}

		for j := s.lo; j <= s.hi; j++ {
			if mask[j] {
				out[i] = true
				break
			}
		}
	}

	return out, nil
}

// Rebin resamples every non-nil array of s onto the target grid.
func (r *Rebinner) Rebin(s Spectrum) (Result, error) {
	res := Result{Grid: r.Grid()}

	if s.Flux != nil {
		flux, err := r.Flux(s.Flux)
		if err != nil {
			return Result{}, err
		}
		res.Flux = flux
	}

	if s.FluxErr != nil {
		fluxErr, err := r.FluxError(s.FluxErr)
		if err != nil {
			return Result{}, err
		}
		res.FluxErr = fluxErr
	}

	if s.Mask != nil {
		mask, err := r.Mask(s.Mask)
		if err != nil {
			return Result{}, err
		}
		res.Mask = mask
	}

	return res, nil
}

// checkGrid validates a wavelength grid. The comparison is written so
// NaN wavelengths also fail.
func checkGrid(wave []float64) error {
	if len(wave) < 2 {
		return ErrGridTooShort
	}
	for i := 1; i < len(wave); i++ {
		if !(wave[i] > wave[i-1]) {
			return fmt.Errorf("%w: at pixel %d", ErrNotIncreasing, i)
		}
	}

	return nil
}

// Rebin resamples a spectrum onto a new wavelength grid as a one-shot
// helper.
func Rebin(wave []float64, s Spectrum, opts ...Option) (Result, error) {
	r, err := New(wave, opts...)
	if err != nil {
		return Result{}, err
	}

	return r.Rebin(s)
}

// Flux rebins a single flux array onto a new wavelength grid as a
// one-shot helper.
func Flux(wave, flux []float64, opts ...Option) ([]float64, error) {
	r, err := New(wave, opts...)
	if err != nil {
		return nil, err
	}

	return r.Flux(flux)
}
