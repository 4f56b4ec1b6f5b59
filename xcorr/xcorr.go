package xcorr

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"
)

var (
	// ErrEmptyInput indicates an empty spectrum.
	ErrEmptyInput = errors.New("xcorr: input spectra cannot be empty")
	// ErrLengthMismatch indicates spectra of different lengths.
	ErrLengthMismatch = errors.New("xcorr: spectra must have the same length")
	// ErrNonFinite indicates NaN or Inf samples in a spectrum.
	ErrNonFinite = errors.New("xcorr: spectra must be finite")
	// ErrNoPeak indicates a correlation without a positive peak.
	ErrNoPeak = errors.New("xcorr: no correlation peak found")
)

// SpeedOfLightKMS is the speed of light in km/s.
const SpeedOfLightKMS = 299792.458

// config holds correlation options.
type config struct {
	taper  float64
	maxLag int
}

// Option configures cross-correlation.
type Option func(*config)

// WithTaper applies a Tukey window with the given taper fraction to
// both spectra after mean subtraction. Fractions at or below 0 leave
// the data untapered; at or above 1 a full Hann window applies.
func WithTaper(alpha float64) Option {
	return func(cfg *config) {
		cfg.taper = alpha
	}
}

// WithMaxLag restricts the peak search to lags within maxLag pixels of
// zero. Non-positive values leave the search unrestricted.
func WithMaxLag(maxLag int) Option {
	return func(cfg *config) {
		if maxLag > 0 {
			cfg.maxLag = maxLag
		}
	}
}

// Shift describes the location of a cross-correlation peak.
type Shift struct {
	// Lag is the sub-pixel peak position. It is positive when the first
	// spectrum's features sit at larger pixel indices than the second's.
	Lag float64
	// Peak is the normalized correlation height at the interpolated
	// peak, 1 for identical spectra at zero lag.
	Peak float64
	// Index is the raw peak position in the correlation array.
	Index int
}

// Velocity converts the lag to a radial velocity in km/s for spectra
// sampled with the given log10 step per pixel. Positive lag means the
// first spectrum is redshifted relative to the second.
func (s Shift) Velocity(logStep float64) float64 {
	return SpeedOfLightKMS * (math.Pow(10, s.Lag*logStep) - 1)
}

// Correlate computes the normalized cross-correlation of two equally
// sampled spectra at every lag from -(N-1) to N-1. Both inputs are
// mean-subtracted, and tapered when configured, before correlating; the
// result is scaled by the product of their norms so identical inputs
// peak at 1. Output index i corresponds to lag i - (N-1); see
// LagFromIndex. When either input has zero variance the correlation is
// identically zero and is returned unscaled.
func Correlate(a, b []float64, opts ...Option) ([]float64, error) {
	if len(a) == 0 || len(b) == 0 {
		return nil, ErrEmptyInput
	}
	if len(a) != len(b) {
		return nil, fmt.Errorf("%w: %d vs %d", ErrLengthMismatch, len(a), len(b))
	}
	if err := checkFinite(a); err != nil {
		return nil, err
	}
	if err := checkFinite(b); err != nil {
		return nil, err
	}

	var cfg config

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	ac := demean(a)
	bc := demean(b)
	if cfg.taper > 0 {
		w := tukey(len(a), cfg.taper)
		vecmath.MulBlockInPlace(ac, w)
		vecmath.MulBlockInPlace(bc, w)
	}

	result, err := correlateFFT(ac, bc)
	if err != nil {
		return nil, err
	}

	norm := l2Norm(ac) * l2Norm(bc)
	if norm == 0 {
		return result, nil
	}
	vecmath.ScaleBlock(result, result, 1/norm)

	return result, nil
}

// PeakShift locates the cross-correlation peak of two equally sampled
// spectra to sub-pixel precision. The raw peak is refined by parabolic
// interpolation through its two neighbors. PeakShift fails with
// ErrNoPeak when no lag correlates positively, which is what a
// featureless or zero-variance spectrum produces.
func PeakShift(a, b []float64, opts ...Option) (Shift, error) {
	ccf, err := Correlate(a, b, opts...)
	if err != nil {
		return Shift{}, err
	}

	var cfg config

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	center := len(a) - 1
	lo, hi := 0, len(ccf)-1
	if cfg.maxLag > 0 {
		if center-cfg.maxLag > lo {
			lo = center - cfg.maxLag
		}
		if center+cfg.maxLag < hi {
			hi = center + cfg.maxLag
		}
	}

	idx := lo
	for i := lo + 1; i <= hi; i++ {
		if ccf[i] > ccf[idx] {
			idx = i
		}
	}
	if !(ccf[idx] > 0) {
		return Shift{}, ErrNoPeak
	}

	lag := float64(idx - center)
	peak := ccf[idx]
	if idx > lo && idx < hi {
		s0, s1, s2 := ccf[idx-1], ccf[idx], ccf[idx+1]
		den := s0 - 2*s1 + s2
		if math.Abs(den) > 1e-12 {
			delta := 0.5 * (s0 - s2) / den
			lag += delta
			peak = s1 - 0.25*(s0-s2)*delta
		}
	}

	return Shift{Lag: lag, Peak: peak, Index: idx}, nil
}

// LagFromIndex converts an index into the correlation array returned
// by Correlate to a lag in pixels, for spectra of length n.
func LagFromIndex(index, n int) int {
	return index - (n - 1)
}

// correlateFFT computes the full linear cross-correlation of equally
// long inputs via the frequency domain: IFFT(FFT(a) * conj(FFT(b))),
// zero-padded to avoid circular wrap, then rearranged so index i holds
// lag i - (n-1).
func correlateFFT(a, b []float64) ([]float64, error) {
	n := len(a)
	fftSize := nextPowerOf2(2*n - 1)

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("xcorr: failed to create FFT plan: %w", err)
	}

	aPadded := make([]complex128, fftSize)
	bPadded := make([]complex128, fftSize)
	for i := 0; i < n; i++ {
		aPadded[i] = complex(a[i], 0)
		bPadded[i] = complex(b[i], 0)
	}

	aFreq := make([]complex128, fftSize)
	bFreq := make([]complex128, fftSize)
	if err := plan.Forward(aFreq, aPadded); err != nil {
		return nil, fmt.Errorf("xcorr: forward FFT failed: %w", err)
	}
	if err := plan.Forward(bFreq, bPadded); err != nil {
		return nil, fmt.Errorf("xcorr: forward FFT failed: %w", err)
	}

	prod := make([]complex128, fftSize)
	for i := range prod {
		bConj := complex(real(bFreq[i]), -imag(bFreq[i]))
		prod[i] = aFreq[i] * bConj
	}

	timeDomain := make([]complex128, fftSize)
	if err := plan.Inverse(timeDomain, prod); err != nil {
		return nil, fmt.Errorf("xcorr: inverse FFT failed: %w", err)
	}

	// Circular correlation holds non-negative lags at the front and
	// negative lags at the tail of the transform.
	result := make([]float64, 2*n-1)
	for i := 0; i < n; i++ {
		result[n-1+i] = real(timeDomain[i])
	}
	for i := 0; i < n-1; i++ {
		result[i] = real(timeDomain[fftSize-n+1+i])
	}

	return result, nil
}

// demean returns a copy of x with its mean removed.
func demean(x []float64) []float64 {
	mean := 0.0
	for _, v := range x {
		mean += v
	}
	mean /= float64(len(x))

	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = v - mean
	}

	return out
}

// checkFinite fails on the first NaN or Inf sample.
func checkFinite(x []float64) error {
	for i, v := range x {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: sample %d is %v", ErrNonFinite, i, v)
		}
	}

	return nil
}

// l2Norm computes the L2 (Euclidean) norm of x.
func l2Norm(x []float64) float64 {
	var sum float64
	for _, v := range x {
		sum += v * v
	}

	return math.Sqrt(sum)
}

// nextPowerOf2 returns the smallest power of 2 at or above n.
func nextPowerOf2(n int) int {
	if n <= 1 {
		return 1
	}
	p := 1
	for p < n {
		p *= 2
	}

	return p
}
