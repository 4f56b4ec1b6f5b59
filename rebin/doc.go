// Package rebin resamples 1-D spectra onto new wavelength grids while
// conserving integrated flux.
//
// Each pixel is treated as a bin spanning half the distance to its
// neighbors. An output pixel collects the full content of every input
// bin it covers and the proportional content of the two input bins it
// partially overlaps, so the summed flux over any covered region is
// unchanged by resampling. Uncertainties accumulate in quadrature over
// the same overlaps, and bad-pixel masks propagate to every output
// pixel that touches a masked input pixel. Output pixels that reach
// beyond the input span come back as NaN (flux, uncertainty) or
// unmasked (mask).
//
// Common workflows:
//   - Rebin(wave, spectrum, opts...) one-shot full spectrum
//   - Flux(wave, flux, opts...) one-shot single array
//   - New(wave, opts...) builds a [Rebinner] that amortizes the
//     pixel-overlap geometry across many spectra on the same grid
//
// The target grid comes from [WithGrid], or is derived from the input
// with [grid.Log10] (optionally sized by [WithStep]) when absent. A
// Rebinner is immutable after construction and safe for concurrent use.
package rebin
