// Package xcorr measures pixel shifts between spectra by normalized
// cross-correlation.
//
// Both spectra must be sampled on the same grid. On a log10-uniform
// wavelength grid a Doppler shift is the same pixel offset at every
// wavelength, so the correlation peak position measures radial
// velocity directly; grid.Log10 and package rebin produce such
// sampling.
//
// Common workflows:
//   - Correlate(a, b, opts...) full normalized correlation function
//   - PeakShift(a, b, opts...) sub-pixel peak location as a [Shift]
//   - Shift.Velocity(logStep) pixel lag to km/s
//
// Inputs are mean-subtracted before correlating so the continuum level
// does not swamp line features; [WithTaper] additionally apodizes the
// spectrum ends.
package xcorr
