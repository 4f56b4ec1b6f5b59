// Package grid builds and characterizes 1-D wavelength sampling grids.
//
// Entry points:
//   - [MedianStep]: median spacing between consecutive samples
//   - [Edges]: pixel centers to pixel boundary positions
//   - [Log10]: log10-uniform grid spanning the input wavelength range
//
// A log10-uniform grid has a constant velocity width per pixel, which
// makes it the natural target grid before cross-correlating spectra.
package grid
