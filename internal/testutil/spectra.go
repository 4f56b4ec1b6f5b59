package testutil

import (
	"math"
	"math/rand"
)

// UniformGrid generates a wavelength grid with constant spacing:
// start, start+step, ..., start+(length-1)*step.
func UniformGrid(start, step float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	return out
}

// Constant generates a constant-valued array.
func Constant(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}
	return out
}

// Ones returns a slice of length n filled with 1.0.
func Ones(n int) []float64 {
	return Constant(1.0, n)
}

// GaussianLine samples an absorption line on a unit continuum:
// 1 - depth*exp(-(w-center)^2 / (2*width^2)) at each wavelength.
func GaussianLine(wave []float64, center, width, depth float64) []float64 {
	out := make([]float64, len(wave))
	for i, w := range wave {
		d := (w - center) / width
		out[i] = 1 - depth*math.Exp(-0.5*d*d)
	}
	return out
}

// DeterministicNoise generates white noise with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}
