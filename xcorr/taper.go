package xcorr

import "math"

// tukey builds a symmetric Tukey window of length n. alpha is the
// fraction of the window spent inside the cosine ramps: at or below 0
// the window is rectangular, at or above 1 it is a full Hann window.
func tukey(n int, alpha float64) []float64 {
	w := make([]float64, n)
	if n == 1 {
		w[0] = 1
		return w
	}
	for i := range w {
		x := float64(i) / float64(n-1)
		w[i] = tukeyAt(x, alpha)
	}

	return w
}

func tukeyAt(x, alpha float64) float64 {
	if alpha <= 0 {
		return 1
	}
	if alpha >= 1 {
		return 0.5 * (1 + math.Cos(math.Pi*(2*x-1)))
	}

	a := alpha / 2
	switch {
	case x < a:
		return 0.5 * (1 + math.Cos(math.Pi*(2*x/alpha-1)))
	case x <= 1-a:
		return 1
	default:
		return 0.5 * (1 + math.Cos(math.Pi*(2*x/alpha-2/alpha+1)))
	}
}
