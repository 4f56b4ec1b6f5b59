package xcorr

import (
	"fmt"
	"testing"

	"github.com/cwbudde/algo-spectro/internal/testutil"
)

func BenchmarkCorrelate(b *testing.B) {
	sizes := []int{1024, 4096, 16384}
	for _, size := range sizes {
		b.Run(fmt.Sprintf("n=%d", size), func(b *testing.B) {
			wave := testutil.UniformGrid(4000, 0.1, size)
			center := 4000 + 0.05*float64(size)
			x := testutil.GaussianLine(wave, center, 5, 0.5)
			y := testutil.GaussianLine(wave, center+2, 5, 0.5)

			b.SetBytes(int64(size * 8))
			b.ResetTimer()

			for range b.N {
				if _, err := Correlate(x, y); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkPeakShift(b *testing.B) {
	sizes := []int{1024, 4096, 16384}
	for _, size := range sizes {
		b.Run(fmt.Sprintf("n=%d", size), func(b *testing.B) {
			wave := testutil.UniformGrid(4000, 0.1, size)
			center := 4000 + 0.05*float64(size)
			x := testutil.GaussianLine(wave, center, 5, 0.5)
			y := testutil.GaussianLine(wave, center+2, 5, 0.5)

			b.SetBytes(int64(size * 8))
			b.ResetTimer()

			for range b.N {
				if _, err := PeakShift(x, y, WithTaper(0.2)); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
