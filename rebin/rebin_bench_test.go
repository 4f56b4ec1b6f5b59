package rebin

import (
	"fmt"
	"testing"

	"github.com/cwbudde/algo-spectro/internal/testutil"
)

func BenchmarkNew(b *testing.B) {
	sizes := []int{1024, 4096, 16384}
	for _, size := range sizes {
		b.Run(fmt.Sprintf("n=%d", size), func(b *testing.B) {
			wave := testutil.UniformGrid(4000, 0.1, size)
			b.ResetTimer()

			for range b.N {
				if _, err := New(wave); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkRebinner_Flux(b *testing.B) {
	sizes := []int{1024, 4096, 16384}
	for _, size := range sizes {
		b.Run(fmt.Sprintf("n=%d", size), func(b *testing.B) {
			wave := testutil.UniformGrid(4000, 0.1, size)
			flux := testutil.GaussianLine(wave, 4000+0.05*float64(size), 5, 0.5)

			r, err := New(wave)
			if err != nil {
				b.Fatal(err)
			}
			b.SetBytes(int64(size * 8))
			b.ResetTimer()

			for range b.N {
				if _, err := r.Flux(flux); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkRebinner_FluxError(b *testing.B) {
	sizes := []int{1024, 4096, 16384}
	for _, size := range sizes {
		b.Run(fmt.Sprintf("n=%d", size), func(b *testing.B) {
			wave := testutil.UniformGrid(4000, 0.1, size)
			fluxErr := testutil.Constant(0.02, size)

			r, err := New(wave)
			if err != nil {
				b.Fatal(err)
			}
			b.SetBytes(int64(size * 8))
			b.ResetTimer()

			for range b.N {
				if _, err := r.FluxError(fluxErr); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
