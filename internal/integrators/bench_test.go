package integrators

import (
	"math"
	"testing"

	"github.com/san-kum/sdofsim/internal/dynamo"
)

func benchWave(n int) []float64 {
	w := make([]float64, n)
	for i := range w {
		w[i] = math.Sin(0.05 * float64(i))
	}
	return w
}

func BenchmarkNewmark(b *testing.B) {
	p := dynamo.DefaultParams()
	wave := benchWave(p.Steps)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Newmark(p, wave); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkReferenceRK4(b *testing.B) {
	p := dynamo.DefaultParams()
	wave := benchWave(p.Steps)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := ReferenceRK4(p, wave, 4); err != nil {
			b.Fatal(err)
		}
	}
}
