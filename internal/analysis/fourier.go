package analysis

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"

	"github.com/san-kum/sdofsim/internal/dynamo"
)

// Fourier is a single-sided amplitude spectrum. Amplitudes are |X(f)|·dt,
// the usual Fourier amplitude of a ground-motion record.
type Fourier struct {
	Frequencies []float64
	Amplitudes  []float64
}

// FourierAmplitude zero-pads the record to a power of two and returns
// amplitudes for 0..Nyquist.
func FourierAmplitude(samples []float64, dt float64) (*Fourier, error) {
	if len(samples) == 0 {
		return nil, &dynamo.ArgumentError{Field: "excitation", Value: 0, Reason: "empty record"}
	}
	if !(dt > 0) || math.IsInf(dt, 0) {
		return nil, &dynamo.ArgumentError{Field: "dt", Value: dt, Reason: "must be positive and finite"}
	}

	n := 1
	for n < len(samples) {
		n *= 2
	}
	padded := make([]float64, n)
	copy(padded, samples)

	spectrum := fft.FFTReal(padded)

	half := n/2 + 1
	out := &Fourier{
		Frequencies: make([]float64, half),
		Amplitudes:  make([]float64, half),
	}
	df := 1 / (float64(n) * dt)
	for i := 0; i < half; i++ {
		out.Frequencies[i] = float64(i) * df
		out.Amplitudes[i] = cmplx.Abs(spectrum[i]) * dt
	}

	return out, nil
}

// PredominantFrequency is the non-zero frequency with the largest amplitude,
// or 0 when every bin above DC is zero.
func (f *Fourier) PredominantFrequency() float64 {
	best, idx := 0.0, 0
	for i := 1; i < len(f.Amplitudes); i++ {
		if f.Amplitudes[i] > best {
			best, idx = f.Amplitudes[i], i
		}
	}
	if idx == 0 {
		return 0
	}
	return f.Frequencies[idx]
}

// PredominantPeriod is 1/PredominantFrequency, +Inf for a constant record.
func (f *Fourier) PredominantPeriod() float64 {
	fr := f.PredominantFrequency()
	if fr == 0 {
		return math.Inf(1)
	}
	return 1 / fr
}
