// Package wave reads, generates and formats excitation series: base
// acceleration samples at a uniform time step.
package wave

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"unicode"

	"github.com/san-kum/sdofsim/internal/dynamo"
)

// Parse reads comma-, whitespace- or newline-separated decimal samples and
// returns exactly the first n. Fewer than n samples is an error; the series
// is never padded. n <= 0 returns every sample.
func Parse(text string, n int) ([]float64, error) {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == ';' || unicode.IsSpace(r)
	})

	if n <= 0 {
		n = len(fields)
	}
	if len(fields) < n {
		return nil, &dynamo.ArgumentError{
			Field:  "excitation",
			Value:  len(fields),
			Reason: fmt.Sprintf("need %d samples", n),
		}
	}

	samples := make([]float64, n)
	for i := 0; i < n; i++ {
		v, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return nil, &dynamo.ArgumentError{
				Field:  fmt.Sprintf("excitation[%d]", i),
				Value:  fields[i],
				Reason: "not a number",
			}
		}
		samples[i] = v
	}

	return samples, nil
}

// Load reads a file of samples, see Parse.
func Load(path string, n int) ([]float64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	samples, err := Parse(string(data), n)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return samples, nil
}

// Format joins samples with commas, the inverse of Parse.
func Format(samples []float64) string {
	parts := make([]string, len(samples))
	for i, v := range samples {
		parts[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strings.Join(parts, ",")
}

// Sine returns n samples of A·sin(2π·(dt/T)·i).
func Sine(amplitude, period, dt float64, n int) ([]float64, error) {
	if !(period > 0) {
		return nil, &dynamo.ArgumentError{Field: "period", Value: period, Reason: "must be positive"}
	}
	if !(dt > 0) {
		return nil, &dynamo.ArgumentError{Field: "dt", Value: dt, Reason: "must be positive"}
	}
	if n < 1 {
		return nil, &dynamo.ArgumentError{Field: "steps", Value: n, Reason: "must be at least 1"}
	}

	w := make([]float64, n)
	for i := range w {
		w[i] = amplitude * math.Sin(2*math.Pi*(dt/period)*float64(i))
	}
	return w, nil
}

// Scale returns samples multiplied by factor, e.g. 0.01 for cm/s² to m/s².
func Scale(samples []float64, factor float64) []float64 {
	out := make([]float64, len(samples))
	for i, v := range samples {
		out[i] = v * factor
	}
	return out
}

// Pulse returns n samples with a single value at index 0 and zeros after,
// the free-vibration input. n < 0 is treated as 0.
func Pulse(amplitude float64, n int) []float64 {
	w := make([]float64, max(n, 0))
	if n > 0 {
		w[0] = amplitude
	}
	return w
}
