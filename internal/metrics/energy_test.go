package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/sdofsim/internal/dynamo"
	"github.com/san-kum/sdofsim/internal/integrators"
)

func TestPeakAbs(t *testing.T) {
	tests := []struct {
		name string
		in   []float64
		idx  int
		want float64
	}{
		{"empty", nil, -1, 0},
		{"positive", []float64{0.1, 0.5, 0.2}, 1, 0.5},
		{"negative wins", []float64{0.1, -0.9, 0.5}, 1, 0.9},
		{"first of ties", []float64{-2, 2}, 0, 2},
		{"all zero", []float64{0, 0}, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx, v := ArgPeakAbs(tt.in)
			if idx != tt.idx || v != tt.want {
				t.Errorf("expected (%d, %f), got (%d, %f)", tt.idx, tt.want, idx, v)
			}
		})
	}

	if v := PeakAbs([]float64{1, math.NaN(), 5}); !math.IsNaN(v) {
		t.Errorf("expected NaN to surface, got %f", v)
	}
}

func TestEnergyBalanceAverageAcceleration(t *testing.T) {
	p := dynamo.Params{Mass: 2, Stiffness: 80, Damping: 0.05, Dt: 0.01, Beta: dynamo.BetaAverage, Steps: 600}
	wave := make([]float64, p.Steps)
	for i := range wave {
		wave[i] = math.Sin(2 * math.Pi * float64(i) * p.Dt / 0.5)
	}

	res, err := integrators.Newmark(p, wave)
	if err != nil {
		t.Fatal(err)
	}

	if v := NewEnergyBalance().Evaluate(res); v > 1e-9 {
		t.Errorf("expected balanced energy, got relative error %g", v)
	}

	frac := NewDissipatedFraction().Evaluate(res)
	if frac <= 0 || frac > 1 {
		t.Errorf("expected dissipated fraction in (0, 1], got %f", frac)
	}
}

func TestEnergyDriftFreeVibration(t *testing.T) {
	p := dynamo.Params{Mass: 10, Stiffness: 10, Damping: 0, Dt: 0.02, Beta: dynamo.BetaAverage, Steps: 1000}
	wave := make([]float64, p.Steps)
	wave[0] = 1

	res, err := integrators.Newmark(p, wave)
	if err != nil {
		t.Fatal(err)
	}

	if d := NewEnergyDrift().Evaluate(res); d > 1e-9 {
		t.Errorf("expected conserved energy, got drift %g", d)
	}
}

func TestDefaultsEvaluate(t *testing.T) {
	p := dynamo.Params{Mass: 1, Stiffness: 1, Damping: 0.02, Dt: 0.1, Beta: 0.25, Steps: 3}

	res, err := integrators.Newmark(p, []float64{0, -2, 0})
	if err != nil {
		t.Fatal(err)
	}

	out := Evaluate(res, Defaults())

	for _, key := range []string{"peak_acceleration", "peak_displacement", "peak_total_energy", "energy_balance", "peak_time_velocity"} {
		if _, ok := out[key]; !ok {
			t.Errorf("missing metric %q", key)
		}
	}

	if out["peak_acceleration"] != PeakAbs(res.Acceleration) {
		t.Errorf("peak mismatch: %f", out["peak_acceleration"])
	}
	if out["peak_time_acceleration"] != 0.1 {
		t.Errorf("expected peak acceleration at t=0.1, got %f", out["peak_time_acceleration"])
	}
}
