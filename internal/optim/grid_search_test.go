package optim

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/san-kum/sdofsim/internal/dynamo"
	"github.com/san-kum/sdofsim/internal/experiment"
	"github.com/san-kum/sdofsim/internal/physics"
	"github.com/san-kum/sdofsim/internal/wave"
)

func builder(t *testing.T) Builder {
	t.Helper()
	base := dynamo.DefaultParams()
	base.Steps = 600
	exc, err := wave.Sine(1, 1.0, base.Dt, base.Steps)
	if err != nil {
		t.Fatal(err)
	}
	registry := experiment.NewRegistry()
	solver, err := registry.GetScheme("newmark")
	if err != nil {
		t.Fatal(err)
	}

	return func(params map[string]float64) (*experiment.Experiment, error) {
		p := base
		p.Damping = params["damping"]
		k, err := physics.StiffnessFromPeriod(p.Mass, params["period"])
		if err != nil {
			return nil, err
		}
		p.Stiffness = k

		exp := experiment.New(experiment.Config{Scheme: "newmark", Params: p, Excitation: exc})
		if err := exp.Setup(solver, registry.DefaultMetrics()); err != nil {
			return nil, err
		}
		return exp, nil
	}
}

func TestGridSearchPrefersDamping(t *testing.T) {
	g := NewGridSearch([]string{"period", "damping"}, [][]float64{{1.0}, {0.02, 0.05, 0.2}})

	best, val, err := g.Search(context.Background(), builder(t), "peak_displacement")
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}

	// a resonant oscillator responds least with the most damping
	if best["damping"] != 0.2 {
		t.Errorf("expected damping 0.2, got %v", best["damping"])
	}
	if !(val > 0) || math.IsInf(val, 0) {
		t.Errorf("unexpected metric %v", val)
	}
}

func TestGridSearchSkipsInvalidPoints(t *testing.T) {
	g := NewGridSearch([]string{"period", "damping"}, [][]float64{{-1, 0.5}, {0.05}})

	best, _, err := g.Search(context.Background(), builder(t), "peak_displacement")
	if err != nil {
		t.Fatal(err)
	}
	if best["period"] != 0.5 {
		t.Errorf("expected the valid period, got %v", best["period"])
	}

	g = NewGridSearch([]string{"period", "damping"}, [][]float64{{-1}, {0.05}})
	if _, _, err := g.Search(context.Background(), builder(t), "peak_displacement"); err == nil {
		t.Error("expected error when no point is valid")
	}
}

func TestGridSearchCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	g := NewGridSearch([]string{"period", "damping"}, [][]float64{{1}, {0.05}})
	if _, _, err := g.Search(ctx, builder(t), "peak_displacement"); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestLinspace(t *testing.T) {
	xs := Linspace(0.1, 1.0, 10)
	if len(xs) != 10 || xs[0] != 0.1 || math.Abs(xs[9]-1.0) > 1e-12 {
		t.Errorf("unexpected grid %v", xs)
	}
	if xs := Linspace(2, 3, 1); len(xs) != 1 || xs[0] != 2 {
		t.Errorf("unexpected single point %v", xs)
	}
}
