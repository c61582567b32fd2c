package experiment

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/san-kum/sdofsim/internal/dynamo"
)

func TestRegistrySchemes(t *testing.T) {
	r := NewRegistry()

	want := []string{"average", "explicit", "linear", "newmark", "rk4"}
	got := r.ListSchemes()
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("expected %s at %d, got %s", want[i], i, got[i])
		}
	}

	if _, err := r.GetScheme("wilson"); err == nil {
		t.Error("expected error for unknown scheme")
	}
}

func TestExperimentRun(t *testing.T) {
	r := NewRegistry()
	solver, err := r.GetScheme("newmark")
	if err != nil {
		t.Fatal(err)
	}

	p := dynamo.DefaultParams()
	p.Steps = 100
	w := make([]float64, p.Steps)
	w[0] = 1

	exp := New(Config{Scheme: "newmark", Params: p, Excitation: w})
	if err := exp.Setup(solver, r.DefaultMetrics()); err != nil {
		t.Fatal(err)
	}

	out, err := exp.Run(context.Background())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if out.Result.Len() != 100 {
		t.Errorf("expected 100 steps, got %d", out.Result.Len())
	}
	if _, ok := out.Metrics["peak_displacement"]; !ok {
		t.Error("expected peak_displacement metric")
	}
	if out.Degeneracy != nil {
		t.Errorf("unexpected degeneracy: %v", out.Degeneracy)
	}
}

func TestExperimentNotSetup(t *testing.T) {
	exp := New(Config{Scheme: "newmark"})
	if _, err := exp.Run(context.Background()); err == nil {
		t.Error("expected error before setup")
	}
}

func TestExperimentInvalidParams(t *testing.T) {
	exp := New(Config{Scheme: "newmark", Params: dynamo.Params{}, Excitation: nil})
	if err := exp.Setup(NewRegistry().schemes["newmark"], nil); err != nil {
		t.Fatal(err)
	}

	_, err := exp.Run(context.Background())
	if !errors.Is(err, dynamo.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestCompare(t *testing.T) {
	p := dynamo.Params{Mass: 1, Stiffness: 4 * math.Pi * math.Pi, Damping: 0.02, Dt: 0.005, Beta: 0.25, Steps: 400}
	w := make([]float64, p.Steps)
	for i := range w {
		w[i] = math.Sin(2 * math.Pi * float64(i) * p.Dt / 0.7)
	}

	outs, err := Compare(context.Background(), NewRegistry(), []string{"average", "rk4"}, p, w)
	if err != nil {
		t.Fatal(err)
	}
	if len(outs) != 2 {
		t.Fatalf("expected 2 outcomes, got %d", len(outs))
	}

	a, b := outs[0].Metrics["peak_displacement"], outs[1].Metrics["peak_displacement"]
	if math.Abs(a-b) > 0.01*b {
		t.Errorf("average acceleration and rk4 disagree: %g vs %g", a, b)
	}
}
