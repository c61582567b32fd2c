package dynamo

import (
	"errors"
	"math"
	"sync/atomic"
	"testing"
)

func TestParamsValidate(t *testing.T) {
	tests := []struct {
		name  string
		mod   func(p *Params)
		field string
	}{
		{"defaults", func(p *Params) {}, ""},
		{"zero stiffness", func(p *Params) { p.Stiffness = 0 }, ""},
		{"explicit beta", func(p *Params) { p.Beta = BetaExplicit }, ""},
		{"zero steps", func(p *Params) { p.Steps = 0 }, "steps"},
		{"zero mass", func(p *Params) { p.Mass = 0 }, "mass"},
		{"nan mass", func(p *Params) { p.Mass = math.NaN() }, "mass"},
		{"negative stiffness", func(p *Params) { p.Stiffness = -1 }, "stiffness"},
		{"inf stiffness", func(p *Params) { p.Stiffness = math.Inf(1) }, "stiffness"},
		{"zero dt", func(p *Params) { p.Dt = 0 }, "dt"},
		{"nan damping", func(p *Params) { p.Damping = math.NaN() }, "damping"},
		{"inf beta", func(p *Params) { p.Beta = math.Inf(-1) }, "beta"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultParams()
			tt.mod(&p)
			err := p.Validate()

			if tt.field == "" {
				if err != nil {
					t.Errorf("expected valid params, got %v", err)
				}
				return
			}

			if !errors.Is(err, ErrInvalidArgument) {
				t.Fatalf("expected ErrInvalidArgument, got %v", err)
			}
			var argErr *ArgumentError
			if !errors.As(err, &argErr) || argErr.Field != tt.field {
				t.Errorf("expected field %s, got %v", tt.field, err)
			}
		})
	}
}

func TestValidateExcitation(t *testing.T) {
	p := DefaultParams()
	p.Steps = 3

	if err := p.ValidateExcitation([]float64{0, 0, 0}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := p.ValidateExcitation([]float64{0, 0}); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestErrEmptyRangeWrapsInvalidArgument(t *testing.T) {
	if !errors.Is(ErrEmptyRange, ErrInvalidArgument) {
		t.Error("ErrEmptyRange should wrap ErrInvalidArgument")
	}
}

func TestDampingCoefficient(t *testing.T) {
	p := Params{Mass: 10, Stiffness: 10, Damping: 0.05}
	if c := p.DampingCoefficient(); math.Abs(c-1) > 1e-12 {
		t.Errorf("expected c=1, got %f", c)
	}
}

func TestParseChannel(t *testing.T) {
	for _, c := range Channels {
		got, err := ParseChannel(c.String())
		if err != nil {
			t.Fatalf("%s: %v", c, err)
		}
		if got != c {
			t.Errorf("expected %s, got %s", c, got)
		}
	}

	if _, err := ParseChannel("jerk"); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestResultIsFinite(t *testing.T) {
	p := DefaultParams()
	p.Steps = 4
	r := NewResult(p)

	if err := r.IsFinite(); err != nil {
		t.Fatalf("zeroed result should be finite: %v", err)
	}

	r.Velocity[2] = math.Inf(1)
	err := r.IsFinite()
	if !errors.Is(err, ErrNumericalDegeneracy) {
		t.Fatalf("expected ErrNumericalDegeneracy, got %v", err)
	}
	var degErr *DegeneracyError
	if !errors.As(err, &degErr) || degErr.Channel != Velocity || degErr.Step != 2 {
		t.Errorf("unexpected degeneracy %v", err)
	}
}

func TestResultTimes(t *testing.T) {
	p := DefaultParams()
	p.Steps = 3
	r := NewResult(p)

	times := r.Times()
	if len(times) != 3 || times[2] != 2*p.Dt {
		t.Errorf("unexpected times %v", times)
	}
	if d := p.Duration(); d != 2*p.Dt {
		t.Errorf("expected duration %f, got %f", 2*p.Dt, d)
	}
}

func TestParallelFor(t *testing.T) {
	for _, workers := range []int{0, 1, 3, 64} {
		n := 37
		visits := make([]int32, n)
		ParallelFor(n, workers, func(start, end int) {
			for i := start; i < end; i++ {
				atomic.AddInt32(&visits[i], 1)
			}
		})
		for i, v := range visits {
			if v != 1 {
				t.Fatalf("workers=%d: index %d visited %d times", workers, i, v)
			}
		}
	}

	called := false
	ParallelFor(0, 4, func(start, end int) { called = true })
	if called {
		t.Error("expected no call for n=0")
	}
}

func TestStateClone(t *testing.T) {
	s := State{1, 2}
	c := s.Clone()
	c[0] = 5
	if s[0] != 1 {
		t.Error("clone should not share storage")
	}
	if !s.IsValid() || (State{math.NaN()}).IsValid() {
		t.Error("IsValid mismatch")
	}
}
