// Package spectrum builds response spectra by sweeping the natural period of
// an SDOF oscillator over a fixed excitation.
package spectrum

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/sdofsim/internal/dynamo"
	"github.com/san-kum/sdofsim/internal/integrators"
	"github.com/san-kum/sdofsim/internal/metrics"
	"github.com/san-kum/sdofsim/internal/physics"
)

// DefaultReferenceMass matches the nominal 10 t lumped mass expressed in
// weight units, divided by gravity.
const DefaultReferenceMass = 10.0 / physics.StandardGravity

// MaxDivisions bounds the number of period samples in one sweep.
const MaxDivisions = 1 << 20

// Config describes one sweep. The same damping, time step, beta and
// reference mass are used for every period sample.
type Config struct {
	PeriodLow     float64 `json:"period_low" yaml:"period_low"`
	PeriodHigh    float64 `json:"period_high" yaml:"period_high"`
	Divisions     int     `json:"divisions" yaml:"divisions"`
	Damping       float64 `json:"damping" yaml:"damping"`
	Dt            float64 `json:"dt" yaml:"dt"`
	Beta          float64 `json:"beta" yaml:"beta"`
	Steps         int     `json:"steps" yaml:"steps"`
	ReferenceMass float64 `json:"reference_mass" yaml:"reference_mass"`
	Workers       int     `json:"workers" yaml:"workers"` // <= 0: one per CPU
}

func DefaultConfig() Config {
	return Config{
		PeriodLow:     0.1,
		PeriodHigh:    10,
		Divisions:     100,
		Damping:       0.02,
		Dt:            0.02,
		Beta:          dynamo.BetaAverage,
		Steps:         1000,
		ReferenceMass: DefaultReferenceMass,
	}
}

// Params returns the integration parameters for the sample at period.
func (c Config) Params(period float64) (dynamo.Params, error) {
	k, err := physics.StiffnessFromPeriod(c.ReferenceMass, period)
	if err != nil {
		return dynamo.Params{}, err
	}
	return dynamo.Params{
		Mass:      c.ReferenceMass,
		Stiffness: k,
		Damping:   c.Damping,
		Dt:        c.Dt,
		Beta:      c.Beta,
		Steps:     c.Steps,
	}, nil
}

// Periods returns divisions+1 periods spaced uniformly over [low, high], or
// nil when Divisions is outside [1, MaxDivisions].
func (c Config) Periods() []float64 {
	if c.Divisions < 1 || c.Divisions > MaxDivisions {
		return nil
	}
	ps := make([]float64, c.Divisions+1)
	inc := (c.PeriodHigh - c.PeriodLow) / float64(c.Divisions)
	for i := range ps {
		ps[i] = c.PeriodLow + float64(i)*inc
	}
	return ps
}

func (c Config) validRange() bool {
	return c.PeriodLow > 0 && c.PeriodHigh > c.PeriodLow && !math.IsInf(c.PeriodHigh, 0)
}

// Spectrum holds one ordinate per period for each response quantity. All
// slices share the length of Periods.
type Spectrum struct {
	Periods      []float64 `json:"periods"`
	Acceleration []float64 `json:"acceleration"`
	Velocity     []float64 `json:"velocity"`
	Displacement []float64 `json:"displacement"`
	Energy       []float64 `json:"energy"`
}

func newSpectrum(n int) *Spectrum {
	return &Spectrum{
		Periods:      make([]float64, n),
		Acceleration: make([]float64, n),
		Velocity:     make([]float64, n),
		Displacement: make([]float64, n),
		Energy:       make([]float64, n),
	}
}

func (s *Spectrum) Len() int { return len(s.Periods) }

// Channel returns the ordinates for a response channel. Only acceleration,
// velocity, displacement and total energy are swept.
func (s *Spectrum) Channel(c dynamo.Channel) []float64 {
	switch c {
	case dynamo.Acceleration:
		return s.Acceleration
	case dynamo.Velocity:
		return s.Velocity
	case dynamo.Displacement:
		return s.Displacement
	case dynamo.TotalEnergy:
		return s.Energy
	}
	return nil
}

// Channels lists the swept channels.
var Channels = []dynamo.Channel{dynamo.Acceleration, dynamo.Velocity, dynamo.Displacement, dynamo.TotalEnergy}

// PseudoVelocity returns ω·Sd per period.
func (s *Spectrum) PseudoVelocity() []float64 {
	out := make([]float64, s.Len())
	for i, t := range s.Periods {
		out[i] = 2 * math.Pi / t * s.Displacement[i]
	}
	return out
}

// PseudoAcceleration returns ω²·Sd per period.
func (s *Spectrum) PseudoAcceleration() []float64 {
	out := make([]float64, s.Len())
	for i, t := range s.Periods {
		w := 2 * math.Pi / t
		out[i] = w * w * s.Displacement[i]
	}
	return out
}

// Peak returns the period and ordinate of the largest value of a channel.
// ok is false for an empty spectrum or an unswept channel.
func (s *Spectrum) Peak(c dynamo.Channel) (period, value float64, ok bool) {
	i, v := metrics.ArgPeakAbs(s.Channel(c))
	if i < 0 {
		return 0, 0, false
	}
	return s.Periods[i], v, true
}

// Sweep runs one Newmark integration per period sample and records the peak
// absolute acceleration, velocity, displacement and total energy.
//
// A range that is not strictly positive and increasing is not fatal to the
// caller: Sweep returns an empty, non-nil Spectrum together with
// dynamo.ErrEmptyRange so callers can skip plotting and carry on. Any other
// invalid argument returns a nil Spectrum.
//
// Samples are independent and run on up to cfg.Workers goroutines; the
// output does not depend on the worker count. When ctx is canceled the
// remaining samples are skipped and ctx.Err() is returned.
func Sweep(ctx context.Context, cfg Config, excitation []float64) (*Spectrum, error) {
	if !cfg.validRange() {
		return newSpectrum(0), fmt.Errorf("spectrum: range [%g, %g]: %w", cfg.PeriodLow, cfg.PeriodHigh, dynamo.ErrEmptyRange)
	}
	if err := cfg.validate(excitation); err != nil {
		return nil, err
	}

	periods := cfg.Periods()
	spec := newSpectrum(len(periods))
	copy(spec.Periods, periods)
	errs := make([]error, len(periods))

	dynamo.ParallelFor(len(periods), cfg.Workers, func(start, end int) {
		for i := start; i < end; i++ {
			if err := ctx.Err(); err != nil {
				errs[i] = err
				return
			}
			errs[i] = sample(cfg, periods[i], excitation, spec, i)
		}
	})

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return spec, nil
}

func sample(cfg Config, period float64, excitation []float64, spec *Spectrum, i int) error {
	p, err := cfg.Params(period)
	if err != nil {
		return err
	}
	res, err := integrators.Newmark(p, excitation)
	if err != nil {
		return err
	}
	spec.Acceleration[i] = metrics.PeakAbs(res.Acceleration)
	spec.Velocity[i] = metrics.PeakAbs(res.Velocity)
	spec.Displacement[i] = metrics.PeakAbs(res.Displacement)
	spec.Energy[i] = metrics.PeakAbs(res.Total)
	return nil
}

func (c Config) validate(excitation []float64) error {
	if c.Divisions < 1 {
		return &dynamo.ArgumentError{Field: "divisions", Value: c.Divisions, Reason: "must be at least 1"}
	}
	if c.Divisions > MaxDivisions {
		return &dynamo.ArgumentError{Field: "divisions", Value: c.Divisions, Reason: fmt.Sprintf("must be at most %d", MaxDivisions)}
	}
	if !(c.ReferenceMass > 0) || math.IsInf(c.ReferenceMass, 0) {
		return &dynamo.ArgumentError{Field: "reference_mass", Value: c.ReferenceMass, Reason: "must be positive and finite"}
	}
	p := dynamo.Params{Mass: c.ReferenceMass, Damping: c.Damping, Dt: c.Dt, Beta: c.Beta, Steps: c.Steps}
	if err := p.Validate(); err != nil {
		return err
	}
	return p.ValidateExcitation(excitation)
}
