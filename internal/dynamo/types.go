package dynamo

import (
	"fmt"
	"math"
)

// State is a continuous-time state vector, [x, v] for an oscillator.
type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// System is an ODE right-hand side dX/dt = f(X, t).
type System interface {
	Derive(x State, t float64) State
	StateDim() int
}

// Params are the immutable inputs of one SDOF run. Mass and Stiffness must
// share a unit basis (kg with N/m, or ton with kN/m).
type Params struct {
	Mass      float64 `json:"mass" yaml:"mass"`
	Stiffness float64 `json:"stiffness" yaml:"stiffness"`
	Damping   float64 `json:"damping" yaml:"damping"` // fraction of critical
	Dt        float64 `json:"dt" yaml:"dt"`
	Beta      float64 `json:"beta" yaml:"beta"`
	Steps     int     `json:"steps" yaml:"steps"`
}

// Standard Newmark coefficients.
const (
	BetaAverage  = 0.25      // constant average acceleration, unconditionally stable
	BetaLinear   = 1.0 / 6.0 // linear acceleration
	BetaExplicit = 0.0       // central difference
)

func DefaultParams() Params {
	return Params{
		Mass:      10,
		Stiffness: 10,
		Damping:   0.02,
		Dt:        0.02,
		Beta:      BetaAverage,
		Steps:     1000,
	}
}

// Validate checks the preconditions of an integration run.
func (p Params) Validate() error {
	if p.Steps < 1 {
		return invalid("steps", p.Steps, "must be at least 1")
	}
	if !(p.Mass > 0) || math.IsInf(p.Mass, 0) {
		return invalid("mass", p.Mass, "must be positive and finite")
	}
	if !(p.Stiffness >= 0) || math.IsInf(p.Stiffness, 0) {
		return invalid("stiffness", p.Stiffness, "must be non-negative and finite")
	}
	if !(p.Dt > 0) || math.IsInf(p.Dt, 0) {
		return invalid("dt", p.Dt, "must be positive and finite")
	}
	if math.IsNaN(p.Damping) || math.IsInf(p.Damping, 0) {
		return invalid("damping", p.Damping, "must be finite")
	}
	if math.IsNaN(p.Beta) || math.IsInf(p.Beta, 0) {
		return invalid("beta", p.Beta, "must be finite")
	}
	return nil
}

// ValidateExcitation checks the excitation length against Steps.
func (p Params) ValidateExcitation(excitation []float64) error {
	if len(excitation) != p.Steps {
		return invalid("excitation", len(excitation), fmt.Sprintf("expected %d samples", p.Steps))
	}
	return nil
}

// DampingCoefficient returns c = 2·h·√(m·k).
func (p Params) DampingCoefficient() float64 {
	return 2 * p.Damping * math.Sqrt(p.Mass*p.Stiffness)
}

// Duration is the time spanned by the run, (N-1)·dt.
func (p Params) Duration() float64 {
	return float64(p.Steps-1) * p.Dt
}

// Channel names one output history.
type Channel int

const (
	Acceleration Channel = iota
	Velocity
	Displacement
	TotalEnergy
	DampingEnergy
	KineticEnergy
	StrainEnergy
	InputEnergy
)

var channelNames = [...]string{
	Acceleration:  "acceleration",
	Velocity:      "velocity",
	Displacement:  "displacement",
	TotalEnergy:   "total_energy",
	DampingEnergy: "damping_energy",
	KineticEnergy: "kinetic_energy",
	StrainEnergy:  "strain_energy",
	InputEnergy:   "input_energy",
}

// Channels lists every channel in output order.
var Channels = []Channel{
	Acceleration, Velocity, Displacement,
	TotalEnergy, DampingEnergy, KineticEnergy, StrainEnergy, InputEnergy,
}

func (c Channel) String() string {
	if c < 0 || int(c) >= len(channelNames) {
		return fmt.Sprintf("channel(%d)", int(c))
	}
	return channelNames[c]
}

// ParseChannel resolves a channel from its name.
func ParseChannel(name string) (Channel, error) {
	for i, n := range channelNames {
		if n == name {
			return Channel(i), nil
		}
	}
	return 0, invalid("channel", name, "unknown channel")
}

// Result holds the per-step histories of one run. Every slice has length
// Params.Steps.
type Result struct {
	Params       Params
	Acceleration []float64
	Velocity     []float64
	Displacement []float64
	Total        []float64 // Eo = Ep + Ek + Ei
	Damping      []float64 // Ei
	Kinetic      []float64 // Ek
	Strain       []float64 // Ep
	Input        []float64 // work done by the base excitation
}

// NewResult allocates zeroed histories for n steps.
func NewResult(p Params) *Result {
	n := p.Steps
	return &Result{
		Params:       p,
		Acceleration: make([]float64, n),
		Velocity:     make([]float64, n),
		Displacement: make([]float64, n),
		Total:        make([]float64, n),
		Damping:      make([]float64, n),
		Kinetic:      make([]float64, n),
		Strain:       make([]float64, n),
		Input:        make([]float64, n),
	}
}

// Channel returns the history for c, or nil for an unknown channel.
func (r *Result) Channel(c Channel) []float64 {
	switch c {
	case Acceleration:
		return r.Acceleration
	case Velocity:
		return r.Velocity
	case Displacement:
		return r.Displacement
	case TotalEnergy:
		return r.Total
	case DampingEnergy:
		return r.Damping
	case KineticEnergy:
		return r.Kinetic
	case StrainEnergy:
		return r.Strain
	case InputEnergy:
		return r.Input
	}
	return nil
}

// Times returns n·dt for every step.
func (r *Result) Times() []float64 {
	t := make([]float64, len(r.Acceleration))
	for i := range t {
		t[i] = float64(i) * r.Params.Dt
	}
	return t
}

// Len is the number of steps.
func (r *Result) Len() int { return len(r.Acceleration) }

// IsFinite returns a *DegeneracyError for the first NaN or Inf sample.
func (r *Result) IsFinite() error {
	for _, c := range Channels {
		for i, v := range r.Channel(c) {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return &DegeneracyError{Channel: c, Step: i, Value: v}
			}
		}
	}
	return nil
}
