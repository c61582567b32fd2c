package physics

import "github.com/san-kum/sdofsim/internal/dynamo"

// Oscillator is a linear SDOF system driven by base acceleration:
//
//	m·ẍ + c·ẋ + k·x = −m·ẍg(t)
//
// with x relative to the base. State is [x, v]. The base acceleration is
// linearly interpolated between samples spaced Dt apart and held at the last
// sample beyond the record.
type Oscillator struct {
	Mass       float64
	Stiffness  float64
	Viscous    float64 // c
	Dt         float64
	Excitation []float64
}

func NewOscillator(p dynamo.Params, excitation []float64) *Oscillator {
	return &Oscillator{
		Mass:       p.Mass,
		Stiffness:  p.Stiffness,
		Viscous:    p.DampingCoefficient(),
		Dt:         p.Dt,
		Excitation: excitation,
	}
}

func (o *Oscillator) StateDim() int { return 2 }

func (o *Oscillator) Derive(x dynamo.State, t float64) dynamo.State {
	pos, vel := x[0], x[1]
	acc := -(o.Viscous*vel+o.Stiffness*pos)/o.Mass - o.Ground(t)
	return dynamo.State{vel, acc}
}

// Ground returns the interpolated base acceleration at t.
func (o *Oscillator) Ground(t float64) float64 {
	n := len(o.Excitation)
	if n == 0 {
		return 0
	}
	if t <= 0 {
		return o.Excitation[0]
	}
	pos := t / o.Dt
	i := int(pos)
	if i >= n-1 {
		return o.Excitation[n-1]
	}
	frac := pos - float64(i)
	return o.Excitation[i]*(1-frac) + o.Excitation[i+1]*frac
}

// Energy returns the mechanical energy ½kx² + ½mv².
func (o *Oscillator) Energy(x dynamo.State) float64 {
	return 0.5*o.Stiffness*x[0]*x[0] + 0.5*o.Mass*x[1]*x[1]
}
