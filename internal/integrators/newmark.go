package integrators

import "github.com/san-kum/sdofsim/internal/dynamo"

// Newmark integrates a base-excited linear SDOF oscillator with the
// Newmark-beta method (γ = ½). The result holds one sample per excitation
// sample.
//
// Step 0 is fixed at a = excitation[0], v = 0, x = 0 with all energies zero.
// Each later step solves the implicit scheme for the new acceleration in
// closed form, then updates velocity and displacement.
//
// Energies accumulate as incremental work:
//
//	Ep += k·x̄·Δx          (= ½·k·x²)
//	Ek += ½·m·(vₙ² − vₙ₋₁²) (= ½·m·v²)
//	Ei += c·v̄²·dt
//	Eo  = Ep + Ek + Ei
//	Input −= m·ḡ·Δx
//
// where bars are averages over the step. For β = ¼ the scheme conserves Eo
// against Input to round-off. β < ¼ is only conditionally stable
// (dt·ω must stay below the stability limit, 2 for β = 0); that is left to
// the caller. NaN and Inf propagate unchanged.
func Newmark(p dynamo.Params, excitation []float64) (*dynamo.Result, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := p.ValidateExcitation(excitation); err != nil {
		return nil, err
	}

	m, k, dt, beta := p.Mass, p.Stiffness, p.Dt, p.Beta
	c := p.DampingCoefficient()
	dt2 := dt * dt
	denom := m + c*dt/2 + k*dt2*beta

	res := dynamo.NewResult(p)

	acc, vel, disp := excitation[0], 0.0, 0.0
	res.Acceleration[0] = acc

	for n := 1; n < p.Steps; n++ {
		an := -(c*(vel+acc*dt/2) + k*(disp+vel*dt+acc*dt2*(0.5-beta)) + m*excitation[n]) / denom
		vn := vel + dt/2*(an+acc)
		xn := disp + vel*dt + dt2*((0.5-beta)*acc+beta*an)

		dx := xn - disp
		vAvg := (vn + vel) / 2
		res.Strain[n] = res.Strain[n-1] + k*(xn+disp)/2*dx
		res.Kinetic[n] = res.Kinetic[n-1] + 0.5*m*(vn*vn-vel*vel)
		res.Damping[n] = res.Damping[n-1] + c*vAvg*vAvg*dt
		res.Total[n] = res.Strain[n] + res.Kinetic[n] + res.Damping[n]
		res.Input[n] = res.Input[n-1] - m*(excitation[n]+excitation[n-1])/2*dx

		res.Acceleration[n] = an
		res.Velocity[n] = vn
		res.Displacement[n] = xn

		acc, vel, disp = an, vn, xn
	}

	return res, nil
}

// Average is Newmark with the constant-average-acceleration coefficient.
func Average(p dynamo.Params, excitation []float64) (*dynamo.Result, error) {
	p.Beta = dynamo.BetaAverage
	return Newmark(p, excitation)
}

// Linear is Newmark with the linear-acceleration coefficient.
func Linear(p dynamo.Params, excitation []float64) (*dynamo.Result, error) {
	p.Beta = dynamo.BetaLinear
	return Newmark(p, excitation)
}

// Explicit is Newmark with β = 0 (central difference).
func Explicit(p dynamo.Params, excitation []float64) (*dynamo.Result, error) {
	p.Beta = dynamo.BetaExplicit
	return Newmark(p, excitation)
}
