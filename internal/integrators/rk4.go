package integrators

import (
	"github.com/san-kum/sdofsim/internal/dynamo"
	"github.com/san-kum/sdofsim/internal/physics"
)

type RK4 struct {
	k1, k2, k3, k4 dynamo.State
	scratch        dynamo.State
}

func NewRK4() *RK4 {
	return &RK4{}
}

func (r *RK4) ensureScratch(n int) {
	if len(r.k1) != n {
		r.k1 = make(dynamo.State, n)
		r.k2 = make(dynamo.State, n)
		r.k3 = make(dynamo.State, n)
		r.k4 = make(dynamo.State, n)
		r.scratch = make(dynamo.State, n)
	}
}

func (r *RK4) Step(dyn dynamo.System, x dynamo.State, t, dt float64) dynamo.State {
	n := len(x)
	r.ensureScratch(n)

	k1 := dyn.Derive(x, t)
	copy(r.k1, k1)

	for i := 0; i < n; i++ {
		r.scratch[i] = x[i] + dt*0.5*r.k1[i]
	}
	k2 := dyn.Derive(r.scratch, t+dt*0.5)
	copy(r.k2, k2)

	for i := 0; i < n; i++ {
		r.scratch[i] = x[i] + dt*0.5*r.k2[i]
	}
	k3 := dyn.Derive(r.scratch, t+dt*0.5)
	copy(r.k3, k3)

	for i := 0; i < n; i++ {
		r.scratch[i] = x[i] + dt*r.k3[i]
	}
	k4 := dyn.Derive(r.scratch, t+dt)
	copy(r.k4, k4)

	result := make(dynamo.State, n)
	dt6 := dt / 6.0
	for i := 0; i < n; i++ {
		result[i] = x[i] + dt6*(r.k1[i]+2*r.k2[i]+2*r.k3[i]+r.k4[i])
	}

	return result
}

// ReferenceRK4 solves the same base-excited oscillator as Newmark with
// classical Runge-Kutta, sub-stepping each sample interval. The initial
// condition and energy channels follow Newmark so the two can be compared
// sample by sample. Acceleration after step 0 is the relative acceleration
// from the equation of motion.
func ReferenceRK4(p dynamo.Params, excitation []float64, substeps int) (*dynamo.Result, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := p.ValidateExcitation(excitation); err != nil {
		return nil, err
	}
	if substeps < 1 {
		substeps = 1
	}

	osc := physics.NewOscillator(p, excitation)
	c, k, m := osc.Viscous, osc.Stiffness, osc.Mass
	h := p.Dt / float64(substeps)
	rk := NewRK4()

	res := dynamo.NewResult(p)
	res.Acceleration[0] = excitation[0]

	x := dynamo.State{0, 0}
	for n := 1; n < p.Steps; n++ {
		prev := x
		t0 := float64(n-1) * p.Dt
		for s := 0; s < substeps; s++ {
			x = rk.Step(osc, x, t0+float64(s)*h, h)
		}

		xn, vn := x[0], x[1]
		disp, vel := prev[0], prev[1]
		dx := xn - disp
		vAvg := (vn + vel) / 2

		res.Displacement[n] = xn
		res.Velocity[n] = vn
		res.Acceleration[n] = osc.Derive(x, float64(n)*p.Dt)[1]

		res.Strain[n] = res.Strain[n-1] + k*(xn+disp)/2*dx
		res.Kinetic[n] = res.Kinetic[n-1] + 0.5*m*(vn*vn-vel*vel)
		res.Damping[n] = res.Damping[n-1] + c*vAvg*vAvg*p.Dt
		res.Total[n] = res.Strain[n] + res.Kinetic[n] + res.Damping[n]
		res.Input[n] = res.Input[n-1] - m*(excitation[n]+excitation[n-1])/2*dx
	}

	return res, nil
}
