// Package physics provides the closed-form relations of a linear
// single-degree-of-freedom oscillator.
//
// Conversions between mass, stiffness and natural period:
//
//   - [StiffnessFromPeriod]: k = 4π²·m / T²
//   - [MassFromPeriod]: m = k·T² / (4π²)
//   - [NaturalPeriod], [NaturalFrequency], [AngularFrequency]
//
// All conversions reject non-positive mass or period and negative stiffness
// with an error wrapping [dynamo.ErrInvalidArgument].
//
// [Oscillator] implements [dynamo.System] for the base-excited equation of
// motion, so the system can be stepped by a general ODE integrator:
//
//	osc := physics.NewOscillator(params, wave)
//	dx := osc.Derive(dynamo.State{x, v}, t)
package physics
