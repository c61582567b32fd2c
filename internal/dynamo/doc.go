// Package dynamo provides the core types shared by the response-analysis
// packages.
//
// The package defines the inputs and outputs of a single-degree-of-freedom
// (SDOF) time-history analysis:
//
//   - [Params]: immutable system parameters for one run
//   - [Result]: acceleration, velocity, displacement and energy histories
//   - [Channel]: names one output history of a [Result]
//   - [State]: continuous-time state vector used by reference integrators
//   - [System]: interface for ODE systems (dX/dt = f(X, t))
//
// # Example
//
//	p := dynamo.Params{Mass: 10, Stiffness: 10, Damping: 0.02, Dt: 0.02, Beta: 0.25, Steps: 1000}
//	res, err := integrators.Newmark(p, wave)
//
// # Thread Safety
//
// Params and Result carry no hidden state. A Result is owned by the caller
// that produced it; independent runs may execute concurrently, see
// [ParallelFor].
package dynamo
