// Package analysis provides post-processing of excitation series and
// response histories.
//
//   - [FourierAmplitude]: single-sided Fourier amplitude spectrum of a record
//   - [Portrait]: any two response channels against each other, e.g.
//     displacement against velocity, or the force-displacement loop
//
// # Predominant Period
//
// The period at which the Fourier amplitude peaks is a quick estimate of
// where the response spectrum will peak:
//
//	fa, _ := analysis.FourierAmplitude(wave, dt)
//	t := fa.PredominantPeriod()
package analysis
