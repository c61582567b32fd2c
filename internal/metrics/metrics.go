package metrics

import "github.com/san-kum/sdofsim/internal/dynamo"

// Metric reduces a response history to one number.
type Metric interface {
	Name() string
	Evaluate(r *dynamo.Result) float64
}

// Defaults returns the metrics reported for every run: peaks of the
// response and energy channels, peak times and energy checks.
func Defaults() []Metric {
	ms := make([]Metric, 0, len(dynamo.Channels)+6)
	for _, c := range dynamo.Channels {
		ms = append(ms, NewPeak(c))
	}
	ms = append(ms,
		NewPeakTime(dynamo.Acceleration),
		NewPeakTime(dynamo.Velocity),
		NewPeakTime(dynamo.Displacement),
		NewEnergyBalance(),
		NewEnergyDrift(),
		NewDissipatedFraction(),
	)
	return ms
}

// Evaluate applies each metric to r.
func Evaluate(r *dynamo.Result, ms []Metric) map[string]float64 {
	out := make(map[string]float64, len(ms))
	for _, m := range ms {
		out[m.Name()] = m.Evaluate(r)
	}
	return out
}
