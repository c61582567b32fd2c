package metrics

import (
	"math"

	"github.com/san-kum/sdofsim/internal/dynamo"
)

// EnergyBalance is max |Eo − Input| relative to max |Input|. Near zero for
// β = ¼ when the initial acceleration agrees with the equation of motion.
type EnergyBalance struct{}

func NewEnergyBalance() *EnergyBalance { return &EnergyBalance{} }

func (e *EnergyBalance) Name() string { return "energy_balance" }

func (e *EnergyBalance) Evaluate(r *dynamo.Result) float64 {
	scale := PeakAbs(r.Input)
	if scale == 0 {
		return 0
	}
	worst := 0.0
	for i := range r.Total {
		worst = math.Max(worst, math.Abs(r.Total[i]-r.Input[i]))
	}
	return worst / scale
}

// EnergyDrift is the largest relative change of Eo from its value after the
// first step. Meaningful for free vibration, where Eo should stay constant.
type EnergyDrift struct{}

func NewEnergyDrift() *EnergyDrift { return &EnergyDrift{} }

func (e *EnergyDrift) Name() string { return "energy_drift" }

func (e *EnergyDrift) Evaluate(r *dynamo.Result) float64 {
	if len(r.Total) < 2 || r.Total[1] == 0 {
		return 0
	}
	ref := r.Total[1]
	maxDrift := 0.0
	for _, v := range r.Total[1:] {
		maxDrift = math.Max(maxDrift, math.Abs(v-ref)/math.Abs(ref))
	}
	return maxDrift
}

// DissipatedFraction is the share of the final absorbed energy dissipated by
// viscous damping, Ei/Eo at the last step.
type DissipatedFraction struct{}

func NewDissipatedFraction() *DissipatedFraction { return &DissipatedFraction{} }

func (d *DissipatedFraction) Name() string { return "dissipated_fraction" }

func (d *DissipatedFraction) Evaluate(r *dynamo.Result) float64 {
	n := len(r.Total)
	if n == 0 || r.Total[n-1] == 0 {
		return 0
	}
	return r.Damping[n-1] / r.Total[n-1]
}
