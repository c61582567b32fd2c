package physics

import (
	"math"

	"github.com/san-kum/sdofsim/internal/dynamo"
)

// StandardGravity in m/s².
const StandardGravity = 9.80665

const fourPi2 = 4 * math.Pi * math.Pi

// StiffnessFromPeriod returns k = 4π²·m / T².
func StiffnessFromPeriod(mass, period float64) (float64, error) {
	if err := checkMass(mass); err != nil {
		return 0, err
	}
	if err := checkPeriod(period); err != nil {
		return 0, err
	}
	return fourPi2 * mass / (period * period), nil
}

// MassFromPeriod returns m = k·T² / (4π²).
func MassFromPeriod(stiffness, period float64) (float64, error) {
	if err := checkStiffness(stiffness); err != nil {
		return 0, err
	}
	if err := checkPeriod(period); err != nil {
		return 0, err
	}
	return stiffness * period * period / fourPi2, nil
}

// NaturalPeriod returns T = 2π·√(m/k). Zero stiffness gives +Inf.
func NaturalPeriod(mass, stiffness float64) (float64, error) {
	if err := checkMass(mass); err != nil {
		return 0, err
	}
	if err := checkStiffness(stiffness); err != nil {
		return 0, err
	}
	if stiffness == 0 {
		return math.Inf(1), nil
	}
	return 2 * math.Pi * math.Sqrt(mass/stiffness), nil
}

// NaturalFrequency returns f = 1/T in Hz.
func NaturalFrequency(mass, stiffness float64) (float64, error) {
	t, err := NaturalPeriod(mass, stiffness)
	if err != nil {
		return 0, err
	}
	return 1 / t, nil
}

// AngularFrequency returns ω = √(k/m) in rad/s.
func AngularFrequency(mass, stiffness float64) (float64, error) {
	if err := checkMass(mass); err != nil {
		return 0, err
	}
	if err := checkStiffness(stiffness); err != nil {
		return 0, err
	}
	return math.Sqrt(stiffness / mass), nil
}

// MassFromWeight converts a weight (kN or N) to mass (ton or kg).
func MassFromWeight(weight float64) (float64, error) {
	if !(weight > 0) || math.IsInf(weight, 0) {
		return 0, &dynamo.ArgumentError{Field: "weight", Value: weight, Reason: "must be positive and finite"}
	}
	return weight / StandardGravity, nil
}

func checkMass(m float64) error {
	if !(m > 0) || math.IsInf(m, 0) {
		return &dynamo.ArgumentError{Field: "mass", Value: m, Reason: "must be positive and finite"}
	}
	return nil
}

func checkStiffness(k float64) error {
	if !(k >= 0) || math.IsInf(k, 0) {
		return &dynamo.ArgumentError{Field: "stiffness", Value: k, Reason: "must be non-negative and finite"}
	}
	return nil
}

func checkPeriod(t float64) error {
	if !(t > 0) || math.IsInf(t, 0) {
		return &dynamo.ArgumentError{Field: "period", Value: t, Reason: "must be positive and finite"}
	}
	return nil
}
