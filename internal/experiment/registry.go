package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/sdofsim/internal/dynamo"
	"github.com/san-kum/sdofsim/internal/integrators"
	"github.com/san-kum/sdofsim/internal/metrics"
)

// Solver integrates one SDOF run.
type Solver func(p dynamo.Params, excitation []float64) (*dynamo.Result, error)

// ReferenceSubsteps is the RK4 sub-steps per excitation sample.
const ReferenceSubsteps = 8

type Registry struct {
	schemes map[string]Solver
}

func NewRegistry() *Registry {
	r := &Registry{
		schemes: make(map[string]Solver),
	}

	r.schemes["newmark"] = integrators.Newmark
	r.schemes["average"] = integrators.Average
	r.schemes["linear"] = integrators.Linear
	r.schemes["explicit"] = integrators.Explicit
	r.schemes["rk4"] = func(p dynamo.Params, excitation []float64) (*dynamo.Result, error) {
		return integrators.ReferenceRK4(p, excitation, ReferenceSubsteps)
	}

	return r
}

// Register adds or replaces a scheme.
func (r *Registry) Register(name string, s Solver) {
	r.schemes[name] = s
}

func (r *Registry) GetScheme(name string) (Solver, error) {
	s, ok := r.schemes[name]
	if !ok {
		return nil, fmt.Errorf("unknown scheme: %s (available: %v)", name, r.ListSchemes())
	}
	return s, nil
}

func (r *Registry) ListSchemes() []string {
	names := make([]string, 0, len(r.schemes))
	for name := range r.schemes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) DefaultMetrics() []metrics.Metric {
	return metrics.Defaults()
}
