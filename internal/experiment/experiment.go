package experiment

import (
	"context"
	"fmt"
	"time"

	"github.com/san-kum/sdofsim/internal/dynamo"
	"github.com/san-kum/sdofsim/internal/metrics"
)

type Config struct {
	Scheme     string
	Params     dynamo.Params
	Excitation []float64
}

// Outcome is a finished run with its metrics.
type Outcome struct {
	Scheme  string
	Result  *dynamo.Result
	Metrics map[string]float64
	Elapsed time.Duration
	// Degeneracy is set when the history holds NaN or Inf. The run is
	// still returned so the caller can inspect it.
	Degeneracy error
}

type Experiment struct {
	cfg     Config
	solver  Solver
	metrics []metrics.Metric
}

func New(cfg Config) *Experiment {
	return &Experiment{cfg: cfg}
}

func (e *Experiment) Setup(solver Solver, ms []metrics.Metric) error {
	if solver == nil {
		return fmt.Errorf("experiment: nil solver for scheme %q", e.cfg.Scheme)
	}
	e.solver = solver
	e.metrics = ms
	return nil
}

func (e *Experiment) Run(ctx context.Context) (*Outcome, error) {
	if e.solver == nil {
		return nil, fmt.Errorf("experiment not setup")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	res, err := e.solver(e.cfg.Params, e.cfg.Excitation)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", e.cfg.Scheme, err)
	}

	return &Outcome{
		Scheme:     e.cfg.Scheme,
		Result:     res,
		Metrics:    metrics.Evaluate(res, e.metrics),
		Elapsed:    time.Since(start),
		Degeneracy: res.IsFinite(),
	}, nil
}

// Compare runs every named scheme on the same input.
func Compare(ctx context.Context, r *Registry, schemes []string, p dynamo.Params, excitation []float64) ([]*Outcome, error) {
	outcomes := make([]*Outcome, 0, len(schemes))
	for _, name := range schemes {
		solver, err := r.GetScheme(name)
		if err != nil {
			return nil, err
		}

		exp := New(Config{Scheme: name, Params: p, Excitation: excitation})
		if err := exp.Setup(solver, r.DefaultMetrics()); err != nil {
			return nil, err
		}

		out, err := exp.Run(ctx)
		if err != nil {
			return nil, err
		}
		outcomes = append(outcomes, out)
	}
	return outcomes, nil
}
