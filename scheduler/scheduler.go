// Package scheduler generates a weekly shift schedule for a team.
//
// Generate runs the pipeline once per request: normalize the input, derive
// per-day availability, build a few greedy candidate weeks, keep the best one
// under the preference policy, re-validate it and assemble the result.
// Unmet hard constraints are reported as violations on a best-effort week;
// only malformed input and unexplained invariant breaches return errors.
package scheduler

import (
	"time"

	"shift-scheduler/availability"
	"shift-scheduler/models"
	"shift-scheduler/normalizer"
)

// Engine is a configured schedule generator. It holds no mutable state and is
// safe for concurrent use.
type Engine struct {
	cfg        Config
	now        func() time.Time
	normalizer *normalizer.Normalizer
}

// Option configures an Engine.
type Option func(*Engine)

// WithConfig replaces the engine configuration. Zero fields get defaults.
func WithConfig(cfg Config) Option {
	return func(e *Engine) { e.cfg = cfg }
}

// WithClock replaces the time source used for the budget and executionTimeMs.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithNormalizer replaces the input normalizer.
func WithNormalizer(n *normalizer.Normalizer) Option {
	return func(e *Engine) { e.normalizer = n }
}

// New returns an Engine, or an error when the configuration is out of range.
func New(opts ...Option) (*Engine, error) {
	e := &Engine{now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	e.cfg.SetDefaults()
	if err := e.cfg.Validate(); err != nil {
		return nil, err
	}
	if e.normalizer == nil {
		e.normalizer = normalizer.New(nil)
	}
	return e, nil
}

// Config returns the effective configuration.
func (e *Engine) Config() Config { return e.cfg }

var defaultEngine = func() *Engine {
	e, err := New()
	if err != nil {
		panic(err)
	}
	return e
}()

// Generate runs the default engine.
func Generate(req models.Request) (*models.GenerationResult, error) {
	return defaultEngine.Generate(req)
}

// Generate produces the schedule for one team week.
//
// It returns an *errors.InputValidationError for malformed input and an
// *errors.InternalFaultError when the validator finds a breach the
// assignment pass did not account for. Infeasibility is not an error: the
// result then carries Feasible=false and the violations.
func (e *Engine) Generate(req models.Request) (*models.GenerationResult, error) {
	started := e.now()

	p, err := e.normalizer.Normalize(req)
	if err != nil {
		return nil, err
	}
	return e.solve(p, started)
}

// Solve runs the pipeline on an already normalized problem.
func (e *Engine) Solve(p *models.Problem) (*models.GenerationResult, error) {
	return e.solve(p, e.now())
}

func (e *Engine) solve(p *models.Problem, started time.Time) (*models.GenerationResult, error) {
	avail := availability.Calculate(p, e.cfg.GranularityMinutes)

	best, diag := e.search(p, avail, started)

	violations := validate(p, best.week, e.cfg)
	if err := Reconcile(best.flagged, violations); err != nil {
		return nil, err
	}

	res := assemble(p, best.week, violations, e.cfg, e.now().Sub(started))
	res.Diagnostics = diag
	return res, nil
}
