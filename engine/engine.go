// Package engine wires the resolution pipeline: graph construction, cycle
// detection, order resolution, conflict validation and composition
// emission, in that order. Each stage consumes the validated output of the
// previous one; structural failures halt the run, order and conflict
// findings are collected exhaustively into the run's report.
package engine

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/statickit/composer/compose"
	"github.com/statickit/composer/concurrency"
	"github.com/statickit/composer/descriptor"
	"github.com/statickit/composer/errors"
	"github.com/statickit/composer/graph"
	"github.com/statickit/composer/logging"
	"github.com/statickit/composer/metrics"
	"github.com/statickit/composer/resolver"
	"github.com/statickit/composer/validate"
)

// Config holds configuration for creating a new Engine.
type Config struct {
	Registry *descriptor.Registry
	Logger   logging.Logger
	Workers  int // concurrent runs in ResolveAll, default 4
}

// Engine resolves applications against a shared plugin pool. Descriptors
// are immutable, so one engine may serve concurrent resolution runs
// without locking; every run owns its own graph, chain and report.
type Engine struct {
	registry  *descriptor.Registry
	logger    logging.Logger
	workers   int
	collector *metrics.Collector
}

// New creates an Engine.
func New(cfg Config) *Engine {
	if cfg.Registry == nil {
		cfg.Registry = descriptor.NewRegistry()
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.Nop()
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 4
	}
	return &Engine{
		registry:  cfg.Registry,
		logger:    cfg.Logger,
		workers:   cfg.Workers,
		collector: metrics.NewCollector(),
	}
}

// Registry returns the engine's plugin pool, for pre-loading descriptors.
func (e *Engine) Registry() *descriptor.Registry {
	return e.registry
}

// Metrics returns the engine's run metrics collector.
func (e *Engine) Metrics() *metrics.Collector {
	return e.collector
}

// Resolve runs the full pipeline over a hand-authored application order.
// The order is checked, never repaired: a list that places a dependent
// before its dependency yields order violations in the report.
func (e *Engine) Resolve(app *descriptor.Application) *Resolution {
	return e.run(app, false)
}

// Derive runs the pipeline but lets the engine compute the precedence
// order instead of trusting the application's hand-authored list. The
// derived chain is deterministic: declaration order breaks ties.
func (e *Engine) Derive(app *descriptor.Application) *Resolution {
	return e.run(app, true)
}

func (e *Engine) run(app *descriptor.Application, derive bool) *Resolution {
	started := time.Now()
	res := &Resolution{
		RunID:       uuid.New(),
		Application: app.Name(),
		report:      errors.NewChain(),
	}
	log := e.logger.With(
		zap.String("application", app.Name()),
		zap.String("run", res.RunID.String()),
	)

	g, err := graph.Build(e.registry, app)
	if err != nil {
		res.fatal = errors.FromError(err)
		res.report.Add(res.fatal)
		res.Duration = time.Since(started)
		e.observe(res)
		log.Error("dependency graph construction failed", zap.Error(err))
		return res
	}
	log.Debug("dependency graph built", zap.Int("plugins", g.Len()))

	if cycleErr := graph.DetectCycle(g); cycleErr != nil {
		res.fatal = cycleErr
		res.report.Add(cycleErr)
		res.Duration = time.Since(started)
		e.observe(res)
		log.Error("dependency cycle detected", zap.Error(cycleErr))
		return res
	}

	if derive {
		res.Chain = resolver.Linearize(g, e.registry)
		log.Debug("precedence order derived", zap.Strings("chain", res.Chain.Plugins()))
	} else {
		for _, violation := range resolver.CheckOrder(g, app).Errors() {
			res.report.Add(violation)
		}
		res.Chain = resolver.Chain(app)
	}

	for _, conflict := range validate.Conflicts(res.Chain, g, e.registry).Errors() {
		res.report.Add(conflict)
	}

	if !res.report.HasErrors() {
		res.Plans = compose.EmitAll(res.Chain, e.registry)
	}
	res.Duration = time.Since(started)
	e.observe(res)

	if res.report.HasErrors() {
		log.Warn("resolution completed with findings",
			zap.Int("errors", res.report.Len()),
			zap.Duration("duration", res.Duration))
	} else {
		log.Info("resolution completed",
			zap.Int("plugins", res.Chain.Len()),
			zap.Int("classes", len(res.Plans)),
			zap.Duration("duration", res.Duration))
	}
	return res
}

func (e *Engine) observe(res *Resolution) {
	e.collector.Inc("runs_total")
	if !res.OK() {
		e.collector.Inc("runs_failed")
	}
	e.collector.Observe("run_duration", res.Duration)
}

// ResolveAll resolves several applications concurrently over the shared
// pool. Results are index-aligned with the input.
func (e *Engine) ResolveAll(apps []*descriptor.Application) []*Resolution {
	results := make([]*Resolution, len(apps))

	fns := make([]func() error, len(apps))
	for i, app := range apps {
		i, app := i, app
		fns[i] = func() error {
			results[i] = e.Resolve(app)
			return nil
		}
	}
	concurrency.NewParallelExecutor(e.workers).Execute(fns)

	return results
}
