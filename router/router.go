// Package router provides format-based dispatch over registered pipelines
// and chained execution across multiple pipelines.
package router

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/c360/streampipe/errors"
	"github.com/c360/streampipe/metric"
	"github.com/c360/streampipe/payload"
	"github.com/c360/streampipe/pipeline"
)

// Router holds pipelines in registration order and selects the matching
// one for a request. Duplicate formats are permitted; dispatch is
// deterministic first-match-in-registration-order.
//
// The registry is append-mostly. Register and ProcessData take the
// router's lock so they stay safe if shared across goroutines, though
// typical use is single-threaded.
type Router struct {
	name      string
	pipelines []*pipeline.Pipeline
	logger    *slog.Logger
	metrics   *routerMetrics
	mu        sync.RWMutex
}

// Option configures a Router.
type Option func(*Router)

// WithLogger sets the router's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Router) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithName sets the router's name, used as the metric key. Defaults to
// "router".
func WithName(name string) Option {
	return func(r *Router) {
		if name != "" {
			r.name = name
		}
	}
}

// New creates an empty router.
func New(opts ...Option) *Router {
	r := &Router{
		name:   "router",
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// NewWithMetrics creates a router and registers its metrics with the given
// registrar.
func NewWithMetrics(registrar metric.MetricsRegistrar, opts ...Option) (*Router, error) {
	r := New(opts...)

	metrics, err := newRouterMetrics(registrar, r.name)
	if err != nil {
		return nil, errors.Wrap(err, "Router", "NewWithMetrics", "metrics registration")
	}
	r.metrics = metrics
	return r, nil
}

// Register appends a pipeline to the registry.
func (r *Router) Register(p *pipeline.Pipeline) error {
	if p == nil {
		return errors.WrapValidation(errors.ErrInvalidConfig, "Router", "Register", "pipeline validation")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.pipelines = append(r.pipelines, p)
	r.logger.Debug("Pipeline registered",
		"router", r.name,
		"pipeline", p.ID(),
		"format", p.Format().String(),
		"registered", len(r.pipelines))
	return nil
}

// RegisterMany appends pipelines in order. Registration stops at the first
// invalid entry.
func (r *Router) RegisterMany(pipelines ...*pipeline.Pipeline) error {
	for _, p := range pipelines {
		if err := r.Register(p); err != nil {
			return err
		}
	}
	return nil
}

// PipelineCount returns the number of registered pipelines.
func (r *Router) PipelineCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.pipelines)
}

// ProcessData dispatches the payload to the first registered pipeline
// whose declared format matches formatType. A miss fails with a routing
// error naming the requested format.
func (r *Router) ProcessData(data payload.Payload, formatType pipeline.Format) (payload.Payload, error) {
	r.mu.RLock()
	var target *pipeline.Pipeline
	for _, p := range r.pipelines {
		if p.Format() == formatType {
			target = p
			break
		}
	}
	r.mu.RUnlock()

	if target == nil {
		r.metrics.recordDispatch(formatType.String(), false)
		return nil, errors.WrapRouting(
			fmt.Errorf("%w for format %q", errors.ErrNoPipeline, formatType),
			"Router", "ProcessData", "pipeline lookup")
	}

	r.metrics.recordDispatch(formatType.String(), true)
	r.logger.Debug("Dispatching payload",
		"router", r.name,
		"pipeline", target.ID(),
		"format", formatType.String())

	return target.Process(data)
}

// ExecuteChain folds Process across the chain, feeding each pipeline's
// output into the next pipeline. On any failure the chain aborts and
// returns the last successfully computed value together with the error
// describing where it stopped; this is a recoverable, reported failure,
// never a partial value.
func (r *Router) ExecuteChain(initial payload.Payload, chain []*pipeline.Pipeline) (payload.Payload, error) {
	r.metrics.recordChain()

	current := initial
	for i, p := range chain {
		next, err := p.Process(current)
		if err != nil {
			r.metrics.recordChainRecovery()
			r.logger.Warn("Chain aborted, returning last good value",
				"router", r.name,
				"pipeline", p.ID(),
				"position", i,
				"completed", i,
				"error", err)
			return current, errors.Wrap(err, "Router", "ExecuteChain",
				fmt.Sprintf("pipeline %s at position %d", p.ID(), i))
		}
		current = next
	}

	return current, nil
}
