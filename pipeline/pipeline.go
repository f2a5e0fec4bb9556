// Package pipeline provides the ordered stage composition that processes a
// single payload, and the Format identifiers routers dispatch on.
package pipeline

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/c360/streampipe/errors"
	"github.com/c360/streampipe/metric"
	"github.com/c360/streampipe/payload"
	"github.com/c360/streampipe/stage"
)

// Format declares the data format a pipeline accepts. Routers match a
// request's format against this declaration.
type Format string

// Well-known format constants. The set is open: callers may declare their
// own formats.
const (
	FormatJSON   Format = "json"
	FormatCSV    Format = "csv"
	FormatStream Format = "stream"
)

// String implements fmt.Stringer for Format
func (f Format) String() string {
	return string(f)
}

// Pipeline is an ordered sequence of stages sharing one execution
// contract. The stage list is owned exclusively by the pipeline and grows
// by append only; stage order is execution order.
//
// A pipeline holds no execution state between Process calls. Instances are
// single-owner: callers sharing one across goroutines must serialize
// AddStage against Process themselves.
type Pipeline struct {
	id      string
	format  Format
	stages  []stage.Stage
	logger  *slog.Logger
	metrics *metric.Metrics
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the pipeline's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithMetrics attaches core platform metrics to the pipeline.
func WithMetrics(metrics *metric.Metrics) Option {
	return func(p *Pipeline) {
		p.metrics = metrics
	}
}

// New creates an empty pipeline with the given id and declared format.
func New(id string, format Format, opts ...Option) *Pipeline {
	p := &Pipeline{
		id:     id,
		format: format,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ID returns the pipeline's immutable identifier.
func (p *Pipeline) ID() string {
	return p.id
}

// Format returns the pipeline's declared data format.
func (p *Pipeline) Format() Format {
	return p.format
}

// StageCount returns the number of stages currently appended.
func (p *Pipeline) StageCount() int {
	return len(p.stages)
}

// AddStage appends a stage to the execution order. Stage compatibility is
// the caller's responsibility; no validation happens here.
func (p *Pipeline) AddStage(s stage.Stage) {
	p.stages = append(p.stages, s)
}

// Process threads data through each stage in order, returning the final
// stage's output. The first stage failure aborts the run and propagates;
// no further stages execute. An empty pipeline returns its input
// unchanged.
func (p *Pipeline) Process(data payload.Payload) (payload.Payload, error) {
	current := data

	for _, s := range p.stages {
		start := time.Now()
		next, err := s.Process(current)
		if p.metrics != nil {
			p.metrics.RecordStageDuration(p.id, s.Name(), time.Since(start))
		}
		if err != nil {
			if p.metrics != nil {
				p.metrics.RecordPayload(p.id, "error")
				p.metrics.RecordError(p.id, errors.Classify(err).String())
			}
			p.logger.Warn("Pipeline stage failed",
				"pipeline", p.id,
				"stage", s.Name(),
				"error", err)
			return nil, errors.Wrap(err, "Pipeline", "Process", fmt.Sprintf("stage %s", s.Name()))
		}
		current = next
	}

	if p.metrics != nil {
		p.metrics.RecordPayload(p.id, "ok")
	}
	return current, nil
}
