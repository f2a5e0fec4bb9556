package stream

import (
	"log/slog"

	"github.com/c360/streampipe/errors"
	"github.com/c360/streampipe/metric"
)

// Processor is the safe execution boundary for running handlers against
// batches. It guards against missing handlers and logs every summary, so
// callers get uniform behavior across handler kinds.
type Processor struct {
	logger  *slog.Logger
	metrics *metric.Metrics
}

// NewProcessor creates a batch processor.
func NewProcessor(opts ...Option) *Processor {
	o := applyOptions(opts)
	return &Processor{logger: o.logger, metrics: o.metrics}
}

// ProcessStreamBatch runs the handler against the batch and returns its
// summary. The only failure is a nil handler; batch-level problems are
// absorbed by the handler itself and surface as degenerate summaries.
func (p *Processor) ProcessStreamBatch(h Handler, batch []string) (string, error) {
	if h == nil {
		if p.metrics != nil {
			p.metrics.RecordError("processor", "validation")
		}
		return "", errors.WrapValidation(errors.ErrInvalidConfig, "Processor", "ProcessStreamBatch",
			"handler validation")
	}

	summary := h.ProcessBatch(batch)
	stats := h.Stats()
	p.logger.Info("Batch processed",
		"handler", stats.ID,
		"type", stats.Type.String(),
		"batch_size", len(batch),
		"summary", summary)
	return summary, nil
}
