package stream

import (
	"log/slog"
	"strings"

	"github.com/c360/streampipe/metric"
	"github.com/c360/streampipe/types"
)

// ItemDelimiter separates the kind from the value in a batch item.
const ItemDelimiter = ":"

// Stats is a point-in-time snapshot of a handler's identity. Callers
// receive a copy; mutating it does not affect the handler.
type Stats struct {
	ID     string            `json:"id"`
	Status types.Status      `json:"status"`
	Type   types.HandlerKind `json:"type"`
}

// Handler is a stateful aggregator specialized for one record kind.
type Handler interface {
	// ProcessBatch validates the batch, commits aggregate state when every
	// item is well-formed, and returns a summary string. Malformed batches
	// report a zero-result summary and leave state unchanged; ProcessBatch
	// never fails past its own boundary.
	ProcessBatch(batch []string) string

	// FilterData returns the items matching criteria. An empty criteria
	// returns the batch unchanged.
	FilterData(batch []string, criteria string) []string

	// Stats returns a snapshot of the handler's identity.
	Stats() Stats
}

// Option configures a handler at construction time.
type Option func(*handlerOptions)

type handlerOptions struct {
	logger  *slog.Logger
	metrics *metric.Metrics
}

// WithLogger sets the handler's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *handlerOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithMetrics attaches core platform metrics to the handler.
func WithMetrics(metrics *metric.Metrics) Option {
	return func(o *handlerOptions) {
		o.metrics = metrics
	}
}

func applyOptions(opts []Option) handlerOptions {
	o := handlerOptions{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// splitItem splits a "<kind>:<value>" item into its parts.
func splitItem(item string) (kind, value string, ok bool) {
	kind, value, ok = strings.Cut(item, ItemDelimiter)
	if !ok || kind == "" || value == "" {
		return "", "", false
	}
	return kind, value, true
}

// filterBySubstring keeps items whose string form contains the criteria.
func filterBySubstring(batch []string, criteria string) []string {
	filtered := make([]string, 0, len(batch))
	for _, item := range batch {
		if strings.Contains(item, criteria) {
			filtered = append(filtered, item)
		}
	}
	return filtered
}
