package metric

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics contains all platform-level metrics (not handler-specific)
type Metrics struct {
	// Batch ingestion metrics
	BatchesProcessed *prometheus.CounterVec
	ItemsAggregated  *prometheus.CounterVec

	// Pipeline metrics
	PayloadsProcessed *prometheus.CounterVec
	StageDuration     *prometheus.HistogramVec

	// Shared metrics
	ErrorsTotal  *prometheus.CounterVec
	HandlerState *prometheus.GaugeVec
}

// NewMetrics creates a new Metrics instance with all platform metrics
func NewMetrics() *Metrics {
	return &Metrics{
		BatchesProcessed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "streampipe",
				Subsystem: "batches",
				Name:      "processed_total",
				Help:      "Total number of batches processed",
			},
			[]string{"handler", "status"},
		),

		ItemsAggregated: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "streampipe",
				Subsystem: "batches",
				Name:      "items_total",
				Help:      "Total number of batch items committed to aggregate state",
			},
			[]string{"handler"},
		),

		PayloadsProcessed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "streampipe",
				Subsystem: "pipeline",
				Name:      "payloads_total",
				Help:      "Total number of payloads processed by pipelines",
			},
			[]string{"pipeline", "status"},
		),

		StageDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "streampipe",
				Subsystem: "pipeline",
				Name:      "stage_duration_seconds",
				Help:      "Stage execution duration in seconds",
				Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
			},
			[]string{"pipeline", "stage"},
		),

		ErrorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "streampipe",
				Subsystem: "errors",
				Name:      "total",
				Help:      "Total number of errors by component and class",
			},
			[]string{"component", "class"},
		),

		HandlerState: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "streampipe",
				Subsystem: "handlers",
				Name:      "active",
				Help:      "Handler status (0=inactive, 1=active)",
			},
			[]string{"handler"},
		),
	}
}

// RecordBatch increments the batch counter for a handler
func (c *Metrics) RecordBatch(handler, status string) {
	c.BatchesProcessed.WithLabelValues(handler, status).Inc()
}

// RecordItems adds committed item count for a handler
func (c *Metrics) RecordItems(handler string, count int) {
	c.ItemsAggregated.WithLabelValues(handler).Add(float64(count))
}

// RecordPayload increments the payload counter for a pipeline
func (c *Metrics) RecordPayload(pipeline, status string) {
	c.PayloadsProcessed.WithLabelValues(pipeline, status).Inc()
}

// RecordStageDuration records stage execution time
func (c *Metrics) RecordStageDuration(pipeline, stage string, duration time.Duration) {
	c.StageDuration.WithLabelValues(pipeline, stage).Observe(duration.Seconds())
}

// RecordError increments the error counter
func (c *Metrics) RecordError(component, class string) {
	c.ErrorsTotal.WithLabelValues(component, class).Inc()
}

// RecordHandlerState updates a handler's active gauge
func (c *Metrics) RecordHandlerState(handler string, active bool) {
	value := 0.0
	if active {
		value = 1.0
	}
	c.HandlerState.WithLabelValues(handler).Set(value)
}
