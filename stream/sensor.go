package stream

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/c360/streampipe/metric"
	"github.com/c360/streampipe/types"
)

// CriteriaCritical selects sensor items flagged as alerts.
const CriteriaCritical = "critical"

// Sensor field names recognized in batch items.
const (
	fieldTemperature = "temp"
	fieldHumidity    = "humidity"
	fieldPressure    = "pressure"
)

// SensorHandler aggregates environmental sensor readings. It counts
// committed readings and tracks the last seen temperature for reporting.
type SensorHandler struct {
	id              string
	status          types.Status
	readingCount    int
	lastTemperature *float64
	logger          *slog.Logger
	metrics         *metric.Metrics
}

// NewSensorHandler creates a sensor handler with the given id.
func NewSensorHandler(id string, opts ...Option) *SensorHandler {
	o := applyOptions(opts)
	h := &SensorHandler{
		id:      id,
		status:  types.StatusActive,
		logger:  o.logger,
		metrics: o.metrics,
	}
	if h.metrics != nil {
		h.metrics.RecordHandlerState(h.id, true)
	}
	return h
}

// ProcessBatch validates and aggregates a batch of sensor readings.
// Every item must be "<field>:<float>" with a recognized field; a single
// malformed item rejects the whole batch before any state mutates.
func (h *SensorHandler) ProcessBatch(batch []string) string {
	temps, err := h.parseBatch(batch)
	if err != nil {
		h.logger.Warn("Sensor batch rejected",
			"handler", h.id,
			"batch_size", len(batch),
			"error", err)
		if h.metrics != nil {
			h.metrics.RecordBatch(h.id, "rejected")
			h.metrics.RecordError(h.id, "validation")
		}
		return "Sensor analysis: 0 readings processed"
	}

	// Commit
	h.readingCount += len(batch)
	if len(temps) > 0 {
		last := temps[len(temps)-1]
		h.lastTemperature = &last
	}

	if h.metrics != nil {
		h.metrics.RecordBatch(h.id, "ok")
		h.metrics.RecordItems(h.id, len(batch))
	}

	if h.lastTemperature != nil {
		return fmt.Sprintf("Sensor analysis: %d readings processed, last temp: %.1f°C",
			len(batch), *h.lastTemperature)
	}
	return fmt.Sprintf("Sensor analysis: %d readings processed", len(batch))
}

// parseBatch validates every item and collects temperature values in batch
// order. Nothing is committed here.
func (h *SensorHandler) parseBatch(batch []string) ([]float64, error) {
	var temps []float64
	for i, item := range batch {
		field, raw, ok := splitItem(item)
		if !ok {
			return nil, fmt.Errorf("item %d: %q is not a delimited reading", i, item)
		}
		if field != fieldTemperature && field != fieldHumidity && field != fieldPressure {
			return nil, fmt.Errorf("item %d: unrecognized field %q", i, field)
		}
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("item %d: %q is not numeric", i, raw)
		}
		if field == fieldTemperature {
			temps = append(temps, value)
		}
	}
	return temps, nil
}

// FilterData returns items matching criteria. The "critical" criteria
// keeps items flagged as alerts; an empty criteria returns the batch
// unchanged.
func (h *SensorHandler) FilterData(batch []string, criteria string) []string {
	if criteria == "" {
		return batch
	}
	if criteria == CriteriaCritical {
		filtered := make([]string, 0, len(batch))
		for _, item := range batch {
			if strings.Contains(item, "alert") || strings.Contains(item, "crit") {
				filtered = append(filtered, item)
			}
		}
		return filtered
	}
	return filterBySubstring(batch, criteria)
}

// Stats returns a snapshot of the handler's identity.
func (h *SensorHandler) Stats() Stats {
	return Stats{ID: h.id, Status: h.status, Type: types.HandlerKindSensor}
}

// ReadingCount returns the number of readings committed across all
// successful batches.
func (h *SensorHandler) ReadingCount() int {
	return h.readingCount
}

// LastTemperature returns the most recently committed temperature and
// whether one has been seen.
func (h *SensorHandler) LastTemperature() (float64, bool) {
	if h.lastTemperature == nil {
		return 0, false
	}
	return *h.lastTemperature, true
}
