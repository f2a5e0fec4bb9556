package stream

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/c360/streampipe/errors"
	"github.com/c360/streampipe/metric"
	"github.com/c360/streampipe/types"
)

// DefaultErrorMarker is the event token counted as an error. Overridable
// through EventConfig.
const DefaultErrorMarker = "error"

// EventConfig holds configuration for an event handler.
type EventConfig struct {
	ErrorMarker string `json:"error_marker"` // Token counted as an error event
}

// DefaultEventConfig returns the default event handler configuration.
func DefaultEventConfig() EventConfig {
	return EventConfig{ErrorMarker: DefaultErrorMarker}
}

// Validate ensures the configuration is usable.
func (c EventConfig) Validate() error {
	if c.ErrorMarker == "" {
		return errors.WrapValidation(errors.ErrMissingConfig, "EventConfig", "Validate",
			"error marker cannot be empty")
	}
	return nil
}

// EventHandler counts discrete system events and occurrences of the error
// marker. Event items are bare tokens ("login", "error", "logout"), not
// delimited pairs.
type EventHandler struct {
	id          string
	status      types.Status
	eventCount  int
	errorCount  int
	errorMarker string
	logger      *slog.Logger
	metrics     *metric.Metrics
}

// NewEventHandler creates an event handler with the default configuration.
func NewEventHandler(id string, opts ...Option) *EventHandler {
	h, _ := NewEventHandlerWithConfig(id, DefaultEventConfig(), opts...)
	return h
}

// NewEventHandlerWithConfig creates an event handler with a custom
// configuration.
func NewEventHandlerWithConfig(id string, config EventConfig, opts ...Option) (*EventHandler, error) {
	if err := config.Validate(); err != nil {
		return nil, errors.Wrap(err, "EventHandler", "NewEventHandlerWithConfig", "config validation")
	}

	o := applyOptions(opts)
	h := &EventHandler{
		id:          id,
		status:      types.StatusActive,
		errorMarker: config.ErrorMarker,
		logger:      o.logger,
		metrics:     o.metrics,
	}
	if h.metrics != nil {
		h.metrics.RecordHandlerState(h.id, true)
	}
	return h, nil
}

// ProcessBatch validates and aggregates a batch of events. Every item
// must be a non-empty token; a single empty item rejects the whole batch
// before any state mutates.
func (h *EventHandler) ProcessBatch(batch []string) string {
	batchErrors, err := h.parseBatch(batch)
	if err != nil {
		h.logger.Warn("Event batch rejected",
			"handler", h.id,
			"batch_size", len(batch),
			"error", err)
		if h.metrics != nil {
			h.metrics.RecordBatch(h.id, "rejected")
			h.metrics.RecordError(h.id, "validation")
		}
		return "Event analysis: 0 events"
	}

	// Commit
	h.eventCount += len(batch)
	h.errorCount += batchErrors

	if h.metrics != nil {
		h.metrics.RecordBatch(h.id, "ok")
		h.metrics.RecordItems(h.id, len(batch))
	}

	return fmt.Sprintf("Event analysis: %d events, %d errors detected", len(batch), batchErrors)
}

// parseBatch validates every item and counts error markers. Nothing is
// committed here.
func (h *EventHandler) parseBatch(batch []string) (int, error) {
	batchErrors := 0
	for i, item := range batch {
		if item == "" {
			return 0, fmt.Errorf("item %d: empty event token", i)
		}
		if item == h.errorMarker {
			batchErrors++
		}
	}
	return batchErrors, nil
}

// FilterData returns items whose string form contains criteria. An empty
// criteria returns the batch unchanged.
func (h *EventHandler) FilterData(batch []string, criteria string) []string {
	if criteria == "" {
		return batch
	}
	return filterBySubstring(batch, criteria)
}

// Stats returns a snapshot of the handler's identity.
func (h *EventHandler) Stats() Stats {
	return Stats{ID: h.id, Status: h.status, Type: types.HandlerKindEvent}
}

// EventCount returns the cumulative number of committed events.
func (h *EventHandler) EventCount() int {
	return h.eventCount
}

// ErrorCount returns the cumulative number of committed error markers.
func (h *EventHandler) ErrorCount() int {
	return h.errorCount
}

// parseEventConfig decodes a raw factory config, falling back to defaults
// when none is supplied.
func parseEventConfig(rawConfig json.RawMessage) (EventConfig, error) {
	config := DefaultEventConfig()
	if len(rawConfig) == 0 {
		return config, nil
	}
	if err := json.Unmarshal(rawConfig, &config); err != nil {
		return EventConfig{}, errors.WrapValidation(err, "EventHandler", "parseEventConfig", "config unmarshal")
	}
	if config.ErrorMarker == "" {
		config.ErrorMarker = DefaultErrorMarker
	}
	return config, nil
}
