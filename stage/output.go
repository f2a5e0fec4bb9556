package stage

import (
	"fmt"
	"log/slog"

	"github.com/c360/streampipe/errors"
	"github.com/c360/streampipe/payload"
)

// Temperature band bounds used when no override is configured.
const (
	DefaultHighBand = 40.0
	DefaultLowBand  = 5.0
)

// OutputStage renders a transformed payload into a final Summary:
//
//   - Document with a "sensor" key: temperature reading, classified into
//     High/Low/Normal bands when a numeric "value" is present
//   - Table (or a Document carrying a "headers" field): activity-count
//     summary
//   - any non-mapping payload: generic stream summary
//   - Document matching neither known shape: rendering failure
type OutputStage struct {
	highBand float64
	lowBand  float64
	logger   *slog.Logger
}

// NewOutputStage creates an output stage with the default temperature
// bands.
func NewOutputStage(logger *slog.Logger) *OutputStage {
	stage, _ := NewOutputStageWithBands(DefaultHighBand, DefaultLowBand, logger)
	return stage
}

// NewOutputStageWithBands creates an output stage with custom band bounds.
// The high bound must exceed the low bound.
func NewOutputStageWithBands(highBand, lowBand float64, logger *slog.Logger) (*OutputStage, error) {
	if highBand <= lowBand {
		return nil, errors.WrapValidation(
			fmt.Errorf("high band %.1f must exceed low band %.1f", highBand, lowBand),
			"OutputStage", "NewOutputStageWithBands", "band bounds validation")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &OutputStage{highBand: highBand, lowBand: lowBand, logger: logger}, nil
}

// Name returns the stage identifier.
func (s *OutputStage) Name() string {
	return "output"
}

// Process renders the payload into a Summary.
func (s *OutputStage) Process(p payload.Payload) (payload.Payload, error) {
	var output string

	switch v := p.(type) {
	case *payload.Document:
		rendered, err := s.renderDocument(v)
		if err != nil {
			return nil, err
		}
		output = rendered

	case *payload.Table:
		output = fmt.Sprintf("User activity logged: %d actions processed", v.Count)

	case *payload.Text:
		output = genericSummary(v.Value)

	case *payload.Summary:
		output = genericSummary(v.Rendered)

	default:
		return nil, errors.WrapRender(errors.ErrUnrenderable, "OutputStage", "Process",
			fmt.Sprintf("unknown payload kind %q", p.Kind()))
	}

	s.logger.Debug("Output rendered", "stage", s.Name(), "output", output)
	return payload.NewSummary(output), nil
}

// renderDocument formats a mapping payload. Documents matching neither the
// sensor shape nor the csv shape fail hard.
func (s *OutputStage) renderDocument(doc *payload.Document) (string, error) {
	switch {
	case doc.Has("sensor"):
		value, hasValue := doc.NumericField("value")
		if !hasValue {
			name, _ := doc.StringField("sensor")
			return fmt.Sprintf("Processed sensor reading: %s", name), nil
		}

		unit, ok := doc.StringField("unit")
		if !ok {
			unit = "C"
		}
		return fmt.Sprintf("Processed temperature reading: %v°%s (%s)", value, unit, s.classify(value)), nil

	case doc.Has("headers"):
		count, _ := doc.NumericField("count")
		return fmt.Sprintf("User activity logged: %d actions processed", int(count)), nil

	default:
		return "", errors.WrapRender(errors.ErrUnrenderable, "OutputStage", "Process",
			"document matches neither sensor nor csv shape")
	}
}

// classify places a temperature value into a band.
func (s *OutputStage) classify(value float64) string {
	switch {
	case value >= s.highBand:
		return "High range"
	case value <= s.lowBand:
		return "Low range"
	default:
		return "Normal range"
	}
}

// genericSummary renders the deterministic fallback for non-mapping
// payloads.
func genericSummary(text string) string {
	return fmt.Sprintf("Stream summary: %d characters processed", len(text))
}
