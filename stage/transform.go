package stage

import (
	"log/slog"
	"strings"

	"github.com/c360/streampipe/errors"
	"github.com/c360/streampipe/payload"
)

// InvalidMarker is the sentinel text value that forces a hard format
// failure in the transform stage.
const InvalidMarker = "INVALID_DATA"

// fieldDelimiter separates fields in a CSV-shaped text payload.
const fieldDelimiter = ","

// TransformStage classifies a payload's shape and normalizes it:
//
//   - Document containing a "sensor" key: annotated with status "valid"
//   - Text containing the field delimiter: split into a Table record
//   - Text equal to InvalidMarker: hard format failure
//   - anything else: passed through unchanged
//
// Unmatched shapes are not errors here; only the sentinel fails hard.
type TransformStage struct {
	logger *slog.Logger
}

// NewTransformStage creates a transform stage.
func NewTransformStage(logger *slog.Logger) *TransformStage {
	if logger == nil {
		logger = slog.Default()
	}
	return &TransformStage{logger: logger}
}

// Name returns the stage identifier.
func (s *TransformStage) Name() string {
	return "transform"
}

// Process classifies and normalizes the payload. The input is never
// mutated; annotated documents are clones.
func (s *TransformStage) Process(p payload.Payload) (payload.Payload, error) {
	switch v := p.(type) {
	case *payload.Document:
		if v.Has("sensor") {
			annotated := v.Clone()
			annotated.Fields["status"] = "valid"
			s.logger.Debug("Transform: enriched with metadata and validation", "stage", s.Name())
			return annotated, nil
		}

	case *payload.Text:
		if v.Value == InvalidMarker {
			return nil, errors.WrapFormat(errors.ErrInvalidFormat, "TransformStage", "Process", "sentinel check")
		}
		if strings.Contains(v.Value, fieldDelimiter) {
			fields := strings.Split(v.Value, fieldDelimiter)
			s.logger.Debug("Transform: parsed and structured data",
				"stage", s.Name(),
				"field_count", len(fields))
			return payload.NewTable(fields, 1), nil
		}
	}

	s.logger.Debug("Transform: aggregated and filtered", "stage", s.Name(), "kind", p.Kind().String())
	return p, nil
}
