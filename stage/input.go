package stage

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/c360/streampipe/errors"
	"github.com/c360/streampipe/payload"
)

// InputStage validates that a payload is present and non-empty before it
// enters the rest of the pipeline. A validating variant additionally checks
// Document payloads against a compiled JSON schema.
type InputStage struct {
	schema *gojsonschema.Schema
	logger *slog.Logger
}

// NewInputStage creates an input stage with non-emptiness validation only.
func NewInputStage(logger *slog.Logger) *InputStage {
	if logger == nil {
		logger = slog.Default()
	}
	return &InputStage{logger: logger}
}

// NewValidatingInputStage creates an input stage that also validates
// Document payloads against the given JSON schema. Non-document payloads
// are not schema-checked.
func NewValidatingInputStage(schemaJSON string, logger *slog.Logger) (*InputStage, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(schemaJSON))
	if err != nil {
		return nil, errors.WrapValidation(err, "InputStage", "NewValidatingInputStage", "schema compilation")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &InputStage{schema: schema, logger: logger}, nil
}

// Name returns the stage identifier.
func (s *InputStage) Name() string {
	return "input"
}

// Process returns the payload unchanged when it is non-empty, or a
// validation error otherwise.
func (s *InputStage) Process(p payload.Payload) (payload.Payload, error) {
	if p == nil {
		return nil, errors.WrapValidation(errors.ErrEmptyPayload, "InputStage", "Process", "nil payload check")
	}

	switch v := p.(type) {
	case *payload.Document:
		if len(v.Fields) == 0 {
			return nil, errors.WrapValidation(errors.ErrEmptyPayload, "InputStage", "Process", "document emptiness check")
		}
		if s.schema != nil {
			if err := s.validateDocument(v); err != nil {
				return nil, err
			}
		}
	case *payload.Text:
		if v.Value == "" {
			return nil, errors.WrapValidation(errors.ErrEmptyPayload, "InputStage", "Process", "text emptiness check")
		}
	}

	s.logger.Debug("Input accepted", "stage", s.Name(), "kind", p.Kind().String())
	return p, nil
}

// validateDocument checks the document's fields against the configured
// JSON schema.
func (s *InputStage) validateDocument(doc *payload.Document) error {
	raw, err := json.Marshal(doc.Fields)
	if err != nil {
		return errors.WrapValidation(err, "InputStage", "Process", "document serialization")
	}

	result, err := s.schema.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return errors.WrapValidation(err, "InputStage", "Process", "schema evaluation")
	}

	if !result.Valid() {
		details := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			details = append(details, desc.String())
		}
		return errors.WrapValidation(
			fmt.Errorf("document violates schema: %s", strings.Join(details, "; ")),
			"InputStage", "Process", "schema validation")
	}

	return nil
}
