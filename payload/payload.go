// Package payload defines the closed set of payload shapes that flow
// through StreamPipe pipelines.
//
// A payload is one of four concrete variants:
//   - Document: a key/value mapping (decoded JSON-like record)
//   - Text: a raw or delimited string (decoded CSV-like record)
//   - Table: a normalized CSV-shaped record with headers and a row count
//   - Summary: a rendered, human-readable result string
//
// Stages switch on Kind() rather than inspecting runtime types, so the
// variant set is deliberately closed: unknown shapes cannot enter a
// pipeline, and the transform stage's permissive pass-through returns the
// input variant unchanged instead of inventing a new one.
package payload

import "encoding/json"

// Kind identifies the concrete payload variant.
type Kind string

// Payload kind constants
const (
	KindDocument Kind = "document"
	KindText     Kind = "text"
	KindTable    Kind = "table"
	KindSummary  Kind = "summary"
)

// String implements fmt.Stringer for Kind
func (k Kind) String() string {
	return string(k)
}

// Payload represents a value moving through a pipeline.
// All payloads provide kind identification, validation, and deterministic
// JSON serialization.
type Payload interface {
	// Kind returns the concrete variant identifier.
	// This enables exhaustive dispatch in stages without runtime type
	// inspection.
	Kind() Kind

	// Validate checks the payload data for correctness.
	// Returns nil if valid, or an error describing the validation failure.
	Validate() error

	// JSON serialization using standard Go interfaces. The same payload
	// must always produce the same JSON output.
	json.Marshaler
	json.Unmarshaler
}
