package payload

import (
	"encoding/json"

	"github.com/c360/streampipe/errors"
)

// Document is a key/value mapping payload, typically a decoded JSON record.
//
// Example usage:
//
//	doc := payload.NewDocument(map[string]any{
//	    "sensor": "temp",
//	    "value":  23.5,
//	    "unit":   "C",
//	})
type Document struct {
	// Fields contains the record as a map. Supports arbitrary JSON
	// structures; stages select behavior by well-known keys ("sensor",
	// "value", "unit").
	Fields map[string]any `json:"fields"`
}

// NewDocument creates a new Document payload with the given fields.
func NewDocument(fields map[string]any) *Document {
	return &Document{Fields: fields}
}

// Kind returns KindDocument.
func (d *Document) Kind() Kind {
	return KindDocument
}

// Validate ensures the field map is not nil.
func (d *Document) Validate() error {
	if d.Fields == nil {
		return errors.WrapValidation(errors.ErrEmptyPayload, "Document", "Validate", "fields cannot be nil")
	}
	return nil
}

// Has reports whether the document contains the given key.
func (d *Document) Has(key string) bool {
	_, ok := d.Fields[key]
	return ok
}

// Field returns the value for key and whether it was present.
func (d *Document) Field(key string) (any, bool) {
	v, ok := d.Fields[key]
	return v, ok
}

// NumericField returns the value for key coerced to float64.
// Returns false when the key is absent or the value is not numeric.
func (d *Document) NumericField(key string) (float64, bool) {
	v, ok := d.Fields[key]
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

// StringField returns the value for key as a string.
// Returns false when the key is absent or the value is not a string.
func (d *Document) StringField(key string) (string, bool) {
	v, ok := d.Fields[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// Clone returns a shallow copy of the document with its own field map.
// Stages that annotate a document work on a clone so the caller's input
// is never mutated.
func (d *Document) Clone() *Document {
	fields := make(map[string]any, len(d.Fields))
	for k, v := range d.Fields {
		fields[k] = v
	}
	return &Document{Fields: fields}
}

// MarshalJSON serializes the document to JSON format.
func (d *Document) MarshalJSON() ([]byte, error) {
	// Use alias to avoid infinite recursion
	type Alias Document
	return json.Marshal((*Alias)(d))
}

// UnmarshalJSON deserializes JSON data into the document.
func (d *Document) UnmarshalJSON(data []byte) error {
	// Use alias to avoid infinite recursion
	type Alias Document
	return json.Unmarshal(data, (*Alias)(d))
}
