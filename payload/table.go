package payload

import (
	"encoding/json"

	"github.com/c360/streampipe/errors"
)

// Table is a normalized CSV-shaped record produced by the transform stage
// when it splits a delimited Text payload.
type Table struct {
	Headers []string `json:"headers"`
	Count   int      `json:"count"`
}

// NewTable creates a new Table payload from split fields.
func NewTable(headers []string, count int) *Table {
	return &Table{Headers: headers, Count: count}
}

// Kind returns KindTable.
func (t *Table) Kind() Kind {
	return KindTable
}

// Validate ensures the header list is present and the count non-negative.
func (t *Table) Validate() error {
	if t.Headers == nil {
		return errors.WrapValidation(errors.ErrEmptyPayload, "Table", "Validate", "headers cannot be nil")
	}
	if t.Count < 0 {
		return errors.WrapValidation(errors.ErrMalformedBatch, "Table", "Validate", "count cannot be negative")
	}
	return nil
}

// MarshalJSON serializes the table payload to JSON format.
func (t *Table) MarshalJSON() ([]byte, error) {
	// Use alias to avoid infinite recursion
	type Alias Table
	return json.Marshal((*Alias)(t))
}

// UnmarshalJSON deserializes JSON data into the table payload.
func (t *Table) UnmarshalJSON(data []byte) error {
	// Use alias to avoid infinite recursion
	type Alias Table
	return json.Unmarshal(data, (*Alias)(t))
}
