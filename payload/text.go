package payload

import "encoding/json"

// Text is a raw string payload, typically an undecoded CSV-like record or
// a free-form stream description.
type Text struct {
	Value string `json:"value"`
}

// NewText creates a new Text payload.
func NewText(value string) *Text {
	return &Text{Value: value}
}

// Kind returns KindText.
func (t *Text) Kind() Kind {
	return KindText
}

// Validate always succeeds; emptiness is a stage precondition, not a
// structural defect of the payload itself.
func (t *Text) Validate() error {
	return nil
}

// MarshalJSON serializes the text payload to JSON format.
func (t *Text) MarshalJSON() ([]byte, error) {
	// Use alias to avoid infinite recursion
	type Alias Text
	return json.Marshal((*Alias)(t))
}

// UnmarshalJSON deserializes JSON data into the text payload.
func (t *Text) UnmarshalJSON(data []byte) error {
	// Use alias to avoid infinite recursion
	type Alias Text
	return json.Unmarshal(data, (*Alias)(t))
}
