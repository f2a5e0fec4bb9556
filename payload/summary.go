package payload

import "encoding/json"

// Summary is the rendered, human-readable result produced by the output
// stage. It is terminal in the sense that no built-in stage consumes it,
// but chained pipelines may still pass it through.
type Summary struct {
	Rendered string `json:"rendered"`
}

// NewSummary creates a new Summary payload.
func NewSummary(rendered string) *Summary {
	return &Summary{Rendered: rendered}
}

// Kind returns KindSummary.
func (s *Summary) Kind() Kind {
	return KindSummary
}

// Validate always succeeds.
func (s *Summary) Validate() error {
	return nil
}

// MarshalJSON serializes the summary payload to JSON format.
func (s *Summary) MarshalJSON() ([]byte, error) {
	// Use alias to avoid infinite recursion
	type Alias Summary
	return json.Marshal((*Alias)(s))
}

// UnmarshalJSON deserializes JSON data into the summary payload.
func (s *Summary) UnmarshalJSON(data []byte) error {
	// Use alias to avoid infinite recursion
	type Alias Summary
	return json.Unmarshal(data, (*Alias)(s))
}
