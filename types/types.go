// Package types contains shared domain types used across StreamPipe packages
package types

import (
	"encoding/json"

	"github.com/c360/streampipe/errors"
)

// HandlerKind represents the category of a stream handler
type HandlerKind string

// Handler kind constants
const (
	HandlerKindSensor      HandlerKind = "sensor"
	HandlerKindTransaction HandlerKind = "transaction"
	HandlerKindEvent       HandlerKind = "event"
)

// String implements fmt.Stringer for HandlerKind
func (hk HandlerKind) String() string {
	return string(hk)
}

// Status represents the lifecycle state of a stream handler
type Status string

// Handler status constants
const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// String implements fmt.Stringer for Status
func (s Status) String() string {
	return string(s)
}

// HandlerConfig provides configuration for creating a handler instance.
// The Config field carries handler-specific options (thresholds, markers)
// as raw JSON parsed by the handler's own factory.
type HandlerConfig struct {
	Kind    HandlerKind     `json:"kind"`    // Handler kind (sensor/transaction/event)
	ID      string          `json:"id"`      // Instance identifier; generated when empty
	Enabled bool            `json:"enabled"` // Whether the handler is enabled
	Config  json.RawMessage `json:"config"`  // Handler-specific configuration
}

// Validate ensures the handler configuration is valid. The kind set is
// open; whether a kind has a registered factory is decided at creation
// time, not here.
func (c HandlerConfig) Validate() error {
	if c.Kind == "" {
		return errors.WrapValidation(
			errors.ErrMissingConfig,
			"HandlerConfig",
			"Validate",
			"handler kind cannot be empty",
		)
	}
	return nil
}
