// Package errors provides standardized error handling for StreamPipe
// components. It defines the error taxonomy shared by stages, pipelines,
// routers and stream handlers: classification, standard error variables,
// and helpers for consistent wrapping across the system.
package errors

import (
	"errors"
	"fmt"
)

// ErrorClass represents the classification of errors for handling purposes
type ErrorClass int

const (
	// ErrorValidation represents errors where input shape or emptiness
	// violates a precondition; always recoverable by the caller
	ErrorValidation ErrorClass = iota
	// ErrorFormat represents errors where input matches a known invalid
	// sentinel or an unrecognized shape requiring hard failure
	ErrorFormat
	// ErrorRouting represents errors where no registered pipeline matches
	// a requested format
	ErrorRouting
	// ErrorRender represents errors where an output stage received a
	// payload shape it cannot render
	ErrorRender
)

// String returns the string representation of ErrorClass
func (ec ErrorClass) String() string {
	switch ec {
	case ErrorValidation:
		return "validation"
	case ErrorFormat:
		return "format"
	case ErrorRouting:
		return "routing"
	case ErrorRender:
		return "render"
	default:
		return "unknown"
	}
}

// Standard error variables for common conditions
var (
	// Payload and batch errors
	ErrEmptyPayload   = errors.New("empty payload")
	ErrMalformedBatch = errors.New("malformed batch item")
	ErrInvalidFormat  = errors.New("invalid data format")
	ErrUnrenderable   = errors.New("unrenderable payload shape")

	// Routing errors
	ErrNoPipeline = errors.New("no suitable pipeline found")

	// Configuration and registry errors
	ErrInvalidConfig = errors.New("invalid configuration")
	ErrMissingConfig = errors.New("missing required configuration")
	ErrDuplicateName = errors.New("name already registered")
	ErrUnknownKind   = errors.New("unknown handler kind")
)

// ClassifiedError wraps an error with its classification
type ClassifiedError struct {
	Class     ErrorClass
	Err       error
	Message   string
	Component string
	Operation string
}

// Error implements the error interface
func (ce *ClassifiedError) Error() string {
	if ce.Message != "" {
		return ce.Message
	}
	return ce.Err.Error()
}

// Unwrap returns the underlying error
func (ce *ClassifiedError) Unwrap() error {
	return ce.Err
}

// IsValidation checks if an error is a recoverable validation failure
func IsValidation(err error) bool {
	if err == nil {
		return false
	}

	var ce *ClassifiedError
	if errors.As(err, &ce) {
		return ce.Class == ErrorValidation
	}

	return errors.Is(err, ErrEmptyPayload) ||
		errors.Is(err, ErrMalformedBatch) ||
		errors.Is(err, ErrInvalidConfig) ||
		errors.Is(err, ErrMissingConfig)
}

// IsFormat checks if an error is a hard format failure
func IsFormat(err error) bool {
	if err == nil {
		return false
	}

	var ce *ClassifiedError
	if errors.As(err, &ce) {
		return ce.Class == ErrorFormat
	}

	return errors.Is(err, ErrInvalidFormat)
}

// IsRouting checks if an error is a pipeline dispatch miss
func IsRouting(err error) bool {
	if err == nil {
		return false
	}

	var ce *ClassifiedError
	if errors.As(err, &ce) {
		return ce.Class == ErrorRouting
	}

	return errors.Is(err, ErrNoPipeline)
}

// IsRender checks if an error is an output rendering failure
func IsRender(err error) bool {
	if err == nil {
		return false
	}

	var ce *ClassifiedError
	if errors.As(err, &ce) {
		return ce.Class == ErrorRender
	}

	return errors.Is(err, ErrUnrenderable)
}

// Classify returns the error class for an error
func Classify(err error) ErrorClass {
	if IsFormat(err) {
		return ErrorFormat
	}
	if IsRouting(err) {
		return ErrorRouting
	}
	if IsRender(err) {
		return ErrorRender
	}

	// Default to validation for unknown errors; validation failures are
	// always recoverable, so misclassification never escalates a failure
	return ErrorValidation
}

// newClassified creates a new classified error
// This is an internal helper - use WrapValidation(), WrapFormat(),
// WrapRouting(), or WrapRender() instead.
func newClassified(class ErrorClass, err error, component, operation, message string) *ClassifiedError {
	return &ClassifiedError{
		Class:     class,
		Err:       err,
		Message:   message,
		Component: component,
		Operation: operation,
	}
}

// Wrap creates a standardized error with context following the pattern:
// "component.method: action failed: %w"
func Wrap(err error, component, method, action string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s.%s: %s failed: %w", component, method, action, err)
}

// WrapValidation wraps an error as a validation failure with context
func WrapValidation(err error, component, method, action string) error {
	if err == nil {
		return nil
	}
	wrappedErr := Wrap(err, component, method, action)
	return newClassified(ErrorValidation, wrappedErr, component, method, wrappedErr.Error())
}

// WrapFormat wraps an error as a format failure with context
func WrapFormat(err error, component, method, action string) error {
	if err == nil {
		return nil
	}
	wrappedErr := Wrap(err, component, method, action)
	return newClassified(ErrorFormat, wrappedErr, component, method, wrappedErr.Error())
}

// WrapRouting wraps an error as a routing failure with context
func WrapRouting(err error, component, method, action string) error {
	if err == nil {
		return nil
	}
	wrappedErr := Wrap(err, component, method, action)
	return newClassified(ErrorRouting, wrappedErr, component, method, wrappedErr.Error())
}

// WrapRender wraps an error as a rendering failure with context
func WrapRender(err error, component, method, action string) error {
	if err == nil {
		return nil
	}
	wrappedErr := Wrap(err, component, method, action)
	return newClassified(ErrorRender, wrappedErr, component, method, wrappedErr.Error())
}
