package stream

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/c360/streampipe/errors"
	"github.com/c360/streampipe/metric"
	"github.com/c360/streampipe/types"
)

// Dependencies carries the shared collaborators a handler factory needs.
type Dependencies struct {
	Logger  *slog.Logger
	Metrics *metric.Metrics
}

// GetLogger returns the configured logger, falling back to slog.Default.
func (d Dependencies) GetLogger() *slog.Logger {
	if d.Logger != nil {
		return d.Logger
	}
	return slog.Default()
}

// options converts the dependencies into handler construction options.
func (d Dependencies) options() []Option {
	opts := []Option{WithLogger(d.GetLogger())}
	if d.Metrics != nil {
		opts = append(opts, WithMetrics(d.Metrics))
	}
	return opts
}

// Factory creates a handler instance from raw JSON configuration and
// dependencies. The factory parses its own config; construction performs
// no I/O.
type Factory func(id string, rawConfig json.RawMessage, deps Dependencies) (Handler, error)

// Registration holds factory and metadata for a handler kind.
type Registration struct {
	Kind        types.HandlerKind `json:"kind"`
	Description string            `json:"description"`
	Factory     Factory           `json:"-"`
}

// Registry manages handler factories and instances. It provides
// thread-safe registration and lookup of factories (for creation) and
// instances (for discovery).
type Registry struct {
	factories map[types.HandlerKind]*Registration
	instances map[string]Handler
	mu        sync.RWMutex
}

// NewRegistry creates a new empty handler registry.
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[types.HandlerKind]*Registration),
		instances: make(map[string]Handler),
	}
}

// RegisterFactory registers a handler factory for a kind.
// Returns an error if the kind already has a factory.
func (r *Registry) RegisterFactory(registration *Registration) error {
	if registration == nil {
		return errors.WrapValidation(errors.ErrInvalidConfig, "Registry", "RegisterFactory", "registration validation")
	}
	if registration.Kind == "" {
		return errors.WrapValidation(errors.ErrMissingConfig, "Registry", "RegisterFactory", "kind validation")
	}
	if registration.Factory == nil {
		return errors.WrapValidation(errors.ErrInvalidConfig, "Registry", "RegisterFactory", "factory function validation")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[registration.Kind]; exists {
		return errors.WrapValidation(
			fmt.Errorf("%w: factory for kind %q", errors.ErrDuplicateName, registration.Kind),
			"Registry", "RegisterFactory", "duplicate factory check")
	}

	r.factories[registration.Kind] = registration
	return nil
}

// CreateHandler creates and registers a handler instance from
// configuration. When the configuration carries no id, one is generated.
func (r *Registry) CreateHandler(config types.HandlerConfig, deps Dependencies) (Handler, error) {
	if err := config.Validate(); err != nil {
		return nil, errors.Wrap(err, "Registry", "CreateHandler", "config validation")
	}

	id := config.ID
	if id == "" {
		id = uuid.NewString()
	}

	r.mu.RLock()
	registration, exists := r.factories[config.Kind]
	r.mu.RUnlock()

	if !exists {
		return nil, errors.WrapValidation(
			fmt.Errorf("%w: %q", errors.ErrUnknownKind, config.Kind),
			"Registry", "CreateHandler", "factory lookup")
	}

	handler, err := registration.Factory(id, config.Config, deps)
	if err != nil {
		return nil, errors.Wrap(err, "Registry", "CreateHandler", "factory execution")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.instances[id]; exists {
		return nil, errors.WrapValidation(
			fmt.Errorf("%w: instance %q", errors.ErrDuplicateName, id),
			"Registry", "CreateHandler", "duplicate instance check")
	}
	r.instances[id] = handler

	return handler, nil
}

// Handler returns the instance registered under id.
func (r *Registry) Handler(id string) (Handler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	h, ok := r.instances[id]
	return h, ok
}

// ListStats returns a snapshot of every registered instance, sorted by id
// for deterministic iteration.
func (r *Registry) ListStats() []Stats {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stats := make([]Stats, 0, len(r.instances))
	for _, h := range r.instances {
		stats = append(stats, h.Stats())
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i].ID < stats[j].ID })
	return stats
}

// RegisterBuiltins registers the factories for the three built-in handler
// kinds.
func RegisterBuiltins(r *Registry) error {
	registrations := []*Registration{
		{
			Kind:        types.HandlerKindSensor,
			Description: "Environmental sensor reading aggregator",
			Factory: func(id string, _ json.RawMessage, deps Dependencies) (Handler, error) {
				return NewSensorHandler(id, deps.options()...), nil
			},
		},
		{
			Kind:        types.HandlerKindTransaction,
			Description: "Financial transaction net flow aggregator",
			Factory: func(id string, rawConfig json.RawMessage, deps Dependencies) (Handler, error) {
				config, err := parseTransactionConfig(rawConfig)
				if err != nil {
					return nil, err
				}
				return NewTransactionHandlerWithConfig(id, config, deps.options()...)
			},
		},
		{
			Kind:        types.HandlerKindEvent,
			Description: "System event and error marker counter",
			Factory: func(id string, rawConfig json.RawMessage, deps Dependencies) (Handler, error) {
				config, err := parseEventConfig(rawConfig)
				if err != nil {
					return nil, err
				}
				return NewEventHandlerWithConfig(id, config, deps.options()...)
			},
		},
	}

	for _, registration := range registrations {
		if err := r.RegisterFactory(registration); err != nil {
			return err
		}
	}
	return nil
}
