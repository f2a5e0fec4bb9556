// Package metric provides Prometheus metrics management for StreamPipe.
//
// The MetricsRegistry owns a private prometheus.Registry and tracks every
// registered collector under a "subsystem.metric" key so duplicate
// registrations fail early with a classified error. Core platform metrics
// (batches, payloads, stage durations, errors) are created once per
// registry; components register their own domain metrics on top through
// the MetricsRegistrar interface.
//
// All metrics use the "streampipe" namespace.
package metric
