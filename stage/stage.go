// Package stage provides the processing stages that compose StreamPipe
// pipelines: input validation, shape transformation, and output rendering.
//
// Stages are stateless and hold no execution state between calls, so a
// single stage instance can be appended to any number of pipelines.
package stage

import "github.com/c360/streampipe/payload"

// Stage is a single transform step in a pipeline. Implementations must be
// stateless: Process may be called concurrently from different pipelines.
type Stage interface {
	// Name returns a stable identifier used in logs and metric labels.
	Name() string

	// Process transforms one payload into another. A returned error aborts
	// the owning pipeline's run (fail-fast).
	Process(p payload.Payload) (payload.Payload, error)
}
