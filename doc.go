// Package streampipe provides typed batch stream handling and generic
// multi-stage data pipelines with format-based routing.
//
// # Architecture
//
// StreamPipe has two independent processing surfaces:
//
// Stream handlers (package stream) ingest batches of delimited records and
// maintain per-handler running aggregates:
//   - SensorHandler: temp/humidity/pressure readings, reading count, last
//     temperature
//   - TransactionHandler: buy/sell operations, signed net flow
//   - EventHandler: event count, error-marker count
//
// Pipelines (packages payload, stage, pipeline, router) process a single
// payload through an ordered list of stages:
//
//	raw payload → InputStage → TransformStage → OutputStage → summary
//
// A Router holds pipelines in registration order, dispatches payloads to
// the first pipeline matching a declared format, and executes pipeline
// chains where each pipeline consumes the previous one's output. A failed
// chain reports its error and hands back the last good value instead of
// aborting the caller.
//
// # Design constraints
//
// All processing is synchronous and in-memory over already-materialized
// batches; there is no persistence, transport, or cross-instance shared
// state. Instances are single-owner: callers sharing a handler or pipeline
// across goroutines must serialize access themselves. The router's registry
// carries its own lock so registration and dispatch stay safe if shared.
package streampipe
