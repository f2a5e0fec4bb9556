// Package stream provides typed, stateful batch handlers for the three
// record kinds StreamPipe ingests: sensor readings, financial transactions
// and discrete events.
//
// # Handlers
//
// Each handler implements the Handler interface (ProcessBatch, FilterData,
// Stats) and owns private running aggregate state:
//
//   - SensorHandler: reading count and last seen temperature
//   - TransactionHandler: buy and sell totals (net flow = buys − sells)
//   - EventHandler: event count and error-marker count
//
// Batch items are delimited strings of the form "<kind>:<value>"
// (events use bare tokens). Commit policy is atomic-batch: the whole batch
// is validated before any aggregate state mutates, so a malformed batch
// reports a zero-result summary and leaves state untouched. Aggregate
// counters are therefore monotonically non-decreasing across successful
// batches. ProcessBatch never returns an error; failures surface as
// degenerate summaries plus a logged diagnostic.
//
// Handlers are single-owner and carry no internal locking. Each instance's
// state is private; nothing is shared across instances of the same kind.
//
// # Processor and Registry
//
// Processor is the safe execution boundary for running a handler against a
// batch. Registry creates handler instances from HandlerConfig via
// registered factories, generating an instance id when the configuration
// does not supply one.
package stream
