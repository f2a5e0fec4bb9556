package stream

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/c360/streampipe/errors"
	"github.com/c360/streampipe/metric"
	"github.com/c360/streampipe/types"
)

// DefaultLargeTransactionThreshold is the magnitude above which a
// transaction counts as "large" for filtering. Overridable through
// TransactionConfig.
const DefaultLargeTransactionThreshold = 500

// Criteria recognized by TransactionHandler.FilterData beyond plain
// substring matching.
const (
	CriteriaLarge     = "large"
	CriteriaHighValue = "high_value"
)

// Transaction actions recognized in batch items.
const (
	actionBuy  = "buy"
	actionSell = "sell"
)

// TransactionConfig holds configuration for a transaction handler.
type TransactionConfig struct {
	LargeThreshold int `json:"large_threshold"` // Magnitude above which a transaction is "large"
}

// DefaultTransactionConfig returns the default transaction handler
// configuration.
func DefaultTransactionConfig() TransactionConfig {
	return TransactionConfig{LargeThreshold: DefaultLargeTransactionThreshold}
}

// Validate ensures the configuration is usable.
func (c TransactionConfig) Validate() error {
	if c.LargeThreshold <= 0 {
		return errors.WrapValidation(errors.ErrInvalidConfig, "TransactionConfig", "Validate",
			fmt.Sprintf("large threshold must be positive, got %d", c.LargeThreshold))
	}
	return nil
}

// TransactionHandler aggregates buy/sell operations and tracks signed net
// flow (buys − sells).
type TransactionHandler struct {
	id             string
	status         types.Status
	buyTotal       int
	sellTotal      int
	largeThreshold int
	logger         *slog.Logger
	metrics        *metric.Metrics
}

// NewTransactionHandler creates a transaction handler with the default
// configuration.
func NewTransactionHandler(id string, opts ...Option) *TransactionHandler {
	h, _ := NewTransactionHandlerWithConfig(id, DefaultTransactionConfig(), opts...)
	return h
}

// NewTransactionHandlerWithConfig creates a transaction handler with a
// custom configuration.
func NewTransactionHandlerWithConfig(
	id string, config TransactionConfig, opts ...Option,
) (*TransactionHandler, error) {
	if err := config.Validate(); err != nil {
		return nil, errors.Wrap(err, "TransactionHandler", "NewTransactionHandlerWithConfig", "config validation")
	}

	o := applyOptions(opts)
	h := &TransactionHandler{
		id:             id,
		status:         types.StatusActive,
		largeThreshold: config.LargeThreshold,
		logger:         o.logger,
		metrics:        o.metrics,
	}
	if h.metrics != nil {
		h.metrics.RecordHandlerState(h.id, true)
	}
	return h, nil
}

// ProcessBatch validates and aggregates a batch of transactions. Every
// item must be "buy:<int>" or "sell:<int>" with a non-negative magnitude;
// a single malformed item rejects the whole batch before any state
// mutates. The summary reports the batch's operation count and signed net
// flow, with an explicit "+" prefix for non-negative flow.
func (h *TransactionHandler) ProcessBatch(batch []string) string {
	buys, sells, err := h.parseBatch(batch)
	if err != nil {
		h.logger.Warn("Transaction batch rejected",
			"handler", h.id,
			"batch_size", len(batch),
			"error", err)
		if h.metrics != nil {
			h.metrics.RecordBatch(h.id, "rejected")
			h.metrics.RecordError(h.id, "validation")
		}
		return "Transaction analysis: 0 operations"
	}

	// Commit
	h.buyTotal += buys
	h.sellTotal += sells

	if h.metrics != nil {
		h.metrics.RecordBatch(h.id, "ok")
		h.metrics.RecordItems(h.id, len(batch))
	}

	netFlow := buys - sells
	sign := ""
	if netFlow >= 0 {
		sign = "+"
	}
	return fmt.Sprintf("Transaction analysis: %d operations, net flow: %s%d units", len(batch), sign, netFlow)
}

// parseBatch validates every item and sums buy and sell magnitudes.
// Nothing is committed here.
func (h *TransactionHandler) parseBatch(batch []string) (buys, sells int, err error) {
	for i, item := range batch {
		action, raw, ok := splitItem(item)
		if !ok {
			return 0, 0, fmt.Errorf("item %d: %q is not a delimited operation", i, item)
		}
		value, convErr := strconv.Atoi(raw)
		if convErr != nil || value < 0 {
			return 0, 0, fmt.Errorf("item %d: %q is not a non-negative magnitude", i, raw)
		}
		switch action {
		case actionBuy:
			buys += value
		case actionSell:
			sells += value
		default:
			return 0, 0, fmt.Errorf("item %d: unrecognized action %q", i, action)
		}
	}
	return buys, sells, nil
}

// FilterData returns items matching criteria. The "large" and
// "high_value" criteria keep operations whose magnitude exceeds the
// configured threshold; an empty criteria returns the batch unchanged.
func (h *TransactionHandler) FilterData(batch []string, criteria string) []string {
	if criteria == "" {
		return batch
	}
	if criteria == CriteriaLarge || criteria == CriteriaHighValue {
		filtered := make([]string, 0, len(batch))
		for _, item := range batch {
			_, raw, ok := splitItem(item)
			if !ok {
				continue
			}
			value, err := strconv.Atoi(raw)
			if err != nil {
				continue
			}
			if value > h.largeThreshold {
				filtered = append(filtered, item)
			}
		}
		return filtered
	}
	return filterBySubstring(batch, criteria)
}

// Stats returns a snapshot of the handler's identity.
func (h *TransactionHandler) Stats() Stats {
	return Stats{ID: h.id, Status: h.status, Type: types.HandlerKindTransaction}
}

// NetFlow returns the cumulative signed net flow (buys − sells) across
// all successful batches.
func (h *TransactionHandler) NetFlow() int {
	return h.buyTotal - h.sellTotal
}

// BuyTotal returns the cumulative buy magnitude.
func (h *TransactionHandler) BuyTotal() int {
	return h.buyTotal
}

// SellTotal returns the cumulative sell magnitude.
func (h *TransactionHandler) SellTotal() int {
	return h.sellTotal
}

// parseTransactionConfig decodes a raw factory config, falling back to
// defaults when none is supplied.
func parseTransactionConfig(rawConfig json.RawMessage) (TransactionConfig, error) {
	config := DefaultTransactionConfig()
	if len(rawConfig) == 0 {
		return config, nil
	}
	if err := json.Unmarshal(rawConfig, &config); err != nil {
		return TransactionConfig{}, errors.WrapValidation(err, "TransactionHandler", "parseTransactionConfig", "config unmarshal")
	}
	if config.LargeThreshold == 0 {
		config.LargeThreshold = DefaultLargeTransactionThreshold
	}
	return config, nil
}
