package stream_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/streampipe/errors"
	"github.com/c360/streampipe/metric"
	"github.com/c360/streampipe/stream"
)

func TestProcessor_ProcessStreamBatch(t *testing.T) {
	p := stream.NewProcessor()
	h := stream.NewSensorHandler("SENSOR_001")

	summary, err := p.ProcessStreamBatch(h, []string{"temp:22.5", "humidity:65"})

	require.NoError(t, err)
	assert.Equal(t, "Sensor analysis: 2 readings processed, last temp: 22.5°C", summary)
}

func TestProcessor_NilHandler(t *testing.T) {
	p := stream.NewProcessor()

	summary, err := p.ProcessStreamBatch(nil, []string{"temp:22.5"})

	require.Error(t, err)
	assert.Empty(t, summary)
	assert.True(t, errors.IsValidation(err))
}

func TestProcessor_RejectedBatchIsNotAnError(t *testing.T) {
	p := stream.NewProcessor()
	h := stream.NewSensorHandler("SENSOR_001")

	// Handlers absorb batch-level problems; the processor only fails on a
	// missing handler.
	summary, err := p.ProcessStreamBatch(h, []string{"temp:garbage"})

	require.NoError(t, err)
	assert.Equal(t, "Sensor analysis: 0 readings processed", summary)
}

func TestProcessor_MetricsOnHandlers(t *testing.T) {
	metrics := metric.NewMetrics()
	p := stream.NewProcessor(stream.WithMetrics(metrics))
	h := stream.NewTransactionHandler("TXN_001", stream.WithMetrics(metrics))

	_, err := p.ProcessStreamBatch(h, []string{"buy:100", "sell:40"})
	require.NoError(t, err)
	_, err = p.ProcessStreamBatch(h, []string{"buy:oops"})
	require.NoError(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.BatchesProcessed.WithLabelValues("TXN_001", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.BatchesProcessed.WithLabelValues("TXN_001", "rejected")))
	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.ItemsAggregated.WithLabelValues("TXN_001")))
}
