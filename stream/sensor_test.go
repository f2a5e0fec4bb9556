package stream_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/streampipe/stream"
	"github.com/c360/streampipe/types"
)

func TestSensorHandler_ProcessBatch(t *testing.T) {
	h := stream.NewSensorHandler("SENSOR_001")

	summary := h.ProcessBatch([]string{"temp:22.5", "humidity:65", "pressure:1013"})

	assert.Contains(t, summary, "3 readings processed")
	assert.Equal(t, 3, h.ReadingCount())

	temp, ok := h.LastTemperature()
	require.True(t, ok)
	assert.Equal(t, 22.5, temp)
}

func TestSensorHandler_LastTemperatureTracksBatchOrder(t *testing.T) {
	h := stream.NewSensorHandler("SENSOR_001")

	h.ProcessBatch([]string{"temp:20.0", "temp:25.0", "humidity:60"})

	temp, ok := h.LastTemperature()
	require.True(t, ok)
	assert.Equal(t, 25.0, temp, "last temperature is the final temp in batch order, not an average")
}

func TestSensorHandler_CountMonotonicAcrossBatches(t *testing.T) {
	h := stream.NewSensorHandler("SENSOR_001")

	h.ProcessBatch([]string{"temp:22.5"})
	h.ProcessBatch([]string{"humidity:65", "pressure:1013"})
	assert.Equal(t, 3, h.ReadingCount())

	// Rejected batches must not decrease or increase the count
	h.ProcessBatch([]string{"temp:not-a-number"})
	assert.Equal(t, 3, h.ReadingCount())
}

func TestSensorHandler_MalformedBatchLeavesStateUnchanged(t *testing.T) {
	h := stream.NewSensorHandler("SENSOR_001")
	h.ProcessBatch([]string{"temp:18.0"})

	tests := []struct {
		name  string
		batch []string
	}{
		{"missing delimiter", []string{"temp:20.0", "humidity65"}},
		{"unrecognized field", []string{"temp:20.0", "voltage:3.3"}},
		{"non-numeric value", []string{"temp:20.0", "pressure:high"}},
		{"empty value", []string{"temp:"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			summary := h.ProcessBatch(tt.batch)
			assert.Equal(t, "Sensor analysis: 0 readings processed", summary)
			assert.Equal(t, 1, h.ReadingCount(), "state must stay untouched after a rejected batch")

			temp, ok := h.LastTemperature()
			require.True(t, ok)
			assert.Equal(t, 18.0, temp, "a rejected batch must not move the last temperature")
		})
	}
}

func TestSensorHandler_NoTemperatureInBatch(t *testing.T) {
	h := stream.NewSensorHandler("SENSOR_001")

	summary := h.ProcessBatch([]string{"humidity:65", "pressure:1013"})
	assert.Equal(t, "Sensor analysis: 2 readings processed", summary)

	_, ok := h.LastTemperature()
	assert.False(t, ok)
}

func TestSensorHandler_FilterData(t *testing.T) {
	h := stream.NewSensorHandler("SENSOR_001")
	batch := []string{"temp:22.5", "alert:overheat", "crit:pressure-drop", "humidity:65"}

	t.Run("empty criteria is identity", func(t *testing.T) {
		got := h.FilterData(batch, "")
		if diff := cmp.Diff(batch, got); diff != "" {
			t.Errorf("filter mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("critical criteria", func(t *testing.T) {
		got := h.FilterData(batch, stream.CriteriaCritical)
		want := []string{"alert:overheat", "crit:pressure-drop"}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("filter mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("substring criteria", func(t *testing.T) {
		got := h.FilterData(batch, "humidity")
		want := []string{"humidity:65"}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("filter mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestSensorHandler_Stats(t *testing.T) {
	h := stream.NewSensorHandler("SENSOR_001")

	stats := h.Stats()
	assert.Equal(t, "SENSOR_001", stats.ID)
	assert.Equal(t, types.StatusActive, stats.Status)
	assert.Equal(t, types.HandlerKindSensor, stats.Type)
}

func TestSensorHandler_InstanceStateIsPrivate(t *testing.T) {
	first := stream.NewSensorHandler("SENSOR_001")
	second := stream.NewSensorHandler("SENSOR_002")

	first.ProcessBatch([]string{"temp:22.5", "temp:30.0"})

	assert.Equal(t, 2, first.ReadingCount())
	assert.Equal(t, 0, second.ReadingCount(), "aggregate state must not be shared across instances")
	_, ok := second.LastTemperature()
	assert.False(t, ok)
}
