package payload_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/streampipe/payload"
)

func TestDocument_Kind(t *testing.T) {
	doc := payload.NewDocument(map[string]any{"sensor": "temp"})
	assert.Equal(t, payload.KindDocument, doc.Kind())
}

func TestDocument_Validate(t *testing.T) {
	tests := []struct {
		name      string
		doc       *payload.Document
		wantError bool
	}{
		{
			name:      "valid document with fields",
			doc:       payload.NewDocument(map[string]any{"sensor": "temp", "value": 23.5}),
			wantError: false,
		},
		{
			name:      "valid document with empty map",
			doc:       payload.NewDocument(map[string]any{}),
			wantError: false,
		},
		{
			name:      "invalid document with nil fields",
			doc:       &payload.Document{Fields: nil},
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.doc.Validate()
			if tt.wantError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDocument_FieldAccessors(t *testing.T) {
	doc := payload.NewDocument(map[string]any{
		"sensor": "temp",
		"value":  23.5,
		"count":  3,
		"nested": map[string]any{"inner": "x"},
	})

	assert.True(t, doc.Has("sensor"))
	assert.False(t, doc.Has("missing"))

	v, ok := doc.Field("nested")
	require.True(t, ok)
	assert.NotNil(t, v)

	s, ok := doc.StringField("sensor")
	require.True(t, ok)
	assert.Equal(t, "temp", s)

	_, ok = doc.StringField("value")
	assert.False(t, ok)

	f, ok := doc.NumericField("value")
	require.True(t, ok)
	assert.Equal(t, 23.5, f)

	f, ok = doc.NumericField("count")
	require.True(t, ok)
	assert.Equal(t, 3.0, f)

	_, ok = doc.NumericField("sensor")
	assert.False(t, ok)

	_, ok = doc.NumericField("missing")
	assert.False(t, ok)
}

func TestDocument_Clone(t *testing.T) {
	original := payload.NewDocument(map[string]any{"sensor": "temp"})
	clone := original.Clone()

	clone.Fields["status"] = "valid"

	assert.True(t, clone.Has("status"))
	assert.False(t, original.Has("status"), "mutating a clone must not touch the original")
}

func TestTable_Validate(t *testing.T) {
	tests := []struct {
		name      string
		table     *payload.Table
		wantError bool
	}{
		{"valid table", payload.NewTable([]string{"user", "action"}, 1), false},
		{"empty headers slice", payload.NewTable([]string{}, 0), false},
		{"nil headers", &payload.Table{Headers: nil, Count: 1}, true},
		{"negative count", &payload.Table{Headers: []string{"a"}, Count: -1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.table.Validate()
			if tt.wantError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestKinds_AreDistinct(t *testing.T) {
	kinds := map[payload.Kind]bool{
		payload.NewDocument(nil).Kind():       true,
		payload.NewText("x").Kind():           true,
		payload.NewTable([]string{}, 0).Kind(): true,
		payload.NewSummary("done").Kind():     true,
	}
	assert.Len(t, kinds, 4)
}

func TestDocument_RoundTrip(t *testing.T) {
	original := payload.NewDocument(map[string]any{
		"sensor": "temp",
		"value":  23.5,
		"unit":   "C",
	})

	data, err := json.Marshal(original)
	require.NoError(t, err)

	var decoded payload.Document
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, "temp", decoded.Fields["sensor"])
	assert.Equal(t, 23.5, decoded.Fields["value"])
}

func TestTable_RoundTrip(t *testing.T) {
	original := payload.NewTable([]string{"user", "action", "timestamp"}, 1)

	data, err := json.Marshal(original)
	require.NoError(t, err)

	var decoded payload.Table
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, original.Headers, decoded.Headers)
	assert.Equal(t, original.Count, decoded.Count)
}
