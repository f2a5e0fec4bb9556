package router_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/streampipe/errors"
	"github.com/c360/streampipe/metric"
	"github.com/c360/streampipe/payload"
	"github.com/c360/streampipe/pipeline"
	"github.com/c360/streampipe/router"
	"github.com/c360/streampipe/stage"
)

func newStandardPipeline(id string, format pipeline.Format) *pipeline.Pipeline {
	p := pipeline.New(id, format)
	p.AddStage(stage.NewInputStage(nil))
	p.AddStage(stage.NewTransformStage(nil))
	p.AddStage(stage.NewOutputStage(nil))
	return p
}

func newStandardRouter(t *testing.T) *router.Router {
	t.Helper()
	r := router.New()
	require.NoError(t, r.RegisterMany(
		newStandardPipeline("JSON_001", pipeline.FormatJSON),
		newStandardPipeline("CSV_001", pipeline.FormatCSV),
		newStandardPipeline("STREAM_001", pipeline.FormatStream),
	))
	return r
}

func TestRouter_Register(t *testing.T) {
	r := router.New()
	assert.Equal(t, 0, r.PipelineCount())

	require.NoError(t, r.Register(newStandardPipeline("JSON_001", pipeline.FormatJSON)))
	assert.Equal(t, 1, r.PipelineCount())

	err := r.Register(nil)
	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))
}

func TestRouter_ProcessData(t *testing.T) {
	r := newStandardRouter(t)

	t.Run("json payload", func(t *testing.T) {
		doc := payload.NewDocument(map[string]any{
			"sensor": "temp",
			"value":  23.5,
			"unit":   "C",
		})
		out, err := r.ProcessData(doc, pipeline.FormatJSON)
		require.NoError(t, err)
		assert.Equal(t, "Processed temperature reading: 23.5°C (Normal range)",
			out.(*payload.Summary).Rendered)
	})

	t.Run("csv payload", func(t *testing.T) {
		out, err := r.ProcessData(payload.NewText("user,action,timestamp"), pipeline.FormatCSV)
		require.NoError(t, err)
		assert.Equal(t, "User activity logged: 1 actions processed",
			out.(*payload.Summary).Rendered)
	})

	t.Run("stream payload", func(t *testing.T) {
		out, err := r.ProcessData(payload.NewText("Real-time sensor stream"), pipeline.FormatStream)
		require.NoError(t, err)
		assert.Contains(t, out.(*payload.Summary).Rendered, "Stream summary")
	})
}

func TestRouter_ProcessData_UnknownFormat(t *testing.T) {
	r := newStandardRouter(t)

	_, err := r.ProcessData(payload.NewText("<xml/>"), pipeline.Format("xml"))
	require.Error(t, err)
	assert.True(t, errors.IsRouting(err))
	assert.Contains(t, err.Error(), "xml", "routing errors must name the requested format")
}

func TestRouter_FirstMatchWins(t *testing.T) {
	first := pipeline.New("first", pipeline.FormatJSON) // empty: returns input unchanged
	second := newStandardPipeline("second", pipeline.FormatJSON)

	r := router.New()
	require.NoError(t, r.RegisterMany(first, second))

	doc := payload.NewDocument(map[string]any{"sensor": "temp"})
	out, err := r.ProcessData(doc, pipeline.FormatJSON)
	require.NoError(t, err)
	assert.Same(t, payload.Payload(doc), out,
		"dispatch must pick the first pipeline in registration order")
}

func TestRouter_ExecuteChain(t *testing.T) {
	r := newStandardRouter(t)

	chain := []*pipeline.Pipeline{
		newStandardPipeline("A", pipeline.FormatJSON),
		newStandardPipeline("B", pipeline.FormatCSV),
		newStandardPipeline("C", pipeline.FormatStream),
	}

	out, err := r.ExecuteChain(payload.NewDocument(map[string]any{
		"sensor": "start_chain",
		"value":  100,
		"unit":   "F",
	}), chain)
	require.NoError(t, err)

	// A renders a summary; B and C re-render it through the generic branch.
	summary, ok := out.(*payload.Summary)
	require.True(t, ok)
	assert.Contains(t, summary.Rendered, "Stream summary")
}

func TestRouter_ExecuteChain_FailureReturnsLastGoodValue(t *testing.T) {
	r := newStandardRouter(t)

	healthy := newStandardPipeline("healthy", pipeline.FormatJSON)

	poisoned := pipeline.New("poisoned", pipeline.FormatCSV)
	poisoned.AddStage(rejectAllStage{})

	doc := payload.NewDocument(map[string]any{"sensor": "temp", "value": 23.5})

	firstOut, err := healthy.Process(doc)
	require.NoError(t, err)

	out, err := r.ExecuteChain(doc, []*pipeline.Pipeline{healthy, poisoned})
	require.Error(t, err, "the chain failure must be reported")
	require.NotNil(t, out, "the last good value must be returned")
	assert.Equal(t, firstOut.(*payload.Summary).Rendered, out.(*payload.Summary).Rendered,
		"chain must return pipeline 1's output when pipeline 2 fails")
}

func TestRouter_ExecuteChain_FirstPipelineFails(t *testing.T) {
	r := newStandardRouter(t)

	poisoned := pipeline.New("poisoned", pipeline.FormatJSON)
	poisoned.AddStage(rejectAllStage{})

	initial := payload.NewText("input")
	out, err := r.ExecuteChain(initial, []*pipeline.Pipeline{poisoned})
	require.Error(t, err)
	assert.Same(t, payload.Payload(initial), out,
		"when the first pipeline fails the initial data is the last good value")
}

func TestRouter_ExecuteChain_Empty(t *testing.T) {
	r := router.New()

	initial := payload.NewText("untouched")
	out, err := r.ExecuteChain(initial, nil)
	require.NoError(t, err)
	assert.Same(t, payload.Payload(initial), out)
}

func TestRouter_WithMetrics(t *testing.T) {
	registry := metric.NewMetricsRegistry()
	r, err := router.NewWithMetrics(registry, router.WithName("edge"))
	require.NoError(t, err)
	require.NoError(t, r.Register(newStandardPipeline("JSON_001", pipeline.FormatJSON)))

	_, err = r.ProcessData(payload.NewText("a,b"), pipeline.FormatJSON)
	require.NoError(t, err)
	_, err = r.ProcessData(payload.NewText("x"), pipeline.Format("xml"))
	require.Error(t, err)

	families, err := registry.PrometheusRegistry().Gather()
	require.NoError(t, err)

	var hits, misses float64
	for _, fam := range families {
		if fam.GetName() != "streampipe_router_dispatch_total" {
			continue
		}
		for _, m := range fam.GetMetric() {
			status := ""
			for _, l := range m.GetLabel() {
				if l.GetName() == "status" {
					status = l.GetValue()
				}
			}
			switch status {
			case "hit":
				hits += m.GetCounter().GetValue()
			case "miss":
				misses += m.GetCounter().GetValue()
			}
		}
	}
	assert.Equal(t, 1.0, hits)
	assert.Equal(t, 1.0, misses)
}

// rejectAllStage fails every payload; used to poison chain pipelines.
type rejectAllStage struct{}

func (rejectAllStage) Name() string { return "reject-all" }

func (rejectAllStage) Process(payload.Payload) (payload.Payload, error) {
	return nil, errors.WrapFormat(errors.ErrInvalidFormat, "rejectAllStage", "Process", "always rejects")
}
