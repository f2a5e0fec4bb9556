package router

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/c360/streampipe/metric"
)

// routerMetrics holds Prometheus metrics for Router dispatch operations.
type routerMetrics struct {
	dispatchTotal   *prometheus.CounterVec // By router, format and status (hit/miss)
	chainsTotal     *prometheus.CounterVec // By router
	chainRecoveries *prometheus.CounterVec // By router
	name            string
}

// newRouterMetrics creates and registers router metrics with the provided
// registrar.
func newRouterMetrics(registrar metric.MetricsRegistrar, name string) (*routerMetrics, error) {
	if registrar == nil {
		return nil, nil // Metrics disabled
	}

	m := &routerMetrics{
		name: name,

		dispatchTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "streampipe",
			Subsystem: "router",
			Name:      "dispatch_total",
			Help:      "Total number of dispatch attempts by format and status",
		}, []string{"router", "format", "status"}), // status: hit, miss

		chainsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "streampipe",
			Subsystem: "router",
			Name:      "chains_total",
			Help:      "Total number of chain executions",
		}, []string{"router"}),

		chainRecoveries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "streampipe",
			Subsystem: "router",
			Name:      "chain_recoveries_total",
			Help:      "Total number of chains that aborted and returned the last good value",
		}, []string{"router"}),
	}

	if err := registrar.RegisterCounterVec(name, "dispatch_total", m.dispatchTotal); err != nil {
		return nil, err
	}
	if err := registrar.RegisterCounterVec(name, "chains_total", m.chainsTotal); err != nil {
		return nil, err
	}
	if err := registrar.RegisterCounterVec(name, "chain_recoveries_total", m.chainRecoveries); err != nil {
		return nil, err
	}

	return m, nil
}

// recordDispatch records a dispatch attempt.
func (m *routerMetrics) recordDispatch(format string, hit bool) {
	if m == nil {
		return
	}

	status := "miss"
	if hit {
		status = "hit"
	}
	m.dispatchTotal.WithLabelValues(m.name, format, status).Inc()
}

// recordChain records a chain execution.
func (m *routerMetrics) recordChain() {
	if m == nil {
		return
	}
	m.chainsTotal.WithLabelValues(m.name).Inc()
}

// recordChainRecovery records a chain that aborted and recovered.
func (m *routerMetrics) recordChainRecovery() {
	if m == nil {
		return
	}
	m.chainRecoveries.WithLabelValues(m.name).Inc()
}
