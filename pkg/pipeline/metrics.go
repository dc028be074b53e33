package pipeline

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the pipeline's Prometheus metrics
type Metrics struct {
	ModuleLoadsTotal     *prometheus.CounterVec
	HookInvocationsTotal *prometheus.CounterVec
	HookDuration         *prometheus.HistogramVec
	DiagnosticsTotal     prometheus.Counter
	PluginsInstantiated  prometheus.Counter
}

// NewMetrics creates and registers the pipeline metrics on the given
// registry
func NewMetrics(registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		ModuleLoadsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "quill_plugin_module_loads_total",
				Help: "Total plugin module load attempts",
			},
			[]string{"result"},
		),
		HookInvocationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "quill_plugin_hook_invocations_total",
				Help: "Total plugin hook invocations",
			},
			[]string{"phase", "result"},
		),
		HookDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "quill_plugin_hook_duration_seconds",
				Help:    "Plugin hook execution duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"phase"},
		),
		DiagnosticsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "quill_plugin_diagnostics_total",
				Help: "Total diagnostics produced by plugin execution",
			},
		),
		PluginsInstantiated: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "quill_plugin_instances_total",
				Help: "Total plugin instances constructed",
			},
		),
	}

	registry.MustRegister(
		m.ModuleLoadsTotal,
		m.HookInvocationsTotal,
		m.HookDuration,
		m.DiagnosticsTotal,
		m.PluginsInstantiated,
	)

	return m
}

func (m *Metrics) observeLoad(err error) {
	if m == nil {
		return
	}
	m.ModuleLoadsTotal.WithLabelValues(resultLabel(err)).Inc()
}

func (m *Metrics) observeHook(phase string, err error, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.HookInvocationsTotal.WithLabelValues(phase, resultLabel(err)).Inc()
	m.HookDuration.WithLabelValues(phase).Observe(elapsed.Seconds())
}

func (m *Metrics) observeDiagnostic() {
	if m == nil {
		return
	}
	m.DiagnosticsTotal.Inc()
}

func (m *Metrics) observeInstance() {
	if m == nil {
		return
	}
	m.PluginsInstantiated.Inc()
}

func resultLabel(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
