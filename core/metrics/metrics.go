package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "stockmatch"

// Result labels shared by the counters.
const (
	ResultAccepted  = "accepted"
	ResultRejected  = "rejected"
	ResultThrottled = "throttled"
	ResultSuccess   = "success"
	ResultFailure   = "failure"
)

// Metrics bundles the application collectors.
type Metrics struct {
	registry     *prometheus.Registry
	scans        *prometheus.CounterVec
	reports      *prometheus.CounterVec
	syncs        *prometheus.CounterVec
	catalogItems prometheus.Gauge
}

// New creates the collectors and registers them, together with the Go runtime
// collectors, on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		scans: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scans_total",
			Help:      "Barcode scans received, by result.",
		}, []string{"result"}),
		reports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reports_total",
			Help:      "Reports generated, by scope and kind.",
		}, []string{"scope", "kind"}),
		syncs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "catalog_syncs_total",
			Help:      "Master catalog sync attempts, by result.",
		}, []string{"result"}),
		catalogItems: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "catalog_items",
			Help:      "Items in the currently loaded master catalog.",
		}),
	}

	m.registry.MustRegister(
		m.scans,
		m.reports,
		m.syncs,
		m.catalogItems,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveScan counts a scan attempt.
func (m *Metrics) ObserveScan(result string) {
	if m == nil {
		return
	}
	m.scans.WithLabelValues(result).Inc()
}

// ObserveReport counts a generated report. Scope is "rack" or "store".
func (m *Metrics) ObserveReport(scope, kind string) {
	if m == nil {
		return
	}
	m.reports.WithLabelValues(scope, kind).Inc()
}

// ObserveSync counts a catalog sync. On success the catalog size gauge is updated.
func (m *Metrics) ObserveSync(result string, items int) {
	if m == nil {
		return
	}
	m.syncs.WithLabelValues(result).Inc()
	if result == ResultSuccess {
		m.catalogItems.Set(float64(items))
	}
}
