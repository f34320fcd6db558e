// Package metrics exposes Prometheus collectors for scanning, catalog sync and
// report generation.
//
// Collectors live on a dedicated registry rather than the global default so that
// several instances (tests, multiple servers) can coexist. All recording methods
// are safe to call on a nil *Metrics, which lets services treat metrics as optional.
//
// # Usage
//
//	m := metrics.New()
//	m.ObserveScan(metrics.ResultAccepted)
//	app.Get("/metrics", adaptor.HTTPHandler(m.Handler()))
package metrics
