// Package prom exposes resiligo orchestrator state as Prometheus metrics.
//
// The bridge is a pull-based prometheus.Collector over the orchestrator's
// metrics registry; the core library stays free of any Prometheus
// dependency.
//
//	orch := resiligo.New()
//	reg := prometheus.NewRegistry()
//	reg.MustRegister(prom.NewCollector(orch))
//	http.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
package prom
