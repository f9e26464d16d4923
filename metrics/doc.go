// Package metrics exposes device state as Prometheus metrics.
//
// The Collector wraps a devportal client and implements
// prometheus.Collector: each scrape polls the device's management endpoints
// and reports identity labels, adapter and package counts, and scrape
// health. Polling happens on the Prometheus scrape schedule; the collector
// adds no timers of its own.
//
// # Usage Example
//
//	client, _ := devportal.NewConfiguredClient(conn, creds)
//	registry := prometheus.NewRegistry()
//	registry.MustRegister(metrics.NewCollector(client))
//
//	http.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
//
// A failed poll sets devportal_scrape_success to 0 and leaves the remaining
// gauges at their previous values.
package metrics
