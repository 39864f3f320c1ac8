// Package metric provides Prometheus instrumentation for the API server:
// HTTP request counters and latency histograms, GraphQL operation outcomes,
// loader batch dispatch observations, and stored entity gauges.
//
// Each process builds one MetricsRegistry; the scrape endpoint is mounted on
// the main HTTP server via Handler().
package metric
