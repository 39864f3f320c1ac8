package metric

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics contains the platform-level metrics of the API server
type Metrics struct {
	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// GraphQL metrics
	GraphQLOperationsTotal *prometheus.CounterVec
	GraphQLDepthRejections prometheus.Counter

	// Loader metrics
	LoaderBatchesTotal *prometheus.CounterVec
	LoaderBatchSize    *prometheus.HistogramVec

	// Store metrics
	EntityCount *prometheus.GaugeVec
}

// NewMetrics creates a new Metrics instance with all platform metrics
func NewMetrics() *Metrics {
	return &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "memberhub",
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total number of HTTP requests served",
			},
			[]string{"method", "route", "status"},
		),

		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "memberhub",
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),

		GraphQLOperationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "memberhub",
				Subsystem: "graphql",
				Name:      "operations_total",
				Help:      "Total number of GraphQL operations by outcome",
			},
			[]string{"status"},
		),

		GraphQLDepthRejections: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "memberhub",
				Subsystem: "graphql",
				Name:      "depth_rejections_total",
				Help:      "Total number of queries rejected by the depth guard",
			},
		),

		LoaderBatchesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "memberhub",
				Subsystem: "loader",
				Name:      "batches_total",
				Help:      "Total number of dispatched loader batches",
			},
			[]string{"relation"},
		),

		LoaderBatchSize: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "memberhub",
				Subsystem: "loader",
				Name:      "batch_size",
				Help:      "Number of unique keys per dispatched loader batch",
				Buckets:   []float64{1, 2, 5, 10, 25, 50, 100},
			},
			[]string{"relation"},
		),

		EntityCount: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "memberhub",
				Subsystem: "store",
				Name:      "entity_count",
				Help:      "Number of stored entities per collection",
			},
			[]string{"entity"},
		),
	}
}

// RecordHTTPRequest records one served HTTP request
func (c *Metrics) RecordHTTPRequest(method, route, status string, duration time.Duration) {
	c.HTTPRequestsTotal.WithLabelValues(method, route, status).Inc()
	c.HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordGraphQLOperation increments the operation counter by outcome
func (c *Metrics) RecordGraphQLOperation(status string) {
	c.GraphQLOperationsTotal.WithLabelValues(status).Inc()
}

// RecordDepthRejection increments the depth guard rejection counter
func (c *Metrics) RecordDepthRejection() {
	c.GraphQLDepthRejections.Inc()
}

// RecordLoaderBatch records one dispatched loader batch
func (c *Metrics) RecordLoaderBatch(relation string, size int) {
	c.LoaderBatchesTotal.WithLabelValues(relation).Inc()
	c.LoaderBatchSize.WithLabelValues(relation).Observe(float64(size))
}

// SetEntityCount updates the stored entity gauge for a collection
func (c *Metrics) SetEntityCount(entity string, count int) {
	c.EntityCount.WithLabelValues(entity).Set(float64(count))
}
