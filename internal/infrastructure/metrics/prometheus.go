package metrics

import (
	"database/sql"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PrometheusExporter exports metrics to Prometheus format.
type PrometheusExporter struct {
	// Prometheus metrics
	opRequests *prometheus.CounterVec
	opDuration *prometheus.HistogramVec
	opErrors   *prometheus.CounterVec

	dbOpenConns prometheus.Gauge
	dbIdleConns prometheus.Gauge
	dbWaitCount prometheus.Gauge
}

// NewPrometheusExporter creates a new Prometheus exporter.
func NewPrometheusExporter() *PrometheusExporter {
	return &PrometheusExporter{
		opRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "toshokan_catalog_requests_total",
				Help: "Total number of catalog operations",
			},
			[]string{"operation"},
		),
		opDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "toshokan_catalog_request_duration_seconds",
				Help:    "Duration of catalog operations in seconds",
				Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0, 10.0},
			},
			[]string{"operation"},
		),
		opErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "toshokan_catalog_errors_total",
				Help: "Total number of failed catalog operations",
			},
			[]string{"operation"},
		),
		dbOpenConns: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "toshokan_db_open_connections",
			Help: "Current number of open database connections",
		}),
		dbIdleConns: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "toshokan_db_idle_connections",
			Help: "Current number of idle database connections",
		}),
		dbWaitCount: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "toshokan_db_wait_count_total",
			Help: "Total number of connections waited for",
		}),
	}
}

// Update updates Gauge metrics from the database pool.
// Counters are updated per operation, so only gauges are refreshed here.
// This should be called periodically (e.g., every 10 seconds).
func (e *PrometheusExporter) Update(stats sql.DBStats) {
	e.dbOpenConns.Set(float64(stats.OpenConnections))
	e.dbIdleConns.Set(float64(stats.Idle))
	e.dbWaitCount.Set(float64(stats.WaitCount))
}

// RecordRequest records an operation in Prometheus.
func (e *PrometheusExporter) RecordRequest(operation string) {
	e.opRequests.WithLabelValues(operation).Inc()
}

// RecordDuration records a duration in Prometheus.
func (e *PrometheusExporter) RecordDuration(operation string, durationSeconds float64) {
	e.opDuration.WithLabelValues(operation).Observe(durationSeconds)
}

// RecordError records an error in Prometheus.
func (e *PrometheusExporter) RecordError(operation string) {
	e.opErrors.WithLabelValues(operation).Inc()
}

// Handler returns the HTTP handler serving the registered metrics.
func (e *PrometheusExporter) Handler() http.Handler {
	return promhttp.Handler()
}
