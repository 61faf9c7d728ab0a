// Package observability provides Prometheus metrics for monitoring.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Table label values for generation metrics.
const (
	TableHistorical = "historical_sales"
	TableTelemetry  = "intraday_telemetry"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	// Generation metrics
	RowsGenerated      *prometheus.CounterVec
	GenerationDuration *prometheus.HistogramVec
	RunsTotal          *prometheus.CounterVec

	// Storage metrics
	StoreInsertErrors *prometheus.CounterVec
	RowsPersisted     *prometheus.CounterVec

	// Stream metrics
	StreamSubscribers    prometheus.Gauge
	TelemetryFramesSent  prometheus.Counter
	StreamClientsDropped prometheus.Counter
}

// NewMetrics creates a new Metrics instance with all metrics registered.
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "mushroom_demand_lab"
	}

	return &Metrics{
		RowsGenerated: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "generator",
			Name:      "rows_generated_total",
			Help:      "Total number of rows generated by table",
		}, []string{"table"}),
		GenerationDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "generator",
			Name:      "generation_duration_seconds",
			Help:      "Wall-clock duration of one generation pass by table",
			Buckets:   prometheus.DefBuckets,
		}, []string{"table"}),
		RunsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "generator",
			Name:      "runs_total",
			Help:      "Total number of generation runs by outcome",
		}, []string{"outcome"}),

		StoreInsertErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "storage",
			Name:      "insert_errors_total",
			Help:      "Total number of store insert errors by store and table",
		}, []string{"store", "table"}),
		RowsPersisted: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "storage",
			Name:      "rows_persisted_total",
			Help:      "Total number of rows persisted by store and table",
		}, []string{"store", "table"}),

		StreamSubscribers: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "stream",
			Name:      "subscribers",
			Help:      "Current number of WebSocket subscribers",
		}),
		TelemetryFramesSent: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "stream",
			Name:      "telemetry_frames_sent_total",
			Help:      "Total number of telemetry frames broadcast to subscribers",
		}),
		StreamClientsDropped: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "stream",
			Name:      "clients_dropped_total",
			Help:      "Total number of subscribers disconnected for falling behind",
		}),
	}
}

// Handler returns an HTTP handler serving the default Prometheus registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
