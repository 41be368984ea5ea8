package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	HttpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"service", "method", "path", "status"},
	)

	HttpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service", "method", "path", "status"},
	)

	HttpRequestsInFlight = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Current number of HTTP requests being processed",
		},
		[]string{"service"},
	)

	// Business metrics
	DatasetsLoadedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "datasets_loaded_total",
			Help: "Total number of uploaded or imported datasets",
		},
		[]string{"source", "status"},
	)

	DatasetRows = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "dataset_rows",
			Help:    "Number of rows in loaded datasets",
			Buckets: prometheus.ExponentialBuckets(10, 4, 8),
		},
	)

	ActiveDatasetsGauge = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "active_datasets",
			Help: "Current number of datasets held in memory",
		},
	)

	DashboardComputeDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dashboard_compute_duration_seconds",
			Help:    "Time spent filtering and aggregating one dashboard view",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"source"},
	)

	WebSocketConnectionsGauge = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "websocket_connections_total",
			Help: "Current number of active WebSocket connections",
		},
		[]string{"service"},
	)

	EventsPublishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "events_published_total",
			Help: "Total number of events published to RabbitMQ",
		},
		[]string{"routing_key", "status"},
	)
)

// RecordHTTPMetrics records HTTP request metrics
func RecordHTTPMetrics(service, method, path string, statusCode int, duration time.Duration) {
	status := strconv.Itoa(statusCode)
	HttpRequestsTotal.WithLabelValues(service, method, path, status).Inc()
	HttpRequestDuration.WithLabelValues(service, method, path, status).Observe(duration.Seconds())
}

// RecordDatasetLoad records the outcome of one dataset load.
func RecordDatasetLoad(source string, rows int, err error) {
	DatasetsLoadedTotal.WithLabelValues(source, status(err)).Inc()
	if err == nil {
		DatasetRows.Observe(float64(rows))
	}
}

// RecordCompute records how long one dashboard computation took.
func RecordCompute(source string, duration time.Duration) {
	DashboardComputeDuration.WithLabelValues(source).Observe(duration.Seconds())
}

// RecordRabbitMQPublish records RabbitMQ publish metrics
func RecordRabbitMQPublish(routingKey string, err error) {
	EventsPublishedTotal.WithLabelValues(routingKey, status(err)).Inc()
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
