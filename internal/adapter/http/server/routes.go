package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/Temutjin2k/ride-analytics/docs"
	"github.com/Temutjin2k/ride-analytics/internal/adapter/http/middleware"
)

// setupRoutes - setups http routes
func setupRoutes(mux *http.ServeMux, routes *handlers, m *middleware.Middleware) {
	// System Health
	mux.HandleFunc("GET /health", routes.health.HealthCheck)

	setupSwaggerRoutes(mux)
	setupMetricsRoute(mux)

	setupPageRoutes(mux, routes)
	setupDatasetRoutes(mux, routes, m)
}

// setupPageRoutes setups the browser dashboard
func setupPageRoutes(mux *http.ServeMux, routes *handlers) {
	mux.HandleFunc("GET /{$}", routes.page.Index)        // Dashboard of the session cookie's dataset
	mux.HandleFunc("POST /upload", routes.page.Upload) // Form upload, redirects to the dashboard
}

// setupDatasetRoutes setups the JSON API and live filtering
func setupDatasetRoutes(mux *http.ServeMux, routes *handlers, m *middleware.Middleware) {
	mux.HandleFunc("POST /api/v1/datasets", routes.dataset.Upload)                                         // Upload a file, open a session
	mux.Handle("GET /api/v1/datasets/{dataset_id}", m.RequireSession(routes.dataset.Get))                  // Dataset summary and filter options
	mux.Handle("GET /api/v1/datasets/{dataset_id}/dashboard", m.RequireSession(routes.dataset.Dashboard))  // Filtered dashboard
	mux.Handle("GET /api/v1/datasets/{dataset_id}/export", m.RequireSession(routes.dataset.Export))        // Filtered rows as csv or xlsx
	mux.Handle("DELETE /api/v1/datasets/{dataset_id}", m.RequireSession(routes.dataset.Delete))            // Drop the dataset
	mux.Handle("GET /ws/datasets/{dataset_id}", m.RequireSession(routes.live.HandleWS))                    // Live re-filtering
}

// setupSwaggerRoutes serves the Swagger UI of the dashboard API
func setupSwaggerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /swagger/", httpSwagger.Handler(httpSwagger.InstanceName(docs.InstanceName)))
}

// setupMetricsRoute configures the Prometheus metrics endpoint
func setupMetricsRoute(mux *http.ServeMux) {
	mux.Handle("GET /metrics", promhttp.Handler())
}
