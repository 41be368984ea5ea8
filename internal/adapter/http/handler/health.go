package handler

import (
	"net/http"
	"time"

	"github.com/Temutjin2k/ride-analytics/pkg/logger"
	wrap "github.com/Temutjin2k/ride-analytics/pkg/logger/wrapper"
)

type Health struct {
	serviceName string
	datasets    func() int
	started     time.Time
	log         logger.Logger
}

// NewHealth reports the service status. datasets returns the number of loaded datasets.
func NewHealth(serviceName string, datasets func() int, log logger.Logger) *Health {
	return &Health{
		serviceName: serviceName,
		datasets:    datasets,
		started:     time.Now(),
		log:         log,
	}
}

// HealthCheck godoc
// @Summary      Health Check
// @Description  Returns the health status of the service
// @Tags         Health
// @Produce      json
// @Success      200  {object}  map[string]any
// @Router       /health [get]
func (a *Health) HealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "health_check")

	response := envelope{
		"status": "available",
		"system_info": map[string]any{
			"service-name":    a.serviceName,
			"active_datasets": a.datasets(),
			"uptime":          time.Since(a.started).Round(time.Second).String(),
		},
	}

	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		a.log.Error(ctx, "healthcheck", err)
		return
	}
}
