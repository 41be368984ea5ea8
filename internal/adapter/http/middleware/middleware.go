package middleware

import (
	"context"

	"github.com/google/uuid"

	"github.com/Temutjin2k/ride-analytics/internal/domain/models"
	"github.com/Temutjin2k/ride-analytics/pkg/logger"
)

type (
	SessionService interface {
		Authorize(ctx context.Context, token string, datasetID uuid.UUID) (*models.Session, error)
	}

	Middleware struct {
		sessions SessionService
		log      logger.Logger
	}
)

func NewMiddleware(sessions SessionService, log logger.Logger) *Middleware {
	return &Middleware{
		sessions: sessions,
		log:      log,
	}
}
