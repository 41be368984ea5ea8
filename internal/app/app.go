package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/Temutjin2k/ride-analytics/config"
	"github.com/Temutjin2k/ride-analytics/internal/app/modes"
	"github.com/Temutjin2k/ride-analytics/internal/domain/types"
	"github.com/Temutjin2k/ride-analytics/pkg/logger"
)

var (
	ErrInvalidMode           = errors.New("invalid mode")
	ErrServiceNotInitialized = errors.New("service not initialized")
)

// Service is the long-running part of one application mode.
type Service interface {
	Start(ctx context.Context) error
}

type constructor func(ctx context.Context, cfg config.Config, log logger.Logger) (Service, error)

var constructors = map[types.ServiceMode]constructor{
	types.DashboardMode: func(ctx context.Context, cfg config.Config, log logger.Logger) (Service, error) {
		return modes.NewDashboard(ctx, cfg, log)
	},
	types.ReportMode: func(ctx context.Context, cfg config.Config, log logger.Logger) (Service, error) {
		return modes.NewReport(ctx, cfg, log)
	},
}

type App struct {
	mode    types.ServiceMode
	service Service
	log     logger.Logger
}

// NewApplication builds the service of cfg.Mode.
func NewApplication(ctx context.Context, cfg config.Config, log logger.Logger) (*App, error) {
	build, ok := constructors[cfg.Mode]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidMode, cfg.Mode)
	}

	service, err := build(ctx, cfg, log)
	if err != nil {
		return nil, fmt.Errorf("failed to init %s service: %w", cfg.Mode, err)
	}

	return &App{
		mode:    cfg.Mode,
		service: service,
		log:     log,
	}, nil
}

// Run blocks until the service stops.
func (a *App) Run(ctx context.Context) error {
	if a.service == nil {
		return ErrServiceNotInitialized
	}

	a.log.Debug(ctx, "starting application", "mode", a.mode)
	return a.service.Start(ctx)
}
