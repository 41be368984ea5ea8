package modes

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/Temutjin2k/ride-analytics/config"
	"github.com/Temutjin2k/ride-analytics/internal/adapter/chart"
	"github.com/Temutjin2k/ride-analytics/internal/adapter/export"
	"github.com/Temutjin2k/ride-analytics/internal/adapter/http/server"
	"github.com/Temutjin2k/ride-analytics/internal/adapter/memory"
	"github.com/Temutjin2k/ride-analytics/internal/domain/types"
	"github.com/Temutjin2k/ride-analytics/internal/service/dashboard"
	"github.com/Temutjin2k/ride-analytics/internal/service/loader"
	"github.com/Temutjin2k/ride-analytics/internal/service/session"
	"github.com/Temutjin2k/ride-analytics/pkg/logger"
	wrap "github.com/Temutjin2k/ride-analytics/pkg/logger/wrapper"
	rabbitmq "github.com/Temutjin2k/ride-analytics/pkg/rabbit"
	ws "github.com/Temutjin2k/ride-analytics/pkg/wsHub"
)

const shutdownTimeout = 10 * time.Second

type DashboardService struct {
	store      *memory.DatasetStore
	hub        *ws.ConnectionHub
	rabbit     *rabbitmq.RabbitMQ
	httpServer *server.API
	cfg        config.Config
	log        logger.Logger
}

func NewDashboard(ctx context.Context, cfg config.Config, log logger.Logger) (*DashboardService, error) {
	store, err := memory.NewDatasetStore(cfg.Session.Capacity, cfg.Session.TTL, log)
	if err != nil {
		log.Error(ctx, "Failed to setup dataset store", err)
		return nil, err
	}

	hub := ws.NewConnHub(log)
	// live connections of a dropped dataset have nothing left to show
	store.OnEvict(func(id uuid.UUID) {
		hub.CloseGroup(id.String())
	})

	events, client, err := newPublisher(ctx, cfg.RabbitMQ, log)
	if err != nil {
		log.Error(ctx, "Failed to setup event publisher", err)
		return nil, err
	}

	tokens := session.NewTokenService(cfg.Session.Secret, cfg.Session.TTL)

	service := dashboard.New(
		loader.New(cfg.HTTP.MaxUploadBytes(), log),
		store,
		chart.New(cfg.Chart.Scheme, cfg.Chart.Address()),
		tokens,
		events,
		export.Encoder{},
		log,
	)

	return &DashboardService{
		store:      store,
		hub:        hub,
		rabbit:     client,
		httpServer: server.New(cfg, service, tokens, hub, store.Len, log),
		cfg:        cfg,
		log:        log,
	}, nil
}

func (s *DashboardService) Start(ctx context.Context) error {
	if err := s.store.StartSweeper(ctx, s.cfg.Session.SweepInterval); err != nil {
		return err
	}

	errCh := make(chan error, 1)

	s.httpServer.Run(ctx, errCh)
	defer func() {
		s.close(ctx)
		s.log.Info(ctx, "dashboard service closed")
	}()

	// Waiting signal
	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(shutdownCh)

	s.log.Info(ctx, "dashboard service started", "port", s.cfg.HTTP.Port)

	select {
	case errRun := <-errCh:
		return errRun
	case sig := <-shutdownCh:
		s.log.Info(wrap.WithAction(ctx, types.ActionShutdown), "shutting down application", "signal", sig.String())
		return nil
	case <-ctx.Done():
		return nil
	}
}

func (s *DashboardService) close(ctx context.Context) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	if s.httpServer != nil {
		if err := s.httpServer.Stop(ctx); err != nil {
			s.log.Warn(ctx, "Failed to gracefully close http server", "error", err.Error())
		}
	}

	s.hub.Close()
	s.store.Stop()
	closeRabbit(ctx, s.rabbit, s.log)
}
