package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Temutjin2k/ride-analytics/config"
	"github.com/Temutjin2k/ride-analytics/internal/adapter/export"
	"github.com/Temutjin2k/ride-analytics/internal/adapter/http/handler"
	"github.com/Temutjin2k/ride-analytics/internal/adapter/http/middleware"
	"github.com/Temutjin2k/ride-analytics/pkg/logger"
	wrap "github.com/Temutjin2k/ride-analytics/pkg/logger/wrapper"
	ws "github.com/Temutjin2k/ride-analytics/pkg/wsHub"
)

const serverIPAddress = "%s:%s"

// SessionService checks session tokens for both the API and the browser page.
type SessionService interface {
	middleware.SessionService
	handler.SessionValidator
}

type API struct {
	mux    *http.ServeMux
	server *http.Server
	routes *handlers // routes/handlers
	m      *middleware.Middleware

	addr string
	cfg  config.Config
	log  logger.Logger
}

type handlers struct {
	health  *handler.Health
	dataset *handler.Dataset
	page    *handler.Page
	live    *handler.Live
}

func New(
	cfg config.Config,
	service handler.DashboardService,
	sessions SessionService,
	connections *ws.ConnectionHub,
	activeDatasets func() int,
	logger logger.Logger,
) *API {
	serviceName := cfg.Mode.String()
	maxUpload := cfg.HTTP.MaxUploadBytes()

	routes := &handlers{
		health:  handler.NewHealth(serviceName, activeDatasets, logger),
		dataset: handler.NewDataset(service, export.ContentType, maxUpload, logger),
		page:    handler.NewPage(service, sessions, maxUpload, logger),
		live:    handler.NewLive(service, connections, serviceName, logger),
	}

	api := &API{
		mux:    http.NewServeMux(),
		routes: routes,
		m:      middleware.NewMiddleware(sessions, logger),
		addr:   fmt.Sprintf(serverIPAddress, "0.0.0.0", cfg.HTTP.Port),
		cfg:    cfg,
		log:    logger,
	}

	setupRoutes(api.mux, api.routes, api.m)

	api.server = &http.Server{
		Addr:         api.addr,
		Handler:      api.Handler(),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	return api
}

// Handler returns the mux wrapped in the middleware chain.
func (a *API) Handler() http.Handler {
	return a.m.Recover(a.m.RequestID(a.m.Logging(a.m.Metrics(a.cfg.Mode.String())(a.mux))))
}

func (a *API) Stop(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	ctx = wrap.WithAction(ctx, "http_server_stop")

	a.log.Debug(ctx, "shutting down HTTP server...", "address", a.addr)
	if err := a.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("error shutting down server: %w", err)
	}
	a.log.Debug(ctx, "shutting down HTTP server completed")

	return nil
}

func (a *API) Run(ctx context.Context, errCh chan<- error) {
	go func() {
		ctx = wrap.WithAction(ctx, "http_server_start")
		a.log.Info(ctx, "started http server", "address", a.addr)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("failed to start HTTP server: %w", err)
			return
		}
	}()
}
