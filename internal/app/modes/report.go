package modes

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/Temutjin2k/ride-analytics/config"
	"github.com/Temutjin2k/ride-analytics/internal/adapter/watcher"
	"github.com/Temutjin2k/ride-analytics/internal/domain/types"
	"github.com/Temutjin2k/ride-analytics/internal/service/loader"
	"github.com/Temutjin2k/ride-analytics/internal/service/report"
	"github.com/Temutjin2k/ride-analytics/pkg/logger"
	wrap "github.com/Temutjin2k/ride-analytics/pkg/logger/wrapper"
	rabbitmq "github.com/Temutjin2k/ride-analytics/pkg/rabbit"
)

// ReportService prints Markdown reports to out: once for -file, then for
// every file dropped into the import directory.
type ReportService struct {
	reports *report.Service
	watcher *watcher.Watcher
	rabbit  *rabbitmq.RabbitMQ
	out     io.Writer
	cfg     config.Config
	log     logger.Logger
}

func NewReport(ctx context.Context, cfg config.Config, log logger.Logger) (*ReportService, error) {
	return newReport(ctx, cfg, os.Stdout, log)
}

func newReport(ctx context.Context, cfg config.Config, out io.Writer, log logger.Logger) (*ReportService, error) {
	var (
		w   *watcher.Watcher
		err error
	)
	if cfg.Import.Dir != "" {
		w, err = watcher.New(cfg.Import.Dir, log)
		if err != nil {
			log.Error(ctx, "Failed to watch import directory", err)
			return nil, err
		}
	}

	events, client, err := newPublisher(ctx, cfg.RabbitMQ, log)
	if err != nil {
		log.Error(ctx, "Failed to setup event publisher", err)
		return nil, err
	}

	return &ReportService{
		reports: report.New(loader.New(0, log), events, log),
		watcher: w,
		rabbit:  client,
		out:     out,
		cfg:     cfg,
		log:     log,
	}, nil
}

func (s *ReportService) Start(ctx context.Context) error {
	defer closeRabbit(context.WithoutCancel(ctx), s.rabbit, s.log)

	if s.cfg.File != "" {
		if _, err := s.reports.GenerateFile(ctx, s.cfg.File, types.SourceReport, s.out); err != nil {
			return fmt.Errorf("report %s: %w", s.cfg.File, err)
		}
	}

	if s.watcher == nil {
		return nil
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err := s.watcher.Watch(ctx, s.handleImport)
	s.log.Info(wrap.WithAction(ctx, types.ActionShutdown), "report service closed")
	return err
}

// handleImport reports one imported file. A bad file never stops the watcher.
func (s *ReportService) handleImport(ctx context.Context, path string) {
	if _, err := s.reports.GenerateFile(ctx, path, types.SourceImport, s.out); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return
		}
		if loader.IsInputError(err) {
			s.log.Warn(wrap.ErrorCtx(ctx, err), "imported file rejected", "file", path, "error", err.Error())
			return
		}
		s.log.Error(wrap.ErrorCtx(ctx, err), "failed to report imported file", err, "file", path)
		return
	}
	fmt.Fprintln(s.out)
}
