package report

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/Temutjin2k/ride-analytics/internal/domain/models"
	"github.com/Temutjin2k/ride-analytics/internal/domain/types"
	"github.com/Temutjin2k/ride-analytics/internal/service/analytics"
	"github.com/Temutjin2k/ride-analytics/pkg/logger"
	wrap "github.com/Temutjin2k/ride-analytics/pkg/logger/wrapper"
	"github.com/Temutjin2k/ride-analytics/pkg/metrics"
)

type DatasetLoader interface {
	Load(ctx context.Context, name string, r io.Reader) (*models.Dataset, error)
}

type EventPublisher interface {
	PublishReportGenerated(ctx context.Context, event models.ReportGeneratedEvent) error
}

// Service renders Markdown reports of whole datasets.
type Service struct {
	loader DatasetLoader
	events EventPublisher
	l      logger.Logger
}

func New(loader DatasetLoader, events EventPublisher, l logger.Logger) *Service {
	return &Service{
		loader: loader,
		events: events,
		l:      l,
	}
}

// GenerateFile reports the file at path to w.
func (s *Service) GenerateFile(ctx context.Context, path, source string, w io.Writer) (*models.FilteredView, error) {
	const op = "Service.GenerateFile"

	f, err := os.Open(path)
	if err != nil {
		return nil, wrap.Error(ctx, fmt.Errorf("%s: %w", op, err))
	}
	defer f.Close()

	return s.Generate(ctx, filepath.Base(path), f, source, w)
}

// Generate loads the table read from r and writes the report of its unfiltered view to w.
func (s *Service) Generate(ctx context.Context, name string, r io.Reader, source string, w io.Writer) (*models.FilteredView, error) {
	const op = "Service.Generate"
	ctx = wrap.WithAction(ctx, types.ActionGenerateReport)

	ds, err := s.loader.Load(ctx, name, r)
	if err != nil {
		metrics.RecordDatasetLoad(source, 0, err)
		return nil, wrap.Error(ctx, fmt.Errorf("%s: %w", op, err))
	}
	metrics.RecordDatasetLoad(source, ds.Rows(), nil)
	ctx = wrap.WithDatasetID(ctx, ds.ID.String())

	start := time.Now()
	view, err := analytics.ComputeView(ds, models.DefaultSelection())
	if err != nil {
		return nil, wrap.Error(ctx, fmt.Errorf("%s: %w", op, err))
	}
	metrics.RecordCompute(string(ds.Format), time.Since(start))

	if err := Markdown(w, ds.Summary(), view); err != nil {
		return nil, wrap.Error(ctx, fmt.Errorf("%s: write report: %w", op, err))
	}

	event := models.ReportGeneratedEvent{
		DatasetID: ds.ID,
		Name:      ds.Name,
		Metrics:   view.Metrics,
		Notices:   len(view.Notices),
		Timestamp: time.Now().UTC(),
	}
	if err := s.events.PublishReportGenerated(ctx, event); err != nil {
		s.l.Warn(wrap.ErrorCtx(ctx, err), "failed to publish report event", "error", err.Error())
	}

	s.l.Info(ctx, "report generated", "name", ds.Name, "rows", ds.Rows(), "notices", len(view.Notices))

	return view, nil
}
