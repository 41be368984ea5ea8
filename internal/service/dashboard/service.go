package dashboard

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/Temutjin2k/ride-analytics/internal/domain/models"
	"github.com/Temutjin2k/ride-analytics/internal/domain/types"
	"github.com/Temutjin2k/ride-analytics/internal/service/analytics"
	"github.com/Temutjin2k/ride-analytics/internal/service/filter"
	"github.com/Temutjin2k/ride-analytics/pkg/logger"
	wrap "github.com/Temutjin2k/ride-analytics/pkg/logger/wrapper"
	"github.com/Temutjin2k/ride-analytics/pkg/metrics"
)

// Service ties the loader, the session store and the analytics pipeline together.
type Service struct {
	loader   DatasetLoader
	store    DatasetStore
	charts   ChartRenderer
	sessions SessionIssuer
	events   EventPublisher
	encoder  Encoder
	l        logger.Logger
}

func New(loader DatasetLoader, store DatasetStore, charts ChartRenderer, sessions SessionIssuer, events EventPublisher, encoder Encoder, l logger.Logger) *Service {
	return &Service{
		loader:   loader,
		store:    store,
		charts:   charts,
		sessions: sessions,
		events:   events,
		encoder:  encoder,
		l:        l,
	}
}

// Upload loads a dataset from r, stores it and opens a session for it.
func (s *Service) Upload(ctx context.Context, name string, r io.Reader, source string) (*models.UploadResult, error) {
	const op = "Service.Upload"
	ctx = wrap.WithAction(ctx, types.ActionUploadDataset)

	ds, err := s.loader.Load(ctx, name, r)
	if err != nil {
		metrics.RecordDatasetLoad(source, 0, err)
		return nil, wrap.Error(ctx, fmt.Errorf("%s: %w", op, err))
	}
	metrics.RecordDatasetLoad(source, ds.Rows(), nil)
	ctx = wrap.WithDatasetID(ctx, ds.ID.String())

	if err := s.store.Save(ctx, ds); err != nil {
		return nil, wrap.Error(ctx, fmt.Errorf("%s: %w", op, err))
	}

	sess, err := s.sessions.Issue(ctx, ds.ID)
	if err != nil {
		// the dataset is unreachable without a session
		_ = s.store.Delete(ctx, ds.ID)
		return nil, wrap.Error(ctx, fmt.Errorf("%s: %w", op, err))
	}
	ctx = wrap.WithSessionID(ctx, sess.ID)

	view, err := analytics.ComputeView(ds, models.DefaultSelection())
	if err != nil {
		return nil, wrap.Error(ctx, fmt.Errorf("%s: %w", op, err))
	}

	s.publishLoaded(ctx, ds, source)

	s.l.Info(ctx, "dataset uploaded", "name", ds.Name, "rows", ds.Rows(), "format", ds.Format)

	return &models.UploadResult{
		DatasetInfo: models.DatasetInfo{
			Dataset: ds.Summary(),
			Options: filter.Options(ds),
		},
		Session: sess,
		Notices: view.Notices,
	}, nil
}

// publishLoaded reports a new dataset. Failures are logged and never fail the upload.
func (s *Service) publishLoaded(ctx context.Context, ds *models.Dataset, source string) {
	event := models.DatasetLoadedEvent{
		DatasetID:   ds.ID,
		Name:        ds.Name,
		Source:      source,
		Rows:        ds.Rows(),
		Fingerprint: ds.Fingerprint,
		Timestamp:   time.Now().UTC(),
	}
	if err := s.events.PublishDatasetLoaded(ctx, event); err != nil {
		s.l.Warn(wrap.ErrorCtx(ctx, err), "failed to publish dataset loaded event", "error", err.Error())
	}
}

// Info returns the dataset summary and its filter options.
func (s *Service) Info(ctx context.Context, id uuid.UUID) (*models.DatasetInfo, error) {
	const op = "Service.Info"
	ctx = wrap.WithDatasetID(wrap.WithAction(ctx, types.ActionGetDataset), id.String())

	ds, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, wrap.Error(ctx, fmt.Errorf("%s: %w", op, err))
	}

	return &models.DatasetInfo{
		Dataset: ds.Summary(),
		Options: filter.Options(ds),
	}, nil
}

// Compute runs the pipeline for q and renders the charts of the result.
func (s *Service) Compute(ctx context.Context, id uuid.UUID, q models.FilterQuery) (*models.Dashboard, error) {
	const op = "Service.Compute"
	ctx = wrap.WithDatasetID(wrap.WithAction(ctx, types.ActionComputeDashboard), id.String())

	ds, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, wrap.Error(ctx, fmt.Errorf("%s: %w", op, err))
	}

	return s.Build(ctx, ds, q)
}

// Build computes the dashboard of ds for q.
func (s *Service) Build(ctx context.Context, ds *models.Dataset, q models.FilterQuery) (*models.Dashboard, error) {
	const op = "Service.Build"
	start := time.Now()

	options := filter.Options(ds)
	view, err := analytics.ComputeView(ds, Selection(options, q))
	if err != nil {
		return nil, wrap.Error(ctx, fmt.Errorf("%s: %w", op, err))
	}

	charts := make([]models.Chart, 0, 9)
	for _, spec := range analytics.ChartSpecs(view.Aggregates) {
		chart, err := s.charts.Render(spec)
		if err != nil {
			s.l.Warn(wrap.WithAction(ctx, types.ActionRenderChart), "chart skipped", "chart", spec.ID, "error", err.Error())
			view.Notices = append(view.Notices, models.Warning("", fmt.Sprintf("%s could not be rendered", spec.Title)))
			continue
		}
		charts = append(charts, chart)
	}

	metrics.RecordCompute(string(ds.Format), time.Since(start))

	return &models.Dashboard{
		DatasetID: ds.ID,
		Dataset:   ds.Name,
		Options:   options,
		View:      view,
		Charts:    charts,
	}, nil
}

// Export writes the rows selected by q to w.
func (s *Service) Export(ctx context.Context, id uuid.UUID, q models.FilterQuery, format types.FileFormat, w io.Writer) error {
	const op = "Service.Export"
	ctx = wrap.WithDatasetID(wrap.WithAction(ctx, types.ActionExportDataset), id.String())

	ds, err := s.store.Get(ctx, id)
	if err != nil {
		return wrap.Error(ctx, fmt.Errorf("%s: %w", op, err))
	}

	frame, err := filter.Apply(ds, Selection(filter.Options(ds), q))
	if err != nil {
		return wrap.Error(ctx, fmt.Errorf("%s: %w", op, err))
	}

	if err := s.encoder.Write(w, frame, format); err != nil {
		return wrap.Error(ctx, fmt.Errorf("%s: %w", op, err))
	}

	s.l.Debug(ctx, "dataset exported", "format", format, "rows", frame.Nrow())
	return nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	const op = "Service.Delete"
	ctx = wrap.WithDatasetID(wrap.WithAction(ctx, types.ActionDeleteDataset), id.String())

	if err := s.store.Delete(ctx, id); err != nil {
		return wrap.Error(ctx, fmt.Errorf("%s: %w", op, err))
	}

	s.l.Info(ctx, "dataset deleted")
	return nil
}

// Selection maps the control values of q onto typed selections.
func Selection(options models.FilterOptions, q models.FilterQuery) models.FilterSelection {
	return models.FilterSelection{
		Status:  filter.ParseSelection(q.Status, options.Status),
		Vehicle: filter.ParseSelection(q.Vehicle, options.Vehicle),
		Payment: filter.ParseSelection(q.Payment, options.Payment),
		From:    q.From,
		To:      q.To,
	}
}
