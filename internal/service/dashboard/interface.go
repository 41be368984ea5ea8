package dashboard

import (
	"context"
	"io"

	"github.com/go-gota/gota/dataframe"
	"github.com/google/uuid"

	"github.com/Temutjin2k/ride-analytics/internal/domain/models"
	"github.com/Temutjin2k/ride-analytics/internal/domain/types"
)

type DatasetLoader interface {
	Load(ctx context.Context, name string, r io.Reader) (*models.Dataset, error)
}

type DatasetStore interface {
	Save(ctx context.Context, ds *models.Dataset) error
	Get(ctx context.Context, id uuid.UUID) (*models.Dataset, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type ChartRenderer interface {
	Render(spec models.ChartSpec) (models.Chart, error)
}

type SessionIssuer interface {
	Issue(ctx context.Context, datasetID uuid.UUID) (*models.Session, error)
}

type EventPublisher interface {
	PublishDatasetLoaded(ctx context.Context, event models.DatasetLoadedEvent) error
}

type Encoder interface {
	Write(w io.Writer, df dataframe.DataFrame, format types.FileFormat) error
}
