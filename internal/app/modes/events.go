package modes

import (
	"context"
	"fmt"

	"github.com/Temutjin2k/ride-analytics/config"
	"github.com/Temutjin2k/ride-analytics/internal/adapter/rabbit"
	"github.com/Temutjin2k/ride-analytics/internal/domain/models"
	"github.com/Temutjin2k/ride-analytics/pkg/logger"
	rabbitmq "github.com/Temutjin2k/ride-analytics/pkg/rabbit"
)

type eventPublisher interface {
	PublishDatasetLoaded(ctx context.Context, event models.DatasetLoadedEvent) error
	PublishReportGenerated(ctx context.Context, event models.ReportGeneratedEvent) error
}

// newPublisher connects to RabbitMQ when it is enabled. The client is nil otherwise.
func newPublisher(ctx context.Context, cfg config.RabbitMQConfig, log logger.Logger) (eventPublisher, *rabbitmq.RabbitMQ, error) {
	if !cfg.Enabled {
		return rabbit.Noop{}, nil, nil
	}

	client, err := rabbitmq.New(ctx, cfg.GetDSN(), log)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to rabbitmq: %w", err)
	}

	publisher, err := rabbit.NewPublisher(ctx, client, cfg.Exchange, log)
	if err != nil {
		_ = client.Close(ctx)
		return nil, nil, fmt.Errorf("setup publisher: %w", err)
	}

	return publisher, client, nil
}

func closeRabbit(ctx context.Context, client *rabbitmq.RabbitMQ, log logger.Logger) {
	if client == nil {
		return
	}
	if err := client.Close(ctx); err != nil {
		log.Warn(ctx, "failed to close rabbitmq connection", "error", err.Error())
	}
}
