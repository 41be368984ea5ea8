package rabbit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/Temutjin2k/ride-analytics/internal/domain/models"
	"github.com/Temutjin2k/ride-analytics/internal/domain/types"
	"github.com/Temutjin2k/ride-analytics/pkg/logger"
	wrap "github.com/Temutjin2k/ride-analytics/pkg/logger/wrapper"
	"github.com/Temutjin2k/ride-analytics/pkg/metrics"
	"github.com/Temutjin2k/ride-analytics/pkg/rabbit"
)

const (
	KeyDatasetLoaded   = "analytics.dataset.loaded"
	KeyReportGenerated = "analytics.report.generated"

	publishRetries = 3
	publishBackoff = 500 * time.Millisecond
)

type publishFunc func(ctx context.Context, exchange, routingKey string, msg amqp.Publishing) error

// Publisher sends analytics events to a topic exchange.
type Publisher struct {
	exchange string
	publish  publishFunc
	retries  int
	backoff  time.Duration
	l        logger.Logger
}

// NewPublisher declares exchange as a durable topic exchange and returns a publisher bound to it.
func NewPublisher(ctx context.Context, client *rabbit.RabbitMQ, exchange string, l logger.Logger) (*Publisher, error) {
	ch, err := client.Channel(ctx)
	if err != nil {
		return nil, fmt.Errorf("open channel: %w", err)
	}

	if err := ch.ExchangeDeclare(
		exchange,
		"topic",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		return nil, fmt.Errorf("declare exchange %s: %w", exchange, err)
	}

	return &Publisher{
		exchange: exchange,
		publish: func(ctx context.Context, exchange, routingKey string, msg amqp.Publishing) error {
			ch, err := client.Channel(ctx)
			if err != nil {
				return err
			}
			return ch.PublishWithContext(ctx, exchange, routingKey, false, false, msg)
		},
		retries: publishRetries,
		backoff: publishBackoff,
		l:       l,
	}, nil
}

func (p *Publisher) PublishDatasetLoaded(ctx context.Context, event models.DatasetLoadedEvent) error {
	ctx = wrap.WithDatasetID(wrap.WithAction(ctx, types.ActionPublishEvent), event.DatasetID.String())
	return p.send(ctx, KeyDatasetLoaded, event)
}

func (p *Publisher) PublishReportGenerated(ctx context.Context, event models.ReportGeneratedEvent) error {
	ctx = wrap.WithDatasetID(wrap.WithAction(ctx, types.ActionPublishEvent), event.DatasetID.String())
	return p.send(ctx, KeyReportGenerated, event)
}

func (p *Publisher) send(ctx context.Context, routingKey string, msg any) error {
	const op = "Publisher.send"

	body, err := json.Marshal(msg)
	if err != nil {
		return wrap.Error(ctx, fmt.Errorf("%s: marshal: %w", op, err))
	}

	pub := amqp.Publishing{
		ContentType:   "application/json",
		DeliveryMode:  amqp.Persistent,
		Body:          body,
		Timestamp:     time.Now(),
		CorrelationId: wrap.GetRequestID(ctx),
	}

	err = retry(ctx, p.retries, p.backoff, func() error {
		return p.publish(ctx, p.exchange, routingKey, pub)
	})
	metrics.RecordRabbitMQPublish(routingKey, err)
	if err != nil {
		return wrap.Error(ctx, fmt.Errorf("%s: publish %s: %w", op, routingKey, err))
	}

	p.l.Debug(ctx, "event published", "routing_key", routingKey, "exchange", p.exchange)
	return nil
}

// Noop drops every event. It is used when RabbitMQ is disabled.
type Noop struct{}

func (Noop) PublishDatasetLoaded(context.Context, models.DatasetLoadedEvent) error { return nil }

func (Noop) PublishReportGenerated(context.Context, models.ReportGeneratedEvent) error { return nil }
