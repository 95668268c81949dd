package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/NightRunnerEB/Genome-sub000/internal/config"
	"github.com/NightRunnerEB/Genome-sub000/internal/types"
	"github.com/avast/retry-go/v4"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const (
	DefaultExchange = "genome.events"
	exchangeKind    = "topic"
)

// Publisher sends committed engine events to a RabbitMQ topic exchange. The
// routing key of a message is its event type.
type Publisher struct {
	cfg    *config.QueueConfig
	logger *zap.Logger

	mu   sync.Mutex
	conn *amqp.Connection
	ch   *amqp.Channel
}

func NewPublisher(cfg *config.QueueConfig, logger *zap.Logger) (*Publisher, error) {
	p := &Publisher{
		cfg:    cfg,
		logger: logger.With(zap.String("component", "queue_publisher")),
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.connect(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Publisher) exchange() string {
	if p.cfg.Exchange == "" {
		return DefaultExchange
	}
	return p.cfg.Exchange
}

func brokerURL(cfg *config.QueueConfig) string {
	u := url.URL{
		Scheme: "amqp",
		User:   url.UserPassword(cfg.User, cfg.Password),
		Host:   cfg.Url,
	}
	return u.String()
}

// connect must be called with mu held.
func (p *Publisher) connect() error {
	conn, err := amqp.Dial(brokerURL(p.cfg))
	if err != nil {
		return fmt.Errorf("failed to connect to queue: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return fmt.Errorf("failed to open queue channel: %w", err)
	}
	if err := ch.ExchangeDeclare(p.exchange(), exchangeKind, true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return fmt.Errorf("failed to declare exchange %s: %w", p.exchange(), err)
	}

	p.conn = conn
	p.ch = ch
	return nil
}

func newMessage(event *types.Event) (amqp.Publishing, error) {
	body, err := json.Marshal(event)
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("failed to encode event %s: %w", event.ID, err)
	}
	return amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    event.ID,
		Type:         event.Type.String(),
		Timestamp:    time.Unix(event.Timestamp, 0),
		Body:         body,
	}, nil
}

// Publish delivers the event, reconnecting between attempts when the broker
// connection was lost.
func (p *Publisher) Publish(ctx context.Context, event *types.Event) error {
	msg, err := newMessage(event)
	if err != nil {
		return err
	}

	return retry.Do(
		func() error {
			return p.publish(ctx, event.Type.String(), msg)
		},
		retry.Context(ctx),
		retry.Attempts(p.cfg.MaxRetryTimes),
		retry.Delay(p.cfg.RetryInterval),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			p.logger.Warn("retrying event publish",
				zap.Uint("attempt", n+1),
				zap.String("event_id", event.ID),
				zap.Error(err),
			)
		}),
	)
}

func (p *Publisher) publish(ctx context.Context, routingKey string, msg amqp.Publishing) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.conn == nil || p.conn.IsClosed() {
		if err := p.connect(); err != nil {
			return err
		}
	}

	err := p.ch.PublishWithContext(ctx, p.exchange(), routingKey, false, false, msg)
	if errors.Is(err, amqp.ErrClosed) {
		p.conn = nil
	}
	return err
}

// Shutdown gracefully stops the interaction with the queue, ensuring all resources are properly released.
func (p *Publisher) Shutdown() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.logger.Info("shutting down queue publisher")
	if p.ch != nil {
		if err := p.ch.Close(); err != nil {
			p.logger.Warn("failed to close queue channel", zap.Error(err))
		}
	}
	if p.conn != nil {
		if err := p.conn.Close(); err != nil {
			p.logger.Warn("failed to close queue connection", zap.Error(err))
		}
	}
	p.conn, p.ch = nil, nil
}
