package services

import (
	"context"
	"time"

	"github.com/NightRunnerEB/Genome-sub000/internal/observability/metrics"
	"github.com/NightRunnerEB/Genome-sub000/internal/types"
	"github.com/rs/zerolog/log"
)

const defaultEventPublishTimeout = 10 * time.Second

// EventPublisher delivers committed events to downstream consumers.
type EventPublisher interface {
	Publish(ctx context.Context, event *types.Event) error
}

type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, *types.Event) error {
	return nil
}

// publishEvents runs after commit. A failed delivery is logged and counted,
// the committed state is not affected.
func (s *Service) publishEvents(ctx context.Context, events []*types.Event) {
	timeout := s.cfg.Poller.EventPublishTimeout
	if timeout == 0 {
		timeout = defaultEventPublishTimeout
	}

	for _, event := range events {
		publishCtx, cancel := context.WithTimeout(ctx, timeout)
		err := s.publisher.Publish(publishCtx, event)
		cancel()
		if err != nil {
			metrics.RecordQueueSendError()
			log.Ctx(ctx).Error().
				Err(err).
				Str("event_id", event.ID).
				Str("event_type", event.Type.String()).
				Msg("Failed to publish event")
		}
	}
}
