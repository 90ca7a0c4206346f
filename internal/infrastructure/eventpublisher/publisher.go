package eventpublisher

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/bankist/internal/domain"
	"github.com/iho/bankist/internal/usecase"
)

// EventPublisher drains recorded events to a Publisher.
type EventPublisher struct {
	eventLog  usecase.EventLog
	publisher Publisher
	logger    zerolog.Logger
	batchSize int
	now       func() time.Time
}

// Publisher defines the interface for publishing events to external systems.
type Publisher interface {
	Publish(ctx context.Context, event *domain.Event) error
}

// Config for EventPublisher.
type Config struct {
	EventLog  usecase.EventLog
	Publisher Publisher
	Logger    zerolog.Logger
	BatchSize int // Number of events to fetch per batch
}

// NewEventPublisher creates a new EventPublisher.
func NewEventPublisher(cfg Config) *EventPublisher {
	if cfg.BatchSize == 0 {
		cfg.BatchSize = 100
	}

	return &EventPublisher{
		eventLog:  cfg.EventLog,
		publisher: cfg.Publisher,
		logger:    cfg.Logger.With().Str("component", "event_publisher").Logger(),
		batchSize: cfg.BatchSize,
		now:       time.Now,
	}
}

// Flush publishes unpublished events batch by batch and returns how many
// were published. It stops after the first batch with a failed event so
// failing events are not retried in a loop.
func (ep *EventPublisher) Flush(ctx context.Context) (int, error) {
	total := 0
	for {
		if err := ctx.Err(); err != nil {
			return total, err
		}

		published, failed, err := ep.processEvents(ctx)
		total += published
		if err != nil {
			return total, err
		}
		if published == 0 || failed > 0 {
			return total, nil
		}
	}
}

// processEvents fetches and publishes a batch of unpublished events.
func (ep *EventPublisher) processEvents(ctx context.Context) (published, failed int, err error) {
	events, err := ep.eventLog.GetUnpublished(ctx, ep.batchSize)
	if err != nil {
		return 0, 0, err
	}

	if len(events) == 0 {
		return 0, 0, nil
	}

	ep.logger.Debug().Int("count", len(events)).Msg("processing events")

	for _, event := range events {
		if err := ep.publishEvent(ctx, event); err != nil {
			ep.logger.Error().
				Err(err).
				Str("event_id", event.ID).
				Str("event_type", event.Type).
				Msg("failed to publish event")
			// Continue processing other events even if one fails
			failed++
			continue
		}

		if err := ep.eventLog.MarkPublished(ctx, event.ID, ep.now()); err != nil {
			ep.logger.Error().
				Err(err).
				Str("event_id", event.ID).
				Msg("failed to mark event as published")
			failed++
			continue
		}
		published++
	}

	return published, failed, nil
}

// publishEvent publishes a single event.
func (ep *EventPublisher) publishEvent(ctx context.Context, event *domain.Event) error {
	ep.logger.Debug().
		Str("event_id", event.ID).
		Str("event_type", event.Type).
		Str("account_id", event.AccountID).
		Msg("publishing event")

	return ep.publisher.Publish(ctx, event)
}

// LogPublisher is a simple publisher that logs events.
type LogPublisher struct {
	logger zerolog.Logger
}

// NewLogPublisher creates a new LogPublisher.
func NewLogPublisher(logger zerolog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

// Publish logs the event.
func (p *LogPublisher) Publish(ctx context.Context, event *domain.Event) error {
	payload, err := json.Marshal(event.Payload)
	if err != nil {
		return err
	}

	p.logger.Info().
		Str("event_id", event.ID).
		Str("event_type", event.Type).
		Str("account_id", event.AccountID).
		RawJSON("payload", payload).
		Msg("event published")

	return nil
}
