package memory

import (
	"context"
	"time"

	"github.com/iho/bankist/internal/domain"
)

// EventLog implements usecase.EventLog with an append-only slice.
type EventLog struct {
	events []*domain.Event
	byID   map[string]*domain.Event
}

// NewEventLog creates an empty EventLog.
func NewEventLog() *EventLog {
	return &EventLog{byID: make(map[string]*domain.Event)}
}

// Record appends an event.
func (l *EventLog) Record(ctx context.Context, event *domain.Event) error {
	l.events = append(l.events, event)
	if event.ID != "" {
		l.byID[event.ID] = event
	}
	return nil
}

// GetUnpublished returns up to limit unpublished events, oldest first.
func (l *EventLog) GetUnpublished(ctx context.Context, limit int) ([]*domain.Event, error) {
	var out []*domain.Event
	for _, e := range l.events {
		if len(out) == limit {
			break
		}
		if !e.Published {
			out = append(out, e)
		}
	}
	return out, nil
}

// MarkPublished flags an event as published.
func (l *EventLog) MarkPublished(ctx context.Context, id string, publishedAt time.Time) error {
	e, ok := l.byID[id]
	if !ok {
		return ErrEventNotFound
	}
	e.Published = true
	e.PublishedAt = &publishedAt
	return nil
}

// All returns every recorded event in order.
func (l *EventLog) All() []*domain.Event {
	out := make([]*domain.Event, len(l.events))
	copy(out, l.events)
	return out
}
