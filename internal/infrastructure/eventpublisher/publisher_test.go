package eventpublisher

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/bankist/internal/domain"
)

func TestProcessEventsPublishesAndMarks(t *testing.T) {
	repo := &stubEventLog{
		events: []*domain.Event{{ID: "evt-1", Type: "type"}},
	}
	pub := &stubPublisher{}
	ep := newTestPublisher(repo, pub)

	published, failed, err := ep.processEvents(context.Background())
	if err != nil {
		t.Fatalf("processEvents failed: %v", err)
	}

	if published != 1 || failed != 0 {
		t.Fatalf("expected 1 published and 0 failed, got %d/%d", published, failed)
	}
	if len(pub.published) != 1 {
		t.Fatalf("expected one published event, got %d", len(pub.published))
	}
	if len(repo.marked) != 1 || repo.marked[0] != "evt-1" {
		t.Fatalf("expected event to be marked published, got %#v", repo.marked)
	}
}

func TestProcessEventsContinuesOnPublishError(t *testing.T) {
	repo := &stubEventLog{
		events: []*domain.Event{
			{ID: "evt-1", Type: "type"},
			{ID: "evt-2", Type: "type"},
		},
	}
	pub := &stubPublisher{
		errorsByID: map[string]error{"evt-1": errors.New("fail")},
	}
	ep := newTestPublisher(repo, pub)

	if _, _, err := ep.processEvents(context.Background()); err != nil {
		t.Fatalf("processEvents returned error: %v", err)
	}

	if len(pub.published) != 1 || pub.published[0].ID != "evt-2" {
		t.Fatalf("expected only evt-2 to be published, got %#v", pub.published)
	}
	if len(repo.marked) != 1 || repo.marked[0] != "evt-2" {
		t.Fatalf("expected only evt-2 to be marked, got %#v", repo.marked)
	}
}

func TestFlushDrainsAllBatches(t *testing.T) {
	repo := &stubEventLog{}
	for _, id := range []string{"a", "b", "c", "d", "e"} {
		repo.events = append(repo.events, &domain.Event{ID: id, Type: "type"})
	}
	pub := &stubPublisher{}
	ep := newTestPublisher(repo, pub)
	ep.batchSize = 2

	total, err := ep.Flush(context.Background())
	if err != nil {
		t.Fatalf("Flush failed: %v", err)
	}

	if total != 5 {
		t.Fatalf("expected 5 events published, got %d", total)
	}
	if len(repo.unpublished()) != 0 {
		t.Fatalf("expected nothing left unpublished, got %d", len(repo.unpublished()))
	}
}

func TestFlushStopsOnFailedBatch(t *testing.T) {
	repo := &stubEventLog{
		events: []*domain.Event{{ID: "bad", Type: "type"}, {ID: "ok", Type: "type"}},
	}
	pub := &stubPublisher{errorsByID: map[string]error{"bad": errors.New("fail")}}
	ep := newTestPublisher(repo, pub)

	total, err := ep.Flush(context.Background())
	if err != nil {
		t.Fatalf("Flush failed: %v", err)
	}

	if total != 1 {
		t.Fatalf("expected 1 event published, got %d", total)
	}
	if left := repo.unpublished(); len(left) != 1 || left[0].ID != "bad" {
		t.Fatalf("expected failed event to stay unpublished, got %#v", left)
	}
}

func TestFlushReturnsLogError(t *testing.T) {
	repo := &stubEventLog{err: errors.New("log unavailable")}
	ep := newTestPublisher(repo, &stubPublisher{})

	if _, err := ep.Flush(context.Background()); err == nil {
		t.Fatal("expected error from event log")
	}
}

func TestFlushHonoursCancelledContext(t *testing.T) {
	repo := &stubEventLog{events: []*domain.Event{{ID: "evt-1"}}}
	ep := newTestPublisher(repo, &stubPublisher{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := ep.Flush(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context canceled, got %v", err)
	}
}

func TestLogPublisherWritesPayload(t *testing.T) {
	var buf bytes.Buffer
	pub := NewLogPublisher(zerolog.New(&buf))

	err := pub.Publish(context.Background(), &domain.Event{
		ID:        "evt-1",
		Type:      domain.EventTypeMovementRecorded,
		AccountID: "acc-1",
		Payload:   map[string]any{"amount": "250"},
	})
	if err != nil {
		t.Fatalf("Publish failed: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, `"payload":{"amount":"250"}`) {
		t.Fatalf("expected payload in output, got %q", out)
	}
	if !strings.Contains(out, `"event_type":"movement.recorded"`) {
		t.Fatalf("expected event type in output, got %q", out)
	}
}

func newTestPublisher(repo *stubEventLog, pub *stubPublisher) *EventPublisher {
	return NewEventPublisher(Config{
		EventLog:  repo,
		Publisher: pub,
		Logger:    zerolog.Nop(),
		BatchSize: 10,
	})
}

type stubEventLog struct {
	events []*domain.Event
	marked []string
	err    error
}

func (s *stubEventLog) Record(ctx context.Context, event *domain.Event) error {
	s.events = append(s.events, event)
	return nil
}

func (s *stubEventLog) unpublished() []*domain.Event {
	var out []*domain.Event
	for _, e := range s.events {
		if !e.Published {
			out = append(out, e)
		}
	}
	return out
}

func (s *stubEventLog) GetUnpublished(ctx context.Context, limit int) ([]*domain.Event, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := s.unpublished()
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *stubEventLog) MarkPublished(ctx context.Context, id string, publishedAt time.Time) error {
	s.marked = append(s.marked, id)
	for _, e := range s.events {
		if e.ID == id {
			e.Published = true
		}
	}
	return nil
}

type stubPublisher struct {
	published  []*domain.Event
	errorsByID map[string]error
}

func (s *stubPublisher) Publish(ctx context.Context, event *domain.Event) error {
	if err := s.errorsByID[event.ID]; err != nil {
		return err
	}
	s.published = append(s.published, event)
	return nil
}
