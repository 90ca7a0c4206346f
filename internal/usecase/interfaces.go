package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/bankist/internal/domain"
)

// AccountRepository defines data access for accounts.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	Update(ctx context.Context, account *domain.Account) error
	List(ctx context.Context, limit, offset int) ([]*domain.Account, error)
}

// EventRecorder stores domain events for later publishing.
type EventRecorder interface {
	Record(ctx context.Context, event *domain.Event) error
}

// EventLog gives the publisher access to recorded events.
type EventLog interface {
	EventRecorder
	GetUnpublished(ctx context.Context, limit int) ([]*domain.Event, error)
	MarkPublished(ctx context.Context, id string, publishedAt time.Time) error
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Metrics records operational counters for account operations.
type Metrics interface {
	AccountOpened(currency string)
	MovementRecorded(kind domain.MovementKind, amount decimal.Decimal)
	LoanDecided(approved bool)
	OperationFailed(operation string, err error)
}
