package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Event types
const (
	EventTypeAccountOpened    = "account.opened"
	EventTypeMovementRecorded = "movement.recorded"
	EventTypeLoanDenied       = "loan.denied"
)

// MovementKind names the operation that produced a movement.
type MovementKind string

const (
	MovementDeposit    MovementKind = "deposit"
	MovementWithdrawal MovementKind = "withdrawal"
	MovementLoan       MovementKind = "loan"
)

// Event is a fact recorded after an account operation.
type Event struct {
	ID          string
	AccountID   string
	Type        string
	Payload     map[string]any
	CreatedAt   time.Time
	PublishedAt *time.Time
	Published   bool
}

// AccountOpenedEvent payload
type AccountOpenedEvent struct {
	AccountID string `json:"account_id"`
	Owner     string `json:"owner"`
	Currency  string `json:"currency"`
}

// MovementRecordedEvent payload
type MovementRecordedEvent struct {
	AccountID string          `json:"account_id"`
	Kind      MovementKind    `json:"kind"`
	Amount    decimal.Decimal `json:"amount"`
	Balance   decimal.Decimal `json:"balance"`
}

// LoanDeniedEvent payload
type LoanDeniedEvent struct {
	AccountID string          `json:"account_id"`
	Amount    decimal.Decimal `json:"amount"`
}

// Payload flattens the event into the generic payload map.
func (e AccountOpenedEvent) Payload() map[string]any {
	return map[string]any{
		"account_id": e.AccountID,
		"owner":      e.Owner,
		"currency":   e.Currency,
	}
}

// Payload flattens the event into the generic payload map.
func (e MovementRecordedEvent) Payload() map[string]any {
	return map[string]any{
		"account_id": e.AccountID,
		"kind":       string(e.Kind),
		"amount":     e.Amount.String(),
		"balance":    e.Balance.String(),
	}
}

// Payload flattens the event into the generic payload map.
func (e LoanDeniedEvent) Payload() map[string]any {
	return map[string]any{
		"account_id": e.AccountID,
		"amount":     e.Amount.String(),
	}
}
