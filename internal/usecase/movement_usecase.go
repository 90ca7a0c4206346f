package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/bankist/internal/domain"
)

// MovementUseCase runs ledger operations against stored accounts.
type MovementUseCase struct {
	accountRepo AccountRepository
	idGen       IDGenerator
	events      EventRecorder
	metrics     Metrics
	logger      zerolog.Logger
}

// NewMovementUseCase creates a new MovementUseCase.
func NewMovementUseCase(
	accountRepo AccountRepository,
	idGen IDGenerator,
	events EventRecorder,
	metrics Metrics,
	logger zerolog.Logger,
) *MovementUseCase {
	return &MovementUseCase{
		accountRepo: accountRepo,
		idGen:       idGen,
		events:      events,
		metrics:     metrics,
		logger:      logger.With().Str("component", "movement_usecase").Logger(),
	}
}

// MovementInput represents input for a single ledger operation.
type MovementInput struct {
	AccountID string
	Amount    decimal.Decimal
}

// Deposit appends a positive movement to the account.
func (uc *MovementUseCase) Deposit(ctx context.Context, input MovementInput) (*domain.Account, error) {
	return uc.apply(ctx, OperationDeposit, domain.MovementDeposit, input, (*domain.Account).Deposit)
}

// Withdraw appends a negative movement to the account.
func (uc *MovementUseCase) Withdraw(ctx context.Context, input MovementInput) (*domain.Account, error) {
	return uc.apply(ctx, OperationWithdraw, domain.MovementWithdrawal, input, (*domain.Account).Withdraw)
}

// RequestLoan deposits the amount if the account's approval check passes.
// Denied loans return domain.ErrLoanDenied and leave the ledger unchanged.
func (uc *MovementUseCase) RequestLoan(ctx context.Context, input MovementInput) (*domain.Account, error) {
	account, err := uc.apply(ctx, OperationLoan, domain.MovementLoan, input, (*domain.Account).RequestLoan)

	switch {
	case err == nil:
		uc.metrics.LoanDecided(true)
	case errors.Is(err, domain.ErrLoanDenied):
		uc.metrics.LoanDecided(false)
		payload := domain.LoanDeniedEvent{AccountID: input.AccountID, Amount: input.Amount}
		if recErr := uc.record(ctx, input.AccountID, domain.EventTypeLoanDenied, payload.Payload()); recErr != nil {
			return nil, recErr
		}
	}

	return account, err
}

// GetMovements returns a copy of the account's ledger.
func (uc *MovementUseCase) GetMovements(ctx context.Context, accountID string) ([]decimal.Decimal, error) {
	account, err := uc.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return account.Movements(), nil
}

func (uc *MovementUseCase) apply(
	ctx context.Context,
	operation string,
	kind domain.MovementKind,
	input MovementInput,
	op func(*domain.Account, decimal.Decimal) error,
) (*domain.Account, error) {
	log := uc.logger.With().
		Str("operation", operation).
		Str("account_id", input.AccountID).
		Str("amount", input.Amount.String()).
		Logger()

	account, err := uc.accountRepo.GetByID(ctx, input.AccountID)
	if err != nil {
		uc.metrics.OperationFailed(operation, err)
		return nil, err
	}

	before := len(account.Movements())
	if err := op(account, input.Amount); err != nil {
		uc.metrics.OperationFailed(operation, err)
		log.Info().Err(err).Msg("operation rejected")
		return nil, err
	}

	movements := account.Movements()
	if len(movements) != before+1 {
		return nil, fmt.Errorf("%s did not append exactly one movement", operation)
	}
	recorded := movements[before]

	if err := uc.accountRepo.Update(ctx, account); err != nil {
		uc.metrics.OperationFailed(operation, err)
		return nil, err
	}

	payload := domain.MovementRecordedEvent{
		AccountID: account.ID(),
		Kind:      kind,
		Amount:    recorded,
		Balance:   account.Balance(),
	}
	if err := uc.record(ctx, account.ID(), domain.EventTypeMovementRecorded, payload.Payload()); err != nil {
		return nil, err
	}

	uc.metrics.MovementRecorded(kind, recorded)
	log.Debug().Str("movement", recorded.String()).Msg("movement recorded")

	return account, nil
}

func (uc *MovementUseCase) record(ctx context.Context, accountID, eventType string, payload map[string]any) error {
	err := uc.events.Record(ctx, &domain.Event{
		ID:        uc.idGen.Generate(),
		AccountID: accountID,
		Type:      eventType,
		Payload:   payload,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("record event: %w", err)
	}
	return nil
}
