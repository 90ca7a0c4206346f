package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/bankist/internal/domain"
)

// AccountPolicy holds the options every new account is built with.
type AccountPolicy struct {
	LoanApprover  domain.LoanApprover
	StrictAmounts bool
	BcryptCost    int
}

func (p AccountPolicy) options() []domain.AccountOption {
	opts := []domain.AccountOption{domain.WithLoanApprover(p.LoanApprover)}
	if p.StrictAmounts {
		opts = append(opts, domain.WithStrictAmounts())
	}
	if p.BcryptCost > 0 {
		opts = append(opts, domain.WithBcryptCost(p.BcryptCost))
	}
	return opts
}

// AccountUseCase handles account lifecycle and access.
type AccountUseCase struct {
	accountRepo AccountRepository
	idGen       IDGenerator
	events      EventRecorder
	metrics     Metrics
	policy      AccountPolicy
	logger      zerolog.Logger
}

// NewAccountUseCase creates a new AccountUseCase.
func NewAccountUseCase(
	accountRepo AccountRepository,
	idGen IDGenerator,
	events EventRecorder,
	metrics Metrics,
	policy AccountPolicy,
	logger zerolog.Logger,
) *AccountUseCase {
	return &AccountUseCase{
		accountRepo: accountRepo,
		idGen:       idGen,
		events:      events,
		metrics:     metrics,
		policy:      policy,
		logger:      logger.With().Str("component", "account_usecase").Logger(),
	}
}

// OpenAccountInput represents input for opening an account.
type OpenAccountInput struct {
	Owner      string
	Currency   string
	AccessCode string
}

// OpenAccount validates the input and creates an account with an empty ledger.
func (uc *AccountUseCase) OpenAccount(ctx context.Context, input OpenAccountInput) (*domain.Account, error) {
	if err := uc.validateOpen(input); err != nil {
		uc.metrics.OperationFailed(OperationOpen, err)
		return nil, err
	}

	account, err := domain.NewAccount(
		strings.TrimSpace(input.Owner),
		domain.NormalizeCurrency(input.Currency),
		input.AccessCode,
		uc.policy.options()...,
	)
	if err != nil {
		uc.metrics.OperationFailed(OperationOpen, err)
		return nil, fmt.Errorf("build account: %w", err)
	}

	if err := account.AssignID(uc.idGen.Generate()); err != nil {
		return nil, err
	}

	if err := uc.accountRepo.Create(ctx, account); err != nil {
		uc.metrics.OperationFailed(OperationOpen, err)
		return nil, err
	}

	payload := domain.AccountOpenedEvent{
		AccountID: account.ID(),
		Owner:     account.Owner(),
		Currency:  account.Currency(),
	}
	if err := uc.events.Record(ctx, &domain.Event{
		ID:        uc.idGen.Generate(),
		AccountID: account.ID(),
		Type:      domain.EventTypeAccountOpened,
		Payload:   payload.Payload(),
		CreatedAt: time.Now().UTC(),
	}); err != nil {
		return nil, fmt.Errorf("record event: %w", err)
	}

	uc.metrics.AccountOpened(account.Currency())
	uc.logger.Info().
		Str("account_id", account.ID()).
		Str("owner", account.Owner()).
		Str("currency", account.Currency()).
		Msg("account opened")

	return account, nil
}

func (uc *AccountUseCase) validateOpen(input OpenAccountInput) error {
	if err := domain.ValidateOwner(input.Owner); err != nil {
		return err
	}
	if err := domain.ValidateCurrency(input.Currency); err != nil {
		return err
	}
	return domain.ValidateAccessCode(input.AccessCode)
}

// GetAccount retrieves an account by ID.
func (uc *AccountUseCase) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	return uc.accountRepo.GetByID(ctx, id)
}

// ListAccountsInput represents input for listing accounts.
type ListAccountsInput struct {
	Limit  int
	Offset int
}

// ListAccounts lists accounts in the order they were opened.
func (uc *AccountUseCase) ListAccounts(ctx context.Context, input ListAccountsInput) ([]*domain.Account, error) {
	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)
	return uc.accountRepo.List(ctx, limit, offset)
}

// Authenticate checks code against the account's access code.
func (uc *AccountUseCase) Authenticate(ctx context.Context, id, code string) (*domain.Account, error) {
	account, err := uc.accountRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := account.VerifyAccessCode(code); err != nil {
		uc.metrics.OperationFailed(OperationAuthenticate, err)
		uc.logger.Warn().Str("account_id", id).Msg("access code rejected")
		return nil, err
	}

	uc.logger.Debug().Str("account_id", id).Msg("account authenticated")
	return account, nil
}
