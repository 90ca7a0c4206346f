package script

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/bankist/internal/domain"
	"github.com/iho/bankist/internal/usecase"
)

// AccountService defines the account operations the runner needs.
type AccountService interface {
	OpenAccount(ctx context.Context, input usecase.OpenAccountInput) (*domain.Account, error)
	Authenticate(ctx context.Context, id, code string) (*domain.Account, error)
}

// MovementService defines the ledger operations the runner needs.
type MovementService interface {
	Deposit(ctx context.Context, input usecase.MovementInput) (*domain.Account, error)
	Withdraw(ctx context.Context, input usecase.MovementInput) (*domain.Account, error)
	RequestLoan(ctx context.Context, input usecase.MovementInput) (*domain.Account, error)
	GetMovements(ctx context.Context, accountID string) ([]decimal.Decimal, error)
}

// Runner applies scripts through the use cases.
type Runner struct {
	accounts        AccountService
	movements       MovementService
	defaultCurrency string
	logger          zerolog.Logger
}

// NewRunner creates a new Runner. defaultCurrency fills accounts that omit one.
func NewRunner(accounts AccountService, movements MovementService, defaultCurrency string, logger zerolog.Logger) *Runner {
	return &Runner{
		accounts:        accounts,
		movements:       movements,
		defaultCurrency: defaultCurrency,
		logger:          logger.With().Str("component", "script_runner").Logger(),
	}
}

// AccountResult is the final state of one scripted account.
type AccountResult struct {
	Ref         string            `json:"ref"`
	ID          string            `json:"id"`
	Owner       string            `json:"owner"`
	Currency    string            `json:"currency"`
	Movements   []decimal.Decimal `json:"movements"`
	Balance     decimal.Decimal   `json:"balance"`
	DeniedLoans int               `json:"denied_loans"`
}

// Result is the outcome of a script run, accounts in script order.
type Result struct {
	Accounts []AccountResult `json:"accounts"`
}

// StepError reports which step stopped a run.
type StepError struct {
	Index int
	Step  Step
	Err   error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (%s %s on %s): %v", e.Index, e.Step.Op, e.Step.Amount, e.Step.Account, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }

// Run opens every account, then applies the steps in order. A denied loan
// is counted and the run continues; any other error stops it.
func (r *Runner) Run(ctx context.Context, s *Script) (*Result, error) {
	opened := make(map[string]*domain.Account, len(s.Accounts))
	denied := make(map[string]int, len(s.Accounts))

	for _, spec := range s.Accounts {
		currency := spec.Currency
		if currency == "" {
			currency = r.defaultCurrency
		}

		account, err := r.accounts.OpenAccount(ctx, usecase.OpenAccountInput{
			Owner:      spec.Owner,
			Currency:   currency,
			AccessCode: spec.AccessCode,
		})
		if err != nil {
			return nil, fmt.Errorf("open account %q: %w", spec.Ref, err)
		}
		opened[spec.Ref] = account
	}

	for i, step := range s.Steps {
		account, ok := opened[step.Account]
		if !ok {
			return nil, &StepError{Index: i, Step: step, Err: ErrUnknownRef}
		}

		err := r.apply(ctx, account.ID(), step)
		switch {
		case err == nil:
		case errors.Is(err, domain.ErrLoanDenied):
			denied[step.Account]++
			r.logger.Info().Int("step", i).Str("account", step.Account).Msg("loan denied, continuing")
		default:
			return nil, &StepError{Index: i, Step: step, Err: err}
		}
	}

	result := &Result{Accounts: make([]AccountResult, 0, len(s.Accounts))}
	for _, spec := range s.Accounts {
		account := opened[spec.Ref]
		movements, err := r.movements.GetMovements(ctx, account.ID())
		if err != nil {
			return nil, err
		}

		result.Accounts = append(result.Accounts, AccountResult{
			Ref:         spec.Ref,
			ID:          account.ID(),
			Owner:       account.Owner(),
			Currency:    account.Currency(),
			Movements:   movements,
			Balance:     account.Balance(),
			DeniedLoans: denied[spec.Ref],
		})
	}

	return result, nil
}

func (r *Runner) apply(ctx context.Context, accountID string, step Step) error {
	if step.AccessCode != "" {
		if _, err := r.accounts.Authenticate(ctx, accountID, step.AccessCode); err != nil {
			return err
		}
	}

	amount, err := step.Value()
	if err != nil {
		return fmt.Errorf("parse amount: %w", err)
	}

	input := usecase.MovementInput{AccountID: accountID, Amount: amount}
	switch step.Op {
	case OpDeposit:
		_, err = r.movements.Deposit(ctx, input)
	case OpWithdraw:
		_, err = r.movements.Withdraw(ctx, input)
	case OpLoan:
		_, err = r.movements.RequestLoan(ctx, input)
	default:
		err = fmt.Errorf("unsupported op %q", step.Op)
	}
	return err
}
