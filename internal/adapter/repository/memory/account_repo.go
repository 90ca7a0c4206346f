// Package memory holds process-local repositories. Nothing here survives a
// restart and none of the types are safe for concurrent use.
package memory

import (
	"context"
	"errors"

	"github.com/iho/bankist/internal/domain"
)

// Repository errors
var (
	ErrDuplicateAccount = errors.New("account already exists")
	ErrEventNotFound    = errors.New("event not found")
)

// AccountRepository implements usecase.AccountRepository.
type AccountRepository struct {
	accounts map[string]*domain.Account
	order    []string
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository() *AccountRepository {
	return &AccountRepository{
		accounts: make(map[string]*domain.Account),
	}
}

// Create stores a new account.
func (r *AccountRepository) Create(ctx context.Context, account *domain.Account) error {
	if account.ID() == "" {
		return errors.New("account has no ID")
	}
	if _, ok := r.accounts[account.ID()]; ok {
		return ErrDuplicateAccount
	}

	r.accounts[account.ID()] = account
	r.order = append(r.order, account.ID())
	return nil
}

// GetByID retrieves an account by ID.
func (r *AccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	account, ok := r.accounts[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	return account, nil
}

// Update replaces the stored account with the same ID.
func (r *AccountRepository) Update(ctx context.Context, account *domain.Account) error {
	if _, ok := r.accounts[account.ID()]; !ok {
		return domain.ErrAccountNotFound
	}
	r.accounts[account.ID()] = account
	return nil
}

// List returns accounts in creation order.
func (r *AccountRepository) List(ctx context.Context, limit, offset int) ([]*domain.Account, error) {
	if offset >= len(r.order) {
		return []*domain.Account{}, nil
	}

	end := offset + limit
	if end > len(r.order) {
		end = len(r.order)
	}

	out := make([]*domain.Account, 0, end-offset)
	for _, id := range r.order[offset:end] {
		out = append(out, r.accounts[id])
	}
	return out, nil
}
