package domain

import (
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

// Account holds an owner's ledger of signed movements.
// Positive movements are deposits, negative ones are withdrawals.
// An Account is not safe for concurrent use.
type Account struct {
	id             string
	owner          string
	currency       string
	accessCodeHash []byte
	movements      []decimal.Decimal
	createdAt      time.Time

	approver      LoanApprover
	strictAmounts bool
}

// AccountOption configures an Account at construction.
type AccountOption func(*accountOptions)

type accountOptions struct {
	approver      LoanApprover
	strictAmounts bool
	bcryptCost    int
	now           func() time.Time
}

// WithLoanApprover sets the policy behind the loan approval check.
func WithLoanApprover(approver LoanApprover) AccountOption {
	return func(o *accountOptions) {
		if approver != nil {
			o.approver = approver
		}
	}
}

// WithStrictAmounts makes Deposit, Withdraw and RequestLoan reject
// non-positive amounts with ErrInvalidAmount.
func WithStrictAmounts() AccountOption {
	return func(o *accountOptions) {
		o.strictAmounts = true
	}
}

// WithBcryptCost overrides the cost used to hash the access code.
func WithBcryptCost(cost int) AccountOption {
	return func(o *accountOptions) {
		o.bcryptCost = cost
	}
}

// WithClock overrides the creation timestamp source.
func WithClock(now func() time.Time) AccountOption {
	return func(o *accountOptions) {
		if now != nil {
			o.now = now
		}
	}
}

// NewAccount creates an account with an empty ledger.
// The access code is kept only as a bcrypt hash.
func NewAccount(owner, currency, accessCode string, opts ...AccountOption) (*Account, error) {
	o := accountOptions{
		approver:   ApproveAll,
		bcryptCost: bcrypt.DefaultCost,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(&o)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(accessCode), o.bcryptCost)
	if err != nil {
		return nil, err
	}

	return &Account{
		owner:          owner,
		currency:       currency,
		accessCodeHash: hash,
		movements:      []decimal.Decimal{},
		createdAt:      o.now().UTC(),
		approver:       o.approver,
		strictAmounts:  o.strictAmounts,
	}, nil
}

// ID returns the identifier assigned by AssignID, or "" if none was assigned.
func (a *Account) ID() string { return a.id }

// Owner returns the account owner's display name.
func (a *Account) Owner() string { return a.owner }

// Currency returns the account currency code.
func (a *Account) Currency() string { return a.currency }

// CreatedAt returns when the account was constructed.
func (a *Account) CreatedAt() time.Time { return a.createdAt }

// AssignID sets the account identifier. It can be called once.
func (a *Account) AssignID(id string) error {
	if a.id != "" {
		return ErrAccountIDAssigned
	}
	a.id = id
	return nil
}

// Movements returns a copy of the ledger in chronological order.
func (a *Account) Movements() []decimal.Decimal {
	out := make([]decimal.Decimal, len(a.movements))
	copy(out, a.movements)
	return out
}

// Balance returns the sum of all movements.
func (a *Account) Balance() decimal.Decimal {
	balance := decimal.Zero
	for _, m := range a.movements {
		balance = balance.Add(m)
	}
	return balance
}

// Deposit appends amount to the ledger.
func (a *Account) Deposit(amount decimal.Decimal) error {
	if err := a.checkAmount(amount); err != nil {
		return err
	}
	a.record(amount)
	return nil
}

// Withdraw appends the negated amount to the ledger.
func (a *Account) Withdraw(amount decimal.Decimal) error {
	if a.strictAmounts {
		if err := a.checkAmount(amount); err != nil {
			return err
		}
		a.record(amount.Neg())
		return nil
	}
	return a.Deposit(amount.Neg())
}

// RequestLoan deposits amount if the loan approval check passes.
// A nil error signals approval; ErrLoanDenied leaves the ledger untouched.
func (a *Account) RequestLoan(amount decimal.Decimal) error {
	if err := a.checkAmount(amount); err != nil {
		return err
	}
	if !a.approveLoan(amount) {
		return ErrLoanDenied
	}
	return a.Deposit(amount)
}

// VerifyAccessCode reports whether code matches the account's access code.
func (a *Account) VerifyAccessCode(code string) error {
	if err := bcrypt.CompareHashAndPassword(a.accessCodeHash, []byte(code)); err != nil {
		return ErrInvalidAccessCode
	}
	return nil
}

func (a *Account) approveLoan(amount decimal.Decimal) bool {
	return a.approver.ApproveLoan(amount)
}

func (a *Account) checkAmount(amount decimal.Decimal) error {
	if a.strictAmounts {
		return ValidateAmount(amount)
	}
	return nil
}

func (a *Account) record(amount decimal.Decimal) {
	a.movements = append(a.movements, amount)
}
