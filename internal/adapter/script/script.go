// Package script replays a YAML session of account operations.
package script

import (
	"errors"
	"fmt"
	"io"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Script errors
var (
	ErrInvalidScript = errors.New("invalid script")
	ErrUnknownRef    = errors.New("unknown account ref")
)

// Supported step operations.
const (
	OpDeposit  = "deposit"
	OpWithdraw = "withdraw"
	OpLoan     = "loan"
)

// Script is a session: accounts to open, then steps to apply in order.
type Script struct {
	Accounts []AccountSpec `yaml:"accounts" validate:"required,min=1,dive"`
	Steps    []Step        `yaml:"steps"    validate:"dive"`
}

// AccountSpec describes an account to open. Ref names it for later steps.
type AccountSpec struct {
	Ref        string `yaml:"ref"         validate:"required"`
	Owner      string `yaml:"owner"       validate:"required"`
	Currency   string `yaml:"currency"`
	AccessCode string `yaml:"access_code" validate:"required"`
}

// Step is a single ledger operation. When AccessCode is set the account is
// authenticated before the operation runs.
type Step struct {
	Account    string `yaml:"account"     validate:"required"`
	Op         string `yaml:"op"          validate:"required,oneof=deposit withdraw loan"`
	Amount     string `yaml:"amount"      validate:"required,numeric"`
	AccessCode string `yaml:"access_code"`
}

// Value parses the step amount.
func (s Step) Value() (decimal.Decimal, error) {
	return decimal.NewFromString(s.Amount)
}

var validate = validator.New()

// Parse decodes and validates a script.
func Parse(r io.Reader) (*Script, error) {
	var s Script

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrInvalidScript)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidScript, err)
	}

	if err := validate.Struct(&s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScript, err)
	}

	refs := make(map[string]bool, len(s.Accounts))
	for _, a := range s.Accounts {
		if refs[a.Ref] {
			return nil, fmt.Errorf("%w: duplicate account ref %q", ErrInvalidScript, a.Ref)
		}
		refs[a.Ref] = true
	}

	for i, step := range s.Steps {
		if !refs[step.Account] {
			return nil, fmt.Errorf("%w: step %d: %w %q", ErrInvalidScript, i, ErrUnknownRef, step.Account)
		}
	}

	return &s, nil
}
