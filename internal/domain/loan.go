package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// LoanApprover decides whether a requested loan may be deposited.
type LoanApprover interface {
	ApproveLoan(amount decimal.Decimal) bool
}

// LoanApproverFunc adapts a plain function to LoanApprover.
type LoanApproverFunc func(amount decimal.Decimal) bool

// ApproveLoan calls f(amount).
func (f LoanApproverFunc) ApproveLoan(amount decimal.Decimal) bool {
	return f(amount)
}

type approveAll struct{}

func (approveAll) ApproveLoan(decimal.Decimal) bool { return true }

type denyAll struct{}

func (denyAll) ApproveLoan(decimal.Decimal) bool { return false }

var (
	// ApproveAll approves every loan request. It is the default policy.
	ApproveAll LoanApprover = approveAll{}
	// DenyAll rejects every loan request.
	DenyAll LoanApprover = denyAll{}
)

// Loan approval policy names accepted by LoanApproverByName.
const (
	LoanApprovalAlways = "always"
	LoanApprovalNever  = "never"
)

// LoanApproverByName returns the approval policy registered under name.
func LoanApproverByName(name string) (LoanApprover, error) {
	switch name {
	case LoanApprovalAlways, "":
		return ApproveAll, nil
	case LoanApprovalNever:
		return DenyAll, nil
	default:
		return nil, fmt.Errorf("unknown loan approval policy %q", name)
	}
}
