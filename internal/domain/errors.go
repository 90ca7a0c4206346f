package domain

import "errors"

var (
	// Account errors
	ErrAccountNotFound   = errors.New("account not found")
	ErrAccountIDAssigned = errors.New("account ID already assigned")
	ErrInvalidAccessCode = errors.New("invalid access code")

	// Movement errors
	ErrInvalidAmount = errors.New("amount must be positive")
	ErrLoanDenied    = errors.New("loan request denied")
)
