package domain

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// Validation errors
var (
	ErrInvalidOwner            = errors.New("invalid account owner")
	ErrInvalidCurrency         = errors.New("invalid currency code")
	ErrInvalidAccessCodeFormat = errors.New("invalid access code format")
)

// Validation constants
const (
	MaxOwnerLength      = 255
	MinOwnerLength      = 1
	MinAccessCodeLength = 1
	MaxAccessCodeLength = 72 // bcrypt input limit
)

// Valid currency codes (ISO 4217)
var validCurrencies = map[string]bool{
	"USD": true, "EUR": true, "GBP": true, "JPY": true,
	"CNY": true, "AUD": true, "CAD": true, "CHF": true,
	"SEK": true, "NZD": true, "KRW": true, "SGD": true,
	"NOK": true, "MXN": true, "INR": true, "BRL": true,
	"ZAR": true, "RUB": true, "TRY": true, "HKD": true,
}

// ValidateOwner validates the account owner's display name.
func ValidateOwner(owner string) error {
	owner = strings.TrimSpace(owner)
	n := utf8.RuneCountInString(owner)

	if n < MinOwnerLength {
		return fmt.Errorf("%w: owner cannot be empty", ErrInvalidOwner)
	}

	if n > MaxOwnerLength {
		return fmt.Errorf("%w: owner exceeds %d characters", ErrInvalidOwner, MaxOwnerLength)
	}

	return nil
}

// NormalizeCurrency upper-cases and trims a currency code.
func NormalizeCurrency(currency string) string {
	return strings.ToUpper(strings.TrimSpace(currency))
}

// ValidateCurrency validates currency code
func ValidateCurrency(currency string) error {
	currency = NormalizeCurrency(currency)

	if !validCurrencies[currency] {
		return fmt.Errorf("%w: %s is not a valid ISO 4217 currency code", ErrInvalidCurrency, currency)
	}

	return nil
}

// ValidateAccessCode checks the access code fits what the hash can hold.
func ValidateAccessCode(code string) error {
	if len(code) < MinAccessCodeLength {
		return fmt.Errorf("%w: access code cannot be empty", ErrInvalidAccessCodeFormat)
	}

	if len(code) > MaxAccessCodeLength {
		return fmt.Errorf("%w: access code exceeds %d bytes", ErrInvalidAccessCodeFormat, MaxAccessCodeLength)
	}

	return nil
}

// ValidateAmount rejects zero and negative amounts.
func ValidateAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: got %s", ErrInvalidAmount, amount)
	}

	return nil
}

// ValidatePagination validates and limits pagination parameters
func ValidatePagination(limit, offset int) (int, int) {
	const MaxPageSize = 100
	const DefaultPageSize = 20

	if limit <= 0 {
		limit = DefaultPageSize
	}

	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	if offset < 0 {
		offset = 0
	}

	return limit, offset
}
