package domain

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestValidateOwner(t *testing.T) {
	t.Parallel()

	t.Run("valid owner", func(t *testing.T) {
		if err := ValidateOwner("Jonas Schmedtmann"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})

	t.Run("empty owner rejected", func(t *testing.T) {
		err := ValidateOwner("   ")
		if !errors.Is(err, ErrInvalidOwner) {
			t.Fatalf("expected ErrInvalidOwner, got %v", err)
		}
	})

	t.Run("owner too long", func(t *testing.T) {
		tooLong := strings.Repeat("a", MaxOwnerLength+1)
		err := ValidateOwner(tooLong)
		if !errors.Is(err, ErrInvalidOwner) {
			t.Fatalf("expected ErrInvalidOwner, got %v", err)
		}
	})

	t.Run("multibyte owner counted in runes", func(t *testing.T) {
		if err := ValidateOwner(strings.Repeat("ü", MaxOwnerLength)); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})
}

func TestValidateCurrency(t *testing.T) {
	t.Parallel()

	if err := ValidateCurrency(" eur "); err != nil {
		t.Fatalf("expected normalization to succeed, got %v", err)
	}

	if err := ValidateCurrency("XYZ"); !errors.Is(err, ErrInvalidCurrency) {
		t.Fatalf("expected ErrInvalidCurrency, got %v", err)
	}
}

func TestValidateAccessCode(t *testing.T) {
	t.Parallel()

	if err := ValidateAccessCode("1111"); err != nil {
		t.Fatalf("expected valid code, got %v", err)
	}

	if err := ValidateAccessCode(""); !errors.Is(err, ErrInvalidAccessCodeFormat) {
		t.Fatalf("expected ErrInvalidAccessCodeFormat for empty code, got %v", err)
	}

	if err := ValidateAccessCode(strings.Repeat("1", MaxAccessCodeLength+1)); !errors.Is(err, ErrInvalidAccessCodeFormat) {
		t.Fatalf("expected ErrInvalidAccessCodeFormat for long code, got %v", err)
	}
}

func TestValidateAmount(t *testing.T) {
	t.Parallel()

	if err := ValidateAmount(decimal.NewFromFloat(100.25)); err != nil {
		t.Fatalf("expected valid amount, got %v", err)
	}

	if err := ValidateAmount(decimal.Zero); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount for zero, got %v", err)
	}

	if err := ValidateAmount(decimal.NewFromInt(-1)); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount for negative, got %v", err)
	}
}

func TestValidatePagination(t *testing.T) {
	t.Parallel()

	tests := []struct {
		limit, offset         int
		wantLimit, wantOffset int
	}{
		{0, 0, 20, 0},
		{500, 5, 100, 5},
		{10, -3, 10, 0},
	}

	for _, tt := range tests {
		limit, offset := ValidatePagination(tt.limit, tt.offset)
		if limit != tt.wantLimit || offset != tt.wantOffset {
			t.Fatalf("ValidatePagination(%d, %d) = (%d, %d), want (%d, %d)",
				tt.limit, tt.offset, limit, offset, tt.wantLimit, tt.wantOffset)
		}
	}
}
