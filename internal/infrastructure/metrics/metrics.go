package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shopspring/decimal"

	"github.com/iho/bankist/internal/domain"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Account metrics
	AccountsOpened *prometheus.CounterVec

	// Movement metrics
	Movements      *prometheus.CounterVec
	MovementAmount *prometheus.HistogramVec
	MovementErrors *prometheus.CounterVec

	// Loan metrics
	LoanDecisions *prometheus.CounterVec
}

// New creates all metrics and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		AccountsOpened: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bankist_accounts_opened_total",
				Help: "Total number of accounts opened",
			},
			[]string{"currency"},
		),

		Movements: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bankist_movements_total",
				Help: "Total movements appended to account ledgers by kind",
			},
			[]string{"kind"},
		),
		MovementAmount: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "bankist_movement_amount",
				Help:    "Absolute movement amounts",
				Buckets: []float64{1, 10, 100, 1000, 10000, 100000, 1000000},
			},
			[]string{"kind"},
		),
		MovementErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bankist_operation_errors_total",
				Help: "Total failed account operations by type",
			},
			[]string{"operation", "error_type"},
		),

		LoanDecisions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bankist_loan_decisions_total",
				Help: "Total loan requests by decision",
			},
			[]string{"decision"},
		),
	}
}

// AccountOpened counts a newly opened account.
func (m *Metrics) AccountOpened(currency string) {
	m.AccountsOpened.WithLabelValues(currency).Inc()
}

// MovementRecorded counts a ledger movement and observes its size.
func (m *Metrics) MovementRecorded(kind domain.MovementKind, amount decimal.Decimal) {
	m.Movements.WithLabelValues(string(kind)).Inc()
	m.MovementAmount.WithLabelValues(string(kind)).Observe(amount.Abs().InexactFloat64())
}

// LoanDecided counts a loan approval decision.
func (m *Metrics) LoanDecided(approved bool) {
	decision := "denied"
	if approved {
		decision = "approved"
	}
	m.LoanDecisions.WithLabelValues(decision).Inc()
}

// OperationFailed counts a failed operation by error class.
func (m *Metrics) OperationFailed(operation string, err error) {
	m.MovementErrors.WithLabelValues(operation, ErrorType(err)).Inc()
}

// ErrorType maps an error to a low-cardinality label value.
func ErrorType(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidAmount):
		return "invalid_amount"
	case errors.Is(err, domain.ErrLoanDenied):
		return "loan_denied"
	case errors.Is(err, domain.ErrAccountNotFound):
		return "account_not_found"
	case errors.Is(err, domain.ErrInvalidAccessCode):
		return "invalid_access_code"
	case errors.Is(err, domain.ErrInvalidOwner),
		errors.Is(err, domain.ErrInvalidCurrency),
		errors.Is(err, domain.ErrInvalidAccessCodeFormat):
		return "validation"
	default:
		return "internal"
	}
}
