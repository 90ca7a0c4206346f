package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/iho/bankist/internal/adapter/repository/memory"
	"github.com/iho/bankist/internal/adapter/script"
	"github.com/iho/bankist/internal/domain"
	"github.com/iho/bankist/internal/infrastructure/config"
	"github.com/iho/bankist/internal/infrastructure/eventpublisher"
	"github.com/iho/bankist/internal/infrastructure/idgen"
	"github.com/iho/bankist/internal/infrastructure/logger"
	"github.com/iho/bankist/internal/infrastructure/metrics"
	"github.com/iho/bankist/internal/usecase"
)

// app holds the wired use cases for one command invocation.
type app struct {
	cfg       *config.Config
	logger    zerolog.Logger
	accounts  *usecase.AccountUseCase
	movements *usecase.MovementUseCase
	runner    *script.Runner
	publisher *eventpublisher.EventPublisher
}

func newApp(cmd *cobra.Command) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("strict") {
		cfg.StrictAmounts = strictAmounts
	}
	if flags.Changed("loan-approval") {
		cfg.LoanApproval = loanApproval
	}

	approver, err := domain.LoanApproverByName(cfg.LoanApproval)
	if err != nil {
		return nil, err
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		Output: cmd.ErrOrStderr(),
	})

	m := metrics.New(prometheus.NewRegistry())

	// Initialize repositories
	accountRepo := memory.NewAccountRepository()
	eventLog := memory.NewEventLog()
	idGen := idgen.NewULIDGenerator()

	// Initialize use cases
	policy := usecase.AccountPolicy{
		LoanApprover:  approver,
		StrictAmounts: cfg.StrictAmounts,
		BcryptCost:    cfg.BcryptCost,
	}
	accountUC := usecase.NewAccountUseCase(accountRepo, idGen, eventLog, m, policy, log)
	movementUC := usecase.NewMovementUseCase(accountRepo, idGen, eventLog, m, log)

	return &app{
		cfg:       cfg,
		logger:    log,
		accounts:  accountUC,
		movements: movementUC,
		runner:    script.NewRunner(accountUC, movementUC, cfg.DefaultCurrency, log),
		publisher: eventpublisher.NewEventPublisher(eventpublisher.Config{
			EventLog:  eventLog,
			Publisher: eventpublisher.NewLogPublisher(log),
			Logger:    log,
		}),
	}, nil
}

// flush drains the recorded events to the log.
func (a *app) flush(ctx context.Context) {
	n, err := a.publisher.Flush(ctx)
	if err != nil {
		a.logger.Error().Err(err).Msg("event flush failed")
		return
	}
	a.logger.Debug().Int("count", n).Msg("events flushed")
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
