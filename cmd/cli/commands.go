package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/iho/bankist/internal/adapter/script"
	"github.com/iho/bankist/internal/domain"
	"github.com/iho/bankist/internal/usecase"
)

func demoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Run the sample account session",
		Long:  `Opens an account for Jonas in EUR, deposits 250, withdraws 140 and requests a 1000 loan.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			account, err := a.accounts.OpenAccount(ctx, usecase.OpenAccountInput{
				Owner:      "Jonas",
				Currency:   "EUR",
				AccessCode: "1111",
			})
			if err != nil {
				return err
			}
			id := account.ID()

			if _, err := a.movements.Deposit(ctx, usecase.MovementInput{AccountID: id, Amount: decimal.NewFromInt(250)}); err != nil {
				return err
			}
			if _, err := a.accounts.Authenticate(ctx, id, "1111"); err != nil {
				return err
			}
			if _, err := a.movements.Withdraw(ctx, usecase.MovementInput{AccountID: id, Amount: decimal.NewFromInt(140)}); err != nil {
				return err
			}

			_, err = a.movements.RequestLoan(ctx, usecase.MovementInput{AccountID: id, Amount: decimal.NewFromInt(1000)})
			switch {
			case err == nil:
				fmt.Fprintln(out, "Loan approved")
			case errors.Is(err, domain.ErrLoanDenied):
				fmt.Fprintln(out, "Loan denied")
			default:
				return err
			}

			movements, err := a.movements.GetMovements(ctx, id)
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "Owner: %s (%s)\n", account.Owner(), account.Currency())
			fmt.Fprintf(out, "Movements: %v\n", movements)

			a.flush(ctx)
			return nil
		},
	}
}

func runCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run [file]",
		Short: "Replay a session script",
		Long:  `Replays a YAML session script and prints each account's movements as JSON.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			s, err := script.Parse(f)
			if err != nil {
				return err
			}

			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			result, err := a.runner.Run(ctx, s)
			if err != nil {
				return err
			}

			a.flush(ctx)
			return printJSON(cmd.OutOrStdout(), result)
		},
	}
}
