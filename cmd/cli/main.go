package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	strictAmounts bool
	loanApproval  string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "bankist",
		Short:         "Bankist account ledger",
		Long:          `Open in-memory accounts and record deposits, withdrawals and loans.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVar(&strictAmounts, "strict", false, "Reject non-positive amounts (overrides STRICT_AMOUNTS)")
	rootCmd.PersistentFlags().StringVar(&loanApproval, "loan-approval", "", "Loan approval policy: always or never (overrides LOAN_APPROVAL)")

	rootCmd.AddCommand(demoCmd())
	rootCmd.AddCommand(runCmd())

	return rootCmd
}
