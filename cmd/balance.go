package cmd

import (
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/towerledger/backend/internal/balance"
	"github.com/towerledger/backend/internal/models"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var balanceCmd = &cobra.Command{
	Use:   "balance",
	Short: "Print the current balance",
	Long: `Prints the balance derived from all records next to the receipt ledger
balance. The two agree when every payment has a receipt.`,
	RunE: runBalance,
}

func init() {
	rootCmd.AddCommand(balanceCmd)

	balanceCmd.Flags().String("lang", "en", "Language tag used to format amounts")
}

func runBalance(cmd *cobra.Command, _ []string) error {
	lang, _ := cmd.Flags().GetString("lang")
	tag, err := language.Parse(lang)
	if err != nil {
		return err
	}

	ctx := background(cmd)

	b, ledger, err := balance.NewCloser(models.DB, cfg.Zone).Current(ctx)
	if err != nil {
		return err
	}

	p := message.NewPrinter(tag)
	out := cmd.OutOrStdout()

	rows := []struct {
		label  string
		amount decimal.Decimal
	}{
		{"Incoming", b.Incoming},
		{"Expense", b.Expense},
		{"Employee loans", b.EmployeeLoans},
		{"Employee net", b.EmployeeNet},
		{"Balance", b.Balance},
		{"Ledger", ledger},
	}

	for _, row := range rows {
		// Amounts are only formatted here, the float never goes back into a calculation
		p.Fprintf(out, "%-16s %16.2f\n", row.label, row.amount.InexactFloat64())
	}

	return nil
}
