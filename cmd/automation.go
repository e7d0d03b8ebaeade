package cmd

import (
	"errors"

	"github.com/spf13/cobra"
	"github.com/towerledger/backend/internal/balance"
	"github.com/towerledger/backend/internal/billing"
	"github.com/towerledger/backend/internal/models"
	"github.com/towerledger/backend/internal/types"
)

var errPassFailed = errors.New("at least one collection failed, see the report")

var dueMonthsCmd = &cobra.Command{
	Use:   "due-months",
	Short: "Advance all month arrays to the next period",
	Long: `Marks pending periods before the next period as due and appends the
next period to every schedule that lacks it. Running it more than once is
harmless. The report is printed as JSON.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		report := billing.NewRoller(models.DB, cfg.Zone).DueMonths(background(cmd))
		if err := printJSON(cmd, report); err != nil {
			return err
		}

		if !report.Success {
			return errPassFailed
		}
		return nil
	},
}

var monthlyRolloverCmd = &cobra.Command{
	Use:   "monthly-rollover",
	Short: "Consume advances and accrue electricity bills",
	Long: `Bills one month of maintenance and salary against advances and loans
and accrues electricity bills on their anniversary.

The maintenance and salary sections only run on the first local day of a
month unless --force is given. Running them twice in a month bills twice.`,
	Example: `  # From cron, shortly after local midnight
  backend monthly-rollover`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		force, _ := cmd.Flags().GetBool("force")

		report := billing.NewRoller(models.DB, cfg.Zone).MonthlyRollover(background(cmd), force)
		if err := printJSON(cmd, report); err != nil {
			return err
		}

		if !report.Success {
			return errPassFailed
		}
		return nil
	},
}

var monthCloseCmd = &cobra.Command{
	Use:   "month-close",
	Short: "Manage monthly closing balances",
}

var monthCloseRunCmd = &cobra.Command{
	Use:   "run",
	Short: "Close the previous month",
	Long: `Stores the receipt ledger balance at the end of the previous local month.
Only runs on the first local day of a month unless --force is given.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		force, _ := cmd.Flags().GetBool("force")

		result, err := balance.NewCloser(models.DB, cfg.Zone).Run(background(cmd), force)
		if err != nil {
			return err
		}

		return printJSON(cmd, result)
	},
}

var monthCloseGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Print the closing balance of a month",
	Example: `  backend month-close get --month 2025-10`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		value, _ := cmd.Flags().GetString("month")

		month, err := types.ParseMonth(value)
		if err != nil {
			return err
		}

		snapshot, err := balance.NewCloser(models.DB, cfg.Zone).Get(background(cmd), month)
		if err != nil {
			return err
		}

		return printJSON(cmd, snapshot)
	},
}

func init() {
	rootCmd.AddCommand(dueMonthsCmd, monthlyRolloverCmd, monthCloseCmd)
	monthCloseCmd.AddCommand(monthCloseRunCmd, monthCloseGetCmd)

	monthlyRolloverCmd.Flags().Bool("force", false, "Run the monthly sections on any day")
	monthCloseRunCmd.Flags().Bool("force", false, "Close the previous month on any day")

	monthCloseGetCmd.Flags().String("month", "", "Month in YYYY-MM format")
	_ = monthCloseGetCmd.MarkFlagRequired("month")
}
