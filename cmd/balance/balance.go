// Package balance handles the balance command
package balance

import (
	"fjacquet/expense-tracker/cmd/common"
	"fjacquet/expense-tracker/cmd/root"
	"fjacquet/expense-tracker/internal/service"

	"github.com/spf13/cobra"
)

// Cmd represents the balance command
var Cmd = New()

// New builds the balance command.
func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "balance",
		Short: "Show income minus expenses",
		Long: `Show the net balance (incomes minus expenses). --category only narrows
expenses and --source only narrows incomes; dates and --tag apply to both.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := root.GetContainer(cmd)
			if err != nil {
				return err
			}
			start, end, err := common.DateRange(cmd)
			if err != nil {
				return err
			}
			filter := service.Filter{Start: start, End: end}
			filter.Category, _ = cmd.Flags().GetString("category")
			filter.Source, _ = cmd.Flags().GetString("source")
			filter.Tag, _ = cmd.Flags().GetString("tag")

			summary, err := c.GetLedgerService().Summary(filter)
			if err != nil {
				return err
			}
			if detailed, _ := cmd.Flags().GetBool("summary"); detailed {
				common.Printf(cmd, "Incomes:  %s\n", summary.Incomes.StringFixed(2))
				common.Printf(cmd, "Expenses: %s\n", summary.Expenses.StringFixed(2))
			}
			common.Printf(cmd, "Net balance: %s\n", summary.Balance.StringFixed(2))
			return nil
		},
	}
	common.AddDateRangeFlags(cmd)
	cmd.Flags().String("category", "", "Only count expenses in this category")
	cmd.Flags().String("source", "", "Only count incomes from this source")
	cmd.Flags().String("tag", "", "Only count records with this tag")
	cmd.Flags().Bool("summary", false, "Also print income and expense totals")
	return cmd
}
