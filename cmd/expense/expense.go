// Package expense handles the expense subcommands
package expense

import (
	"fjacquet/expense-tracker/cmd/common"
	"fjacquet/expense-tracker/cmd/root"
	"fjacquet/expense-tracker/internal/models"
	"fjacquet/expense-tracker/internal/service"

	"github.com/spf13/cobra"
)

// Cmd represents the expense command
var Cmd = New()

var optionalFlags = []common.FieldFlag{
	{Flag: "recorded-at", Field: models.FieldRecordedAt},
	{Flag: "description", Field: models.FieldDescription},
	{Flag: "merchant", Field: models.FieldMerchant},
	{Flag: "receipt", Field: models.FieldReceiptImagePath},
}

var editFlags = append([]common.FieldFlag{
	{Flag: "amount", Field: models.FieldAmount},
	{Flag: "currency", Field: models.FieldCurrency},
	{Flag: "category", Field: models.FieldCategory},
	{Flag: "payment-method", Field: models.FieldPaymentMethod},
	{Flag: "incurred-at", Field: models.FieldIncurredAt},
}, optionalFlags...)

// New builds the expense command tree.
func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "expense",
		Short: "Manage expenses",
	}
	cmd.AddCommand(newAddCmd(), newListCmd(), newGetCmd(), newEditCmd(), newDeleteCmd())
	return cmd
}

func addOptionalFlags(cmd *cobra.Command) {
	cmd.Flags().String("recorded-at", "", "When the expense was recorded (default: now)")
	cmd.Flags().String("description", "", "Free text description")
	cmd.Flags().String("merchant", "", "Merchant name")
	cmd.Flags().StringSlice("tags", nil, "Comma separated tags")
	cmd.Flags().String("receipt", "", "Receipt image path under attachments/receipts")
}

func newAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add AMOUNT CURRENCY CATEGORY PAYMENT_METHOD INCURRED_AT",
		Short: "Record a new expense",
		Args:  cobra.ExactArgs(5),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := root.GetContainer(cmd)
			if err != nil {
				return err
			}
			payload := models.Record{
				models.FieldAmount:        args[0],
				models.FieldCurrency:      args[1],
				models.FieldCategory:      args[2],
				models.FieldPaymentMethod: args[3],
				models.FieldIncurredAt:    args[4],
			}
			if err := common.ChangedFields(cmd, payload, optionalFlags); err != nil {
				return err
			}
			if err := common.ChangedTags(cmd, payload); err != nil {
				return err
			}
			expense, err := c.GetExpenseService().Add(payload)
			if err != nil {
				return err
			}
			common.Printf(cmd, "Expense added:\n%s", common.FormatExpense(expense))
			return nil
		},
	}
	addOptionalFlags(cmd)
	return cmd
}

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List expenses matching the filters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := root.GetContainer(cmd)
			if err != nil {
				return err
			}
			start, end, err := common.DateRange(cmd)
			if err != nil {
				return err
			}
			filter := service.ExpenseFilter{Start: start, End: end}
			filter.Category, _ = cmd.Flags().GetString("category")
			filter.PaymentMethod, _ = cmd.Flags().GetString("payment-method")
			filter.Tag, _ = cmd.Flags().GetString("tag")
			filter.Merchant, _ = cmd.Flags().GetString("merchant")

			svc := c.GetExpenseService()
			expenses, err := svc.List(filter)
			if err != nil {
				return err
			}
			if len(expenses) == 0 {
				common.Println(cmd, "No expenses found.")
				return nil
			}
			total, err := svc.Total(filter)
			if err != nil {
				return err
			}
			common.Printf(cmd, "Found %d expenses (total %s):\n", len(expenses), total.StringFixed(2))
			for _, e := range expenses {
				common.Println(cmd, common.FormatExpense(e))
			}
			return nil
		},
	}
	cmd.Flags().String("category", "", "Category name")
	cmd.Flags().String("payment-method", "", "Payment method")
	cmd.Flags().String("tag", "", "Tag")
	cmd.Flags().String("merchant", "", "Merchant name")
	common.AddDateRangeFlags(cmd)
	return cmd
}

func newGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get ID",
		Short: "Show one expense",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := root.GetContainer(cmd)
			if err != nil {
				return err
			}
			expense, err := c.GetExpenseService().Get(args[0])
			if err != nil {
				return err
			}
			common.Printf(cmd, "%s", common.FormatExpense(expense))
			return nil
		},
	}
}

func newEditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Change fields of an expense",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := root.GetContainer(cmd)
			if err != nil {
				return err
			}
			changes := models.Record{}
			if err := common.ChangedFields(cmd, changes, editFlags); err != nil {
				return err
			}
			if err := common.ChangedTags(cmd, changes); err != nil {
				return err
			}
			expense, err := c.GetExpenseService().Update(args[0], changes)
			if err != nil {
				return err
			}
			common.Printf(cmd, "Expense updated:\n%s", common.FormatExpense(expense))
			return nil
		},
	}
	cmd.Flags().String("amount", "", "Amount")
	cmd.Flags().String("currency", "", "ISO 4217 currency code")
	cmd.Flags().String("category", "", "Category name")
	cmd.Flags().String("payment-method", "", "Payment method")
	cmd.Flags().String("incurred-at", "", "When the expense happened (ISO 8601)")
	addOptionalFlags(cmd)
	return cmd
}

func newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete an expense",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := root.GetContainer(cmd)
			if err != nil {
				return err
			}
			if err := c.GetExpenseService().Delete(args[0]); err != nil {
				return err
			}
			common.Printf(cmd, "Expense %s deleted.\n", args[0])
			return nil
		},
	}
}
