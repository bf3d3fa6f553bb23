// Package income handles the income subcommands
package income

import (
	"fjacquet/expense-tracker/cmd/common"
	"fjacquet/expense-tracker/cmd/root"
	"fjacquet/expense-tracker/internal/models"
	"fjacquet/expense-tracker/internal/service"

	"github.com/spf13/cobra"
)

// Cmd represents the income command
var Cmd = New()

var optionalFlags = []common.FieldFlag{
	{Flag: "recorded-at", Field: models.FieldRecordedAt},
	{Flag: "description", Field: models.FieldDescription},
	{Flag: "attachment", Field: models.FieldAttachmentPath},
}

var editFlags = append([]common.FieldFlag{
	{Flag: "amount", Field: models.FieldAmount},
	{Flag: "currency", Field: models.FieldCurrency},
	{Flag: "source", Field: models.FieldSource},
	{Flag: "received-method", Field: models.FieldReceivedMethod},
	{Flag: "received-at", Field: models.FieldReceivedAt},
}, optionalFlags...)

// New builds the income command tree.
func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "income",
		Short: "Manage incomes",
	}
	cmd.AddCommand(newAddCmd(), newListCmd(), newGetCmd(), newEditCmd(), newDeleteCmd())
	return cmd
}

func addOptionalFlags(cmd *cobra.Command) {
	cmd.Flags().String("recorded-at", "", "When the income was recorded (default: now)")
	cmd.Flags().String("description", "", "Free text description")
	cmd.Flags().StringSlice("tags", nil, "Comma separated tags")
	cmd.Flags().String("attachment", "", "Document path under attachments/income_docs")
}

func newAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add AMOUNT CURRENCY SOURCE RECEIVED_METHOD RECEIVED_AT",
		Short: "Record a new income",
		Args:  cobra.ExactArgs(5),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := root.GetContainer(cmd)
			if err != nil {
				return err
			}
			payload := models.Record{
				models.FieldAmount:         args[0],
				models.FieldCurrency:       args[1],
				models.FieldSource:         args[2],
				models.FieldReceivedMethod: args[3],
				models.FieldReceivedAt:     args[4],
			}
			if err := common.ChangedFields(cmd, payload, optionalFlags); err != nil {
				return err
			}
			if err := common.ChangedTags(cmd, payload); err != nil {
				return err
			}
			income, err := c.GetIncomeService().Add(payload)
			if err != nil {
				return err
			}
			common.Printf(cmd, "Income added:\n%s", common.FormatIncome(income))
			return nil
		},
	}
	addOptionalFlags(cmd)
	return cmd
}

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List incomes matching the filters",
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
			filter := service.IncomeFilter{Start: start, End: end}
			filter.Source, _ = cmd.Flags().GetString("source")
			filter.ReceivedMethod, _ = cmd.Flags().GetString("received-method")
			filter.Tag, _ = cmd.Flags().GetString("tag")

			svc := c.GetIncomeService()
			incomes, err := svc.List(filter)
			if err != nil {
				return err
			}
			if len(incomes) == 0 {
				common.Println(cmd, "No incomes found.")
				return nil
			}
			total, err := svc.Total(filter)
			if err != nil {
				return err
			}
			common.Printf(cmd, "Found %d incomes (total %s):\n", len(incomes), total.StringFixed(2))
			for _, i := range incomes {
				common.Println(cmd, common.FormatIncome(i))
			}
			return nil
		},
	}
	cmd.Flags().String("source", "", "Income source")
	cmd.Flags().String("received-method", "", "Received method")
	cmd.Flags().String("tag", "", "Tag")
	common.AddDateRangeFlags(cmd)
	return cmd
}

func newGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get ID",
		Short: "Show one income",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := root.GetContainer(cmd)
			if err != nil {
				return err
			}
			income, err := c.GetIncomeService().Get(args[0])
			if err != nil {
				return err
			}
			common.Printf(cmd, "%s", common.FormatIncome(income))
			return nil
		},
	}
}

func newEditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Change fields of an income",
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
			income, err := c.GetIncomeService().Update(args[0], changes)
			if err != nil {
				return err
			}
			common.Printf(cmd, "Income updated:\n%s", common.FormatIncome(income))
			return nil
		},
	}
	cmd.Flags().String("amount", "", "Amount")
	cmd.Flags().String("currency", "", "ISO 4217 currency code")
	cmd.Flags().String("source", "", "Income source")
	cmd.Flags().String("received-method", "", "Received method")
	cmd.Flags().String("received-at", "", "When the income arrived (ISO 8601)")
	addOptionalFlags(cmd)
	return cmd
}

func newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete an income",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := root.GetContainer(cmd)
			if err != nil {
				return err
			}
			if err := c.GetIncomeService().Delete(args[0]); err != nil {
				return err
			}
			common.Printf(cmd, "Income %s deleted.\n", args[0])
			return nil
		},
	}
}
