// Package common contains shared functionality for command handlers
package common

import (
	"fmt"
	"io"
	"strings"

	"fjacquet/expense-tracker/internal/dateutils"
	"fjacquet/expense-tracker/internal/models"

	"github.com/spf13/cobra"
)

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// FormatExpense renders an expense as a short multi-line block.
func FormatExpense(e models.Expense) string {
	return fmt.Sprintf("[%s] %s %s %s\n  Category: %s | Payment: %s | Merchant: %s\n  Description: %s\n  Tags: %s\n",
		e.ID, dateutils.FormatISO(e.IncurredAt), e.Currency, e.Amount.StringFixed(2),
		e.Category, e.PaymentMethod, orDash(e.Merchant),
		orDash(e.Description),
		orDash(strings.Join(e.Tags, ", ")))
}

// FormatIncome renders an income as a short multi-line block.
func FormatIncome(i models.Income) string {
	return fmt.Sprintf("[%s] %s %s %s\n  Source: %s | Method: %s\n  Description: %s\n  Tags: %s\n",
		i.ID, dateutils.FormatISO(i.ReceivedAt), i.Currency, i.Amount.StringFixed(2),
		i.Source, i.ReceivedMethod,
		orDash(i.Description),
		orDash(strings.Join(i.Tags, ", ")))
}

// Println writes a line to the command's output stream.
func Println(cmd *cobra.Command, a ...interface{}) {
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), a...)
}

// Printf writes formatted text to the command's output stream.
func Printf(cmd *cobra.Command, format string, a ...interface{}) {
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), format, a...)
}

// Out returns the command's output stream.
func Out(cmd *cobra.Command) io.Writer {
	return cmd.OutOrStdout()
}
