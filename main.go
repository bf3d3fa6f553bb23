package main

import (
	"fmt"
	"os"

	"fjacquet/expense-tracker/cmd/balance"
	"fjacquet/expense-tracker/cmd/category"
	"fjacquet/expense-tracker/cmd/expense"
	"fjacquet/expense-tracker/cmd/export"
	"fjacquet/expense-tracker/cmd/income"
	"fjacquet/expense-tracker/cmd/root"
)

func init() {
	root.Cmd.AddCommand(expense.Cmd)
	root.Cmd.AddCommand(income.Cmd)
	root.Cmd.AddCommand(category.Cmd)
	root.Cmd.AddCommand(balance.Cmd)
	root.Cmd.AddCommand(export.Cmd)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, root.FormatError(err))
		os.Exit(1)
	}
}
