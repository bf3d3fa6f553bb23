// Package export handles the export command
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"fjacquet/expense-tracker/cmd/common"
	"fjacquet/expense-tracker/cmd/root"
	"fjacquet/expense-tracker/internal/container"
	docexport "fjacquet/expense-tracker/internal/export"
	"fjacquet/expense-tracker/internal/logging"
	"fjacquet/expense-tracker/internal/service"

	"github.com/spf13/cobra"
)

// Cmd represents the export command
var Cmd = New()

// New builds the export command.
func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export expenses and incomes as JSON, YAML or CSV",
		Long: `Export the ledger. Without --kind both lists are written as one JSON or
YAML document; CSV needs --kind expenses or --kind incomes.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := root.GetContainer(cmd)
			if err != nil {
				return err
			}
			name, _ := cmd.Flags().GetString("format")
			if name == "" {
				name = c.GetConfig().Export.Format
			}
			format, err := docexport.ParseFormat(name)
			if err != nil {
				return err
			}
			kind, _ := cmd.Flags().GetString("kind")

			data, err := render(c, format, kind)
			if err != nil {
				return err
			}

			output, _ := cmd.Flags().GetString("output")
			if output == "" {
				_, err := common.Out(cmd).Write(data)
				return err
			}
			if dir := filepath.Dir(output); dir != "." {
				if err := os.MkdirAll(dir, 0o750); err != nil {
					return fmt.Errorf("error creating directory: %w", err)
				}
			}
			if err := os.WriteFile(output, data, 0o600); err != nil {
				return fmt.Errorf("error writing export file: %w", err)
			}
			c.GetLogger().Info("Export written",
				logging.F(logging.FieldFile, output),
				logging.F(logging.FieldFormat, string(format)))
			common.Printf(cmd, "Exported to %s\n", output)
			return nil
		},
	}
	cmd.Flags().StringP("format", "f", "", "Output format: json, yaml or csv (default from config)")
	cmd.Flags().StringP("kind", "k", "", "Export only expenses or incomes")
	cmd.Flags().StringP("output", "o", "", "Output file (default: stdout)")
	return cmd
}

func render(c *container.Container, format docexport.Format, kind string) ([]byte, error) {
	exporter := c.GetExporter()
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "":
		snapshot, err := c.GetLedgerService().Snapshot()
		if err != nil {
			return nil, err
		}
		return exporter.Snapshot(snapshot, format)
	case "expenses":
		expenses, err := c.GetExpenseService().List(service.ExpenseFilter{})
		if err != nil {
			return nil, err
		}
		return exporter.Expenses(expenses, format)
	case "incomes":
		incomes, err := c.GetIncomeService().List(service.IncomeFilter{})
		if err != nil {
			return nil, err
		}
		return exporter.Incomes(incomes, format)
	default:
		return nil, fmt.Errorf("unknown kind %q (expected expenses or incomes)", kind)
	}
}
