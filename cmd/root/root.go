// Package root contains the root command for the application
package root

import (
	"context"
	"errors"
	"fmt"

	"fjacquet/expense-tracker/internal/config"
	"fjacquet/expense-tracker/internal/container"
	"fjacquet/expense-tracker/internal/ledgererror"

	"github.com/spf13/cobra"
)

type containerKey struct{}

// Cmd is the root command
var Cmd = New()

// New builds a root command with its persistent flags. Subcommands are added
// by the caller.
func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "expense-tracker",
		Short: "Track personal expenses and incomes from the command line.",
		Long: `expense-tracker records expenses, incomes and categories in JSON files
under a data directory and reports balances over any date range.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setup,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringP("data-dir", "d", "", "Directory holding the JSON data files (default: ./data)")
	cmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error")
	cmd.PersistentFlags().String("log-format", "", "Log format: text or json")
	return cmd
}

// setup loads .env and configuration, then wires the container into the
// command context.
func setup(cmd *cobra.Command, args []string) error {
	if _, err := config.LoadEnv(); err != nil {
		return fmt.Errorf("failed to load .env file: %w", err)
	}

	v := config.NewViper()
	for key, flag := range map[string]string{
		"data.directory": "data-dir",
		"log.level":      "log-level",
		"log.format":     "log-format",
	} {
		if f := cmd.Flags().Lookup(flag); f != nil && f.Changed {
			if err := v.BindPFlag(key, f); err != nil {
				return fmt.Errorf("failed to bind --%s: %w", flag, err)
			}
		}
	}

	cfg, err := config.FromViper(v)
	if err != nil {
		return err
	}

	c, err := container.NewContainer(cfg)
	if err != nil {
		return err
	}
	cmd.SetContext(context.WithValue(cmd.Context(), containerKey{}, c))
	return nil
}

// GetContainer returns the container wired by the root command.
func GetContainer(cmd *cobra.Command) (*container.Container, error) {
	if c, ok := cmd.Context().Value(containerKey{}).(*container.Container); ok {
		return c, nil
	}
	return nil, errors.New("application container not initialized")
}

// FormatError renders a command error the way it is shown to users.
func FormatError(err error) string {
	switch {
	case ledgererror.IsValidation(err):
		return "Validation error: " + err.Error()
	case ledgererror.IsNotFound(err):
		return err.Error()
	case ledgererror.IsPersistence(err):
		return "Storage error: " + err.Error()
	default:
		return "Error: " + err.Error()
	}
}
