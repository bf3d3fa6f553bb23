package common

import (
	"fmt"

	"fjacquet/expense-tracker/internal/dateutils"
	"fjacquet/expense-tracker/internal/models"

	"github.com/spf13/cobra"
)

// FieldFlag maps a string flag to the record field it sets.
type FieldFlag struct {
	Flag  string
	Field string
}

// ChangedFields copies the string flags the user actually set into record.
// Flags left at their default stay absent so updates only touch what was given.
func ChangedFields(cmd *cobra.Command, record models.Record, flags []FieldFlag) error {
	for _, f := range flags {
		if !cmd.Flags().Changed(f.Flag) {
			continue
		}
		value, err := cmd.Flags().GetString(f.Flag)
		if err != nil {
			return err
		}
		record[f.Field] = value
	}
	return nil
}

// ChangedTags sets the tags field when --tags was given.
func ChangedTags(cmd *cobra.Command, record models.Record) error {
	if !cmd.Flags().Changed("tags") {
		return nil
	}
	tags, err := cmd.Flags().GetStringSlice("tags")
	if err != nil {
		return err
	}
	record[models.FieldTags] = tags
	return nil
}

// AddDateRangeFlags registers --start, --end and --month on cmd.
func AddDateRangeFlags(cmd *cobra.Command) {
	cmd.Flags().String("start", "", "Inclusive lower bound (ISO 8601)")
	cmd.Flags().String("end", "", "Inclusive upper bound (ISO 8601)")
	cmd.Flags().String("month", "", "Restrict to a calendar month (YYYY-MM)")
}

// DateRange resolves the date range flags into ISO bounds. --month cannot be
// combined with --start or --end.
func DateRange(cmd *cobra.Command) (string, string, error) {
	start, _ := cmd.Flags().GetString("start")
	end, _ := cmd.Flags().GetString("end")
	month, _ := cmd.Flags().GetString("month")
	if month == "" {
		return start, end, nil
	}
	if start != "" || end != "" {
		return "", "", fmt.Errorf("--month cannot be combined with --start or --end")
	}
	from, to, err := dateutils.MonthBounds(month)
	if err != nil {
		return "", "", err
	}
	return dateutils.FormatISO(from), dateutils.FormatISO(to), nil
}
