// Package export renders ledger data as JSON, YAML or CSV documents.
package export

import (
	"encoding/json"
	"fmt"
	"strings"

	"fjacquet/expense-tracker/internal/dateutils"
	"fjacquet/expense-tracker/internal/logging"
	"fjacquet/expense-tracker/internal/models"

	"github.com/gocarina/gocsv"
	"gopkg.in/yaml.v3"
)

// Format is an output document format.
type Format string

// Supported formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatCSV  Format = "csv"
)

// Formats lists every supported format.
var Formats = []Format{FormatJSON, FormatYAML, FormatCSV}

// tagSeparator joins tags into a single CSV cell.
const tagSeparator = ";"

// ParseFormat resolves a user supplied format name, ignoring case.
func ParseFormat(name string) (Format, error) {
	candidate := Format(strings.ToLower(strings.TrimSpace(name)))
	if candidate == "yml" {
		return FormatYAML, nil
	}
	for _, f := range Formats {
		if f == candidate {
			return f, nil
		}
	}
	return "", fmt.Errorf("unsupported export format: %s", name)
}

// ExpenseRow is the CSV layout of an expense.
type ExpenseRow struct {
	ID               string `csv:"id"`
	Amount           string `csv:"amount"`
	Currency         string `csv:"currency"`
	Category         string `csv:"category"`
	PaymentMethod    string `csv:"payment_method"`
	IncurredAt       string `csv:"incurred_at"`
	RecordedAt       string `csv:"recorded_at"`
	Description      string `csv:"description"`
	Merchant         string `csv:"merchant"`
	Tags             string `csv:"tags"`
	ReceiptImagePath string `csv:"receipt_image_path"`
}

// IncomeRow is the CSV layout of an income.
type IncomeRow struct {
	ID             string `csv:"id"`
	Amount         string `csv:"amount"`
	Currency       string `csv:"currency"`
	Source         string `csv:"source"`
	ReceivedMethod string `csv:"received_method"`
	ReceivedAt     string `csv:"received_at"`
	RecordedAt     string `csv:"recorded_at"`
	Description    string `csv:"description"`
	Tags           string `csv:"tags"`
	AttachmentPath string `csv:"attachment_path"`
}

// Generator renders snapshots and record lists.
type Generator struct {
	logger logging.Logger
}

// NewGenerator creates a Generator. A nil logger discards output.
func NewGenerator(logger logging.Logger) *Generator {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	return &Generator{logger: logger.WithField(logging.FieldComponent, "export")}
}

// Snapshot renders a ledger snapshot as a JSON or YAML document. CSV has no
// way to hold both lists and is rejected.
func (g *Generator) Snapshot(snapshot map[string][]models.Record, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		return g.marshalJSON(snapshot)
	case FormatYAML:
		return g.marshalYAML(snapshot)
	case FormatCSV:
		return nil, fmt.Errorf("csv export needs a single record kind")
	default:
		return nil, fmt.Errorf("unsupported export format: %s", format)
	}
}

// Expenses renders a list of expenses.
func (g *Generator) Expenses(expenses []models.Expense, format Format) ([]byte, error) {
	if format != FormatCSV {
		records := make([]models.Record, 0, len(expenses))
		for _, e := range expenses {
			records = append(records, e.ToRecord())
		}
		return g.records(records, format)
	}

	rows := make([]*ExpenseRow, 0, len(expenses))
	for _, e := range expenses {
		rows = append(rows, &ExpenseRow{
			ID:               e.ID,
			Amount:           e.Amount.StringFixed(2),
			Currency:         e.Currency,
			Category:         e.Category,
			PaymentMethod:    e.PaymentMethod,
			IncurredAt:       dateutils.FormatISO(e.IncurredAt),
			RecordedAt:       dateutils.FormatISO(e.RecordedAt),
			Description:      e.Description,
			Merchant:         e.Merchant,
			Tags:             strings.Join(e.Tags, tagSeparator),
			ReceiptImagePath: e.ReceiptImagePath,
		})
	}
	return g.marshalCSV(&rows, len(rows))
}

// Incomes renders a list of incomes.
func (g *Generator) Incomes(incomes []models.Income, format Format) ([]byte, error) {
	if format != FormatCSV {
		records := make([]models.Record, 0, len(incomes))
		for _, i := range incomes {
			records = append(records, i.ToRecord())
		}
		return g.records(records, format)
	}

	rows := make([]*IncomeRow, 0, len(incomes))
	for _, i := range incomes {
		rows = append(rows, &IncomeRow{
			ID:             i.ID,
			Amount:         i.Amount.StringFixed(2),
			Currency:       i.Currency,
			Source:         i.Source,
			ReceivedMethod: i.ReceivedMethod,
			ReceivedAt:     dateutils.FormatISO(i.ReceivedAt),
			RecordedAt:     dateutils.FormatISO(i.RecordedAt),
			Description:    i.Description,
			Tags:           strings.Join(i.Tags, tagSeparator),
			AttachmentPath: i.AttachmentPath,
		})
	}
	return g.marshalCSV(&rows, len(rows))
}

func (g *Generator) records(records []models.Record, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		return g.marshalJSON(records)
	case FormatYAML:
		return g.marshalYAML(records)
	default:
		return nil, fmt.Errorf("unsupported export format: %s", format)
	}
}

func (g *Generator) marshalJSON(v interface{}) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		g.logger.WithError(err).Error("Failed to marshal JSON export")
		return nil, fmt.Errorf("failed to marshal JSON export: %w", err)
	}
	return append(data, '\n'), nil
}

func (g *Generator) marshalYAML(v interface{}) ([]byte, error) {
	data, err := yaml.Marshal(v)
	if err != nil {
		g.logger.WithError(err).Error("Failed to marshal YAML export")
		return nil, fmt.Errorf("failed to marshal YAML export: %w", err)
	}
	return data, nil
}

func (g *Generator) marshalCSV(rows interface{}, count int) ([]byte, error) {
	data, err := gocsv.MarshalBytes(rows)
	if err != nil {
		g.logger.WithError(err).Error("Failed to marshal CSV export")
		return nil, fmt.Errorf("failed to marshal CSV export: %w", err)
	}
	g.logger.Debug("CSV export rendered", logging.F(logging.FieldCount, count))
	return data, nil
}
