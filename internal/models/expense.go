package models

import (
	"time"

	"fjacquet/expense-tracker/internal/dateutils"

	"github.com/shopspring/decimal"
)

// Expense is a single outgoing payment. Empty optional fields mean absent.
type Expense struct {
	ID               string
	Amount           decimal.Decimal
	Currency         string
	Category         string
	PaymentMethod    string
	IncurredAt       time.Time
	RecordedAt       time.Time
	Description      string
	Merchant         string
	Tags             []string
	ReceiptImagePath string
}

// ToRecord serializes the expense with a fixed two-decimal amount and
// Z-suffixed UTC timestamps.
func (e Expense) ToRecord() Record {
	return Record{
		FieldID:               e.ID,
		FieldAmount:           e.Amount.StringFixed(2),
		FieldCurrency:         e.Currency,
		FieldCategory:         e.Category,
		FieldPaymentMethod:    e.PaymentMethod,
		FieldIncurredAt:       dateutils.FormatISO(e.IncurredAt),
		FieldRecordedAt:       dateutils.FormatISO(e.RecordedAt),
		FieldDescription:      optional(e.Description),
		FieldMerchant:         optional(e.Merchant),
		FieldTags:             append([]string{}, e.Tags...),
		FieldReceiptImagePath: optional(e.ReceiptImagePath),
	}
}

// Clone returns a copy that shares no mutable state with e.
func (e Expense) Clone() Expense {
	e.Tags = append([]string{}, e.Tags...)
	return e
}

// Equal reports whether two expenses hold the same values.
func (e Expense) Equal(other Expense) bool {
	return e.ID == other.ID &&
		e.Amount.Equal(other.Amount) &&
		e.Currency == other.Currency &&
		e.Category == other.Category &&
		e.PaymentMethod == other.PaymentMethod &&
		e.IncurredAt.Equal(other.IncurredAt) &&
		e.RecordedAt.Equal(other.RecordedAt) &&
		e.Description == other.Description &&
		e.Merchant == other.Merchant &&
		tagsEqual(e.Tags, other.Tags) &&
		e.ReceiptImagePath == other.ReceiptImagePath
}

// HasTag reports whether tag is one of the expense tags.
func (e Expense) HasTag(tag string) bool {
	for _, t := range e.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// ExpenseFromRecord hydrates an Expense from its JSON-native form.
func ExpenseFromRecord(r Record) (Expense, error) {
	var (
		e   Expense
		err error
	)
	if e.ID, err = requiredString(r, FieldID); err != nil {
		return Expense{}, err
	}
	if e.Amount, err = decimalField(r, FieldAmount); err != nil {
		return Expense{}, err
	}
	if e.Currency, err = requiredString(r, FieldCurrency); err != nil {
		return Expense{}, err
	}
	if e.Category, err = requiredString(r, FieldCategory); err != nil {
		return Expense{}, err
	}
	if e.PaymentMethod, err = requiredString(r, FieldPaymentMethod); err != nil {
		return Expense{}, err
	}
	if e.IncurredAt, err = timeField(r, FieldIncurredAt); err != nil {
		return Expense{}, err
	}
	if e.RecordedAt, err = timeField(r, FieldRecordedAt); err != nil {
		return Expense{}, err
	}
	if e.Description, err = optionalString(r, FieldDescription); err != nil {
		return Expense{}, err
	}
	if e.Merchant, err = optionalString(r, FieldMerchant); err != nil {
		return Expense{}, err
	}
	if e.Tags, err = tagsField(r, FieldTags); err != nil {
		return Expense{}, err
	}
	if e.ReceiptImagePath, err = optionalString(r, FieldReceiptImagePath); err != nil {
		return Expense{}, err
	}
	return e, nil
}
