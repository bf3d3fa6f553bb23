package models

import (
	"time"

	"fjacquet/expense-tracker/internal/dateutils"

	"github.com/shopspring/decimal"
)

// Income is a single incoming payment. Empty optional fields mean absent.
type Income struct {
	ID             string
	Amount         decimal.Decimal
	Currency       string
	Source         string
	ReceivedMethod string
	ReceivedAt     time.Time
	RecordedAt     time.Time
	Description    string
	Tags           []string
	AttachmentPath string
}

// ToRecord serializes the income with a fixed two-decimal amount and
// Z-suffixed UTC timestamps.
func (i Income) ToRecord() Record {
	return Record{
		FieldID:             i.ID,
		FieldAmount:         i.Amount.StringFixed(2),
		FieldCurrency:       i.Currency,
		FieldSource:         i.Source,
		FieldReceivedMethod: i.ReceivedMethod,
		FieldReceivedAt:     dateutils.FormatISO(i.ReceivedAt),
		FieldRecordedAt:     dateutils.FormatISO(i.RecordedAt),
		FieldDescription:    optional(i.Description),
		FieldTags:           append([]string{}, i.Tags...),
		FieldAttachmentPath: optional(i.AttachmentPath),
	}
}

// Clone returns a copy that shares no mutable state with i.
func (i Income) Clone() Income {
	i.Tags = append([]string{}, i.Tags...)
	return i
}

// Equal reports whether two incomes hold the same values.
func (i Income) Equal(other Income) bool {
	return i.ID == other.ID &&
		i.Amount.Equal(other.Amount) &&
		i.Currency == other.Currency &&
		i.Source == other.Source &&
		i.ReceivedMethod == other.ReceivedMethod &&
		i.ReceivedAt.Equal(other.ReceivedAt) &&
		i.RecordedAt.Equal(other.RecordedAt) &&
		i.Description == other.Description &&
		tagsEqual(i.Tags, other.Tags) &&
		i.AttachmentPath == other.AttachmentPath
}

// HasTag reports whether tag is one of the income tags.
func (i Income) HasTag(tag string) bool {
	for _, t := range i.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// IncomeFromRecord hydrates an Income from its JSON-native form.
func IncomeFromRecord(r Record) (Income, error) {
	var (
		i   Income
		err error
	)
	if i.ID, err = requiredString(r, FieldID); err != nil {
		return Income{}, err
	}
	if i.Amount, err = decimalField(r, FieldAmount); err != nil {
		return Income{}, err
	}
	if i.Currency, err = requiredString(r, FieldCurrency); err != nil {
		return Income{}, err
	}
	if i.Source, err = requiredString(r, FieldSource); err != nil {
		return Income{}, err
	}
	if i.ReceivedMethod, err = requiredString(r, FieldReceivedMethod); err != nil {
		return Income{}, err
	}
	if i.ReceivedAt, err = timeField(r, FieldReceivedAt); err != nil {
		return Income{}, err
	}
	if i.RecordedAt, err = timeField(r, FieldRecordedAt); err != nil {
		return Income{}, err
	}
	if i.Description, err = optionalString(r, FieldDescription); err != nil {
		return Income{}, err
	}
	if i.Tags, err = tagsField(r, FieldTags); err != nil {
		return Income{}, err
	}
	if i.AttachmentPath, err = optionalString(r, FieldAttachmentPath); err != nil {
		return Income{}, err
	}
	return i, nil
}
