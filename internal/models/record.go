// Package models defines the immutable domain records of the tracker and their
// JSON-native serialized form.
package models

import (
	"encoding/json"
	"fmt"
	"time"

	"fjacquet/expense-tracker/internal/dateutils"

	"github.com/shopspring/decimal"
)

// Record is the JSON-native form of an entity: the shape persisted on disk and
// exchanged with adapters.
type Record = map[string]interface{}

// Serialized field names shared by entities, services and adapters.
const (
	FieldID               = "id"
	FieldName             = "name"
	FieldAmount           = "amount"
	FieldCurrency         = "currency"
	FieldCategory         = "category"
	FieldPaymentMethod    = "payment_method"
	FieldIncurredAt       = "incurred_at"
	FieldRecordedAt       = "recorded_at"
	FieldDescription      = "description"
	FieldMerchant         = "merchant"
	FieldTags             = "tags"
	FieldReceiptImagePath = "receipt_image_path"
	FieldSource           = "source"
	FieldReceivedMethod   = "received_method"
	FieldReceivedAt       = "received_at"
	FieldAttachmentPath   = "attachment_path"
)

// Merge returns a new record holding base overlaid with changes.
func Merge(base, changes Record) Record {
	merged := make(Record, len(base)+len(changes))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range changes {
		merged[k] = v
	}
	return merged
}

func optional(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

func requiredString(r Record, key string) (string, error) {
	v, ok := r[key]
	if !ok || v == nil {
		return "", fmt.Errorf("missing field %q", key)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("field %q must be a string, got %T", key, v)
	}
	return s, nil
}

func optionalString(r Record, key string) (string, error) {
	v, ok := r[key]
	if !ok || v == nil {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("field %q must be a string, got %T", key, v)
	}
	return s, nil
}

func decimalField(r Record, key string) (decimal.Decimal, error) {
	switch v := r[key].(type) {
	case string:
		return decimal.NewFromString(v)
	case json.Number:
		return decimal.NewFromString(v.String())
	case float64:
		return decimal.NewFromFloat(v), nil
	case decimal.Decimal:
		return v, nil
	case nil:
		return decimal.Zero, fmt.Errorf("missing field %q", key)
	default:
		return decimal.Zero, fmt.Errorf("field %q must be a decimal string, got %T", key, v)
	}
}

func timeField(r Record, key string) (time.Time, error) {
	switch v := r[key].(type) {
	case string:
		t, err := dateutils.ParseISO(v)
		if err != nil {
			return time.Time{}, fmt.Errorf("field %q: %w", key, err)
		}
		return dateutils.NormalizeUTC(t), nil
	case time.Time:
		return dateutils.NormalizeUTC(v), nil
	case nil:
		return time.Time{}, fmt.Errorf("missing field %q", key)
	default:
		return time.Time{}, fmt.Errorf("field %q must be an ISO 8601 string, got %T", key, v)
	}
}

func tagsField(r Record, key string) ([]string, error) {
	switch v := r[key].(type) {
	case nil:
		return []string{}, nil
	case []string:
		return append([]string{}, v...), nil
	case []interface{}:
		tags := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("field %q must contain strings, got %T", key, item)
			}
			tags = append(tags, s)
		}
		return tags, nil
	default:
		return nil, fmt.Errorf("field %q must be a list, got %T", key, v)
	}
}

func tagsEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
