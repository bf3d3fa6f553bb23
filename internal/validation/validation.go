// Package validation holds the field-level invariants shared by every service.
// Each function is pure and reports failures as *ledgererror.ValidationError.
package validation

import (
	"encoding/json"
	"fmt"
	"math"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"fjacquet/expense-tracker/internal/dateutils"
	"fjacquet/expense-tracker/internal/ledgererror"

	"github.com/shopspring/decimal"
)

const (
	// MaxTagLength is the longest tag accepted after normalization.
	MaxTagLength = 30
	amountPlaces = 2
)

var (
	currencyPattern = regexp.MustCompile(`^[A-Z]{3}$`)
	tagPattern      = regexp.MustCompile(`^[a-z0-9_-]{1,30}$`)
)

// PaymentMethods are the accepted expense payment methods.
var PaymentMethods = []string{
	"cash",
	"debit_card",
	"credit_card",
	"bank_transfer",
	"mobile_payment",
	"other",
}

// IncomeMethods are the accepted income received methods.
var IncomeMethods = []string{
	"salary",
	"bonus",
	"interest",
	"gift",
	"other",
}

// ParseAmount converts raw input into a positive decimal with exactly two
// fraction digits, rounding half-up.
func ParseAmount(raw interface{}, field string) (decimal.Decimal, error) {
	amount, ok := toDecimal(raw)
	if !ok {
		return decimal.Zero, ledgererror.NewValidationError(field, "%s must be a numeric value", field)
	}
	if !amount.IsPositive() {
		return decimal.Zero, ledgererror.NewValidationError(field, "%s must be greater than zero", field)
	}
	// decimal.Round rounds half away from zero, which is half-up for positives.
	rounded := amount.Round(amountPlaces)
	if !rounded.IsPositive() {
		return decimal.Zero, ledgererror.NewValidationError(field, "%s must be greater than zero", field)
	}
	return rounded, nil
}

func toDecimal(raw interface{}) (decimal.Decimal, bool) {
	switch v := raw.(type) {
	case decimal.Decimal:
		return v, true
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(v))
		return d, err == nil
	case json.Number:
		d, err := decimal.NewFromString(v.String())
		return d, err == nil
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return decimal.Zero, false
		}
		return decimal.NewFromFloat(v), true
	case float32:
		f := float64(v)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return decimal.Zero, false
		}
		return decimal.NewFromFloat32(v), true
	case int:
		return decimal.NewFromInt(int64(v)), true
	case int32:
		return decimal.NewFromInt32(v), true
	case int64:
		return decimal.NewFromInt(v), true
	default:
		return decimal.Zero, false
	}
}

// ValidateCurrency checks for an uppercase three-letter ISO 4217 code.
func ValidateCurrency(code string) (string, error) {
	if !currencyPattern.MatchString(code) {
		return "", ledgererror.NewValidationError("currency", "currency must be a 3-letter ISO 4217 code (uppercase)")
	}
	return code, nil
}

// RequiredString trims value and checks it is non-empty and at most maxLength characters.
func RequiredString(value interface{}, field string, maxLength int) (string, error) {
	s, ok := value.(string)
	if !ok {
		return "", ledgererror.NewValidationError(field, "%s must be a string", field)
	}
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return "", ledgererror.NewValidationError(field, "%s cannot be empty", field)
	}
	if utf8.RuneCountInString(trimmed) > maxLength {
		return "", ledgererror.NewValidationError(field, "%s must be at most %d characters", field, maxLength)
	}
	return trimmed, nil
}

// OptionalString is RequiredString that lets nil through as the empty (absent) value.
func OptionalString(value interface{}, field string, maxLength int) (string, error) {
	if value == nil {
		return "", nil
	}
	return RequiredString(value, field, maxLength)
}

// NormalizeTags lowercases, trims and validates each tag, collapsing duplicates
// while keeping first-seen order. Nil input yields an empty, non-nil slice.
func NormalizeTags(raw interface{}) ([]string, error) {
	var items []interface{}
	switch v := raw.(type) {
	case nil:
		return []string{}, nil
	case []string:
		items = make([]interface{}, len(v))
		for i, s := range v {
			items[i] = s
		}
	case []interface{}:
		items = v
	default:
		return nil, ledgererror.NewValidationError("tags", "tags must be a list of strings")
	}

	normalized := make([]string, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, ledgererror.NewValidationError("tags", "tags must be strings")
		}
		tag := strings.ToLower(strings.TrimSpace(s))
		if tag == "" {
			return nil, ledgererror.NewValidationError("tags", "tags cannot be empty strings")
		}
		if utf8.RuneCountInString(tag) > MaxTagLength {
			return nil, ledgererror.NewValidationError("tags", "tags must be at most %d characters", MaxTagLength)
		}
		if !tagPattern.MatchString(tag) {
			return nil, ledgererror.NewValidationError("tags", "tags may only contain lowercase letters, digits, underscores, or hyphens")
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		normalized = append(normalized, tag)
	}
	return normalized, nil
}

// ValidateDateTime accepts a time.Time or an ISO-8601 string and returns it in UTC
// at whole-second precision.
func ValidateDateTime(value interface{}, field string) (time.Time, error) {
	switch v := value.(type) {
	case time.Time:
		return dateutils.NormalizeUTC(v), nil
	case *time.Time:
		if v == nil {
			break
		}
		return dateutils.NormalizeUTC(*v), nil
	case string:
		t, err := dateutils.ParseISO(v)
		if err != nil {
			return time.Time{}, ledgererror.NewValidationError(field, "%s must be a valid ISO 8601 datetime", field)
		}
		return dateutils.NormalizeUTC(t), nil
	}
	return time.Time{}, ledgererror.NewValidationError(field, "%s must be a datetime or ISO 8601 string", field)
}

// ValidateEnum checks membership of value in allowed, ignoring case and
// surrounding whitespace, and returns the canonical lowercase form.
func ValidateEnum(value interface{}, field string, allowed []string) (string, error) {
	s, ok := value.(string)
	if !ok {
		return "", ledgererror.NewValidationError(field, "%s must be a string", field)
	}
	canonical := strings.ToLower(strings.TrimSpace(s))
	for _, candidate := range allowed {
		if candidate == canonical {
			return canonical, nil
		}
	}
	sorted := append([]string(nil), allowed...)
	sort.Strings(sorted)
	return "", ledgererror.NewValidationError(field, "%s must be one of: %s", field, strings.Join(sorted, ", "))
}

// ValidateRelativePath checks that raw is a relative path starting with
// requiredPrefix which, resolved against root, stays inside root. It returns the
// normalized forward-slash relative form. Nil input is passed through as "".
func ValidateRelativePath(raw interface{}, root, field, requiredPrefix string) (string, error) {
	if raw == nil {
		return "", nil
	}
	s, ok := raw.(string)
	if !ok {
		return "", ledgererror.NewValidationError(field, "%s must be a string path", field)
	}
	candidate := filepath.ToSlash(strings.TrimSpace(s))
	if strings.HasPrefix(candidate, "/") || filepath.IsAbs(candidate) || filepath.VolumeName(candidate) != "" {
		return "", ledgererror.NewValidationError(field, "%s must be a relative path", field)
	}
	parts := pathParts(candidate)
	if len(parts) == 0 {
		return "", ledgererror.NewValidationError(field, "%s cannot be empty", field)
	}

	if requiredPrefix != "" {
		prefix := pathParts(requiredPrefix)
		if len(parts) < len(prefix) {
			return "", prefixError(field, requiredPrefix)
		}
		for i := range prefix {
			if parts[i] != prefix[i] {
				return "", prefixError(field, requiredPrefix)
			}
		}
	}

	baseRoot, err := filepath.Abs(root)
	if err != nil {
		return "", ledgererror.NewValidationError(field, "%s points to an invalid path", field)
	}
	resolved := filepath.Join(append([]string{baseRoot}, parts...)...)
	rel, err := filepath.Rel(baseRoot, resolved)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", ledgererror.NewValidationError(field, "%s must be located within %s", field, root)
	}

	return strings.Join(parts, "/"), nil
}

// pathParts splits a slash path into its segments, dropping empty and "." entries.
func pathParts(p string) []string {
	var parts []string
	for _, segment := range strings.Split(p, "/") {
		if segment == "" || segment == "." {
			continue
		}
		parts = append(parts, segment)
	}
	return parts
}

func prefixError(field, prefix string) error {
	return ledgererror.NewValidationError(field, "%s must start with '%s' to stay within the attachments area", field, prefix)
}

// EnsureRecordedAfter fails when recorded is earlier than event.
func EnsureRecordedAfter(event, recorded time.Time, eventField, recordedField string) error {
	if recorded.Before(event) {
		return ledgererror.NewValidationError(recordedField, "%s must not be earlier than %s", recordedField, eventField)
	}
	return nil
}

// Stringify renders a scalar payload value for case-insensitive comparisons,
// treating nil as empty.
func Stringify(value interface{}) string {
	if value == nil {
		return ""
	}
	if s, ok := value.(string); ok {
		return s
	}
	return fmt.Sprint(value)
}
