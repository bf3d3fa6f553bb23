package dateutils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseISO(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected time.Time
		wantErr  bool
	}{
		{
			name:     "trailing Z",
			input:    "2024-06-15T10:30:00Z",
			expected: time.Date(2024, 6, 15, 10, 30, 0, 0, time.UTC),
		},
		{
			name:     "explicit utc offset",
			input:    "2024-06-15T10:30:00+00:00",
			expected: time.Date(2024, 6, 15, 10, 30, 0, 0, time.UTC),
		},
		{
			name:     "positive offset converted to utc",
			input:    "2024-06-15T12:30:00+02:00",
			expected: time.Date(2024, 6, 15, 10, 30, 0, 0, time.UTC),
		},
		{
			name:     "naive datetime treated as utc",
			input:    "2024-06-15T10:30:00",
			expected: time.Date(2024, 6, 15, 10, 30, 0, 0, time.UTC),
		},
		{
			name:     "space separator",
			input:    "2024-06-15 10:30:00",
			expected: time.Date(2024, 6, 15, 10, 30, 0, 0, time.UTC),
		},
		{
			name:     "date only",
			input:    "2024-02-01",
			expected: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "fractional seconds",
			input:    "2024-06-15T10:30:00.250Z",
			expected: time.Date(2024, 6, 15, 10, 30, 0, 250000000, time.UTC),
		},
		{
			name:     "surrounding whitespace",
			input:    "  2024-06-15T10:30:00Z ",
			expected: time.Date(2024, 6, 15, 10, 30, 0, 0, time.UTC),
		},
		{
			name:    "garbage",
			input:   "yesterday",
			wantErr: true,
		},
		{
			name:    "empty",
			input:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseISO(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.expected.Equal(got), "expected %s, got %s", tt.expected, got)
			assert.Equal(t, time.UTC, got.Location())
		})
	}
}

func TestFormatISO(t *testing.T) {
	cet := time.FixedZone("CET", 3600)
	assert.Equal(t, "2024-06-15T09:30:00Z", FormatISO(time.Date(2024, 6, 15, 10, 30, 0, 0, cet)))
	assert.Equal(t, "2024-01-01T00:00:00Z", FormatISO(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))
}

func TestNormalizeUTC(t *testing.T) {
	in := time.Date(2024, 6, 15, 10, 30, 0, 999, time.FixedZone("X", -3600))
	got := NormalizeUTC(in)

	assert.Equal(t, time.Date(2024, 6, 15, 11, 30, 0, 0, time.UTC), got)
}

func TestMonthBounds(t *testing.T) {
	start, end, err := MonthBounds("2024-02")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2024, 2, 29, 23, 59, 59, 0, time.UTC), end)

	_, _, err = MonthBounds("02/2024")
	assert.Error(t, err)
}
