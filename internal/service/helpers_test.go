package service

import (
	"path/filepath"
	"testing"
	"time"

	"fjacquet/expense-tracker/internal/logging"
	"fjacquet/expense-tracker/internal/models"
	"fjacquet/expense-tracker/internal/store"

	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 3, 31, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

type testEnv struct {
	dir        string
	store      *store.JSONStore
	categories *CategoryService
	expenses   *ExpenseService
	incomes    *IncomeService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "data")
	st, err := store.NewJSONStore(dir, logging.NewMockLogger())
	require.NoError(t, err)

	env := &testEnv{dir: dir, store: st}
	env.reopen(t)
	return env
}

// reopen builds fresh services over the same data directory.
func (e *testEnv) reopen(t *testing.T) {
	t.Helper()
	opts := []Option{WithAttachmentsRoot(e.dir), WithClock(fixedClock), WithLogger(logging.NewMockLogger())}

	var err error
	e.categories, err = NewCategoryService(e.store, opts...)
	require.NoError(t, err)
	e.expenses, err = NewExpenseService(e.store, opts...)
	require.NoError(t, err)
	e.incomes, err = NewIncomeService(e.store, opts...)
	require.NoError(t, err)
}

func expensePayload(overrides models.Record) models.Record {
	payload := models.Record{
		"amount":         "12.50",
		"currency":       "usd",
		"category":       "Groceries",
		"payment_method": "Credit_Card",
		"incurred_at":    "2024-03-01T10:00:00Z",
		"recorded_at":    "2024-03-01T10:05:00Z",
		"description":    "Weekly shop",
		"merchant":       "Market",
		"tags":           []string{"Food", "weekly", "food"},
	}
	for k, v := range overrides {
		payload[k] = v
	}
	return payload
}

func incomePayload(overrides models.Record) models.Record {
	payload := models.Record{
		"amount":          "2500",
		"currency":        "USD",
		"source":          "Employer",
		"received_method": "salary",
		"received_at":     "2024-03-25T08:00:00Z",
		"recorded_at":     "2024-03-25T09:00:00Z",
		"tags":            []string{"monthly"},
	}
	for k, v := range overrides {
		payload[k] = v
	}
	return payload
}
