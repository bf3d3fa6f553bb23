package service

import (
	"errors"
	"testing"

	"fjacquet/expense-tracker/internal/ledgererror"
	"fjacquet/expense-tracker/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedLedger(t *testing.T, env *testEnv) {
	t.Helper()
	_, err := env.incomes.Add(incomePayload(nil))
	require.NoError(t, err)
	_, err = env.incomes.Add(incomePayload(models.Record{
		"amount": "100", "source": "Side gig", "received_method": "other",
		"received_at": "2024-02-05T00:00:00Z", "recorded_at": "2024-02-05T00:00:00Z",
		"tags": []string{"freelance"},
	}))
	require.NoError(t, err)
	_, err = env.expenses.Add(expensePayload(models.Record{"amount": "40.25"}))
	require.NoError(t, err)
	_, err = env.expenses.Add(expensePayload(models.Record{
		"amount": "9.75", "category": "Travel", "tags": []string{"freelance"},
		"incurred_at": "2024-02-06T00:00:00Z", "recorded_at": "2024-02-06T00:00:00Z",
	}))
	require.NoError(t, err)
}

func TestLedgerService_Balance(t *testing.T) {
	env := newTestEnv(t)
	seedLedger(t, env)
	ledger := NewLedgerService(env.expenses, env.incomes)

	tests := []struct {
		name   string
		filter Filter
		want   string
	}{
		{"everything", Filter{}, "2550.00"},
		{"march only", Filter{Start: "2024-03-01", End: "2024-03-31T23:59:59Z"}, "2459.75"},
		{"shared tag", Filter{Tag: "freelance"}, "90.25"},
		{"category applies to expenses only", Filter{Category: "travel"}, "2590.25"},
		{"source applies to incomes only", Filter{Source: "side gig"}, "50.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			balance, err := ledger.Balance(tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.want, balance.StringFixed(2))
		})
	}
}

func TestLedgerService_Summary(t *testing.T) {
	env := newTestEnv(t)
	seedLedger(t, env)
	ledger := NewLedgerService(env.expenses, env.incomes)

	summary, err := ledger.Summary(Filter{Start: "2024-02-01", End: "2024-02-29T23:59:59Z"})
	require.NoError(t, err)
	assert.Equal(t, "100.00", summary.Incomes.StringFixed(2))
	assert.Equal(t, "9.75", summary.Expenses.StringFixed(2))
	assert.Equal(t, "90.25", summary.Balance.StringFixed(2))

	_, err = ledger.Summary(Filter{Start: "garbage"})
	assert.True(t, ledgererror.IsValidation(err))
}

func TestLedgerService_SnapshotAndRefresh(t *testing.T) {
	env := newTestEnv(t)
	seedLedger(t, env)
	ledger := NewLedgerService(env.expenses, env.incomes)

	snap, err := ledger.Snapshot()
	require.NoError(t, err)
	require.Len(t, snap["incomes"], 2)
	require.Len(t, snap["expenses"], 2)
	assert.Equal(t, "2024-02-05T00:00:00Z", snap["incomes"][0]["received_at"])
	assert.Equal(t, "9.75", snap["expenses"][0]["amount"])

	// another handle writes behind the ledger's back
	other, err := NewExpenseService(env.store, WithAttachmentsRoot(env.dir))
	require.NoError(t, err)
	_, err = other.Add(expensePayload(models.Record{"amount": "1"}))
	require.NoError(t, err)

	before, err := ledger.Balance(Filter{})
	require.NoError(t, err)
	require.NoError(t, ledger.Refresh())
	after, err := ledger.Balance(Filter{})
	require.NoError(t, err)
	assert.Equal(t, "1.00", before.Sub(after).StringFixed(2))
}

type failingSource struct {
	ExpenseSource
}

func (failingSource) Load() error { return errors.New("boom") }

func TestLedgerService_RefreshWrapsErrors(t *testing.T) {
	env := newTestEnv(t)
	ledger := NewLedgerService(failingSource{env.expenses}, env.incomes)

	err := ledger.Refresh()
	require.Error(t, err)
	assert.Equal(t, "failed to reload expenses: boom", err.Error())
}
