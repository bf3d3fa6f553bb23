package balance_test

import (
	"bytes"
	"testing"

	"fjacquet/expense-tracker/cmd/balance"
	"fjacquet/expense-tracker/cmd/expense"
	"fjacquet/expense-tracker/cmd/income"
	"fjacquet/expense-tracker/cmd/root"
	"fjacquet/expense-tracker/internal/ledgererror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	cmd := root.New()
	cmd.AddCommand(balance.New(), expense.New(), income.New())
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--data-dir", dir, "--log-level", "error"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestBalanceCommand_Metadata(t *testing.T) {
	assert.Equal(t, "balance", balance.Cmd.Use)
	for _, flag := range []string{"start", "end", "month", "category", "source", "tag", "summary"} {
		assert.NotNil(t, balance.Cmd.Flags().Lookup(flag), "missing flag %s", flag)
	}
}

func TestBalanceCommand(t *testing.T) {
	chdirForTest(t, t.TempDir())
	dir := t.TempDir()

	for _, args := range [][]string{
		{"income", "add", "1000", "EUR", "Employer", "salary", "2024-03-25T08:00:00", "--recorded-at", "2024-03-25T08:00:00"},
		{"income", "add", "50", "EUR", "Aunt", "gift", "2024-02-10T08:00:00", "--recorded-at", "2024-02-10T08:00:00"},
		{"expense", "add", "300.50", "EUR", "Rent", "bank_transfer", "2024-03-01T00:00:00", "--recorded-at", "2024-03-01T00:00:00"},
		{"expense", "add", "20", "EUR", "Food", "cash", "2024-02-11T00:00:00", "--recorded-at", "2024-02-11T00:00:00", "--tags", "treat"},
	} {
		_, err := run(t, dir, args...)
		require.NoError(t, err, args)
	}

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"all", nil, "Net balance: 729.50"},
		{"month", []string{"--month", "2024-02"}, "Net balance: 30.00"},
		{"range", []string{"--start", "2024-03-01", "--end", "2024-03-31T23:59:59"}, "Net balance: 699.50"},
		{"category", []string{"--category", "food"}, "Net balance: 1030.00"},
		{"source", []string{"--source", "aunt"}, "Net balance: -270.50"},
		{"tag", []string{"--tag", "treat"}, "Net balance: -20.00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, dir, append([]string{"balance"}, tt.args...)...)
			require.NoError(t, err)
			assert.Contains(t, out, tt.want)
		})
	}

	out, err := run(t, dir, "balance", "--summary")
	require.NoError(t, err)
	assert.Contains(t, out, "Incomes:  1050.00")
	assert.Contains(t, out, "Expenses: 320.50")
}

func TestBalanceCommand_InvalidDates(t *testing.T) {
	chdirForTest(t, t.TempDir())
	dir := t.TempDir()

	_, err := run(t, dir, "balance", "--start", "last week")
	require.Error(t, err)
	assert.True(t, ledgererror.IsValidation(err))

	_, err = run(t, dir, "balance", "--month", "2024-13")
	assert.Error(t, err)
}
