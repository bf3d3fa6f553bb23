package income_test

import (
	"bytes"
	"regexp"
	"testing"

	"fjacquet/expense-tracker/cmd/income"
	"fjacquet/expense-tracker/cmd/root"
	"fjacquet/expense-tracker/internal/ledgererror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var idPattern = regexp.MustCompile(`\[([0-9a-f-]{36})\]`)

func run(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	cmd := root.New()
	cmd.AddCommand(income.New())
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--data-dir", dir, "--log-level", "error"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestIncomeCommand_Metadata(t *testing.T) {
	assert.Equal(t, "income", income.Cmd.Use)
	assert.Len(t, income.Cmd.Commands(), 5)
}

func TestIncomeCommand_Lifecycle(t *testing.T) {
	chdirForTest(t, t.TempDir())
	dir := t.TempDir()

	out, err := run(t, dir, "income", "add", "2500", "chf", "Employer", "Salary", "2024-03-25T08:00:00",
		"--recorded-at", "2024-03-25T09:00:00", "--attachment", "attachments/income_docs/march.pdf")
	require.NoError(t, err)
	assert.Contains(t, out, "Income added:")
	assert.Contains(t, out, "CHF 2500.00")
	assert.Contains(t, out, "Source: Employer | Method: salary")
	id := idPattern.FindStringSubmatch(out)[1]

	out, err = run(t, dir, "income", "list", "--source", "employer")
	require.NoError(t, err)
	assert.Contains(t, out, "Found 1 incomes (total 2500.00):")

	out, err = run(t, dir, "income", "list", "--received-method", "gift")
	require.NoError(t, err)
	assert.Contains(t, out, "No incomes found.")

	out, err = run(t, dir, "income", "edit", id, "--tags", "monthly,Job")
	require.NoError(t, err)
	assert.Contains(t, out, "Tags: monthly, job")

	out, err = run(t, dir, "income", "get", id)
	require.NoError(t, err)
	assert.Contains(t, out, "2024-03-25T08:00:00Z")

	_, err = run(t, dir, "income", "delete", id)
	require.NoError(t, err)
	_, err = run(t, dir, "income", "delete", id)
	assert.True(t, ledgererror.IsNotFound(err))
}

func TestIncomeCommand_AttachmentOutsideArea(t *testing.T) {
	chdirForTest(t, t.TempDir())
	dir := t.TempDir()

	_, err := run(t, dir, "income", "add", "10", "EUR", "Gift", "gift", "2024-03-25T08:00:00",
		"--attachment", "attachments/income_docs/../../../secret.txt")
	require.Error(t, err)
	assert.True(t, ledgererror.IsValidation(err))
}
