package category_test

import (
	"bytes"
	"testing"

	"fjacquet/expense-tracker/cmd/category"
	"fjacquet/expense-tracker/cmd/expense"
	"fjacquet/expense-tracker/cmd/root"
	"fjacquet/expense-tracker/internal/ledgererror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	cmd := root.New()
	cmd.AddCommand(category.New(), expense.New())
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--data-dir", dir, "--log-level", "error"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestCategoryCommand_Metadata(t *testing.T) {
	assert.Equal(t, "category", category.Cmd.Use)
	assert.Len(t, category.Cmd.Commands(), 4)
}

func TestCategoryCommand_RenameCascadesAndDeleteIsGuarded(t *testing.T) {
	chdirForTest(t, t.TempDir())
	dir := t.TempDir()

	out, err := run(t, dir, "category", "add", "Food")
	require.NoError(t, err)
	assert.Contains(t, out, "Category added:")

	_, err = run(t, dir, "category", "add", "FOOD")
	require.Error(t, err)
	assert.True(t, ledgererror.IsValidation(err))

	_, err = run(t, dir, "expense", "add", "5", "EUR", "food", "cash", "2024-01-01T00:00:00",
		"--recorded-at", "2024-01-01T00:00:00")
	require.NoError(t, err)

	out, err = run(t, dir, "category", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Food (in use)")

	out, err = run(t, dir, "category", "rename", "food", "Dining")
	require.NoError(t, err)
	assert.Contains(t, out, "Category renamed: Food -> Dining (1 expenses updated)")

	out, err = run(t, dir, "expense", "list", "--category", "dining")
	require.NoError(t, err)
	assert.Contains(t, out, "Found 1 expenses")

	_, err = run(t, dir, "category", "delete", "Dining")
	require.Error(t, err)
	assert.Equal(t, "Validation error: Cannot delete a category that is in use by expenses", root.FormatError(err))

	_, err = run(t, dir, "category", "delete", "missing")
	assert.True(t, ledgererror.IsNotFound(err))
}

func TestCategoryCommand_DeleteUnused(t *testing.T) {
	chdirForTest(t, t.TempDir())
	dir := t.TempDir()

	_, err := run(t, dir, "category", "add", "Travel")
	require.NoError(t, err)

	out, err := run(t, dir, "category", "delete", "travel")
	require.NoError(t, err)
	assert.Contains(t, out, "Category Travel deleted.")

	out, err = run(t, dir, "category", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No categories found.")
}
