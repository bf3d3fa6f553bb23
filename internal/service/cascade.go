package service

import (
	"fjacquet/expense-tracker/internal/ledgererror"
	"fjacquet/expense-tracker/internal/logging"
	"fjacquet/expense-tracker/internal/models"
)

// CategoryCascade keeps expenses consistent with category renames and deletes.
type CategoryCascade struct {
	categories *CategoryService
	expenses   *ExpenseService
	logger     logging.Logger
}

// NewCategoryCascade ties a category service to the expenses that reference it.
func NewCategoryCascade(categories *CategoryService, expenses *ExpenseService, logger logging.Logger) *CategoryCascade {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	return &CategoryCascade{categories: categories, expenses: expenses, logger: logger}
}

// Rename updates the category and, when its name changed, moves the matching
// expenses to the new name. It returns the updated category and the number of
// expenses moved.
func (c *CategoryCascade) Rename(id string, changes models.Record) (models.Category, int, error) {
	existing, err := c.categories.Get(id)
	if err != nil {
		return models.Category{}, 0, err
	}
	updated, err := c.categories.Update(id, changes)
	if err != nil {
		return models.Category{}, 0, err
	}
	if existing.Name == updated.Name {
		return updated, 0, nil
	}
	moved, err := c.expenses.RenameCategory(existing.Name, updated.Name)
	if err != nil {
		c.logger.WithError(err).Error("Category renamed but expenses were not updated",
			logging.F(logging.FieldRecordID, id),
			logging.F(logging.FieldCategory, updated.Name))
		return updated, 0, err
	}
	return updated, moved, nil
}

// Delete removes the category unless an expense still references it.
func (c *CategoryCascade) Delete(id string) error {
	category, err := c.categories.Get(id)
	if err != nil {
		return err
	}
	if c.expenses.IsCategoryInUse(category.Name) {
		return ledgererror.NewValidationError(models.FieldCategory, "Cannot delete a category that is in use by expenses")
	}
	return c.categories.Delete(id)
}
