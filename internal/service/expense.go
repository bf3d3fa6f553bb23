package service

import (
	"strings"
	"time"

	"fjacquet/expense-tracker/internal/dateutils"
	"fjacquet/expense-tracker/internal/logging"
	"fjacquet/expense-tracker/internal/models"
	"fjacquet/expense-tracker/internal/validation"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReceiptsPrefix is the directory receipt images must live under.
const ReceiptsPrefix = "attachments/receipts"

const (
	maxCategoryLength    = 50
	maxDescriptionLength = 200
	maxMerchantLength    = 100
)

// ExpenseService manages expense records.
type ExpenseService struct {
	cache           *snapshot[models.Expense]
	attachmentsRoot string
	now             func() time.Time
	logger          logging.Logger
}

// NewExpenseService builds the service and hydrates it from st.
func NewExpenseService(st Store, opts ...Option) (*ExpenseService, error) {
	o := buildOptions(ExpensesResource, opts)
	logger := o.logger.WithFields(
		logging.F(logging.FieldComponent, "expense_service"),
		logging.F(logging.FieldResource, o.resource),
	)
	s := &ExpenseService{
		cache: &snapshot[models.Expense]{
			store:    st,
			resource: o.resource,
			kind:     "Expense",
			decode:   models.ExpenseFromRecord,
			idOf:     func(e models.Expense) string { return e.ID },
			less:     expenseLess,
			items:    map[string]models.Expense{},
			logger:   logger,
		},
		attachmentsRoot: o.attachmentsRoot,
		now:             o.now,
		logger:          logger,
	}
	if err := s.Load(); err != nil {
		return nil, err
	}
	return s, nil
}

func expenseLess(a, b models.Expense) bool {
	if !a.IncurredAt.Equal(b.IncurredAt) {
		return a.IncurredAt.Before(b.IncurredAt)
	}
	return a.ID < b.ID
}

// Add validates payload and stores a new expense under a fresh id. A missing
// recorded_at defaults to the current time.
func (s *ExpenseService) Add(payload models.Record) (models.Expense, error) {
	expense, err := s.validate(payload, nil)
	if err != nil {
		return models.Expense{}, err
	}
	if err := s.cache.commit("add", func(items map[string]models.Expense) {
		items[expense.ID] = expense
	}); err != nil {
		return models.Expense{}, err
	}
	s.logger.Info("Expense added",
		logging.F(logging.FieldRecordID, expense.ID),
		logging.F(logging.FieldCategory, expense.Category))
	return expense.Clone(), nil
}

// Update overlays changes onto the stored expense and revalidates the result.
func (s *ExpenseService) Update(id string, changes models.Record) (models.Expense, error) {
	existing, err := s.cache.get(id)
	if err != nil {
		return models.Expense{}, err
	}
	expense, err := s.validate(models.Merge(existing.ToRecord(), changes), &existing)
	if err != nil {
		return models.Expense{}, err
	}
	if err := s.cache.commit("update", func(items map[string]models.Expense) {
		items[id] = expense
	}); err != nil {
		return models.Expense{}, err
	}
	s.logger.Info("Expense updated", logging.F(logging.FieldRecordID, id))
	return expense.Clone(), nil
}

// Delete removes the expense with the given id.
func (s *ExpenseService) Delete(id string) error {
	if _, err := s.cache.get(id); err != nil {
		return err
	}
	if err := s.cache.commit("delete", func(items map[string]models.Expense) {
		delete(items, id)
	}); err != nil {
		return err
	}
	s.logger.Info("Expense deleted", logging.F(logging.FieldRecordID, id))
	return nil
}

// Get returns the expense with the given id.
func (s *ExpenseService) Get(id string) (models.Expense, error) {
	expense, err := s.cache.get(id)
	if err != nil {
		return models.Expense{}, err
	}
	return expense.Clone(), nil
}

// List returns the expenses matching filter ordered by incurred_at.
func (s *ExpenseService) List(filter ExpenseFilter) ([]models.Expense, error) {
	m, err := filter.compile()
	if err != nil {
		return nil, err
	}
	out := []models.Expense{}
	for _, expense := range s.cache.sorted() {
		if m.matches(expense) {
			out = append(out, expense.Clone())
		}
	}
	return out, nil
}

// Total sums the amounts of the expenses matching filter.
func (s *ExpenseService) Total(filter ExpenseFilter) (decimal.Decimal, error) {
	expenses, err := s.List(filter)
	if err != nil {
		return decimal.Decimal{}, err
	}
	total := decimal.New(0, -2)
	for _, expense := range expenses {
		total = total.Add(expense.Amount)
	}
	return total, nil
}

// Load replaces the cache with the persisted expenses.
func (s *ExpenseService) Load() error {
	return s.cache.load()
}

// RenameCategory moves every expense in oldName (case-insensitive) to newName
// and persists once. It returns the number of expenses changed. A blank
// newName is a no-op.
func (s *ExpenseService) RenameCategory(oldName, newName string) (int, error) {
	from := canonical(oldName)
	to := strings.TrimSpace(newName)
	if to == "" {
		return 0, nil
	}

	renamed := make(map[string]models.Expense)
	for id, expense := range s.cache.items {
		if strings.ToLower(expense.Category) != from {
			continue
		}
		payload := expense.ToRecord()
		payload[models.FieldCategory] = to
		current := expense
		updated, err := s.validate(payload, &current)
		if err != nil {
			return 0, err
		}
		renamed[id] = updated
	}
	if len(renamed) == 0 {
		return 0, nil
	}

	if err := s.cache.commit("rename_category", func(items map[string]models.Expense) {
		for id, expense := range renamed {
			items[id] = expense
		}
	}); err != nil {
		return 0, err
	}
	s.logger.Info("Expenses moved to renamed category",
		logging.F(logging.FieldCategory, to),
		logging.F(logging.FieldCount, len(renamed)))
	return len(renamed), nil
}

// IsCategoryInUse reports whether any expense references name, ignoring case.
func (s *ExpenseService) IsCategoryInUse(name string) bool {
	target := canonical(name)
	for _, expense := range s.cache.items {
		if strings.ToLower(expense.Category) == target {
			return true
		}
	}
	return false
}

func (m expenseMatcher) matches(e models.Expense) bool {
	if m.category != "" && strings.ToLower(e.Category) != m.category {
		return false
	}
	if m.paymentMethod != "" && e.PaymentMethod != m.paymentMethod {
		return false
	}
	if m.tag != "" && !e.HasTag(m.tag) {
		return false
	}
	if m.merchant != "" && strings.ToLower(e.Merchant) != m.merchant {
		return false
	}
	return m.window.contains(e.IncurredAt)
}

func (s *ExpenseService) validate(payload models.Record, current *models.Expense) (models.Expense, error) {
	var (
		e   models.Expense
		err error
	)
	if current != nil {
		e.ID = current.ID
	} else {
		e.ID = uuid.NewString()
	}
	if e.Amount, err = validation.ParseAmount(payload[models.FieldAmount], models.FieldAmount); err != nil {
		return models.Expense{}, err
	}
	currency := strings.ToUpper(validation.Stringify(payload[models.FieldCurrency]))
	if e.Currency, err = validation.ValidateCurrency(currency); err != nil {
		return models.Expense{}, err
	}
	if e.Category, err = validation.RequiredString(payload[models.FieldCategory], models.FieldCategory, maxCategoryLength); err != nil {
		return models.Expense{}, err
	}
	if e.PaymentMethod, err = validation.ValidateEnum(payload[models.FieldPaymentMethod], models.FieldPaymentMethod, validation.PaymentMethods); err != nil {
		return models.Expense{}, err
	}
	if e.IncurredAt, err = validation.ValidateDateTime(payload[models.FieldIncurredAt], models.FieldIncurredAt); err != nil {
		return models.Expense{}, err
	}
	if e.RecordedAt, err = recordedAt(payload[models.FieldRecordedAt], s.now); err != nil {
		return models.Expense{}, err
	}
	if e.Description, err = validation.OptionalString(payload[models.FieldDescription], models.FieldDescription, maxDescriptionLength); err != nil {
		return models.Expense{}, err
	}
	if e.Merchant, err = validation.OptionalString(payload[models.FieldMerchant], models.FieldMerchant, maxMerchantLength); err != nil {
		return models.Expense{}, err
	}
	if e.Tags, err = validation.NormalizeTags(payload[models.FieldTags]); err != nil {
		return models.Expense{}, err
	}
	if e.ReceiptImagePath, err = validation.ValidateRelativePath(
		payload[models.FieldReceiptImagePath], s.attachmentsRoot, models.FieldReceiptImagePath, ReceiptsPrefix,
	); err != nil {
		return models.Expense{}, err
	}
	if err := validation.EnsureRecordedAfter(e.IncurredAt, e.RecordedAt, models.FieldIncurredAt, models.FieldRecordedAt); err != nil {
		return models.Expense{}, err
	}
	return e, nil
}

// recordedAt validates an explicit recorded_at or defaults it to now.
func recordedAt(value interface{}, now func() time.Time) (time.Time, error) {
	if value == nil {
		return dateutils.NormalizeUTC(now()), nil
	}
	return validation.ValidateDateTime(value, models.FieldRecordedAt)
}
