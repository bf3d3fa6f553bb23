package service

import (
	"strings"
	"time"

	"fjacquet/expense-tracker/internal/logging"
	"fjacquet/expense-tracker/internal/models"
	"fjacquet/expense-tracker/internal/validation"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// IncomeDocsPrefix is the directory income attachments must live under.
const IncomeDocsPrefix = "attachments/income_docs"

const maxSourceLength = 50

// IncomeService manages income records.
type IncomeService struct {
	cache           *snapshot[models.Income]
	attachmentsRoot string
	now             func() time.Time
	logger          logging.Logger
}

// NewIncomeService builds the service and hydrates it from st.
func NewIncomeService(st Store, opts ...Option) (*IncomeService, error) {
	o := buildOptions(IncomesResource, opts)
	logger := o.logger.WithFields(
		logging.F(logging.FieldComponent, "income_service"),
		logging.F(logging.FieldResource, o.resource),
	)
	s := &IncomeService{
		cache: &snapshot[models.Income]{
			store:    st,
			resource: o.resource,
			kind:     "Income",
			decode:   models.IncomeFromRecord,
			idOf:     func(i models.Income) string { return i.ID },
			less:     incomeLess,
			items:    map[string]models.Income{},
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

func incomeLess(a, b models.Income) bool {
	if !a.ReceivedAt.Equal(b.ReceivedAt) {
		return a.ReceivedAt.Before(b.ReceivedAt)
	}
	return a.ID < b.ID
}

// Add validates payload and stores a new income under a fresh id.
func (s *IncomeService) Add(payload models.Record) (models.Income, error) {
	income, err := s.validate(payload, nil)
	if err != nil {
		return models.Income{}, err
	}
	if err := s.cache.commit("add", func(items map[string]models.Income) {
		items[income.ID] = income
	}); err != nil {
		return models.Income{}, err
	}
	s.logger.Info("Income added",
		logging.F(logging.FieldRecordID, income.ID),
		logging.F(models.FieldSource, income.Source))
	return income.Clone(), nil
}

// Update overlays changes onto the stored income and revalidates the result.
func (s *IncomeService) Update(id string, changes models.Record) (models.Income, error) {
	existing, err := s.cache.get(id)
	if err != nil {
		return models.Income{}, err
	}
	income, err := s.validate(models.Merge(existing.ToRecord(), changes), &existing)
	if err != nil {
		return models.Income{}, err
	}
	if err := s.cache.commit("update", func(items map[string]models.Income) {
		items[id] = income
	}); err != nil {
		return models.Income{}, err
	}
	s.logger.Info("Income updated", logging.F(logging.FieldRecordID, id))
	return income.Clone(), nil
}

// Delete removes the income with the given id.
func (s *IncomeService) Delete(id string) error {
	if _, err := s.cache.get(id); err != nil {
		return err
	}
	if err := s.cache.commit("delete", func(items map[string]models.Income) {
		delete(items, id)
	}); err != nil {
		return err
	}
	s.logger.Info("Income deleted", logging.F(logging.FieldRecordID, id))
	return nil
}

// Get returns the income with the given id.
func (s *IncomeService) Get(id string) (models.Income, error) {
	income, err := s.cache.get(id)
	if err != nil {
		return models.Income{}, err
	}
	return income.Clone(), nil
}

// List returns the incomes matching filter ordered by received_at.
func (s *IncomeService) List(filter IncomeFilter) ([]models.Income, error) {
	m, err := filter.compile()
	if err != nil {
		return nil, err
	}
	out := []models.Income{}
	for _, income := range s.cache.sorted() {
		if m.matches(income) {
			out = append(out, income.Clone())
		}
	}
	return out, nil
}

// Total sums the amounts of the incomes matching filter.
func (s *IncomeService) Total(filter IncomeFilter) (decimal.Decimal, error) {
	incomes, err := s.List(filter)
	if err != nil {
		return decimal.Decimal{}, err
	}
	total := decimal.New(0, -2)
	for _, income := range incomes {
		total = total.Add(income.Amount)
	}
	return total, nil
}

// Load replaces the cache with the persisted incomes.
func (s *IncomeService) Load() error {
	return s.cache.load()
}

func (m incomeMatcher) matches(i models.Income) bool {
	if m.source != "" && strings.ToLower(i.Source) != m.source {
		return false
	}
	if m.receivedMethod != "" && i.ReceivedMethod != m.receivedMethod {
		return false
	}
	if m.tag != "" && !i.HasTag(m.tag) {
		return false
	}
	return m.window.contains(i.ReceivedAt)
}

func (s *IncomeService) validate(payload models.Record, current *models.Income) (models.Income, error) {
	var (
		i   models.Income
		err error
	)
	if current != nil {
		i.ID = current.ID
	} else {
		i.ID = uuid.NewString()
	}
	if i.Amount, err = validation.ParseAmount(payload[models.FieldAmount], models.FieldAmount); err != nil {
		return models.Income{}, err
	}
	currency := strings.ToUpper(validation.Stringify(payload[models.FieldCurrency]))
	if i.Currency, err = validation.ValidateCurrency(currency); err != nil {
		return models.Income{}, err
	}
	if i.Source, err = validation.RequiredString(payload[models.FieldSource], models.FieldSource, maxSourceLength); err != nil {
		return models.Income{}, err
	}
	if i.ReceivedMethod, err = validation.ValidateEnum(payload[models.FieldReceivedMethod], models.FieldReceivedMethod, validation.IncomeMethods); err != nil {
		return models.Income{}, err
	}
	if i.ReceivedAt, err = validation.ValidateDateTime(payload[models.FieldReceivedAt], models.FieldReceivedAt); err != nil {
		return models.Income{}, err
	}
	if i.RecordedAt, err = recordedAt(payload[models.FieldRecordedAt], s.now); err != nil {
		return models.Income{}, err
	}
	if i.Description, err = validation.OptionalString(payload[models.FieldDescription], models.FieldDescription, maxDescriptionLength); err != nil {
		return models.Income{}, err
	}
	if i.Tags, err = validation.NormalizeTags(payload[models.FieldTags]); err != nil {
		return models.Income{}, err
	}
	if i.AttachmentPath, err = validation.ValidateRelativePath(
		payload[models.FieldAttachmentPath], s.attachmentsRoot, models.FieldAttachmentPath, IncomeDocsPrefix,
	); err != nil {
		return models.Income{}, err
	}
	if err := validation.EnsureRecordedAfter(i.ReceivedAt, i.RecordedAt, models.FieldReceivedAt, models.FieldRecordedAt); err != nil {
		return models.Income{}, err
	}
	return i, nil
}
