package service

import (
	"strings"

	"fjacquet/expense-tracker/internal/ledgererror"
	"fjacquet/expense-tracker/internal/logging"
	"fjacquet/expense-tracker/internal/models"
	"fjacquet/expense-tracker/internal/validation"

	"github.com/google/uuid"
)

const maxCategoryNameLength = 50

// CategoryService manages expense categories. Names are unique ignoring case.
type CategoryService struct {
	cache  *snapshot[models.Category]
	logger logging.Logger
}

// NewCategoryService builds the service and hydrates it from st.
func NewCategoryService(st Store, opts ...Option) (*CategoryService, error) {
	o := buildOptions(CategoriesResource, opts)
	logger := o.logger.WithFields(
		logging.F(logging.FieldComponent, "category_service"),
		logging.F(logging.FieldResource, o.resource),
	)
	s := &CategoryService{
		cache: &snapshot[models.Category]{
			store:    st,
			resource: o.resource,
			kind:     "Category",
			decode:   models.CategoryFromRecord,
			idOf:     func(c models.Category) string { return c.ID },
			less:     categoryLess,
			items:    map[string]models.Category{},
			logger:   logger,
		},
		logger: logger,
	}
	if err := s.Load(); err != nil {
		return nil, err
	}
	return s, nil
}

func categoryLess(a, b models.Category) bool {
	an, bn := strings.ToLower(a.Name), strings.ToLower(b.Name)
	if an != bn {
		return an < bn
	}
	return a.ID < b.ID
}

// Add validates payload and stores a new category under a fresh id.
func (s *CategoryService) Add(payload models.Record) (models.Category, error) {
	category, err := s.validate(payload, nil)
	if err != nil {
		return models.Category{}, err
	}
	if err := s.cache.commit("add", func(items map[string]models.Category) {
		items[category.ID] = category
	}); err != nil {
		return models.Category{}, err
	}
	s.logger.Info("Category added",
		logging.F(logging.FieldRecordID, category.ID),
		logging.F(logging.FieldCategory, category.Name))
	return category, nil
}

// Update overlays changes onto the stored category and revalidates it.
func (s *CategoryService) Update(id string, changes models.Record) (models.Category, error) {
	existing, err := s.cache.get(id)
	if err != nil {
		return models.Category{}, err
	}
	category, err := s.validate(models.Merge(existing.ToRecord(), changes), &existing)
	if err != nil {
		return models.Category{}, err
	}
	if err := s.cache.commit("update", func(items map[string]models.Category) {
		items[id] = category
	}); err != nil {
		return models.Category{}, err
	}
	s.logger.Info("Category updated",
		logging.F(logging.FieldRecordID, id),
		logging.F(logging.FieldCategory, category.Name))
	return category, nil
}

// Delete removes the category. It does not check whether expenses still use
// it; see CategoryCascade.Delete.
func (s *CategoryService) Delete(id string) error {
	if _, err := s.cache.get(id); err != nil {
		return err
	}
	if err := s.cache.commit("delete", func(items map[string]models.Category) {
		delete(items, id)
	}); err != nil {
		return err
	}
	s.logger.Info("Category deleted", logging.F(logging.FieldRecordID, id))
	return nil
}

// Get returns the category with the given id.
func (s *CategoryService) Get(id string) (models.Category, error) {
	return s.cache.get(id)
}

// List returns every category ordered by lower-cased name.
func (s *CategoryService) List() []models.Category {
	return s.cache.sorted()
}

// FindByName looks a category up by name, ignoring case and surrounding spaces.
func (s *CategoryService) FindByName(name string) (models.Category, bool) {
	canonical := strings.ToLower(strings.TrimSpace(name))
	for _, category := range s.cache.items {
		if strings.ToLower(category.Name) == canonical {
			return category, true
		}
	}
	return models.Category{}, false
}

// Load replaces the cache with the persisted categories.
func (s *CategoryService) Load() error {
	return s.cache.load()
}

func (s *CategoryService) validate(payload models.Record, current *models.Category) (models.Category, error) {
	name, err := validation.RequiredString(payload[models.FieldName], models.FieldName, maxCategoryNameLength)
	if err != nil {
		return models.Category{}, err
	}
	canonical := strings.ToLower(name)
	for _, other := range s.cache.items {
		if current != nil && other.ID == current.ID {
			continue
		}
		if strings.ToLower(other.Name) == canonical {
			return models.Category{}, ledgererror.NewValidationError(models.FieldName, "Category name must be unique")
		}
	}

	id := uuid.NewString()
	if current != nil {
		id = current.ID
	}
	return models.Category{ID: id, Name: name}, nil
}
