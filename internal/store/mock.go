package store

import (
	"fjacquet/expense-tracker/internal/models"
)

// MockStore is an in-memory stand-in for JSONStore in tests.
type MockStore struct {
	Resources map[string][]models.Record
	Saves     map[string]int

	// Error flags for testing error conditions
	LoadError error
	SaveError error
}

// NewMockStore returns an empty MockStore.
func NewMockStore() *MockStore {
	return &MockStore{
		Resources: map[string][]models.Record{},
		Saves:     map[string]int{},
	}
}

// Load returns the stored records of resource.
func (m *MockStore) Load(resource string) ([]models.Record, error) {
	if m.LoadError != nil {
		return nil, m.LoadError
	}
	records := m.Resources[resource]
	out := make([]models.Record, len(records))
	copy(out, records)
	return out, nil
}

// Save replaces the records of resource unless SaveError is set.
func (m *MockStore) Save(resource string, records []models.Record) error {
	if m.SaveError != nil {
		return m.SaveError
	}
	m.Resources[resource] = append([]models.Record(nil), records...)
	m.Saves[resource]++
	return nil
}
