package service

import (
	"fmt"
	"sort"
	"strings"

	"fjacquet/expense-tracker/internal/ledgererror"
	"fjacquet/expense-tracker/internal/logging"
	"fjacquet/expense-tracker/internal/models"
)

type entity interface {
	ToRecord() models.Record
}

// snapshot is the authoritative cache of one resource. Mutations are applied to
// a copy of the cache which replaces it only once the copy has been persisted.
type snapshot[T entity] struct {
	store    Store
	resource string
	kind     string
	decode   func(models.Record) (T, error)
	idOf     func(T) string
	less     func(a, b T) bool
	items    map[string]T
	logger   logging.Logger
}

func (s *snapshot[T]) load() error {
	records, err := s.store.Load(s.resource)
	if err != nil {
		return err
	}
	items := make(map[string]T, len(records))
	for _, record := range records {
		item, err := s.decode(record)
		if err != nil {
			return &ledgererror.PersistenceError{
				Path: s.resource,
				Msg:  fmt.Sprintf("invalid %s record in", strings.ToLower(s.kind)),
				Err:  err,
			}
		}
		items[s.idOf(item)] = item
	}
	s.items = items
	s.logger.Debug("Cache loaded", logging.F(logging.FieldCount, len(items)))
	return nil
}

func (s *snapshot[T]) get(id string) (T, error) {
	item, ok := s.items[id]
	if !ok {
		var zero T
		return zero, &ledgererror.RecordNotFoundError{Kind: s.kind, ID: id}
	}
	return item, nil
}

func (s *snapshot[T]) sorted() []T {
	out := make([]T, 0, len(s.items))
	for _, item := range s.items {
		out = append(out, item)
	}
	sort.SliceStable(out, func(i, j int) bool { return s.less(out[i], out[j]) })
	return out
}

// commit applies mutate to a copy of the cache, persists it and swaps it in.
// On a failed save the cache is left as it was.
func (s *snapshot[T]) commit(operation string, mutate func(items map[string]T)) error {
	next := make(map[string]T, len(s.items)+1)
	for id, item := range s.items {
		next[id] = item
	}
	mutate(next)

	ordered := make([]T, 0, len(next))
	for _, item := range next {
		ordered = append(ordered, item)
	}
	sort.SliceStable(ordered, func(i, j int) bool { return s.less(ordered[i], ordered[j]) })

	records := make([]models.Record, len(ordered))
	for i, item := range ordered {
		records[i] = item.ToRecord()
	}

	if err := s.store.Save(s.resource, records); err != nil {
		s.logger.WithError(err).Error("Failed to persist snapshot", logging.F(logging.FieldOperation, operation))
		if ledgererror.IsPersistence(err) {
			return err
		}
		return &ledgererror.PersistenceError{
			Path: s.resource,
			Msg:  fmt.Sprintf("unexpected error while saving %s records to", strings.ToLower(s.kind)),
			Err:  err,
		}
	}
	s.items = next
	return nil
}
