// Package service mediates every read and write of categories, expenses and
// incomes. Each service owns an in-memory cache hydrated from the store at
// construction; every mutation is validated first and then persisted as a full
// snapshot of the resource.
//
// Services are not safe for concurrent use and do not coordinate with other
// processes writing the same data directory: the last snapshot written wins.
package service

import (
	"time"

	"fjacquet/expense-tracker/internal/logging"
	"fjacquet/expense-tracker/internal/models"
)

// Default resource names, one JSON file each under the data directory.
const (
	CategoriesResource = "categories.json"
	ExpensesResource   = "expenses.json"
	IncomesResource    = "incomes.json"
)

// Store is the persistence contract the services depend on.
type Store interface {
	Load(resource string) ([]models.Record, error)
	Save(resource string, records []models.Record) error
}

type options struct {
	resource        string
	attachmentsRoot string
	now             func() time.Time
	logger          logging.Logger
}

// Option customizes a service at construction.
type Option func(*options)

// WithResource overrides the resource (file) name a service persists to.
func WithResource(name string) Option {
	return func(o *options) { o.resource = name }
}

// WithAttachmentsRoot sets the directory attachment paths must stay within.
func WithAttachmentsRoot(dir string) Option {
	return func(o *options) { o.attachmentsRoot = dir }
}

// WithClock replaces time.Now for defaulting recorded_at.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithLogger sets the logger used by the service.
func WithLogger(logger logging.Logger) Option {
	return func(o *options) { o.logger = logger }
}

func buildOptions(resource string, opts []Option) options {
	o := options{
		resource:        resource,
		attachmentsRoot: ".",
		now:             time.Now,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = logging.NewDiscardLogger()
	}
	return o
}
