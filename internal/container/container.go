// Package container provides dependency injection for the expense-tracker application.
// It centralizes the creation and wiring of all application dependencies,
// making them explicit and testable.
package container

import (
	"fmt"

	"fjacquet/expense-tracker/internal/config"
	"fjacquet/expense-tracker/internal/export"
	"fjacquet/expense-tracker/internal/logging"
	"fjacquet/expense-tracker/internal/service"
	"fjacquet/expense-tracker/internal/store"
)

// Container holds all application dependencies and provides methods to access them.
// It is immutable after creation.
type Container struct {
	logger logging.Logger
	config *config.Config
	store  *store.JSONStore

	categories *service.CategoryService
	expenses   *service.ExpenseService
	incomes    *service.IncomeService
	ledger     *service.LedgerService
	cascade    *service.CategoryCascade
	exporter   *export.Generator
}

// NewContainer creates and wires all application dependencies, logging
// through a logrus adapter configured from cfg.
func NewContainer(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	return NewContainerWithLogger(cfg, config.ConfigureLoggingFromConfig(cfg))
}

// NewContainerWithLogger is NewContainer with an explicit logger.
func NewContainerWithLogger(cfg *config.Config, logger logging.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}

	jsonStore, err := store.NewJSONStore(cfg.Data.Directory, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open data directory: %w", err)
	}

	opts := []service.Option{
		service.WithLogger(logger),
		service.WithAttachmentsRoot(cfg.AttachmentsDir()),
	}

	categories, err := service.NewCategoryService(jsonStore, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}
	expenses, err := service.NewExpenseService(jsonStore, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load expenses: %w", err)
	}
	incomes, err := service.NewIncomeService(jsonStore, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load incomes: %w", err)
	}

	logger.Debug("Container initialized successfully",
		logging.F(logging.FieldDataDir, jsonStore.BaseDir()))

	return &Container{
		logger:     logger,
		config:     cfg,
		store:      jsonStore,
		categories: categories,
		expenses:   expenses,
		incomes:    incomes,
		ledger:     service.NewLedgerService(expenses, incomes),
		cascade:    service.NewCategoryCascade(categories, expenses, logger),
		exporter:   export.NewGenerator(logger),
	}, nil
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetStore returns the JSON store backing every service.
func (c *Container) GetStore() *store.JSONStore {
	return c.store
}

// GetCategoryService returns the category service.
func (c *Container) GetCategoryService() *service.CategoryService {
	return c.categories
}

// GetExpenseService returns the expense service.
func (c *Container) GetExpenseService() *service.ExpenseService {
	return c.expenses
}

// GetIncomeService returns the income service.
func (c *Container) GetIncomeService() *service.IncomeService {
	return c.incomes
}

// GetLedgerService returns the ledger over expenses and incomes.
func (c *Container) GetLedgerService() *service.LedgerService {
	return c.ledger
}

// GetCategoryCascade returns the category rename/delete coordinator.
func (c *Container) GetCategoryCascade() *service.CategoryCascade {
	return c.cascade
}

// GetExporter returns the snapshot export generator.
func (c *Container) GetExporter() *export.Generator {
	return c.exporter
}
