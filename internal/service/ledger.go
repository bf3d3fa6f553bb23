package service

import (
	"fmt"

	"fjacquet/expense-tracker/internal/models"

	"github.com/shopspring/decimal"
)

// ExpenseSource is the part of ExpenseService the ledger reads from.
type ExpenseSource interface {
	List(filter ExpenseFilter) ([]models.Expense, error)
	Total(filter ExpenseFilter) (decimal.Decimal, error)
	Load() error
}

// IncomeSource is the part of IncomeService the ledger reads from.
type IncomeSource interface {
	List(filter IncomeFilter) ([]models.Income, error)
	Total(filter IncomeFilter) (decimal.Decimal, error)
	Load() error
}

// Summary holds both totals of a filtered ledger and their difference.
type Summary struct {
	Incomes  decimal.Decimal
	Expenses decimal.Decimal
	Balance  decimal.Decimal
}

// LedgerService aggregates incomes and expenses.
type LedgerService struct {
	expenses ExpenseSource
	incomes  IncomeSource
}

// NewLedgerService combines the two record services.
func NewLedgerService(expenses ExpenseSource, incomes IncomeSource) *LedgerService {
	return &LedgerService{expenses: expenses, incomes: incomes}
}

// Balance is total income minus total expense under filter.
func (l *LedgerService) Balance(filter Filter) (decimal.Decimal, error) {
	summary, err := l.Summary(filter)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return summary.Balance, nil
}

// Summary computes both totals under filter.
func (l *LedgerService) Summary(filter Filter) (Summary, error) {
	incomes, err := l.incomes.Total(filter.Incomes())
	if err != nil {
		return Summary{}, err
	}
	expenses, err := l.expenses.Total(filter.Expenses())
	if err != nil {
		return Summary{}, err
	}
	return Summary{
		Incomes:  incomes,
		Expenses: expenses,
		Balance:  incomes.Sub(expenses),
	}, nil
}

// Refresh reloads both services from the store.
func (l *LedgerService) Refresh() error {
	if err := l.expenses.Load(); err != nil {
		return fmt.Errorf("failed to reload expenses: %w", err)
	}
	if err := l.incomes.Load(); err != nil {
		return fmt.Errorf("failed to reload incomes: %w", err)
	}
	return nil
}

// Snapshot serializes every income and expense, each list in event order,
// under the keys "incomes" and "expenses".
func (l *LedgerService) Snapshot() (map[string][]models.Record, error) {
	incomes, err := l.incomes.List(IncomeFilter{})
	if err != nil {
		return nil, err
	}
	expenses, err := l.expenses.List(ExpenseFilter{})
	if err != nil {
		return nil, err
	}

	snapshot := map[string][]models.Record{
		"incomes":  make([]models.Record, 0, len(incomes)),
		"expenses": make([]models.Record, 0, len(expenses)),
	}
	for _, income := range incomes {
		snapshot["incomes"] = append(snapshot["incomes"], income.ToRecord())
	}
	for _, expense := range expenses {
		snapshot["expenses"] = append(snapshot["expenses"], expense.ToRecord())
	}
	return snapshot, nil
}
