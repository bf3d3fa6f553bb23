package service

import (
	"strings"
	"time"

	"fjacquet/expense-tracker/internal/validation"
)

// ExpenseFilter narrows ExpenseService.List and Total. Empty fields match
// everything. Start and End are inclusive ISO-8601 bounds on incurred_at.
type ExpenseFilter struct {
	Category      string
	PaymentMethod string
	Tag           string
	Merchant      string
	Start         string
	End           string
}

// IncomeFilter narrows IncomeService.List and Total. Empty fields match
// everything. Start and End are inclusive ISO-8601 bounds on received_at.
type IncomeFilter struct {
	Source         string
	ReceivedMethod string
	Tag            string
	Start          string
	End            string
}

// Filter is the combined filter of LedgerService. Fields that only exist on
// one side apply to that side only.
type Filter struct {
	Start          string
	End            string
	Tag            string
	Category       string
	PaymentMethod  string
	Merchant       string
	Source         string
	ReceivedMethod string
}

// Expenses projects f onto the expense filter fields.
func (f Filter) Expenses() ExpenseFilter {
	return ExpenseFilter{
		Category:      f.Category,
		PaymentMethod: f.PaymentMethod,
		Tag:           f.Tag,
		Merchant:      f.Merchant,
		Start:         f.Start,
		End:           f.End,
	}
}

// Incomes projects f onto the income filter fields.
func (f Filter) Incomes() IncomeFilter {
	return IncomeFilter{
		Source:         f.Source,
		ReceivedMethod: f.ReceivedMethod,
		Tag:            f.Tag,
		Start:          f.Start,
		End:            f.End,
	}
}

// window is a parsed, inclusive time range. Zero bounds are open.
type window struct {
	start, end time.Time
	hasStart   bool
	hasEnd     bool
}

func parseWindow(start, end string) (window, error) {
	var w window
	if strings.TrimSpace(start) != "" {
		t, err := validation.ValidateDateTime(start, "start")
		if err != nil {
			return window{}, err
		}
		w.start, w.hasStart = t, true
	}
	if strings.TrimSpace(end) != "" {
		t, err := validation.ValidateDateTime(end, "end")
		if err != nil {
			return window{}, err
		}
		w.end, w.hasEnd = t, true
	}
	return w, nil
}

func (w window) contains(t time.Time) bool {
	if w.hasStart && t.Before(w.start) {
		return false
	}
	if w.hasEnd && t.After(w.end) {
		return false
	}
	return true
}

func canonical(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

type expenseMatcher struct {
	category, paymentMethod, tag, merchant string
	window                                 window
}

func (f ExpenseFilter) compile() (expenseMatcher, error) {
	w, err := parseWindow(f.Start, f.End)
	if err != nil {
		return expenseMatcher{}, err
	}
	return expenseMatcher{
		category:      canonical(f.Category),
		paymentMethod: canonical(f.PaymentMethod),
		tag:           canonical(f.Tag),
		merchant:      canonical(f.Merchant),
		window:        w,
	}, nil
}

type incomeMatcher struct {
	source, receivedMethod, tag string
	window                      window
}

func (f IncomeFilter) compile() (incomeMatcher, error) {
	w, err := parseWindow(f.Start, f.End)
	if err != nil {
		return incomeMatcher{}, err
	}
	return incomeMatcher{
		source:         canonical(f.Source),
		receivedMethod: canonical(f.ReceivedMethod),
		tag:            canonical(f.Tag),
		window:         w,
	}, nil
}
