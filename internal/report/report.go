// Package report computes the aggregate views shown on the dashboard.
// Every function is a pure projection over a transaction snapshot.
package report

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/phillipyBr/Meu-Bolso/internal/transaction"
)

// SeriesLength is the number of monthly buckets returned by MonthlySeries.
const SeriesLength = 6

type Summary struct {
	Income  decimal.Decimal
	Expense decimal.Decimal
	Balance decimal.Decimal
}

type CategoryTotal struct {
	Category string
	Total    decimal.Decimal
}

type MonthTotal struct {
	Year    int
	Month   time.Month
	Label   string
	Income  decimal.Decimal
	Expense decimal.Decimal
}

type Dashboard struct {
	Totals     Summary
	Categories []CategoryTotal
	Months     []MonthTotal
}

// Totals sums income and expense; Balance is their difference.
func Totals(snapshot []transaction.Transaction) Summary {
	t := Summary{Income: decimal.Zero, Expense: decimal.Zero}

	for _, tx := range snapshot {
		switch tx.Type {
		case transaction.TypeIncome:
			t.Income = t.Income.Add(tx.Amount)
		case transaction.TypeExpense:
			t.Expense = t.Expense.Add(tx.Amount)
		}
	}

	t.Balance = t.Income.Sub(t.Expense)

	return t
}

// CategoryBreakdown sums expenses per category, largest first. Ties keep the
// order in which the categories first appear in the snapshot; zero sums are
// omitted.
func CategoryBreakdown(snapshot []transaction.Transaction) []CategoryTotal {
	index := make(map[string]int)

	var out []CategoryTotal

	for _, tx := range snapshot {
		if tx.Type != transaction.TypeExpense {
			continue
		}

		i, ok := index[tx.Category]
		if !ok {
			i = len(out)
			index[tx.Category] = i
			out = append(out, CategoryTotal{Category: tx.Category, Total: decimal.Zero})
		}

		out[i].Total = out[i].Total.Add(tx.Amount)
	}

	out = slices.DeleteFunc(out, func(c CategoryTotal) bool { return c.Total.IsZero() })

	slices.SortStableFunc(out, func(a, b CategoryTotal) int {
		return b.Total.Cmp(a.Total)
	})

	return out
}

// MonthlySeries returns the income and expense sums of the month containing
// ref and the five months before it, oldest first.
func MonthlySeries(snapshot []transaction.Transaction, ref time.Time) []MonthTotal {
	out := make([]MonthTotal, SeriesLength)

	first := time.Date(ref.Year(), ref.Month()-(SeriesLength-1), 1, 0, 0, 0, 0, time.UTC)
	for i := range out {
		m := first.AddDate(0, i, 0)
		out[i] = MonthTotal{
			Year:    m.Year(),
			Month:   m.Month(),
			Label:   MonthLabel(m.Month()),
			Income:  decimal.Zero,
			Expense: decimal.Zero,
		}
	}

	for _, tx := range snapshot {
		i := monthsBetween(first, tx.Date)
		if i < 0 || i >= SeriesLength {
			continue
		}

		switch tx.Type {
		case transaction.TypeIncome:
			out[i].Income = out[i].Income.Add(tx.Amount)
		case transaction.TypeExpense:
			out[i].Expense = out[i].Expense.Add(tx.Amount)
		}
	}

	return out
}

// Build computes every dashboard projection for the snapshot.
func Build(snapshot []transaction.Transaction, ref time.Time) Dashboard {
	return Dashboard{
		Totals:     Totals(snapshot),
		Categories: CategoryBreakdown(snapshot),
		Months:     MonthlySeries(snapshot, ref),
	}
}

var monthLabels = [...]string{"JAN", "FEV", "MAR", "ABR", "MAI", "JUN", "JUL", "AGO", "SET", "OUT", "NOV", "DEZ"}

// MonthLabel returns the abbreviated pt-BR month name in upper case.
func MonthLabel(m time.Month) string {
	return monthLabels[m-1]
}

func monthsBetween(from, to time.Time) int {
	return (to.Year()-from.Year())*12 + int(to.Month()-from.Month())
}
