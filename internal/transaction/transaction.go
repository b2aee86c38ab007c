package transaction

import (
	"time"

	"github.com/shopspring/decimal"
)

// Type represents the type of transaction (income or expense).
type Type string

const (
	TypeIncome  Type = "income"
	TypeExpense Type = "expense"
)

// Valid reports whether t is one of the known transaction types.
func (t Type) Valid() bool {
	return t == TypeIncome || t == TypeExpense
}

// Transaction represents a single income or expense entry.
// Records are never mutated after creation.
type Transaction struct {
	ID          string
	Type        Type
	Amount      decimal.Decimal
	Category    string
	Description string
	Date        time.Time // calendar date, midnight UTC
}

// DateOf truncates t to its calendar date at midnight UTC.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
