package transaction

import (
	"time"

	"github.com/shopspring/decimal"
)

// Defaults returns the sample collection shown on first run, dated relative
// to now.
func Defaults(now time.Time) []Transaction {
	today := DateOf(now)
	yesterday := today.AddDate(0, 0, -1)

	return []Transaction{
		{ID: "1", Type: TypeIncome, Amount: decimal.NewFromInt(5000), Category: "Salário", Description: "Salário Mensal", Date: today},
		{ID: "2", Type: TypeExpense, Amount: decimal.NewFromInt(850), Category: "Moradia", Description: "Aluguel", Date: today},
		{ID: "3", Type: TypeExpense, Amount: decimal.RequireFromString("320.50"), Category: "Alimentação", Description: "Supermercado Semanal", Date: today},
		{ID: "4", Type: TypeExpense, Amount: decimal.NewFromInt(150), Category: "Lazer", Description: "Cinema e Jantar", Date: yesterday},
	}
}
