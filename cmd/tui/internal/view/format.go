package view

import (
	"context"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/phillipyBr/Meu-Bolso/internal/export"
	"github.com/phillipyBr/Meu-Bolso/internal/transaction"
)

const storeTimeout = 5 * time.Second

var (
	incomeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	expenseStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	faintStyle   = lipgloss.NewStyle().Faint(true)
)

// FormatAmount renders an amount in Brazilian reais, e.g. "R$ 1.234,56".
func FormatAmount(d decimal.Decimal) string {
	return "R$ " + export.PortugueseBR.FormatAmount(d)
}

// FormatSigned prefixes the amount with + or - according to the kind and
// colours it.
func FormatSigned(kind transaction.Type, d decimal.Decimal) string {
	if kind == transaction.TypeIncome {
		return incomeStyle.Render("+ " + FormatAmount(d))
	}

	return expenseStyle.Render("- " + FormatAmount(d))
}

// FormatDate formats a calendar date as DD/MM/YYYY.
func FormatDate(t time.Time) string {
	return t.Format("02/01/2006")
}

// KindLabel is the Portuguese name of a transaction kind.
func KindLabel(kind transaction.Type) string {
	return export.PortugueseBR.KindLabel(kind)
}

// StoreCtx returns a context with a standard timeout for storage writes.
func StoreCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), storeTimeout)
}
