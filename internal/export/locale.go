package export

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"

	"github.com/phillipyBr/Meu-Bolso/internal/transaction"
)

// Locale holds the labels and number formatting of an exported statement.
type Locale struct {
	Tag     language.Tag
	Header  [5]string
	Income  string
	Expense string

	// Separators written by FormatAmount.
	Group   string
	Decimal string
}

var (
	PortugueseBR = Locale{
		Tag:     language.BrazilianPortuguese,
		Header:  [5]string{"Data", "Descrição", "Categoria", "Tipo", "Valor"},
		Income:  "Receita",
		Expense: "Despesa",
		Group:   ".",
		Decimal: ",",
	}
	English = Locale{
		Tag:     language.AmericanEnglish,
		Header:  [5]string{"Date", "Description", "Category", "Type", "Amount"},
		Income:  "Income",
		Expense: "Expense",
		Group:   ",",
		Decimal: ".",
	}
)

// Locales lists every supported locale, preferred first.
var Locales = []Locale{PortugueseBR, English}

var matcher = language.NewMatcher([]language.Tag{PortugueseBR.Tag, English.Tag})

// LookupLocale returns the supported locale closest to the BCP 47 tag s.
func LookupLocale(s string) (Locale, error) {
	tag, err := language.Parse(s)
	if err != nil {
		return Locale{}, fmt.Errorf("parse locale %q: %w", s, err)
	}

	_, idx, _ := matcher.Match(tag)

	return Locales[idx], nil
}

// KindLabel translates a transaction type to its display label.
func (l Locale) KindLabel(t transaction.Type) string {
	if t == transaction.TypeIncome {
		return l.Income
	}

	return l.Expense
}

// FormatAmount renders d with two fraction digits and the locale's grouping,
// e.g. 1.234,56 in pt-BR.
func (l Locale) FormatAmount(d decimal.Decimal) string {
	d = d.Round(2)
	whole, frac, _ := strings.Cut(d.Abs().StringFixed(2), ".")

	var sb strings.Builder
	if d.IsNegative() {
		sb.WriteByte('-')
	}

	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			sb.WriteString(l.Group)
		}
		sb.WriteRune(r)
	}

	sb.WriteString(l.Decimal)
	sb.WriteString(frac)

	return sb.String()
}
