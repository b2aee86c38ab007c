package export

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/phillipyBr/Meu-Bolso/internal/transaction"
)

// ContentType is the MIME type of an exported statement.
const ContentType = "text/csv;charset=utf-8"

// BOM marks the output as UTF-8 for spreadsheet tools.
const BOM = "\uFEFF"

const dateLayout = "02/01/2006"

var ErrNothingToExport = errors.New("nothing to export")

// Service renders transaction snapshots as CSV statements.
type Service struct {
	locale Locale
}

// NewService creates a new export Service formatting output in locale.
func NewService(locale Locale) *Service {
	return &Service{locale: locale}
}

func (s *Service) Locale() Locale {
	return s.locale
}

// Export filters the snapshot, orders it newest first and renders it as CSV.
// It returns ErrNothingToExport when no record passes the filter.
func (s *Service) Export(snapshot []transaction.Transaction, filter transaction.Filter) (string, error) {
	var rows []transaction.Transaction

	for _, tx := range snapshot {
		if filter.Match(tx) {
			rows = append(rows, tx)
		}
	}

	if len(rows) == 0 {
		return "", ErrNothingToExport
	}

	slices.SortStableFunc(rows, func(a, b transaction.Transaction) int {
		return b.Date.Compare(a.Date)
	})

	var sb strings.Builder

	sb.WriteString(BOM)
	sb.WriteString(strings.Join(s.locale.Header[:], ","))

	for _, tx := range rows {
		sb.WriteByte('\n')
		sb.WriteString(tx.Date.Format(dateLayout))
		sb.WriteByte(',')
		sb.WriteString(quote(tx.Description))
		sb.WriteByte(',')
		sb.WriteString(quoteIfNeeded(tx.Category))
		sb.WriteByte(',')
		sb.WriteString(s.locale.KindLabel(tx.Type))
		sb.WriteByte(',')
		sb.WriteString(quote(s.locale.FormatAmount(tx.Amount)))
	}

	return sb.String(), nil
}

// Filename returns the download name of a statement exported on day now.
func Filename(filter transaction.Filter, now time.Time) string {
	return fmt.Sprintf("meu-bolso-extrato-%s-%s.csv", filter, now.Format(time.DateOnly))
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func quoteIfNeeded(s string) string {
	if strings.ContainsAny(s, ",\"\r\n") {
		return quote(s)
	}

	return s
}
