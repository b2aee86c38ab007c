package statement

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	enc "github.com/phillipyBr/Meu-Bolso/internal/encoding"
	"github.com/phillipyBr/Meu-Bolso/internal/transaction"
)

var ErrUnknownFormat = errors.New("no matching statement format found")

// Parser reads statements written by the export package, in any supported
// locale, and produces transaction params.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

func (p *Parser) Parse(r io.Reader) ([]transaction.CreateParams, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	reader := csv.NewReader(utf8r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	profile, cols, headerIdx := detectProfile(rows)
	if profile == nil {
		return nil, ErrUnknownFormat
	}

	return parseRows(profile, cols, rows[headerIdx+1:], headerIdx+1)
}

// colIndex maps column names to their index in the row.
type colIndex map[string]int

func detectProfile(rows [][]string) (*Profile, colIndex, int) {
	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, cell := range row {
			if name := strings.TrimSpace(cell); name != "" {
				cols[name] = i
			}
		}

		for i := range profiles {
			if matchesProfile(&profiles[i], cols) {
				return &profiles[i], cols, rowIdx
			}
		}
	}

	return nil, nil, 0
}

func matchesProfile(p *Profile, cols colIndex) bool {
	for _, name := range p.requiredCols() {
		if _, ok := cols[name]; !ok {
			return false
		}
	}

	return true
}

func parseRows(p *Profile, cols colIndex, rows [][]string, headerRowNum int) ([]transaction.CreateParams, error) {
	var txs []transaction.CreateParams

	for i, row := range rows {
		rowNum := headerRowNum + i + 1 // 1-based

		date, ok := parseDate(cellValue(row, cols[p.DateCol]))
		if !ok {
			continue
		}

		label := cellValue(row, cols[p.TypeCol])

		kind, ok := p.kind(label)
		if !ok {
			return nil, fmt.Errorf("row %d: unknown type %q", rowNum, label)
		}

		amount, err := p.parseAmount(cellValue(row, cols[p.AmountCol]))
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid amount: %w", rowNum, err)
		}

		if amount.IsNegative() {
			return nil, fmt.Errorf("row %d: negative amount %s", rowNum, amount)
		}

		txs = append(txs, transaction.CreateParams{
			Type:        kind,
			Amount:      amount,
			Category:    cellValue(row, cols[p.CatCol]),
			Description: cellValue(row, cols[p.DescCol]),
			Date:        date,
		})
	}

	return txs, nil
}

// parseDate returns false for empty or unparseable cells.
func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}

	t, err := time.Parse("02/01/2006", s)
	if err != nil {
		return time.Time{}, false
	}

	return t, true
}

// cellValue safely gets a trimmed cell value from a row.
func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}
