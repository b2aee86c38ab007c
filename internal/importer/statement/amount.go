package statement

import (
	"strings"

	"github.com/shopspring/decimal"
)

// parseAmount parses a locale formatted amount such as "1.234,56" (pt-BR)
// or "1,234.56" (en).
func (p Profile) parseAmount(s string) (decimal.Decimal, error) {
	clean := strings.ReplaceAll(s, p.Group, "")
	clean = strings.ReplaceAll(clean, p.Decimal, ".")

	return decimal.NewFromString(clean)
}
