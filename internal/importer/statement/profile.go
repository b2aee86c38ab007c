package statement

import (
	"github.com/phillipyBr/Meu-Bolso/internal/export"
	"github.com/phillipyBr/Meu-Bolso/internal/transaction"
)

// Profile describes the column layout and number format of one exported
// statement locale. Profiles are derived from the export locales so that
// any statement this application writes can be read back.
type Profile struct {
	Name      string
	DateCol   string
	DescCol   string
	CatCol    string
	TypeCol   string
	AmountCol string
	Group     string
	Decimal   string
	kinds     map[string]transaction.Type
}

func newProfile(l export.Locale) Profile {
	return Profile{
		Name:      l.Tag.String(),
		DateCol:   l.Header[0],
		DescCol:   l.Header[1],
		CatCol:    l.Header[2],
		TypeCol:   l.Header[3],
		AmountCol: l.Header[4],
		Group:     l.Group,
		Decimal:   l.Decimal,
		kinds: map[string]transaction.Type{
			l.Income:  transaction.TypeIncome,
			l.Expense: transaction.TypeExpense,
		},
	}
}

// requiredCols returns the column names that must be present for this profile to match.
func (p Profile) requiredCols() []string {
	return []string{p.DateCol, p.DescCol, p.CatCol, p.TypeCol, p.AmountCol}
}

func (p Profile) kind(label string) (transaction.Type, bool) {
	t, ok := p.kinds[label]
	return t, ok
}

// profiles is the ordered list of statement layouts tried during detection.
var profiles = func() []Profile {
	out := make([]Profile, len(export.Locales))
	for i, l := range export.Locales {
		out[i] = newProfile(l)
	}

	return out
}()
