package category

import (
	"slices"

	"github.com/phillipyBr/Meu-Bolso/internal/transaction"
)

// Lists holds the ordered category names of each transaction kind.
type Lists struct {
	Income  []string
	Expense []string
}

// Defaults returns the categories seeded on first run.
func Defaults() Lists {
	return Lists{
		Income:  []string{"Salário", "Investimentos", "Outros"},
		Expense: []string{"Alimentação", "Moradia", "Transporte", "Lazer", "Saúde", "Educação", "Outros"},
	}
}

// Registry keeps category names unique per kind under exact,
// case-sensitive comparison, in insertion order.
type Registry struct {
	lists map[transaction.Type][]string
}

func NewRegistry(l Lists) *Registry {
	return &Registry{lists: map[transaction.Type][]string{
		transaction.TypeIncome:  slices.Clone(l.Income),
		transaction.TypeExpense: slices.Clone(l.Expense),
	}}
}

// Add appends name to kind's list unless it is already present.
// It reports whether the registry changed.
func (r *Registry) Add(kind transaction.Type, name string) bool {
	list, ok := r.lists[kind]
	if !ok || slices.Contains(list, name) {
		return false
	}

	r.lists[kind] = append(list, name)

	return true
}

// Remove deletes name from kind's list. It reports whether the registry changed.
func (r *Registry) Remove(kind transaction.Type, name string) bool {
	list, ok := r.lists[kind]
	if !ok {
		return false
	}

	idx := slices.Index(list, name)
	if idx < 0 {
		return false
	}

	r.lists[kind] = slices.Delete(list, idx, idx+1)

	return true
}

func (r *Registry) List(kind transaction.Type) []string {
	return slices.Clone(r.lists[kind])
}

func (r *Registry) Lists() Lists {
	return Lists{
		Income:  r.List(transaction.TypeIncome),
		Expense: r.List(transaction.TypeExpense),
	}
}
