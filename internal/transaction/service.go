package transaction

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrUnknownFilter = errors.New("unknown transaction filter")

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=transaction
type Repository interface {
	LoadTransactions(ctx context.Context) ([]Transaction, error)
	SaveTransactions(ctx context.Context, txs []Transaction) error
}

// Service owns the in-memory transaction collection, newest first,
// and persists the whole collection after every mutation.
type Service struct {
	repo Repository

	mu  sync.RWMutex
	txs []Transaction
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	Type        Type
	Amount      decimal.Decimal
	Category    string
	Description string
	Date        time.Time
}

// Filter narrows a listing by kind.
type Filter string

const (
	FilterAll     Filter = "all"
	FilterIncome  Filter = "income"
	FilterExpense Filter = "expense"
)

// ParseFilter maps a user supplied filter name to a Filter. An empty
// string selects every record.
func ParseFilter(s string) (Filter, error) {
	switch Filter(s) {
	case "", FilterAll:
		return FilterAll, nil
	case FilterIncome, FilterExpense:
		return Filter(s), nil
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownFilter, s)
}

// Match reports whether tx passes the filter.
func (f Filter) Match(tx Transaction) bool {
	switch f {
	case FilterIncome:
		return tx.Type == TypeIncome
	case FilterExpense:
		return tx.Type == TypeExpense
	}

	return true
}

// Load replaces the in-memory collection with the persisted one.
func (s *Service) Load(ctx context.Context) error {
	txs, err := s.repo.LoadTransactions(ctx)
	if err != nil {
		return fmt.Errorf("loading transactions: %w", err)
	}

	s.mu.Lock()
	s.txs = txs
	s.mu.Unlock()

	return nil
}

// Create assigns a fresh id, prepends the record and persists the
// collection. The in-memory change is reverted when persisting fails.
func (s *Service) Create(ctx context.Context, params CreateParams) (*Transaction, error) {
	tx := Transaction{
		ID:          uuid.NewString(),
		Type:        params.Type,
		Amount:      params.Amount,
		Category:    params.Category,
		Description: params.Description,
		Date:        DateOf(params.Date),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.txs
	next := make([]Transaction, 0, len(prev)+1)
	next = append(next, tx)
	next = append(next, prev...)

	if err := s.repo.SaveTransactions(ctx, next); err != nil {
		return nil, fmt.Errorf("saving transactions: %w", err)
	}

	s.txs = next

	return &tx, nil
}

// CreateBatch creates every params entry in order, so the last entry ends up
// first in the collection. It persists once.
func (s *Service) CreateBatch(ctx context.Context, params []CreateParams) ([]Transaction, error) {
	if len(params) == 0 {
		return nil, nil
	}

	created := make([]Transaction, len(params))
	for i, p := range params {
		created[i] = Transaction{
			ID:          uuid.NewString(),
			Type:        p.Type,
			Amount:      p.Amount,
			Category:    p.Category,
			Description: p.Description,
			Date:        DateOf(p.Date),
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]Transaction, 0, len(s.txs)+len(created))
	for i := len(created) - 1; i >= 0; i-- {
		next = append(next, created[i])
	}

	next = append(next, s.txs...)

	if err := s.repo.SaveTransactions(ctx, next); err != nil {
		return nil, fmt.Errorf("saving transactions: %w", err)
	}

	s.txs = next

	return created, nil
}

// Delete removes the record with the given id. Deleting an unknown id is a
// no-op and does not touch the repository.
func (s *Service) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := slices.IndexFunc(s.txs, func(tx Transaction) bool { return tx.ID == id })
	if idx < 0 {
		return nil
	}

	next := slices.Delete(slices.Clone(s.txs), idx, idx+1)

	if err := s.repo.SaveTransactions(ctx, next); err != nil {
		return fmt.Errorf("saving transactions: %w", err)
	}

	s.txs = next

	return nil
}

// All returns a snapshot of every record, newest first.
func (s *Service) All() []Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.txs)
}

// List returns a snapshot of the records matching the filter, preserving order.
func (s *Service) List(filter Filter) []Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Transaction, 0, len(s.txs))
	for _, tx := range s.txs {
		if filter.Match(tx) {
			out = append(out, tx)
		}
	}

	return out
}
