package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/phillipyBr/Meu-Bolso/internal/storage"
	"github.com/phillipyBr/Meu-Bolso/internal/transaction"
)

// Key is the storage key holding the serialised transaction collection.
const Key = "meuBolso_transactions"

type Store struct {
	kv  storage.Store
	now func() time.Time
}

func New(kv storage.Store) *Store {
	return &Store{kv: kv, now: time.Now}
}

// WithClock overrides the clock used to date the first-run defaults.
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

type record struct {
	ID          string           `json:"id"`
	Type        transaction.Type `json:"type"`
	Amount      json.Number      `json:"amount"`
	Category    string           `json:"category"`
	Description string           `json:"description"`
	Date        string           `json:"date"`
}

// LoadTransactions reads the persisted collection. Absent or unparsable
// content yields the first-run defaults; only backend failures are errors.
func (s *Store) LoadTransactions(ctx context.Context) ([]transaction.Transaction, error) {
	raw, err := s.kv.Get(ctx, Key)
	if errors.Is(err, storage.ErrNotFound) {
		return transaction.Defaults(s.now()), nil
	}

	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", Key, err)
	}

	txs, err := decode(raw)
	if err != nil {
		slog.Warn("discarding unreadable transactions", "key", Key, "error", err)
		return transaction.Defaults(s.now()), nil
	}

	return txs, nil
}

func (s *Store) SaveTransactions(ctx context.Context, txs []transaction.Transaction) error {
	records := make([]record, len(txs))
	for i, tx := range txs {
		records[i] = record{
			ID:          tx.ID,
			Type:        tx.Type,
			Amount:      json.Number(tx.Amount.String()),
			Category:    tx.Category,
			Description: tx.Description,
			Date:        tx.Date.Format(time.DateOnly),
		}
	}

	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encoding transactions: %w", err)
	}

	return s.kv.Set(ctx, Key, string(data))
}

func decode(raw string) ([]transaction.Transaction, error) {
	var records []record
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		return nil, err
	}

	txs := make([]transaction.Transaction, 0, len(records))

	for i, r := range records {
		amount, err := decimal.NewFromString(r.Amount.String())
		if err != nil {
			return nil, fmt.Errorf("record %d: amount: %w", i, err)
		}

		date, err := parseDate(r.Date)
		if err != nil {
			return nil, fmt.Errorf("record %d: date: %w", i, err)
		}

		if !r.Type.Valid() {
			return nil, fmt.Errorf("record %d: unknown type %q", i, r.Type)
		}

		txs = append(txs, transaction.Transaction{
			ID:          r.ID,
			Type:        r.Type,
			Amount:      amount,
			Category:    r.Category,
			Description: r.Description,
			Date:        date,
		})
	}

	return txs, nil
}

// parseDate accepts YYYY-MM-DD and full ISO timestamps.
func parseDate(s string) (time.Time, error) {
	if len(s) > len(time.DateOnly) {
		s = s[:len(time.DateOnly)]
	}

	return time.Parse(time.DateOnly, s)
}
