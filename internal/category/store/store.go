package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phillipyBr/Meu-Bolso/internal/category"
	"github.com/phillipyBr/Meu-Bolso/internal/storage"
)

// Key is the storage key holding the serialised category registry.
const Key = "meuBolso_categories"

type Store struct {
	kv storage.Store
}

func New(kv storage.Store) *Store {
	return &Store{kv: kv}
}

type document struct {
	Income  []string `json:"income"`
	Expense []string `json:"expense"`
}

// LoadCategories reads the persisted registry, falling back to the defaults
// when nothing usable is stored.
func (s *Store) LoadCategories(ctx context.Context) (category.Lists, error) {
	raw, err := s.kv.Get(ctx, Key)
	if errors.Is(err, storage.ErrNotFound) {
		return category.Defaults(), nil
	}

	if err != nil {
		return category.Lists{}, fmt.Errorf("reading %s: %w", Key, err)
	}

	var doc document
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		slog.Warn("discarding unreadable categories", "key", Key, "error", err)
		return category.Defaults(), nil
	}

	return category.Lists{
		Income:  dedupe(doc.Income),
		Expense: dedupe(doc.Expense),
	}, nil
}

func (s *Store) SaveCategories(ctx context.Context, lists category.Lists) error {
	data, err := json.Marshal(document{
		Income:  nonNil(lists.Income),
		Expense: nonNil(lists.Expense),
	})
	if err != nil {
		return fmt.Errorf("encoding categories: %w", err)
	}

	return s.kv.Set(ctx, Key, string(data))
}

func dedupe(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))

	for _, n := range names {
		if _, ok := seen[n]; ok {
			continue
		}

		seen[n] = struct{}{}
		out = append(out, n)
	}

	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}

	return s
}
