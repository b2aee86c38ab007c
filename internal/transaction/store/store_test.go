package store_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phillipyBr/Meu-Bolso/internal/storage"
	"github.com/phillipyBr/Meu-Bolso/internal/transaction"
	"github.com/phillipyBr/Meu-Bolso/internal/transaction/store"
)

var fixedNow = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

func strPtr(s string) *string { return &s }

type failingKV struct{}

func (failingKV) Get(context.Context, string) (string, error) { return "", errors.New("io error") }
func (failingKV) Set(context.Context, string, string) error   { return errors.New("io error") }

func TestStore_LoadTransactions(t *testing.T) {
	tests := []struct {
		name    string
		stored  *string
		wantIDs []string
	}{
		{
			name:    "AbsentUsesDefaults",
			wantIDs: []string{"1", "2", "3", "4"},
		},
		{
			name:    "CorruptUsesDefaults",
			stored:  strPtr("{not json"),
			wantIDs: []string{"1", "2", "3", "4"},
		},
		{
			name:    "BadAmountUsesDefaults",
			stored:  strPtr(`[{"id":"a","type":"income","amount":"lots","category":"x","description":"y","date":"2024-01-01"}]`),
			wantIDs: []string{"1", "2", "3", "4"},
		},
		{
			name:    "EmptyCollectionIsKept",
			stored:  strPtr(`[]`),
			wantIDs: []string{},
		},
		{
			name:    "LegacyRecords",
			stored:  strPtr(`[{"id":"abc","type":"expense","amount":320.5,"category":"Alimentação","description":"Feira","date":"2024-02-28"}]`),
			wantIDs: []string{"abc"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			kv := storage.NewMemory()

			if tt.stored != nil {
				require.NoError(t, kv.Set(ctx, store.Key, *tt.stored))
			}

			got, err := store.New(kv).WithClock(clock).LoadTransactions(ctx)
			require.NoError(t, err)

			ids := make([]string, 0, len(got))
			for _, tx := range got {
				ids = append(ids, tx.ID)
			}

			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestStore_Defaults(t *testing.T) {
	got, err := store.New(storage.NewMemory()).WithClock(clock).LoadTransactions(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 4)

	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), got[0].Date)
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), got[3].Date)
	assert.True(t, decimal.RequireFromString("320.50").Equal(got[2].Amount))
}

func TestStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemory()
	s := store.New(kv)

	want := []transaction.Transaction{
		{
			ID:          "f3b1",
			Type:        transaction.TypeExpense,
			Amount:      decimal.RequireFromString("1234.56"),
			Category:    "Moradia",
			Description: `Conta "luz"`,
			Date:        time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
		},
	}

	require.NoError(t, s.SaveTransactions(ctx, want))

	raw, err := kv.Get(ctx, store.Key)
	require.NoError(t, err)
	assert.Contains(t, raw, `"amount":1234.56`)
	assert.Contains(t, raw, `"date":"2024-01-31"`)

	got, err := s.LoadTransactions(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, want[0].ID, got[0].ID)
	assert.Equal(t, want[0].Description, got[0].Description)
	assert.True(t, want[0].Amount.Equal(got[0].Amount))
	assert.Equal(t, want[0].Date, got[0].Date)
}

func TestStore_BackendError(t *testing.T) {
	s := store.New(failingKV{})

	_, err := s.LoadTransactions(context.Background())
	assert.Error(t, err)

	assert.Error(t, s.SaveTransactions(context.Background(), nil))
}
