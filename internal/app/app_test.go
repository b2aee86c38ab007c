package app_test

import (
	"context"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phillipyBr/Meu-Bolso/internal/advisor"
	"github.com/phillipyBr/Meu-Bolso/internal/app"
	"github.com/phillipyBr/Meu-Bolso/internal/config"
	"github.com/phillipyBr/Meu-Bolso/internal/export"
	"github.com/phillipyBr/Meu-Bolso/internal/importer"
	"github.com/phillipyBr/Meu-Bolso/internal/storage"
	"github.com/phillipyBr/Meu-Bolso/internal/transaction"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()

	t.Setenv("STORAGE_BACKEND", config.BackendMemory)

	cfg, err := config.Load()
	require.NoError(t, err)

	return cfg
}

func newApp(t *testing.T, kv storage.Store) *app.App {
	t.Helper()

	a, err := app.NewWithStorage(context.Background(), testConfig(t), kv, advisor.Func(
		func(_ context.Context, s []transaction.Transaction) (string, error) {
			return "Você registrou " + strconv.Itoa(len(s)) + " lançamentos.", nil
		},
	))
	require.NoError(t, err)

	return a
}

func TestApp_FirstRunDefaults(t *testing.T) {
	a := newApp(t, storage.NewMemory())

	assert.Len(t, a.Transactions.All(), 4)
	assert.Equal(t, []string{"Salário", "Investimentos", "Outros"}, a.Categories.List(transaction.TypeIncome))

	d := a.Dashboard(time.Now())
	assert.Equal(t, "5000", d.Totals.Income.String())
	assert.Equal(t, "1320.5", d.Totals.Expense.String())
	assert.Equal(t, "3679.5", d.Totals.Balance.String())
}

func TestApp_StatePersistsAcrossRestarts(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemory()

	a := newApp(t, kv)

	created, err := a.Transactions.Create(ctx, transaction.CreateParams{
		Type:        transaction.TypeExpense,
		Amount:      decimal.NewFromInt(99),
		Category:    "Pets",
		Description: "Ração",
		Date:        time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.NoError(t, a.Transactions.Delete(ctx, "1"))
	require.NoError(t, a.Categories.Add(ctx, transaction.TypeExpense, "Pets"))

	restarted := newApp(t, kv)

	all := restarted.Transactions.All()
	require.Len(t, all, 4)
	assert.Equal(t, created.ID, all[0].ID)
	assert.Contains(t, restarted.Categories.List(transaction.TypeExpense), "Pets")
}

func TestApp_ExportImport(t *testing.T) {
	ctx := context.Background()
	a := newApp(t, storage.NewMemory())

	name, body, err := a.Export(transaction.FilterExpense)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(name, "meu-bolso-extrato-expense-"))
	assert.True(t, strings.HasPrefix(body, export.BOM))

	imported, err := a.Import(ctx, importer.FormatStatement, strings.NewReader(body))
	require.NoError(t, err)
	assert.Len(t, imported, 3)
	assert.Len(t, a.Transactions.All(), 7)
}

func TestApp_ExportNothing(t *testing.T) {
	ctx := context.Background()
	a := newApp(t, storage.NewMemory())

	for _, tx := range a.Transactions.All() {
		require.NoError(t, a.Transactions.Delete(ctx, tx.ID))
	}

	_, _, err := a.Export(transaction.FilterAll)
	assert.ErrorIs(t, err, export.ErrNothingToExport)
	assert.ErrorIs(t, a.RequestAdvice(), advisor.ErrNoTransactions)
}

func TestApp_RequestAdvice(t *testing.T) {
	a := newApp(t, storage.NewMemory())

	require.NoError(t, a.RequestAdvice())

	select {
	case <-a.Advice.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("advice did not finish")
	}

	assert.Equal(t, advisor.Result{State: advisor.StateSucceeded, Text: "Você registrou 4 lançamentos."}, a.Advice.Result())
}

func TestNew_SQLite(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", config.BackendSQLite)
	t.Setenv("STORAGE_PATH", filepath.Join(t.TempDir(), "bolso.db"))
	t.Setenv("API_KEY", "")

	cfg, err := config.Load()
	require.NoError(t, err)

	ctx := context.Background()

	a, err := app.New(ctx, cfg)
	require.NoError(t, err)
	require.NoError(t, a.Categories.Add(ctx, transaction.TypeIncome, "Freela"))
	require.NoError(t, a.Close())

	reopened, err := app.New(ctx, cfg)
	require.NoError(t, err)
	defer reopened.Close()

	assert.Contains(t, reopened.Categories.List(transaction.TypeIncome), "Freela")
}

func TestApp_ExportImport_LargeAmount(t *testing.T) {
	ctx := context.Background()
	a := newApp(t, storage.NewMemory())

	for _, tx := range a.Transactions.All() {
		require.NoError(t, a.Transactions.Delete(ctx, tx.ID))
	}

	amount := decimal.RequireFromString("12345678901234567.89")
	_, err := a.Transactions.Create(ctx, transaction.CreateParams{
		Type:        transaction.TypeIncome,
		Amount:      amount,
		Category:    "Investimentos",
		Description: "Resgate",
		Date:        time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	_, body, err := a.Export(transaction.FilterAll)
	require.NoError(t, err)
	assert.Contains(t, body, `"12.345.678.901.234.567,89"`)

	imported, err := a.Import(ctx, importer.FormatStatement, strings.NewReader(body))
	require.NoError(t, err)
	require.Len(t, imported, 1)
	assert.True(t, imported[0].Amount.Equal(amount), "got %s", imported[0].Amount)
}

type closingAdvisor struct {
	advisor.Func
	closed bool
}

func (c *closingAdvisor) Close() error {
	c.closed = true
	return nil
}

func TestNew_ClosesAdvisorOnFailure(t *testing.T) {
	adv := &closingAdvisor{Func: func(context.Context, []transaction.Transaction) (string, error) {
		return "", nil
	}}
	t.Cleanup(app.SetNewAdvisor(func() advisor.Advisor { return adv }))

	cfg := testConfig(t)
	cfg.Report.Locale = "!!"

	_, err := app.New(context.Background(), cfg)
	require.Error(t, err)
	assert.True(t, adv.closed)
}

func TestNew_CloseReleasesAdvisor(t *testing.T) {
	adv := &closingAdvisor{Func: func(context.Context, []transaction.Transaction) (string, error) {
		return "", nil
	}}
	t.Cleanup(app.SetNewAdvisor(func() advisor.Advisor { return adv }))

	a, err := app.New(context.Background(), testConfig(t))
	require.NoError(t, err)
	require.NoError(t, a.Close())
	assert.True(t, adv.closed)
}
