// Package app wires the services into the application state shared by the
// API server and the terminal UI.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/phillipyBr/Meu-Bolso/internal/advisor"
	"github.com/phillipyBr/Meu-Bolso/internal/category"
	categoryStore "github.com/phillipyBr/Meu-Bolso/internal/category/store"
	"github.com/phillipyBr/Meu-Bolso/internal/config"
	"github.com/phillipyBr/Meu-Bolso/internal/database"
	"github.com/phillipyBr/Meu-Bolso/internal/export"
	"github.com/phillipyBr/Meu-Bolso/internal/importer"
	"github.com/phillipyBr/Meu-Bolso/internal/report"
	"github.com/phillipyBr/Meu-Bolso/internal/storage"
	"github.com/phillipyBr/Meu-Bolso/internal/transaction"
	txStore "github.com/phillipyBr/Meu-Bolso/internal/transaction/store"
)

// ErrInvalidImport wraps every failure to read an imported file.
var ErrInvalidImport = errors.New("parsing import")

type App struct {
	Transactions *transaction.Service
	Categories   *category.Service
	Reports      *report.Cache
	Exporter     *export.Service
	Importer     *importer.Service
	Advice       *advisor.Session

	now     func() time.Time
	closers []io.Closer
}

// newAdvisor is replaced in tests.
var newAdvisor = advisor.New

// New opens the configured storage backend and advisor and loads the
// persisted state.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	kv, closer, err := openStorage(cfg)
	if err != nil {
		return nil, err
	}

	adv, err := newAdvisor(ctx, advisor.Config{
		Provider: cfg.Advisor.Provider,
		APIKey:   cfg.Advisor.APIKey,
		Model:    cfg.Advisor.Model,
		BaseURL:  cfg.Advisor.BaseURL,
	})
	if err != nil {
		closeAll(closer)
		return nil, fmt.Errorf("creating advisor: %w", err)
	}

	closers := []io.Closer{closer}
	if c, ok := adv.(io.Closer); ok {
		closers = append(closers, c)
	}

	if cfg.Advisor.APIKey == "" {
		slog.Warn("API_KEY not set, financial advice is disabled")
	}

	a, err := NewWithStorage(ctx, cfg, kv, adv)
	if err != nil {
		closeAll(closers...)
		return nil, err
	}

	a.closers = append(a.closers, closers...)

	return a, nil
}

// NewWithStorage builds the application state on top of an already opened
// key-value store and advisor.
func NewWithStorage(ctx context.Context, cfg *config.Config, kv storage.Store, adv advisor.Advisor) (*App, error) {
	locale, err := export.LookupLocale(cfg.Report.Locale)
	if err != nil {
		return nil, fmt.Errorf("report locale: %w", err)
	}

	cache, err := report.NewCache(cfg.Report.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("creating report cache: %w", err)
	}

	a := &App{
		Transactions: transaction.NewService(txStore.New(kv)),
		Categories:   category.NewService(categoryStore.New(kv)),
		Reports:      cache,
		Exporter:     export.NewService(locale),
		Importer:     importer.NewService(),
		Advice:       advisor.NewSession(adv),
		now:          time.Now,
	}

	if err := a.Transactions.Load(ctx); err != nil {
		return nil, err
	}

	if err := a.Categories.Load(ctx); err != nil {
		return nil, err
	}

	return a, nil
}

// Dashboard returns the aggregate views for the month containing ref.
func (a *App) Dashboard(ref time.Time) report.Dashboard {
	return a.Reports.Dashboard(a.Transactions.All(), ref)
}

// Export renders the statement for filter along with its download name.
func (a *App) Export(filter transaction.Filter) (name, body string, err error) {
	body, err = a.Exporter.Export(a.Transactions.All(), filter)
	if err != nil {
		return "", "", err
	}

	return export.Filename(filter, a.now()), body, nil
}

// Import parses r and adds every parsed record to the collection.
func (a *App) Import(ctx context.Context, format importer.Format, r io.Reader) ([]transaction.Transaction, error) {
	params, err := a.Importer.Import(format, r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidImport, err)
	}

	return a.Transactions.CreateBatch(ctx, params)
}

// RequestAdvice starts an advice request over the current collection.
func (a *App) RequestAdvice() error {
	return a.Advice.Start(a.Transactions.All())
}

func (a *App) Close() error {
	return closeAll(a.closers...)
}

func openStorage(cfg *config.Config) (storage.Store, io.Closer, error) {
	if cfg.Storage.Backend == config.BackendMemory {
		return storage.NewMemory(), nil, nil
	}

	driver, dsn, err := cfg.DataSource()
	if err != nil {
		return nil, nil, err
	}

	if err := database.Migrate(driver, dsn); err != nil {
		return nil, nil, fmt.Errorf("migrating database: %w", err)
	}

	db, err := database.New(driver, dsn)
	if err != nil {
		return nil, nil, err
	}

	kv, err := storage.NewSQL(db, driver)
	if err != nil {
		db.Close()
		return nil, nil, err
	}

	return kv, db, nil
}

func closeAll(closers ...io.Closer) error {
	var errs []error

	for _, c := range closers {
		if c == nil {
			continue
		}

		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
