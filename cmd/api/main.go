package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/phillipyBr/Meu-Bolso/internal/app"
	"github.com/phillipyBr/Meu-Bolso/internal/config"
	bolsoHttp "github.com/phillipyBr/Meu-Bolso/internal/http"
	adviceHandler "github.com/phillipyBr/Meu-Bolso/internal/http/advice"
	categoryHandler "github.com/phillipyBr/Meu-Bolso/internal/http/category"
	dashboardHandler "github.com/phillipyBr/Meu-Bolso/internal/http/dashboard"
	exportHandler "github.com/phillipyBr/Meu-Bolso/internal/http/export"
	importHandler "github.com/phillipyBr/Meu-Bolso/internal/http/importcsv"
	txHandler "github.com/phillipyBr/Meu-Bolso/internal/http/transaction"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("initialising application: %w", err)
	}
	defer func() {
		if err := a.Close(); err != nil {
			slog.Error("failed to close application", "error", err)
		}
	}()

	var (
		transactionH = txHandler.NewHandler(a.Transactions)
		categoryH    = categoryHandler.NewHandler(a.Categories)
		dashboardH   = dashboardHandler.NewHandler(a)
		exportH      = exportHandler.NewHandler(a)
		importH      = importHandler.NewHandler(a)
		adviceH      = adviceHandler.NewHandler(a)
	)

	router := bolsoHttp.New(
		bolsoHttp.Options{AllowedOrigins: cfg.Server.CORSOrigins, Timeout: cfg.Server.Timeout},
		transactionH, categoryH, dashboardH, exportH, importH, adviceH,
	)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: cfg.Server.Timeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("starting server", "app", cfg.App.Name, "port", srv.Addr, "storage", cfg.Storage.Backend)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}

		return nil
	})

	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		slog.Info("shutting down server")

		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
