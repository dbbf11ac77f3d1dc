// Package app assembles the sync pipeline and read services from config.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"coursecatalog/internal/catalog"
	"coursecatalog/internal/config"
	"coursecatalog/internal/ingest"
	"coursecatalog/internal/platform/paperdata"

	"github.com/jackc/pgx/v5/pgxpool"
)

type App struct {
	Store   catalog.Store
	Catalog *catalog.Service
	Ingest  *ingest.Service

	ready   func(ctx context.Context) error
	closers []func()
}

// Wire builds the store for cfg.Store.Driver and everything on top of it.
// Callers must Close the returned App.
func Wire(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	a := &App{ready: func(context.Context) error { return nil }}

	var runs ingest.Repository = ingest.NewLogRepo(logger)

	switch cfg.Store.Driver {
	case config.DriverPostgres:
		pool, err := openPool(ctx, cfg.Store.DSN)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, pool.Close)
		a.ready = pool.Ping
		a.Store = catalog.NewPostgresRepo(pool)
		runs = ingest.NewPostgresRepo(pool)
		logger.Info("store ready", "driver", cfg.Store.Driver, "dsn", RedactDSN(cfg.Store.DSN))
	case config.DriverFirestore:
		client, err := catalog.NewFirestoreClient(ctx, cfg.Store.FirestoreProjectID, cfg.Store.FirestoreCredentials)
		if err != nil {
			return nil, fmt.Errorf("wire firestore store: %w", err)
		}
		a.closers = append(a.closers, func() { _ = client.Close() })
		a.Store = catalog.NewFirestoreRepo(client)
		logger.Info("store ready", "driver", cfg.Store.Driver, "project", cfg.Store.FirestoreProjectID)
	case config.DriverMemory:
		a.Store = catalog.NewMemoryRepo()
		logger.Warn("using in-memory store; nothing will be persisted")
	default:
		return nil, fmt.Errorf("wire store: unknown driver %q", cfg.Store.Driver)
	}

	source := paperdata.NewClient(paperdata.Config{
		TermURL:    cfg.Source.TermURL,
		CatalogURL: cfg.Source.CatalogURL,
		UserAgent:  cfg.Source.UserAgent,
		RPS:        cfg.Source.RPS,
		MaxRetries: cfg.Source.MaxRetries,
		Timeout:    cfg.Source.Timeout,
	})

	a.Catalog = catalog.NewService(a.Store)
	a.Ingest = ingest.NewService(
		ingest.NewResolver(source, a.Store, logger),
		ingest.NewFetcher(source, logger),
		ingest.NewReconciler(a.Store, ingest.ReconcilerConfig{
			ClearConcurrency: cfg.Reconcile.ClearConcurrency,
			Atomic:           cfg.Reconcile.Atomic,
		}, logger),
		runs,
		logger,
	)
	return a, nil
}

// Ready reports whether the backing store is reachable.
func (a *App) Ready(ctx context.Context) error {
	return a.ready(ctx)
}

func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

func openPool(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("create db pool: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database (%s): %w", RedactDSN(dsn), err)
	}
	return pool, nil
}

// RedactDSN hides the credentials part of a connection URL.
func RedactDSN(dsn string) string {
	const marker = "://"
	start := strings.Index(dsn, marker)
	if start < 0 {
		return dsn
	}
	start += len(marker)
	end := strings.Index(dsn[start:], "@")
	if end < 0 {
		return dsn
	}
	return dsn[:start] + "***" + dsn[start+end:]
}
