// Package bootstrap assembles the store, report cache and services shared by the server and the CLI.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	portsrepo "github.com/SscSPs/bookkeeping_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bookkeeping_app/internal/core/ports/services"
	"github.com/SscSPs/bookkeeping_app/internal/core/services"
	"github.com/SscSPs/bookkeeping_app/internal/platform/cache"
	"github.com/SscSPs/bookkeeping_app/internal/platform/config"
	"github.com/SscSPs/bookkeeping_app/internal/platform/metrics"
	"github.com/SscSPs/bookkeeping_app/internal/repositories/database/pgsql"
	"github.com/SscSPs/bookkeeping_app/internal/repositories/memory"
	"github.com/SscSPs/bookkeeping_app/pkg/database"
)

// Options selects the optional parts of the runtime.
type Options struct {
	RunMigrations bool             // apply pending migrations before opening the pool (postgres only)
	Metrics       *metrics.Metrics // observes postings and cache lookups when set
}

// Runtime is a ready-to-use set of services and the resources behind them.
type Runtime struct {
	Rules    domain.MappingRules
	Repos    portsrepo.RepositoryProvider
	Services *portssvc.ServiceContainer

	closers []func()
}

// Open builds the runtime described by cfg. Close must be called to release the pool and Redis client.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger, opts Options) (*Runtime, error) {
	rules, err := config.LoadMappingRules(cfg.MappingFile)
	if err != nil {
		return nil, err
	}

	rt := &Runtime{Rules: rules}

	switch cfg.Store {
	case config.StoreMemory:
		store := memory.NewStore()
		if err := seedMemoryStore(ctx, store, cfg.SeedFile, logger); err != nil {
			return nil, err
		}
		rt.Repos = memory.NewRepositoryProvider(store)
		logger.Info("Using in-memory store")
	default:
		if opts.RunMigrations {
			logger.Info("Running database migrations...", slog.String("source", cfg.MigrationsPath))
			if err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, logger); err != nil {
				return nil, err
			}
		}
		pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database pool: %w", err)
		}
		rt.closers = append(rt.closers, func() { database.ClosePgxPool(pool, logger) })
		rt.Repos = pgsql.NewRepositoryProvider(pool)
	}

	containerOpts := services.ContainerOptions{DefaultCurrency: cfg.DefaultCurrency}
	if opts.Metrics != nil {
		containerOpts.Observer = opts.Metrics
	}
	if reportCache := rt.openCache(ctx, cfg, logger, opts.Metrics); reportCache != nil {
		containerOpts.Cache = reportCache
	}

	rt.Services, err = services.NewServiceContainer(rules, rt.Repos, containerOpts)
	if err != nil {
		rt.Close()
		return nil, fmt.Errorf("failed to build services: %w", err)
	}
	return rt, nil
}

// Close releases every resource opened by Open, newest first.
func (rt *Runtime) Close() {
	for i := len(rt.closers) - 1; i >= 0; i-- {
		rt.closers[i]()
	}
	rt.closers = nil
}

// openCache connects to Redis when configured. An unreachable Redis disables the cache instead of failing startup.
func (rt *Runtime) openCache(ctx context.Context, cfg *config.Config, logger *slog.Logger, m *metrics.Metrics) *cache.ReportCache {
	if cfg.RedisAddr == "" {
		return nil
	}
	client, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Warn("Report cache disabled, Redis unreachable",
			slog.String("addr", cfg.RedisAddr),
			slog.String("error", err.Error()))
		return nil
	}
	rt.closers = append(rt.closers, func() {
		if err := client.Close(); err != nil {
			logger.Error("Error closing Redis client", slog.String("error", err.Error()))
		}
	})

	var recorder cache.Recorder
	if m != nil {
		recorder = m
	}
	logger.Info("Report cache enabled", slog.String("addr", cfg.RedisAddr), slog.Duration("ttl", cfg.ReportCacheTTL))
	return cache.NewReportCache(client, cfg.ReportCacheTTL, recorder)
}

func seedMemoryStore(ctx context.Context, store *memory.Store, seedFile string, logger *slog.Logger) error {
	if seedFile == "" {
		return nil
	}
	if _, err := os.Stat(seedFile); errors.Is(err, fs.ErrNotExist) {
		logger.Warn("Seed file not found, starting with empty reference data", slog.String("file", seedFile))
		return nil
	}
	data, err := config.LoadReferenceData(seedFile)
	if err != nil {
		return err
	}
	if err := store.SeedReferenceData(ctx, data); err != nil {
		return fmt.Errorf("failed to seed in-memory store: %w", err)
	}
	logger.Info("Seeded in-memory store", slog.String("file", seedFile), slog.Int("accounts", len(data.Chart)))
	return nil
}
