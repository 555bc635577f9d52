// ABOUTME: Wires configuration into the curation core's dependency graph
// ABOUTME: Builds caches, session, backend client, controller and synchronizer

package main

import (
	"context"
	"fmt"
	"time"

	"github.com/jbpiacentino/lumen-digest/core/backend"
	"github.com/jbpiacentino/lumen-digest/core/collection"
	"github.com/jbpiacentino/lumen-digest/core/domain"
	"github.com/jbpiacentino/lumen-digest/core/interfaces"
	"github.com/jbpiacentino/lumen-digest/core/review"
	"github.com/jbpiacentino/lumen-digest/core/session"
	"github.com/jbpiacentino/lumen-digest/core/viewstate"
	"github.com/jbpiacentino/lumen-digest/infrastructure/cache/memory"
	rediscache "github.com/jbpiacentino/lumen-digest/infrastructure/cache/redis"
	sqlitecache "github.com/jbpiacentino/lumen-digest/infrastructure/cache/sqlite"
	stdhttp "github.com/jbpiacentino/lumen-digest/infrastructure/http/standard"
	logrusadapter "github.com/jbpiacentino/lumen-digest/infrastructure/logger/logrus"
	"github.com/jbpiacentino/lumen-digest/pkg/config"
)

// app bundles the wired curation core for the CLI commands
type app struct {
	cfg        *config.Config
	deps       interfaces.Dependencies
	session    *session.Manager
	client     *backend.Client
	controller *collection.Controller
	reviews    *review.Synchronizer
	persist    *viewstate.Persistence
	notifier   *printNotifier
	closers    []func() error
}

// buildApp constructs the full dependency graph from configuration
func buildApp(cfg *config.Config) (*app, error) {
	logger := logrusadapter.NewLogger(cfg.LogLevel)

	var cache interfaces.Cache
	switch cfg.Cache.Type {
	case "redis":
		redisCache, err := rediscache.NewRedisCache(cfg.Cache.Redis)
		if err != nil {
			logger.Error("Failed to create Redis cache, falling back to memory", map[string]interface{}{
				"error": err.Error(),
			})
			cache = memory.NewMemoryCache()
		} else {
			cache = redisCache
		}
	default:
		cache = memory.NewMemoryCache()
	}

	a := &app{cfg: cfg, notifier: &printNotifier{}}

	var store interfaces.Cache
	if cfg.Store.Path != "" {
		sqliteStore, err := sqlitecache.NewSQLiteCache(cfg.Store.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to open durable store: %w", err)
		}
		store = sqliteStore
		a.closers = append(a.closers, sqliteStore.Close)
	}

	a.session = session.NewManager(store, a.notifier)
	a.session.Load(context.Background())

	httpClient := stdhttp.NewStandardHTTPClient(
		time.Duration(cfg.Backend.TimeoutSeconds)*time.Second,
		a.session.Token,
		cfg.Backend.RateLimit,
	)

	a.deps = interfaces.Dependencies{
		Cache:      cache,
		Store:      store,
		HTTPClient: httpClient,
		Logger:     logger,
	}

	a.client = backend.NewClient(a.deps, cfg.Backend.URL)
	a.controller = collection.NewController(a.deps, a.client, a.notifier)
	a.reviews = review.NewSynchronizer(a.deps, a.client, a.controller, review.NewDebugCache(cache), a.notifier)
	a.persist = viewstate.NewPersistence(store, logger)

	// Restore the persisted view and keep it persisted on every change.
	// The hook writes a filter copy, so it cannot deadlock the controller.
	a.controller.RestoreFilter(a.persist.Load(context.Background()))
	a.controller.SetOnChange(func(f domain.FilterState) {
		if err := a.persist.Save(context.Background(), f); err != nil {
			logger.Warn("failed to persist view state", map[string]interface{}{"error": err.Error()})
		}
	})

	return a, nil
}

// close releases held resources
func (a *app) close() {
	for _, fn := range a.closers {
		_ = fn()
	}
}
