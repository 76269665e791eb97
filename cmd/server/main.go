// Command server runs the vendorhub API: configuration, logging, the two
// backing stores behind the hybrid router, and the HTTP surface.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	appadmin "github.com/vendorhub/backend/internal/application/admin"
	appcatalog "github.com/vendorhub/backend/internal/application/catalog"
	"github.com/vendorhub/backend/internal/domain/storage"
	"github.com/vendorhub/backend/internal/infrastructure/cache"
	"github.com/vendorhub/backend/internal/infrastructure/config"
	"github.com/vendorhub/backend/internal/infrastructure/logger"
	"github.com/vendorhub/backend/internal/infrastructure/persistence"
	"github.com/vendorhub/backend/internal/infrastructure/persistence/hybrid"
	"github.com/vendorhub/backend/internal/infrastructure/persistence/memstore"
	"github.com/vendorhub/backend/internal/infrastructure/persistence/tenant"
	"github.com/vendorhub/backend/internal/interfaces/http/handler"
	"github.com/vendorhub/backend/internal/interfaces/http/router"
)

const version = "0.3.0"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "server: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = logger.Sync(log) }()

	log.Info("starting server",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("version", version),
		zap.Strings("relational_entities", cfg.Storage.RelationalEntities),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ephemeral := memstore.New()
	if cfg.Storage.SeedSampleData {
		if err := memstore.Seed(ctx, ephemeral); err != nil {
			return fmt.Errorf("seed sample data: %w", err)
		}
		log.Info("seeded sample data for demo tenants")
	}

	// The relational store is only brought up when at least one entity is
	// routed to it.
	var relational storage.Store
	var db *persistence.Database
	if len(cfg.Storage.RelationalEntities) > 0 {
		db, err = persistence.NewDatabase(&cfg.Database, log)
		if err != nil {
			return fmt.Errorf("connect database: %w", err)
		}
		defer func() {
			if err := db.Close(); err != nil {
				log.Warn("failed to close database", zap.Error(err))
			}
		}()
		runner := tenant.NewRunner(db.DB, log, tenant.WithAcquireTimeout(cfg.Database.AcquireTimeout))
		relational = persistence.NewSQLStore(runner)
	}

	store, err := hybrid.New(ephemeral, relational, cfg.Storage.RelationalEntities)
	if err != nil {
		return fmt.Errorf("build storage router: %w", err)
	}

	var refCache cache.Cache
	if cfg.Redis.Enabled {
		redisCache, err := cache.NewRedis(ctx, &cfg.Redis)
		if err != nil {
			return fmt.Errorf("connect redis: %w", err)
		}
		defer func() { _ = redisCache.Close() }()
		refCache = redisCache
		log.Info("using redis reference-data cache")
	} else {
		refCache = cache.NewMemory()
	}

	categorySvc := appcatalog.NewCategoryService(store, refCache)
	adminSvc := appadmin.NewService(store)

	var pinger handler.Pinger
	if db != nil {
		pinger = db
	}
	engine := router.New(cfg, log, router.Handlers{
		Health:   handler.NewHealthHandler(pinger, version),
		Customer: handler.NewCustomerHandler(store),
		Category: handler.NewCategoryHandler(categorySvc),
		Admin:    handler.NewAdminHandler(adminSvc),
	})

	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      engine,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("http server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	log.Info("server stopped")
	return nil
}
