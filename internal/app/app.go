package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"

	"github.com/go-chi/httplog/v2"
	"github.com/vadimbarashkov/shortlinks/internal/adapter/geo"
	"github.com/vadimbarashkov/shortlinks/internal/adapter/storage/file"
	"github.com/vadimbarashkov/shortlinks/internal/adapter/storage/memory"
	"github.com/vadimbarashkov/shortlinks/internal/adapter/storage/postgres"
	"github.com/vadimbarashkov/shortlinks/internal/adapter/storage/redis"
	"github.com/vadimbarashkov/shortlinks/internal/config"
	"github.com/vadimbarashkov/shortlinks/internal/i18n"
	"github.com/vadimbarashkov/shortlinks/internal/logging"
	"github.com/vadimbarashkov/shortlinks/internal/registry"
	"github.com/vadimbarashkov/shortlinks/internal/scheduler"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	delivery "github.com/vadimbarashkov/shortlinks/internal/adapter/delivery/http"
)

type blobStorage interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, data []byte) error
}

// openStorage returns the storage selected by cfg and a function releasing
// its connections.
func openStorage(ctx context.Context, cfg config.Storage) (blobStorage, func() error, error) {
	const op = "app.openStorage"

	noop := func() error { return nil }

	switch cfg.Driver {
	case config.StorageMemory:
		return memory.New(nil), noop, nil
	case config.StorageFile:
		return file.New(cfg.File.Path), noop, nil
	case config.StorageRedis:
		client, err := redis.Connect(ctx, cfg.Redis)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", op, err)
		}
		return redis.New(client, cfg.Key), client.Close, nil
	case config.StoragePostgres:
		if err := postgres.RunMigrations(cfg.Postgres.MigrationsPath, cfg.Postgres.DSN()); err != nil {
			return nil, nil, fmt.Errorf("%s: %w", op, err)
		}

		db, err := postgres.Connect(ctx, cfg.Postgres)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", op, err)
		}
		return postgres.New(db, cfg.Key), db.Close, nil
	default:
		return nil, nil, fmt.Errorf("%s: unknown storage driver %q", op, cfg.Driver)
	}
}

func Run(ctx context.Context, cfg *config.Config) error {
	const op = "app.Run"

	logs := logging.NewBuffer(cfg.Log.BufferSize)

	logger, _, err := logging.New(cfg.Log, logs)
	if err != nil {
		return fmt.Errorf("%s: failed to build logger: %w", op, err)
	}
	defer logger.Sync()

	store, closeStore, err := openStorage(ctx, cfg.Storage)
	if err != nil {
		return fmt.Errorf("%s: failed to open storage: %w", op, err)
	}
	defer closeStore()

	logger.Info("storage opened", zap.String("driver", cfg.Storage.Driver))

	opts := []registry.Option{
		registry.WithLogger(logger.Named("registry")),
		registry.WithLookupTimeout(cfg.Geo.Timeout),
	}
	if cfg.Geo.Enabled {
		opts = append(opts, registry.WithLocator(geo.NewIPAPI(cfg.Geo.URL, cfg.Geo.Timeout)))
	} else {
		opts = append(opts, registry.WithLocator(geo.Disabled{}))
	}

	reg := registry.New(ctx, store, opts...)

	tr, err := i18n.New()
	if err != nil {
		return fmt.Errorf("%s: failed to load translations: %w", op, err)
	}

	httpLogger := httplog.NewLogger("shortlinks", httplog.Options{
		JSON:     cfg.Env != config.EnvDev,
		LogLevel: slog.LevelInfo,
		Concise:  true,
	})

	server := &http.Server{
		Addr:           cfg.HTTPServer.Addr(),
		Handler:        delivery.NewRouter(httpLogger, reg, logs, tr, cfg.BaseURL),
		ReadTimeout:    cfg.HTTPServer.ReadTimeout,
		WriteTimeout:   cfg.HTTPServer.WriteTimeout,
		IdleTimeout:    cfg.HTTPServer.IdleTimeout,
		MaxHeaderBytes: cfg.HTTPServer.MaxHeaderBytes,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	if cfg.Stats.Schedule != "" {
		reporter := scheduler.NewStatsReporter(reg, logger.Named("stats"))
		if err := reporter.Start(cfg.Stats.Schedule); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		defer reporter.Stop(context.Background())
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting server", zap.String("addr", server.Addr), zap.String("env", cfg.Env))

		var err error

		switch cfg.Env {
		case config.EnvProd:
			err = server.ListenAndServeTLS(cfg.HTTPServer.CertFile, cfg.HTTPServer.KeyFile)
		default:
			err = server.ListenAndServe()
		}

		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("%s: server error occurred: %w", op, err)
		}

		return nil
	})

	g.Go(func() error {
		<-ctx.Done()

		logger.Info("shutting down server")

		if err := server.Shutdown(context.Background()); err != nil {
			return fmt.Errorf("%s: failed to shutdown server: %w", op, err)
		}

		return nil
	})

	return g.Wait()
}
