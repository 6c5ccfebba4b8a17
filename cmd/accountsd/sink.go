package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tinoosan/accounts/internal/config"
	"github.com/tinoosan/accounts/internal/persist"
	pgstore "github.com/tinoosan/accounts/internal/storage/postgres"
	"github.com/tinoosan/accounts/internal/storage/redisstream"
	"github.com/tinoosan/accounts/internal/storage/sqlite"
)

// openSink builds the persistence sink selected by cfg: the backend wrapped in
// retries, and in async mode behind the delivery queue. The returned close
// function drains the queue before releasing the backend.
func openSink(ctx context.Context, cfg config.Config, logger *slog.Logger) (persist.Sink, func(context.Context), error) {
	var (
		backend persist.Sink
		closeFn = func() {}
	)
	switch cfg.PersistBackend {
	case config.BackendNone, "":
		logger.Info("persistence backend: none")
		return persist.Discard{Log: logger}, func(context.Context) {}, nil
	case config.BackendPostgres:
		pg, err := pgstore.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("connect to postgres: %w", err)
		}
		if err := pg.Migrate(ctx); err != nil {
			pg.Close()
			return nil, nil, fmt.Errorf("migrate postgres: %w", err)
		}
		backend, closeFn = pg, pg.Close
	case config.BackendSQLite:
		db, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		backend, closeFn = db, func() { _ = db.Close() }
	case config.BackendRedis:
		pub, err := redisstream.Open(redisstream.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			Stream:   cfg.RedisStream,
			MaxLen:   cfg.RedisStreamMaxLen,
		})
		if err != nil {
			return nil, nil, err
		}
		backend, closeFn = pub, func() { _ = pub.Close() }
	default:
		return nil, nil, fmt.Errorf("unknown persistence backend %q", cfg.PersistBackend)
	}
	logger.Info("persistence backend: "+cfg.PersistBackend, "mode", cfg.PersistMode)

	retrying := persist.NewRetrying(backend, persist.RetryPolicy{
		MaxTries:        cfg.RetryMaxTries,
		InitialInterval: cfg.RetryInitialInterval,
		MaxInterval:     cfg.RetryMaxInterval,
	}, logger)
	if cfg.PersistMode == config.ModeSync {
		return retrying, func(context.Context) { closeFn() }, nil
	}

	q := persist.NewQueue(retrying, persist.QueueOptions{
		Size:           cfg.QueueSize,
		Workers:        cfg.QueueWorkers,
		OpTimeout:      cfg.OpTimeout,
		MaxDeadLetters: cfg.MaxDeadLetters,
	}, logger)
	return q, func(ctx context.Context) {
		if err := q.Close(ctx); err != nil {
			logger.Error("persistence queue did not drain", "err", err, "pending", q.Pending())
		}
		if dl := q.DeadLetters(); len(dl) > 0 {
			logger.Warn("persistence dead letters at shutdown", "count", len(dl))
		}
		closeFn()
	}, nil
}
