package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/tinoosan/accounts/internal/config"
	"github.com/tinoosan/accounts/internal/grpcapi"
	"github.com/tinoosan/accounts/internal/httpapi"
	"github.com/tinoosan/accounts/internal/server"
	"github.com/tinoosan/accounts/internal/service/account"
	"github.com/tinoosan/accounts/internal/storage/memory"
	"github.com/tinoosan/accounts/internal/telemetry"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "err", err)
		os.Exit(2)
	}
	flag.StringVar(&cfg.GRPCAddr, "grpc-addr", cfg.GRPCAddr, "gRPC listen address")
	flag.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address (empty disables HTTP)")
	flag.Parse()

	// Logger (slog to stdout). Level via LOG_LEVEL; format via LOG_FORMAT (json|text, default json)
	logger := buildLogger(cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(logger)

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("accountsd exited", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	shutdownTracing, err := telemetry.Setup(ctx, cfg.OTelEndpoint, cfg.ServiceName)
	if err != nil {
		return err
	}
	defer func() {
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(ctxShutdown); err != nil {
			logger.Warn("tracing shutdown error", "err", err)
		}
	}()

	sink, closeSink, err := openSink(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		ctxShutdown, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		closeSink(ctxShutdown)
	}()

	store := memory.New(memory.WithDuplicatePolicy(memory.DuplicatePolicy(cfg.DuplicateIDs)))
	if cfg.DevSeed {
		accs := seedDev(store)
		logDevSeed(logger, accs)
		printDevSeedBanner(os.Stdout, accs)
	}
	svc := account.New(store, store, sink, logger)

	grpcSrv, err := server.New(cfg.GRPCAddr, grpcapi.New(svc), server.Options{
		Workers:              cfg.GRPCWorkers,
		MaxConcurrentStreams: cfg.MaxConcurrentStreams,
		Logger:               logger,
	})
	if err != nil {
		return err
	}

	serveCtx, cancelServe := context.WithCancel(ctx)
	defer cancelServe()
	grpcDone := make(chan error, 1)
	go func() { grpcDone <- grpcSrv.Serve(serveCtx) }()

	errCh := make(chan error, 1)
	var httpSrv *http.Server
	if strings.TrimSpace(cfg.HTTPAddr) != "" {
		httpSrv = &http.Server{
			Addr:              cfg.HTTPAddr,
			Handler:           httpapi.New(svc, sink, logger).Handler(),
			ReadTimeout:       5 * time.Second,
			ReadHeaderTimeout: 5 * time.Second,
			WriteTimeout:      10 * time.Second,
			IdleTimeout:       60 * time.Second,
		}
		go func() {
			logger.Info("accounts HTTP service listening", "addr", httpSrv.Addr)
			if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
		}()
	}

	var runErr error
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case runErr = <-grpcDone:
		if runErr != nil {
			logger.Error("grpc server error", "err", runErr)
		}
		grpcDone = nil
	case runErr = <-errCh:
		logger.Error("http server error", "err", runErr)
	}

	ctxShutdown, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if httpSrv != nil {
		if err := httpSrv.Shutdown(ctxShutdown); err != nil {
			logger.Error("http shutdown error", "err", err)
		}
	}
	if grpcDone != nil {
		grpcSrv.SetServing(false)
		cancelServe()
		select {
		case err := <-grpcDone:
			if err != nil && runErr == nil {
				runErr = err
			}
		case <-ctxShutdown.Done():
			logger.Warn("grpc graceful stop timed out")
			grpcSrv.Close()
		}
	}
	return runErr
}

// parseLogLevel maps env values to slog.Leveler
func parseLogLevel(s string) slog.Leveler {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error", "err":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func buildLogger(level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLogLevel(level)}
	if strings.EqualFold(strings.TrimSpace(format), "text") {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	// default to JSON
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}
