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

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/kjstillabower/weather-forecast-service/internal/apidoc"
	"github.com/kjstillabower/weather-forecast-service/internal/config"
	"github.com/kjstillabower/weather-forecast-service/internal/forecast"
	httphandler "github.com/kjstillabower/weather-forecast-service/internal/http"
	"github.com/kjstillabower/weather-forecast-service/internal/lifecycle"
	"github.com/kjstillabower/weather-forecast-service/internal/observability"
)

func serveAction(ctx context.Context, cmd *cli.Command) error {
	logger, err := observability.NewLogger(cmd.String("log-level"))
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	cfg, err := loadConfig(cmd)
	if err != nil {
		logger.Error("config", zap.Error(err))
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	return run(ctx, cfg, logger)
}

func loadConfig(cmd *cli.Command) (*config.Config, error) {
	cfg, err := config.LoadFrom(cmd.String("config-dir"), cmd.String("env"))
	if err != nil {
		return nil, err
	}
	if port := cmd.String("port"); port != "" {
		cfg.ServerPort = port
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// run serves until ctx is cancelled, then drains and flushes.
func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	lifecycle.MarkStarted(time.Now())

	source := forecast.NewSource()
	if cfg.ForecastSeed != 0 {
		source = forecast.NewSeededSource(cfg.ForecastSeed)
		logger.Warn("forecast seed set; responses are reproducible", zap.Uint64("seed", cfg.ForecastSeed))
	}
	generator := forecast.NewGenerator(source, logger)

	var docs *apidoc.Registry
	if cfg.DocsEnabled {
		var err error
		docs, err = apidoc.NewRegistry(apidoc.DefaultDocuments...)
		if err != nil {
			return fmt.Errorf("api docs: %w", err)
		}
		docs.Register()
		logger.Info("api documentation enabled", zap.Strings("versions", docs.Keys()))
	}

	healthConfig := &httphandler.HealthConfig{
		OverloadWindow:       cfg.OverloadWindow,
		OverloadThresholdPct: cfg.OverloadThresholdPct,
		Version:              version,
	}
	var limiter *rate.Limiter
	if cfg.RateLimitEnabled {
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst)
		healthConfig.RateLimitRPS = cfg.RateLimitRPS
		healthConfig.RateLimitBurst = cfg.RateLimitBurst
		logger.Info("rate limiter enabled", zap.Int("rps", cfg.RateLimitRPS), zap.Int("burst", cfg.RateLimitBurst))
	}
	observability.RegisterRateLimitGauges(cfg.OverloadWindow)

	handler := httphandler.NewHandler(generator, docs, healthConfig, logger)
	router := httphandler.NewRouter(handler, logger, httphandler.RouterOptions{
		RateLimiter:    limiter,
		RequestTimeout: cfg.RequestTimeout,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           router,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("server starting", zap.String("addr", srv.Addr), zap.String("config", cfg.Source))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("graceful shutdown triggered")
		lifecycle.SetShuttingDown(true)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("server shutdown", zap.Error(err))
		}

		logger.Info("waiting for in-flight requests",
			zap.Int64("count", httphandler.InFlightCount()),
			zap.Int64("peak", httphandler.PeakInFlight()))
		waitCtx, waitCancel := context.WithTimeout(context.Background(), cfg.ShutdownInFlightTimeout)
		defer waitCancel()
		if err := httphandler.WaitForInFlight(waitCtx, cfg.ShutdownInFlightCheckInterval); err != nil {
			logger.Warn("in-flight requests not completed", zap.Error(err), zap.Int64("remaining", httphandler.InFlightCount()))
		}
		return nil
	})

	err := g.Wait()
	logger.Info("shutdown complete")
	if ferr := observability.FlushTelemetry(context.Background(), logger); ferr != nil {
		fmt.Fprintf(os.Stderr, "telemetry flush: %v\n", ferr)
	}
	return err
}
