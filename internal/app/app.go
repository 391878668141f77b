package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/you/storeadmin/internal/config"
	httpx "github.com/you/storeadmin/internal/http"
	"github.com/you/storeadmin/internal/observability"
	"github.com/you/storeadmin/internal/services"
)

// Run starts the admin backend and blocks until ctx is cancelled or a
// termination signal arrives, then shuts everything down in order.
func Run(ctx context.Context, cfg *config.Config) error {
	observability.SetupLogger(cfg.LogLevel, cfg.LogFormat)
	gin.SetMode(cfg.GinMode)

	log.Info().
		Str("service", cfg.ServiceName).
		Str("version", cfg.ServiceVersion).
		Str("env", cfg.Env).
		Str("port", cfg.Port).
		Msg("Service starting")

	var tp interface{ Shutdown(context.Context) error }
	if cfg.TracingEnabled {
		provider, err := observability.InitTracing(ctx, cfg.ServiceName, cfg.ServiceVersion, cfg.TracingEndpoint, cfg.TracingSampleRate)
		if err != nil {
			log.Warn().Err(err).Msg("Failed to initialize tracing")
		} else {
			tp = provider
			log.Info().
				Str("endpoint", cfg.TracingEndpoint).
				Float64("sample_rate", cfg.TracingSampleRate).
				Msg("Tracing initialized")
		}
	} else {
		log.Info().Msg("Tracing disabled")
	}

	if cfg.ProfilingEnabled {
		tags := map[string]string{"env": cfg.Env, "version": cfg.ServiceVersion}
		if err := observability.InitProfiling(cfg.ServiceName, cfg.ProfilingEndpoint, tags); err != nil {
			log.Warn().Err(err).Msg("Failed to initialize profiling")
		} else {
			log.Info().Str("endpoint", cfg.ProfilingEndpoint).Msg("Profiling initialized")
			defer observability.StopProfiling()
		}
	} else {
		log.Info().Msg("Profiling disabled")
	}

	container, err := NewContainer(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := container.Close(); err != nil {
			log.Error().Err(err).Msg("Container close error")
		}
	}()

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	if err := container.ProductList.Listen(ctx, container.EventBus); err != nil {
		return fmt.Errorf("subscribe product list: %w", err)
	}
	go services.RunSweeper(ctx, cfg.SessionSweepInterval, container.Sweepers()...)

	var isShuttingDown atomic.Bool
	router := httpx.BuildRouter(httpx.RouterConfig{
		ServiceName:    cfg.ServiceName,
		AllowedOrigins: cfg.AllowedOrigins,
		ShuttingDown:   isShuttingDown.Load,
	}, container.Handlers())

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting store admin backend")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("Shutdown signal received")
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	}

	// Fail readiness first so load balancers stop routing before the listener closes.
	isShuttingDown.Store(true)
	if delay := cfg.ReadinessDrainDelay; delay > 0 {
		log.Info().Dur("delay", delay).Msg("Readiness drain delay started")
		time.Sleep(delay)
		log.Info().Dur("delay", delay).Msg("Readiness drain delay completed")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	log.Info().Dur("timeout", cfg.ShutdownTimeout).Msg("Shutting down server...")

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	} else {
		log.Info().Msg("HTTP server shutdown complete")
	}

	if tp != nil {
		if err := tp.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("Tracer shutdown error")
		} else {
			log.Info().Msg("Tracer shutdown complete")
		}
	}

	log.Info().Msg("Graceful shutdown complete")
	return nil
}
