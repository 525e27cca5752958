package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/n9te9/go-graphql-rest-gateway/gateway"
)

const Version = "v0.1.0"

const shutdownTimeout = 5 * time.Second

// Run serves the gateway until ctx is cancelled or the process receives
// SIGTERM or an interrupt, then shuts down gracefully.
func Run(ctx context.Context, settings gateway.GatewayOption) error {
	logger, err := gateway.NewLogger(settings.Logging)
	if err != nil {
		return err
	}

	if settings.Opentelemetry.TracingSetting.Enable {
		shutdown, err := gateway.InitTracer(ctx, settings.ServiceName, Version)
		if err != nil {
			return err
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := shutdown(ctx); err != nil {
				logger.Error().Err(err).Msg("failed to shutdown tracer provider")
			}
		}()
	}

	gw, err := gateway.NewGateway(settings, logger)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", settings.Port),
		Handler:           gw,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGTERM, os.Interrupt)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", srv.Addr).Str("endpoint", settings.Endpoint).Msg("gateway started")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-ctx.Done():
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return err
	}
	logger.Info().Msg("gateway stopped")

	return nil
}

// Init writes the default settings to path. An existing file is never
// overwritten.
func Init(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	} else if !errors.Is(err, os.ErrNotExist) {
		return err
	}

	b, err := yaml.Marshal(gateway.DefaultGatewayOption())
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	return nil
}
