package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	salesworkflows "github.com/Apurer/autoparts-pos/internal/domains/sales/adapters/workflows"
	salesports "github.com/Apurer/autoparts-pos/internal/domains/sales/ports"
	platformobservability "github.com/Apurer/autoparts-pos/internal/platform/observability"
	platformtemporal "github.com/Apurer/autoparts-pos/internal/platform/temporal"
)

// ServiceName identifies the API in traces and logs.
const ServiceName = "autoparts-api"

// Run boots the point-of-sale HTTP API with observability, storage and
// checkout wired. It returns when ctx is cancelled and the server drained.
func Run(ctx context.Context) error {
	cfg, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	instruments, shutdown, err := platformobservability.Init(ctx, ServiceName)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	stores, err := OpenStores(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer stores.Close()

	committer, closeCommitter := buildCommitter(cfg, stores, instruments)
	defer closeCommitter()
	services := NewServices(cfg, stores, committer, instruments)

	if cfg.PurgeInterval > 0 {
		go purgeLoop(ctx, stores.Sessions, cfg.PurgeInterval, logger)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           NewRouter(cfg, services, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}
	serveErr := make(chan error, 1)
	go func() {
		logger.Info("AutoParts API listening", slog.String("addr", srv.Addr), slog.String("driver", stores.Driver))
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("AutoParts API server exited", slog.String("addr", srv.Addr), slog.String("error", err.Error()))
			return err
		}
		return nil
	case <-ctx.Done():
	}
	drainCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	logger.Info("AutoParts API shutting down")
	return srv.Shutdown(drainCtx)
}

// buildCommitter prefers durable checkout through Temporal. The worker shares
// the database only under postgres, so other drivers always commit inline.
func buildCommitter(cfg Config, stores *Stores, instruments *platformobservability.Instruments) (salesports.SaleCommitter, func()) {
	logger := instruments.Logger
	inline := InlineCommitter(cfg, stores)
	if cfg.DatabaseDriver != DriverPostgres {
		logger.Info("checkout commits inline", slog.String("driver", cfg.DatabaseDriver))
		return inline, func() {}
	}
	temporalClient, err := platformtemporal.Dial(platformtemporal.Config{
		Address:   cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Disabled:  cfg.TemporalDisabled,
	}, instruments, "temporal-client")
	if err != nil {
		logger.Warn("Temporal workflows unavailable, committing checkout inline", slog.String("error", err.Error()))
		return inline, func() {}
	}
	logger.Info("Temporal checkout enabled", slog.String("namespace", cfg.TemporalNamespace))
	return salesworkflows.NewTemporalCommitter(temporalClient), temporalClient.Close
}

func purgeLoop(ctx context.Context, sessions salesports.SessionStore, every time.Duration, logger *slog.Logger) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			purged, err := sessions.PurgeExpired(ctx, now.UTC())
			if err != nil {
				logger.Warn("cart session purge failed", slog.String("error", err.Error()))
				continue
			}
			if purged > 0 {
				logger.Info("expired cart sessions purged", slog.Int64("count", purged))
			}
		}
	}
}
