package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	"github.com/Apurer/autoparts-pos/internal/app/api"
	platformobservability "github.com/Apurer/autoparts-pos/internal/platform/observability"
	platformtemporal "github.com/Apurer/autoparts-pos/internal/platform/temporal"
	salesactivities "github.com/Apurer/autoparts-pos/internal/platform/temporal/activities/sales"
	salesworkflows "github.com/Apurer/autoparts-pos/internal/platform/temporal/workflows/sales"
)

func main() {
	_ = godotenv.Load()
	ctx := context.Background()
	const serviceName = "autoparts-worker"

	cfg, err := api.LoadConfig()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		log.Fatalf("failed to initialize observability: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	if cfg.DatabaseDriver != api.DriverPostgres {
		logger.Warn("worker commits to a database the API does not share", slog.String("driver", cfg.DatabaseDriver))
	}
	stores, err := api.OpenStores(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to open stores", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer stores.Close()
	activities := salesactivities.NewActivities(api.InlineCommitter(cfg, stores))

	temporalClient, err := platformtemporal.Dial(platformtemporal.Config{
		Address:   cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
	}, instruments, "temporal-worker")
	if err != nil {
		logger.Error("failed to create Temporal client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer temporalClient.Close()

	w := worker.New(temporalClient, salesworkflows.CheckoutTaskQueue, worker.Options{})
	w.RegisterWorkflowWithOptions(salesworkflows.CheckoutWorkflow, workflow.RegisterOptions{Name: salesworkflows.CheckoutWorkflowName})
	w.RegisterActivityWithOptions(activities.CommitSale, activity.RegisterOptions{Name: salesactivities.CommitSaleActivityName})

	logger.Info("worker listening", slog.String("taskQueue", salesworkflows.CheckoutTaskQueue), slog.String("namespace", cfg.TemporalNamespace))
	if err := w.Run(worker.InterruptCh()); err != nil {
		logger.Error("Temporal worker exited with error", slog.String("error", err.Error()))
		return
	}
	logger.Info("Temporal worker stopped")
}
