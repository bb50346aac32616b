package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	"github.com/Apurer/go-gin-commerce-api/internal/app/api"
	orderactivities "github.com/Apurer/go-gin-commerce-api/internal/durable/temporal/activities/orders"
	orderworkflows "github.com/Apurer/go-gin-commerce-api/internal/durable/temporal/workflows/orders"
	platformobservability "github.com/Apurer/go-gin-commerce-api/internal/platform/observability"
)

func main() {
	ctx := context.Background()
	cfg, err := api.LoadConfig()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	cfg.ServiceName = "commerce-worker"
	cfg.TemporalDisabled = false
	instruments, shutdown, err := platformobservability.Init(ctx, cfg.ServiceName)
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

	services, cleanup := api.BuildServices(ctx, cfg, instruments)
	defer cleanup()
	if services.Storage != api.StoragePostgres {
		logger.Error("worker requires POSTGRES_DSN: activities cannot see state held in the API process")
		os.Exit(1)
	}
	orderActivities := orderactivities.NewActivities(services.Orders)

	temporalClient, err := api.ConnectTemporalClient(cfg, instruments)
	if err != nil {
		logger.Error("failed to create Temporal client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer temporalClient.Close()

	w := worker.New(temporalClient, orderworkflows.OrderCreationTaskQueue, worker.Options{})
	w.RegisterWorkflowWithOptions(orderworkflows.OrderCreationWorkflow, workflow.RegisterOptions{Name: orderworkflows.OrderCreationWorkflowName})
	w.RegisterActivityWithOptions(orderActivities.PlaceOrder, activity.RegisterOptions{Name: orderactivities.PlaceOrderActivityName})

	logger.Info("worker listening", slog.String("taskQueue", orderworkflows.OrderCreationTaskQueue), slog.String("namespace", cfg.TemporalNamespace))
	if err := w.Run(worker.InterruptCh()); err != nil {
		logger.Error("Temporal worker exited with error", slog.String("error", err.Error()))
		return
	}
	logger.Info("Temporal worker stopped")
}
