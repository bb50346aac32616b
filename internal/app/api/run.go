package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"

	commerceserver "github.com/Apurer/go-gin-commerce-api/go"

	ordersworkflows "github.com/Apurer/go-gin-commerce-api/internal/domains/orders/adapters/workflows"
	ordersports "github.com/Apurer/go-gin-commerce-api/internal/domains/orders/ports"
	platformobservability "github.com/Apurer/go-gin-commerce-api/internal/platform/observability"
)

// Run boots the commerce HTTP API with observability, repositories, and workflows wired.
func Run(ctx context.Context) error {
	cfg, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	instruments, shutdown, err := platformobservability.Init(ctx, cfg.ServiceName)
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

	services, cleanup := BuildServices(ctx, cfg, instruments)
	defer cleanup()

	var temporalOpts []ordersworkflows.TemporalOption
	if !cfg.OrderTransactions {
		temporalOpts = append(temporalOpts, ordersworkflows.WithAtMostOnce())
	}
	orderWorkflows, closeWorkflows := SelectOrderWorkflows(services, func() (client.Client, error) {
		return ConnectTemporalClient(cfg, instruments)
	}, logger, temporalOpts...)
	defer closeWorkflows()

	handlers := commerceserver.ApiHandleFunctions{
		CustomerAPI: commerceserver.NewCustomerAPI(services.Customers),
		ProductAPI:  commerceserver.NewProductAPI(services.Catalog),
		OrderAPI:    commerceserver.NewOrderAPI(services.Orders, orderWorkflows),
	}

	router := commerceserver.NewRouter(handlers)
	router.Use(otelgin.Middleware(cfg.ServiceName))
	addr := cfg.Addr()
	logger.Info("commerce API listening", slog.String("addr", addr))
	if err := router.Run(addr); err != nil {
		logger.Error("commerce API server exited", slog.String("addr", addr), slog.String("error", err.Error()))
		return err
	}
	return nil
}

// SelectOrderWorkflows picks the CreateOrder orchestrator. Temporal activities run in the
// worker process, so durable execution needs the shared postgres store; in-memory services
// always run inline and dial is never called.
func SelectOrderWorkflows(services *Services, dial func() (client.Client, error), logger *slog.Logger, opts ...ordersworkflows.TemporalOption) (ordersports.WorkflowOrchestrator, func()) {
	inline := ordersworkflows.NewInlineOrderWorkflows(services.Orders)
	if logger == nil {
		logger = effectiveLogger(nil)
	}
	if services.Storage != StoragePostgres {
		logger.Info("in-memory storage, running inline CreateOrder")
		return inline, func() {}
	}
	temporalClient, err := dial()
	if err != nil {
		logger.Warn("Temporal workflows unavailable, running inline CreateOrder", slog.String("error", err.Error()))
		return inline, func() {}
	}
	logger.Info("Temporal workflows enabled")
	return ordersworkflows.NewTemporalOrderWorkflows(temporalClient, opts...), temporalClient.Close
}

// ConnectTemporalClient dials Temporal with tracing and slog-backed logging.
func ConnectTemporalClient(cfg Config, instruments *platformobservability.Instruments) (client.Client, error) {
	if cfg.TemporalDisabled {
		return nil, errors.New("temporal disabled via TEMPORAL_DISABLED env")
	}
	tracerOptions := temporalotel.TracerOptions{}
	if instruments != nil {
		tracerOptions.Tracer = instruments.Tracer("temporal-client")
	}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		return nil, err
	}
	options := client.Options{
		HostPort:  cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Logger:    workerlog.NewStructuredLogger(effectiveLogger(instruments)),
	}
	options.Interceptors = append(options.Interceptors, tracingInterceptor)
	return client.Dial(options)
}

func effectiveLogger(instruments *platformobservability.Instruments) *slog.Logger {
	if instruments != nil && instruments.Logger != nil {
		return instruments.Logger
	}
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}
