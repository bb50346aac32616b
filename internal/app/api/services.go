package api

import (
	"context"
	"log/slog"

	"gorm.io/gorm"

	catalogmemory "github.com/Apurer/go-gin-commerce-api/internal/domains/catalog/adapters/memory"
	catalogobs "github.com/Apurer/go-gin-commerce-api/internal/domains/catalog/adapters/observability"
	catalogpostgres "github.com/Apurer/go-gin-commerce-api/internal/domains/catalog/adapters/persistence/postgres"
	catalogapp "github.com/Apurer/go-gin-commerce-api/internal/domains/catalog/application"
	catalogports "github.com/Apurer/go-gin-commerce-api/internal/domains/catalog/ports"
	customermemory "github.com/Apurer/go-gin-commerce-api/internal/domains/customers/adapters/memory"
	customerobs "github.com/Apurer/go-gin-commerce-api/internal/domains/customers/adapters/observability"
	customerpostgres "github.com/Apurer/go-gin-commerce-api/internal/domains/customers/adapters/persistence/postgres"
	customerapp "github.com/Apurer/go-gin-commerce-api/internal/domains/customers/application"
	customerports "github.com/Apurer/go-gin-commerce-api/internal/domains/customers/ports"
	ordercatalog "github.com/Apurer/go-gin-commerce-api/internal/domains/orders/adapters/external/catalog"
	ordercustomers "github.com/Apurer/go-gin-commerce-api/internal/domains/orders/adapters/external/customers"
	ordersmemory "github.com/Apurer/go-gin-commerce-api/internal/domains/orders/adapters/memory"
	ordersobs "github.com/Apurer/go-gin-commerce-api/internal/domains/orders/adapters/observability"
	orderspostgres "github.com/Apurer/go-gin-commerce-api/internal/domains/orders/adapters/persistence/postgres"
	ordersapp "github.com/Apurer/go-gin-commerce-api/internal/domains/orders/application"
	ordersports "github.com/Apurer/go-gin-commerce-api/internal/domains/orders/ports"
	platformobservability "github.com/Apurer/go-gin-commerce-api/internal/platform/observability"
	platformpostgres "github.com/Apurer/go-gin-commerce-api/internal/platform/postgres"
)

// Storage names the persistence backend the services were built on.
type Storage string

const (
	StorageMemory   Storage = "memory"
	StoragePostgres Storage = "postgres"
)

// Services holds the decorated bounded-context services shared by the API and the worker.
type Services struct {
	Customers customerports.Service
	Catalog   catalogports.Service
	Orders    ordersports.Service
	// Storage is StorageMemory when state lives only in this process.
	Storage Storage
}

type repositories struct {
	storage   Storage
	customers customerports.Repository
	products  catalogports.Repository
	orders    ordersports.Repository
	tx        ordersports.Transactor
}

// BuildServices wires repositories, collaborators, and observability decorators.
// Without a reachable database every context runs on in-memory adapters.
func BuildServices(ctx context.Context, cfg Config, instruments *platformobservability.Instruments) (*Services, func()) {
	logger := effectiveLogger(instruments)
	repos, cleanup := buildRepositories(ctx, cfg, logger)

	customerService := customerobs.New(
		customerapp.NewService(repos.customers),
		customerobs.WithLogger(logger),
		customerobs.WithTracer(instruments.Tracer("internal.customers.application")),
		customerobs.WithMeter(instruments.Meter("internal.customers.application")),
	)
	catalogService := catalogobs.New(
		catalogapp.NewService(repos.products),
		catalogobs.WithLogger(logger),
		catalogobs.WithTracer(instruments.Tracer("internal.catalog.application")),
		catalogobs.WithMeter(instruments.Meter("internal.catalog.application")),
	)
	var orderOpts []ordersapp.Option
	if cfg.OrderTransactions && repos.tx != nil {
		orderOpts = append(orderOpts, ordersapp.WithTransactor(repos.tx))
	} else {
		logger.Warn("order transactions disabled, concurrent orders rely on conditional stock updates only")
	}
	coreOrders := ordersapp.NewService(
		repos.orders,
		ordercustomers.NewDirectory(repos.customers),
		ordercatalog.NewCatalog(repos.products),
		orderOpts...,
	)
	orderService := ordersobs.New(
		coreOrders,
		ordersobs.WithLogger(logger),
		ordersobs.WithTracer(instruments.Tracer("internal.orders.application")),
		ordersobs.WithMeter(instruments.Meter("internal.orders.application")),
	)
	return &Services{Customers: customerService, Catalog: catalogService, Orders: orderService, Storage: repos.storage}, cleanup
}

func buildRepositories(ctx context.Context, cfg Config, logger *slog.Logger) (repositories, func()) {
	if cfg.PostgresDSN == "" {
		logger.Warn("POSTGRES_DSN not set, falling back to in-memory repositories")
		return memoryRepositories(cfg), func() {}
	}
	db, err := platformpostgres.Connect(ctx, cfg.PostgresDSN, platformpostgres.WithPool(platformpostgres.Pool{MaxOpenConns: cfg.PostgresMaxOpenConns}))
	if err != nil {
		logger.Warn("failed to connect to postgres, falling back to memory", slog.String("error", err.Error()))
		return memoryRepositories(cfg), func() {}
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Warn("failed to unwrap postgres connection, falling back to memory", slog.String("error", err.Error()))
		return memoryRepositories(cfg), func() {}
	}
	logger.Info("repositories configured with postgres")
	return postgresRepositories(cfg, db), func() { _ = sqlDB.Close() }
}

func memoryRepositories(cfg Config) repositories {
	return repositories{
		storage:   StorageMemory,
		customers: customermemory.NewRepository(),
		products:  catalogmemory.NewRepository(catalogmemory.WithConcurrency(cfg.StockUpdateConcurrency)),
		orders:    ordersmemory.NewRepository(),
		tx:        ordersmemory.NewLockTransactor(),
	}
}

func postgresRepositories(cfg Config, db *gorm.DB) repositories {
	return repositories{
		storage:   StoragePostgres,
		customers: customerpostgres.NewRepository(db),
		products:  catalogpostgres.NewRepository(db, catalogpostgres.WithConcurrency(cfg.StockUpdateConcurrency)),
		orders:    orderspostgres.NewRepository(db),
		tx:        platformpostgres.NewTransactor(db),
	}
}
