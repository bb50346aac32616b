//go:build integration
// +build integration

package postgres_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	catalogpostgres "github.com/Apurer/go-gin-commerce-api/internal/domains/catalog/adapters/persistence/postgres"
	catalogdomain "github.com/Apurer/go-gin-commerce-api/internal/domains/catalog/domain"
	customerpostgres "github.com/Apurer/go-gin-commerce-api/internal/domains/customers/adapters/persistence/postgres"
	customerdomain "github.com/Apurer/go-gin-commerce-api/internal/domains/customers/domain"
	ordercatalog "github.com/Apurer/go-gin-commerce-api/internal/domains/orders/adapters/external/catalog"
	ordercustomers "github.com/Apurer/go-gin-commerce-api/internal/domains/orders/adapters/external/customers"
	orderspostgres "github.com/Apurer/go-gin-commerce-api/internal/domains/orders/adapters/persistence/postgres"
	ordersapp "github.com/Apurer/go-gin-commerce-api/internal/domains/orders/application"
	orderstypes "github.com/Apurer/go-gin-commerce-api/internal/domains/orders/application/types"
	"github.com/Apurer/go-gin-commerce-api/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-commerce-api/internal/domains/orders/ports"
	platformpostgres "github.com/Apurer/go-gin-commerce-api/internal/platform/postgres"
	"github.com/Apurer/go-gin-commerce-api/internal/platform/postgres/postgrestest"
)

type fixture struct {
	db       *gorm.DB
	orders   *orderspostgres.Repository
	products *catalogpostgres.Repository
	service  *ordersapp.Service
	customer uuid.UUID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := postgrestest.Setup(t)
	customers := customerpostgres.NewRepository(db)
	products := catalogpostgres.NewRepository(db)
	orders := orderspostgres.NewRepository(db)

	customer, err := customerdomain.NewCustomer("Ada", "ada@example.com")
	require.NoError(t, err)
	savedCustomer, err := customers.Create(context.Background(), customer)
	require.NoError(t, err)

	service := ordersapp.NewService(
		orders,
		ordercustomers.NewDirectory(customers),
		ordercatalog.NewCatalog(products),
		ordersapp.WithTransactor(platformpostgres.NewTransactor(db)),
	)
	return &fixture{db: db, orders: orders, products: products, service: service, customer: savedCustomer.ID}
}

func (f *fixture) product(t *testing.T, name string, price, quantity int64) *catalogdomain.Product {
	t.Helper()
	product, err := catalogdomain.NewProduct(name, decimal.NewFromInt(price), quantity)
	require.NoError(t, err)
	saved, err := f.products.Create(context.Background(), product)
	require.NoError(t, err)
	return saved
}

func TestPostgresRepository_CreateAndFindPreservesLineOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p1, p2 := uuid.New(), uuid.New()

	order, err := domain.NewOrder(f.customer, []domain.Line{
		{ProductID: p2, Price: decimal.RequireFromString("20.00"), Quantity: 1},
		{ProductID: p1, Price: decimal.RequireFromString("10.50"), Quantity: 2},
	})
	require.NoError(t, err)
	saved, err := f.orders.Create(ctx, order)
	require.NoError(t, err)

	got, err := f.orders.FindByID(ctx, saved.ID)
	require.NoError(t, err)
	require.Len(t, got.Lines, 2)
	assert.Equal(t, p2, got.Lines[0].ProductID)
	assert.Equal(t, p1, got.Lines[1].ProductID)
	assert.True(t, got.Total().Equal(decimal.RequireFromString("41")))

	_, err = f.orders.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestCreateOrder_CommitsOrderAndStockTogether(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p1 := f.product(t, "P1", 10, 5)
	p2 := f.product(t, "P2", 20, 3)

	order, err := f.service.CreateOrder(ctx, orderstypes.CreateOrderInput{
		CustomerID: f.customer,
		Products: []orderstypes.RequestedProduct{
			{ProductID: p1.ID, Quantity: 2},
			{ProductID: p2.ID, Quantity: 1},
		},
	})
	require.NoError(t, err)
	assert.True(t, order.Total().Equal(decimal.NewFromInt(40)))

	stock, err := f.products.FindByID(ctx, p1.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 3, stock.Quantity)
}

func TestCreateOrder_InsufficientStockLeavesNoTrace(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p1 := f.product(t, "P1", 10, 1)

	_, err := f.service.CreateOrder(ctx, orderstypes.CreateOrderInput{
		CustomerID: f.customer,
		Products:   []orderstypes.RequestedProduct{{ProductID: p1.ID, Quantity: 2}},
	})
	var stockErr *domain.InsufficientStockError
	require.True(t, errors.As(err, &stockErr))
	assert.Equal(t, "P1", stockErr.ProductName)

	var count int64
	require.NoError(t, f.db.Table("orders").Count(&count).Error)
	assert.Zero(t, count)
}

func TestCreateOrder_ConcurrentOrdersNeverOversell(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p1 := f.product(t, "P1", 10, 3)

	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		placed int
	)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.service.CreateOrder(ctx, orderstypes.CreateOrderInput{
				CustomerID: f.customer,
				Products:   []orderstypes.RequestedProduct{{ProductID: p1.ID, Quantity: 1}},
			})
			if err == nil {
				mu.Lock()
				placed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 3, placed)
	stock, err := f.products.FindByID(ctx, p1.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, stock.Quantity)

	var count int64
	require.NoError(t, f.db.Table("orders").Count(&count).Error)
	assert.EqualValues(t, 3, count)
}
