package application

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalogmemory "github.com/Apurer/go-gin-commerce-api/internal/domains/catalog/adapters/memory"
	catalogdomain "github.com/Apurer/go-gin-commerce-api/internal/domains/catalog/domain"
	customermemory "github.com/Apurer/go-gin-commerce-api/internal/domains/customers/adapters/memory"
	customerdomain "github.com/Apurer/go-gin-commerce-api/internal/domains/customers/domain"
	ordercatalog "github.com/Apurer/go-gin-commerce-api/internal/domains/orders/adapters/external/catalog"
	ordercustomers "github.com/Apurer/go-gin-commerce-api/internal/domains/orders/adapters/external/customers"
	ordermemory "github.com/Apurer/go-gin-commerce-api/internal/domains/orders/adapters/memory"
	orderstypes "github.com/Apurer/go-gin-commerce-api/internal/domains/orders/application/types"
	"github.com/Apurer/go-gin-commerce-api/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-commerce-api/internal/domains/orders/ports"
)

type fixture struct {
	svc       *Service
	orders    *ordermemory.Repository
	products  *catalogmemory.Repository
	customers *customermemory.Repository
	customer  *customerdomain.Customer
}

func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()
	f := &fixture{
		orders:    ordermemory.NewRepository(),
		products:  catalogmemory.NewRepository(),
		customers: customermemory.NewRepository(),
	}
	customer, err := customerdomain.NewCustomer("Grace", "grace@example.com")
	require.NoError(t, err)
	f.customer, err = f.customers.Create(context.Background(), customer)
	require.NoError(t, err)
	f.svc = NewService(f.orders, ordercustomers.NewDirectory(f.customers), ordercatalog.NewCatalog(f.products), opts...)
	return f
}

func (f *fixture) product(t *testing.T, name string, price int64, qty int64) *catalogdomain.Product {
	t.Helper()
	p, err := catalogdomain.NewProduct(name, decimal.NewFromInt(price), qty)
	require.NoError(t, err)
	saved, err := f.products.Create(context.Background(), p)
	require.NoError(t, err)
	return saved
}

func (f *fixture) quantity(t *testing.T, id uuid.UUID) int64 {
	t.Helper()
	p, err := f.products.FindByID(context.Background(), id)
	require.NoError(t, err)
	return p.Quantity
}

func line(id uuid.UUID, qty int64) orderstypes.RequestedProduct {
	return orderstypes.RequestedProduct{ProductID: id, Quantity: qty}
}

func TestCreateOrder_HappyPath(t *testing.T) {
	f := newFixture(t)
	p1 := f.product(t, "P1", 10, 5)
	p2 := f.product(t, "P2", 20, 3)

	order, err := f.svc.CreateOrder(context.Background(), orderstypes.CreateOrderInput{
		CustomerID: f.customer.ID,
		Products:   []orderstypes.RequestedProduct{line(p1.ID, 2), line(p2.ID, 1)},
	})
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, order.ID)
	assert.Equal(t, f.customer.ID, order.CustomerID)
	require.Len(t, order.Lines, 2)
	assert.Equal(t, p1.ID, order.Lines[0].ProductID)
	assert.True(t, order.Lines[0].Price.Equal(decimal.NewFromInt(10)))
	assert.EqualValues(t, 2, order.Lines[0].Quantity)
	assert.Equal(t, p2.ID, order.Lines[1].ProductID)
	assert.True(t, order.Lines[1].Price.Equal(decimal.NewFromInt(20)))
	assert.EqualValues(t, 1, order.Lines[1].Quantity)
	assert.True(t, order.Total().Equal(decimal.NewFromInt(40)))

	assert.EqualValues(t, 3, f.quantity(t, p1.ID))
	assert.EqualValues(t, 2, f.quantity(t, p2.ID))

	stored, err := f.svc.GetOrder(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.Lines, stored.Lines)
}

func TestCreateOrder_InvalidCustomerHasNoSideEffects(t *testing.T) {
	f := newFixture(t)
	p1 := f.product(t, "P1", 10, 5)

	_, err := f.svc.CreateOrder(context.Background(), orderstypes.CreateOrderInput{
		CustomerID: uuid.New(),
		Products:   []orderstypes.RequestedProduct{line(p1.ID, 1)},
	})
	require.ErrorIs(t, err, domain.ErrInvalidCustomer)
	assert.Zero(t, f.orders.Count())
	assert.EqualValues(t, 5, f.quantity(t, p1.ID))
}

func TestCreateOrder_InvalidProductHasNoSideEffects(t *testing.T) {
	f := newFixture(t)
	p1 := f.product(t, "P1", 10, 5)

	_, err := f.svc.CreateOrder(context.Background(), orderstypes.CreateOrderInput{
		CustomerID: f.customer.ID,
		Products:   []orderstypes.RequestedProduct{line(p1.ID, 1), line(uuid.New(), 1)},
	})
	require.ErrorIs(t, err, domain.ErrInvalidProduct)
	assert.Zero(t, f.orders.Count())
	assert.EqualValues(t, 5, f.quantity(t, p1.ID))
}

func TestCreateOrder_InsufficientStockNamesFirstProductInCatalogOrder(t *testing.T) {
	f := newFixture(t)
	p1 := f.product(t, "P1", 10, 1)
	p2 := f.product(t, "P2", 20, 1)

	_, err := f.svc.CreateOrder(context.Background(), orderstypes.CreateOrderInput{
		CustomerID: f.customer.ID,
		Products:   []orderstypes.RequestedProduct{line(p2.ID, 5), line(p1.ID, 5)},
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	var stockErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, p1.ID, stockErr.ProductID)
	assert.Equal(t, "P1", stockErr.ProductName)
	assert.Contains(t, err.Error(), "P1")

	assert.Zero(t, f.orders.Count())
	assert.EqualValues(t, 1, f.quantity(t, p1.ID))
	assert.EqualValues(t, 1, f.quantity(t, p2.ID))
}

func TestCreateOrder_IsNotIdempotent(t *testing.T) {
	f := newFixture(t)
	p1 := f.product(t, "P1", 10, 5)
	input := orderstypes.CreateOrderInput{CustomerID: f.customer.ID, Products: []orderstypes.RequestedProduct{line(p1.ID, 2)}}

	first, err := f.svc.CreateOrder(context.Background(), input)
	require.NoError(t, err)
	second, err := f.svc.CreateOrder(context.Background(), input)
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, 2, f.orders.Count())
	assert.EqualValues(t, 1, f.quantity(t, p1.ID))
}

func TestCreateOrder_CapturesPriceAtOrderTime(t *testing.T) {
	f := newFixture(t)
	p1 := f.product(t, "P1", 10, 5)

	order, err := f.svc.CreateOrder(context.Background(), orderstypes.CreateOrderInput{
		CustomerID: f.customer.ID,
		Products:   []orderstypes.RequestedProduct{line(p1.ID, 1)},
	})
	require.NoError(t, err)

	_, err = f.products.UpdatePrice(context.Background(), p1.ID, decimal.NewFromInt(99))
	require.NoError(t, err)

	stored, err := f.svc.GetOrder(context.Background(), order.ID)
	require.NoError(t, err)
	assert.True(t, stored.Lines[0].Price.Equal(decimal.NewFromInt(10)))
}

func TestCreateOrder_MergesRepeatedProducts(t *testing.T) {
	f := newFixture(t)
	p1 := f.product(t, "P1", 10, 5)
	p2 := f.product(t, "P2", 20, 5)

	order, err := f.svc.CreateOrder(context.Background(), orderstypes.CreateOrderInput{
		CustomerID: f.customer.ID,
		Products:   []orderstypes.RequestedProduct{line(p2.ID, 1), line(p1.ID, 2), line(p2.ID, 3)},
	})
	require.NoError(t, err)
	require.Len(t, order.Lines, 2)
	assert.Equal(t, p2.ID, order.Lines[0].ProductID)
	assert.EqualValues(t, 4, order.Lines[0].Quantity)
	assert.EqualValues(t, 1, f.quantity(t, p2.ID))
	assert.EqualValues(t, 3, f.quantity(t, p1.ID))
}

func TestCreateOrder_MergedQuantityIsStockChecked(t *testing.T) {
	f := newFixture(t)
	p1 := f.product(t, "P1", 10, 3)

	_, err := f.svc.CreateOrder(context.Background(), orderstypes.CreateOrderInput{
		CustomerID: f.customer.ID,
		Products:   []orderstypes.RequestedProduct{line(p1.ID, 2), line(p1.ID, 2)},
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Zero(t, f.orders.Count())
}

func TestCreateOrder_InvalidInput(t *testing.T) {
	f := newFixture(t)
	p1 := f.product(t, "P1", 10, 3)

	_, err := f.svc.CreateOrder(context.Background(), orderstypes.CreateOrderInput{CustomerID: f.customer.ID})
	require.ErrorIs(t, err, ErrInvalidInput)
	require.ErrorIs(t, err, domain.ErrEmptyOrder)

	_, err = f.svc.CreateOrder(context.Background(), orderstypes.CreateOrderInput{
		CustomerID: f.customer.ID,
		Products:   []orderstypes.RequestedProduct{line(p1.ID, 0)},
	})
	require.ErrorIs(t, err, ErrInvalidInput)
	require.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

type failingCatalog struct {
	ports.ProductCatalog
	err error
}

func (f failingCatalog) UpdateQuantity(context.Context, []ports.StockDecrement) error {
	return f.err
}

func TestCreateOrder_StockUpdateFailureLeavesOrderWithoutTransaction(t *testing.T) {
	f := newFixture(t)
	p1 := f.product(t, "P1", 10, 5)
	boom := errors.New("connection reset")
	svc := NewService(f.orders, ordercustomers.NewDirectory(f.customers), failingCatalog{
		ProductCatalog: ordercatalog.NewCatalog(f.products),
		err:            boom,
	})

	order, err := svc.CreateOrder(context.Background(), orderstypes.CreateOrderInput{
		CustomerID: f.customer.ID,
		Products:   []orderstypes.RequestedProduct{line(p1.ID, 1)},
	})
	require.ErrorIs(t, err, ErrStockUpdate)
	require.ErrorIs(t, err, boom)
	assert.Nil(t, order)
	assert.Equal(t, 1, f.orders.Count())

	var stockErr *StockUpdateError
	require.ErrorAs(t, err, &stockErr)
	stored, err := svc.GetOrder(context.Background(), stockErr.OrderID)
	require.NoError(t, err)
	assert.Equal(t, f.customer.ID, stored.CustomerID)
}

type recordingTransactor struct {
	calls int
	err   error
}

func (r *recordingTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	r.calls++
	if err := fn(ctx); err != nil {
		return err
	}
	return r.err
}

func TestCreateOrder_RunsInsideTransactor(t *testing.T) {
	tx := &recordingTransactor{}
	f := newFixture(t, WithTransactor(tx))
	p1 := f.product(t, "P1", 10, 5)

	_, err := f.svc.CreateOrder(context.Background(), orderstypes.CreateOrderInput{
		CustomerID: f.customer.ID,
		Products:   []orderstypes.RequestedProduct{line(p1.ID, 1)},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, tx.calls)
}

func TestCreateOrder_CommitFailureIsReported(t *testing.T) {
	commitErr := errors.New("commit failed")
	f := newFixture(t, WithTransactor(&recordingTransactor{err: commitErr}))
	p1 := f.product(t, "P1", 10, 5)

	order, err := f.svc.CreateOrder(context.Background(), orderstypes.CreateOrderInput{
		CustomerID: f.customer.ID,
		Products:   []orderstypes.RequestedProduct{line(p1.ID, 1)},
	})
	require.ErrorIs(t, err, commitErr)
	assert.Nil(t, order)
}

func TestCreateOrder_ConcurrentOrdersDoNotOversell(t *testing.T) {
	f := newFixture(t, WithTransactor(ordermemory.NewLockTransactor()))
	p1 := f.product(t, "P1", 10, 3)
	input := orderstypes.CreateOrderInput{CustomerID: f.customer.ID, Products: []orderstypes.RequestedProduct{line(p1.ID, 1)}}

	results := make(chan error, 10)
	for i := 0; i < 10; i++ {
		go func() {
			_, err := f.svc.CreateOrder(context.Background(), input)
			results <- err
		}()
	}
	succeeded := 0
	for i := 0; i < 10; i++ {
		err := <-results
		if err == nil {
			succeeded++
			continue
		}
		require.ErrorIs(t, err, domain.ErrInsufficientStock)
	}
	assert.Equal(t, 3, succeeded)
	assert.Equal(t, 3, f.orders.Count())
	assert.EqualValues(t, 0, f.quantity(t, p1.ID))
}

func TestGetOrder_NotFound(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.GetOrder(context.Background(), uuid.New())
	require.ErrorIs(t, err, ports.ErrNotFound)
}
