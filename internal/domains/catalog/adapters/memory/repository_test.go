package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-gin-commerce-api/internal/domains/catalog/domain"
	"github.com/Apurer/go-gin-commerce-api/internal/domains/catalog/ports"
)

func seedProduct(t *testing.T, repo *Repository, name string, price int64, qty int64) *domain.Product {
	t.Helper()
	product, err := domain.NewProduct(name, decimal.NewFromInt(price), qty)
	require.NoError(t, err)
	saved, err := repo.Create(context.Background(), product)
	require.NoError(t, err)
	return saved
}

func TestFindAllByID_OmitsUnknownIDs(t *testing.T) {
	repo := NewRepository()
	a := seedProduct(t, repo, "A", 1, 1)
	b := seedProduct(t, repo, "B", 2, 2)

	found, err := repo.FindAllByID(context.Background(), []uuid.UUID{a.ID, b.ID, uuid.New()})
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, a.ID, found[0].ID)
	assert.Equal(t, b.ID, found[1].ID)
}

func TestFindAllByID_UsesCatalogOrder(t *testing.T) {
	repo := NewRepository()
	a := seedProduct(t, repo, "A", 1, 1)
	b := seedProduct(t, repo, "B", 2, 2)
	c := seedProduct(t, repo, "C", 3, 3)

	found, err := repo.FindAllByID(context.Background(), []uuid.UUID{c.ID, a.ID, b.ID, a.ID})
	require.NoError(t, err)
	require.Len(t, found, 3)
	assert.Equal(t, []uuid.UUID{a.ID, b.ID, c.ID}, []uuid.UUID{found[0].ID, found[1].ID, found[2].ID})
}

func TestUpdateQuantity_DecrementsAndSkipsUnknown(t *testing.T) {
	repo := NewRepository()
	p1 := seedProduct(t, repo, "P1", 10, 5)
	p2 := seedProduct(t, repo, "P2", 20, 3)

	updated, err := repo.UpdateQuantity(context.Background(), []domain.StockAdjustment{
		{ProductID: p1.ID, Quantity: 2},
		{ProductID: uuid.New(), Quantity: 7},
		{ProductID: p2.ID, Quantity: 1},
	})
	require.NoError(t, err)
	require.Len(t, updated, 2)
	assert.EqualValues(t, 3, updated[0].Quantity)
	assert.EqualValues(t, 2, updated[1].Quantity)

	fetched, err := repo.FindByID(context.Background(), p1.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 3, fetched.Quantity)
}

func TestUpdateQuantity_RefusesToOversell(t *testing.T) {
	repo := NewRepository()
	p := seedProduct(t, repo, "P", 1, 1)

	_, err := repo.UpdateQuantity(context.Background(), []domain.StockAdjustment{{ProductID: p.ID, Quantity: 2}})
	require.ErrorIs(t, err, ports.ErrInsufficientStock)

	fetched, err := repo.FindByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, fetched.Quantity)
}

func TestUpdateQuantity_ConcurrentCallersNeverGoNegative(t *testing.T) {
	repo := NewRepository(WithConcurrency(4))
	p := seedProduct(t, repo, "Hot", 5, 10)

	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0
	for i := 0; i < 25; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := repo.UpdateQuantity(context.Background(), []domain.StockAdjustment{{ProductID: p.ID, Quantity: 1}}); err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	fetched, err := repo.FindByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, succeeded)
	assert.EqualValues(t, 0, fetched.Quantity)
}

func TestUpdateQuantity_RejectsNonPositiveDecrement(t *testing.T) {
	repo := NewRepository()
	p := seedProduct(t, repo, "P", 1, 1)

	_, err := repo.UpdateQuantity(context.Background(), []domain.StockAdjustment{{ProductID: p.ID, Quantity: 0}})
	require.ErrorIs(t, err, domain.ErrInvalidDecrement)
}

func TestCreate_RejectsDuplicateName(t *testing.T) {
	repo := NewRepository()
	seedProduct(t, repo, "Same", 1, 1)

	product, err := domain.NewProduct("Same", decimal.NewFromInt(2), 2)
	require.NoError(t, err)
	_, err = repo.Create(context.Background(), product)
	require.ErrorIs(t, err, ports.ErrConflict)
}
