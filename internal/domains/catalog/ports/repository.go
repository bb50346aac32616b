package ports

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Apurer/go-gin-commerce-api/internal/domains/catalog/domain"
)

var (
	ErrNotFound = errors.New("product not found")
	// ErrConflict is returned when a unique attribute is already taken.
	ErrConflict = errors.New("product already exists")
	// ErrInsufficientStock is returned by UpdateQuantity when a decrement would drive stock negative.
	ErrInsufficientStock = errors.New("insufficient stock")
)

// Repository persists catalog entries and their stock.
type Repository interface {
	Create(ctx context.Context, product *domain.Product) (*domain.Product, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	FindByName(ctx context.Context, name string) (*domain.Product, error)
	// FindAllByID returns the subset of ids that exist, in catalog order. Unknown ids
	// are omitted rather than reported, so the result may be shorter than ids.
	FindAllByID(ctx context.Context, ids []uuid.UUID) ([]*domain.Product, error)
	UpdatePrice(ctx context.Context, id uuid.UUID, price decimal.Decimal) (*domain.Product, error)
	// UpdateQuantity atomically subtracts each adjustment from current stock and returns
	// the updated products. Ids absent from the catalog are skipped. Adjustments are
	// independent of each other; a failure on one does not undo the others unless
	// the caller runs inside a transaction.
	UpdateQuantity(ctx context.Context, adjustments []domain.StockAdjustment) ([]*domain.Product, error)
}
