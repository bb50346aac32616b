package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CustomerDirectory answers whether a customer may place orders.
type CustomerDirectory interface {
	// CustomerExists reports false with a nil error when the customer is unknown.
	CustomerExists(ctx context.Context, id uuid.UUID) (bool, error)
}

// ProductSnapshot is the catalog state an order is validated and priced against.
type ProductSnapshot struct {
	ID       uuid.UUID
	Name     string
	Price    decimal.Decimal
	Quantity int64
}

// StockDecrement removes Quantity units of a product once an order is placed.
type StockDecrement struct {
	ProductID uuid.UUID
	Quantity  int64
}

// ProductCatalog is the part of the catalog the order workflow depends on.
type ProductCatalog interface {
	// FindAllByID returns only the products that exist, in catalog order.
	FindAllByID(ctx context.Context, ids []uuid.UUID) ([]ProductSnapshot, error)
	// UpdateQuantity applies every decrement and waits for all of them, returning the first failure.
	UpdateQuantity(ctx context.Context, decrements []StockDecrement) error
}

// Transactor scopes a unit of work. Implementations that cannot roll back still run fn once.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
