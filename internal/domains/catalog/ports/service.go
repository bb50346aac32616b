package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Apurer/go-gin-commerce-api/internal/domains/catalog/domain"
)

// CreateProductInput carries the attributes of a new catalog entry.
type CreateProductInput struct {
	Name     string
	Price    decimal.Decimal
	Quantity int64
}

// Service exposes catalog use cases to adapters.
type Service interface {
	CreateProduct(ctx context.Context, input CreateProductInput) (*domain.Product, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	UpdatePrice(ctx context.Context, id uuid.UUID, price decimal.Decimal) (*domain.Product, error)
}
