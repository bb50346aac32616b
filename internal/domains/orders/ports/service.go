package ports

import (
	"context"

	"github.com/google/uuid"

	orderstypes "github.com/Apurer/go-gin-commerce-api/internal/domains/orders/application/types"
	"github.com/Apurer/go-gin-commerce-api/internal/domains/orders/domain"
)

// Service exposes order use cases to adapters.
type Service interface {
	CreateOrder(ctx context.Context, input orderstypes.CreateOrderInput) (*domain.Order, error)
	GetOrder(ctx context.Context, id uuid.UUID) (*domain.Order, error)
}
