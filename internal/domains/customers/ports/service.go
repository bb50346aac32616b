package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/Apurer/go-gin-commerce-api/internal/domains/customers/domain"
)

// Service exposes customer use cases to adapters.
type Service interface {
	CreateCustomer(ctx context.Context, name, email string) (*domain.Customer, error)
	GetCustomer(ctx context.Context, id uuid.UUID) (*domain.Customer, error)
}
