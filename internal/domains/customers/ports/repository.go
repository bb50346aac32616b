package ports

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/Apurer/go-gin-commerce-api/internal/domains/customers/domain"
)

var (
	ErrNotFound = errors.New("customer not found")
	// ErrConflict is returned when a unique attribute is already taken.
	ErrConflict = errors.New("customer already exists")
)

// Repository persists customers.
type Repository interface {
	Create(ctx context.Context, customer *domain.Customer) (*domain.Customer, error)
	// FindByID returns ErrNotFound when no customer has the given id.
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error)
	FindByEmail(ctx context.Context, email string) (*domain.Customer, error)
}
