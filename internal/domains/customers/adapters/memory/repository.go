package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Apurer/go-gin-commerce-api/internal/domains/customers/domain"
	"github.com/Apurer/go-gin-commerce-api/internal/domains/customers/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory customer persistence adapter.
type Repository struct {
	mu        sync.RWMutex
	customers map[uuid.UUID]*domain.Customer
}

func NewRepository() *Repository {
	return &Repository{customers: map[uuid.UUID]*domain.Customer{}}
}

func (r *Repository) Create(_ context.Context, customer *domain.Customer) (*domain.Customer, error) {
	if customer == nil {
		return nil, errors.New("customer is nil")
	}
	clone := *customer
	if err := clone.Validate(); err != nil {
		return nil, err
	}
	if clone.ID == uuid.Nil {
		clone.ID = uuid.New()
	}
	now := time.Now().UTC()
	clone.CreatedAt = now
	clone.UpdatedAt = now

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.customers {
		if existing.Email == clone.Email {
			return nil, ports.ErrConflict
		}
	}
	r.customers[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *Repository) FindByID(_ context.Context, id uuid.UUID) (*domain.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	customer, ok := r.customers[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := *customer
	return &clone, nil
}

func (r *Repository) FindByEmail(_ context.Context, email string) (*domain.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, customer := range r.customers {
		if customer.Email == email {
			clone := *customer
			return &clone, nil
		}
	}
	return nil, ports.ErrNotFound
}
