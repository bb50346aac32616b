package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Apurer/go-gin-commerce-api/internal/domains/catalog/domain"
	"github.com/Apurer/go-gin-commerce-api/internal/domains/catalog/ports"
	"github.com/Apurer/go-gin-commerce-api/internal/shared/fanout"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory catalog adapter. Iteration order is insertion order.
type Repository struct {
	mu          sync.RWMutex
	products    map[uuid.UUID]*domain.Product
	order       []uuid.UUID
	concurrency int
}

// Option configures the repository.
type Option func(*Repository)

// WithConcurrency bounds the number of stock updates applied in parallel.
func WithConcurrency(n int) Option {
	return func(r *Repository) {
		r.concurrency = n
	}
}

func NewRepository(opts ...Option) *Repository {
	r := &Repository{products: map[uuid.UUID]*domain.Product{}, concurrency: fanout.DefaultLimit}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

func (r *Repository) Create(_ context.Context, product *domain.Product) (*domain.Product, error) {
	if product == nil {
		return nil, errors.New("product is nil")
	}
	clone := *product
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
	if _, ok := r.products[clone.ID]; ok {
		return nil, ports.ErrConflict
	}
	for _, existing := range r.products {
		if existing.Name == clone.Name {
			return nil, ports.ErrConflict
		}
	}
	r.products[clone.ID] = &clone
	r.order = append(r.order, clone.ID)
	out := clone
	return &out, nil
}

func (r *Repository) FindByID(_ context.Context, id uuid.UUID) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	product, ok := r.products[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := *product
	return &clone, nil
}

func (r *Repository) FindByName(_ context.Context, name string) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, id := range r.order {
		if product := r.products[id]; product.Name == name {
			clone := *product
			return &clone, nil
		}
	}
	return nil, ports.ErrNotFound
}

func (r *Repository) FindAllByID(_ context.Context, ids []uuid.UUID) ([]*domain.Product, error) {
	wanted := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.Product, 0, len(wanted))
	for _, id := range r.order {
		if _, ok := wanted[id]; !ok {
			continue
		}
		clone := *r.products[id]
		list = append(list, &clone)
	}
	return list, nil
}

func (r *Repository) UpdatePrice(_ context.Context, id uuid.UUID, price decimal.Decimal) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	product, ok := r.products[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := *product
	if err := clone.ChangePrice(price); err != nil {
		return nil, err
	}
	clone.UpdatedAt = time.Now().UTC()
	r.products[id] = &clone
	out := clone
	return &out, nil
}

func (r *Repository) UpdateQuantity(ctx context.Context, adjustments []domain.StockAdjustment) ([]*domain.Product, error) {
	for _, adj := range adjustments {
		if err := adj.Validate(); err != nil {
			return nil, err
		}
	}
	updated, err := fanout.Map(ctx, r.concurrency, adjustments, r.decrement)
	if err != nil {
		return nil, err
	}
	result := make([]*domain.Product, 0, len(updated))
	for _, product := range updated {
		if product != nil {
			result = append(result, product)
		}
	}
	return result, nil
}

// decrement applies one adjustment. A missing product yields (nil, nil).
func (r *Repository) decrement(_ context.Context, adj domain.StockAdjustment) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	product, ok := r.products[adj.ProductID]
	if !ok {
		return nil, nil
	}
	if !product.HasStock(adj.Quantity) {
		return nil, fmt.Errorf("%w: product %s has %d, requested %d", ports.ErrInsufficientStock, product.ID, product.Quantity, adj.Quantity)
	}
	clone := *product
	clone.Quantity -= adj.Quantity
	clone.UpdatedAt = time.Now().UTC()
	r.products[adj.ProductID] = &clone
	out := clone
	return &out, nil
}
