package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	orderstypes "github.com/Apurer/go-gin-commerce-api/internal/domains/orders/application/types"
	"github.com/Apurer/go-gin-commerce-api/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-commerce-api/internal/domains/orders/ports"
)

// Service orchestrates order use cases.
type Service struct {
	repo      ports.Repository
	customers ports.CustomerDirectory
	catalog   ports.ProductCatalog
	tx        ports.Transactor
}

// Option configures optional collaborators.
type Option func(*Service)

// WithTransactor runs validation, persistence, and stock decrement as one unit of work.
func WithTransactor(tx ports.Transactor) Option {
	return func(s *Service) {
		if tx != nil {
			s.tx = tx
		}
	}
}

func NewService(repo ports.Repository, customers ports.CustomerDirectory, catalog ports.ProductCatalog, opts ...Option) *Service {
	s := &Service{
		repo:      repo,
		customers: customers,
		catalog:   catalog,
		tx:        NoopTransactor{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// CreateOrder validates the customer and the requested products, stores the order with
// the current unit prices, then decrements stock. Every precondition fails before the
// first write. Calling it twice with the same input places two orders.
func (s *Service) CreateOrder(ctx context.Context, input orderstypes.CreateOrderInput) (*domain.Order, error) {
	requested, err := mergeRequested(input.Products)
	if err != nil {
		return nil, mapError(err)
	}
	var placed *domain.Order
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		order, err := s.placeOrder(ctx, input.CustomerID, requested)
		placed = order
		return err
	})
	if err != nil {
		return nil, err
	}
	return placed, nil
}

func (s *Service) placeOrder(ctx context.Context, customerID uuid.UUID, requested []orderstypes.RequestedProduct) (*domain.Order, error) {
	exists, err := s.customers.CustomerExists(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("look up customer: %w", err)
	}
	if !exists {
		return nil, domain.ErrInvalidCustomer
	}

	ids := make([]uuid.UUID, 0, len(requested))
	wanted := make(map[uuid.UUID]int64, len(requested))
	for _, r := range requested {
		ids = append(ids, r.ProductID)
		wanted[r.ProductID] = r.Quantity
	}
	products, err := s.catalog.FindAllByID(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load products: %w", err)
	}
	byID := make(map[uuid.UUID]ports.ProductSnapshot, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	if len(byID) < len(ids) {
		return nil, domain.ErrInvalidProduct
	}

	// Catalog order decides which shortage is reported.
	for _, p := range products {
		if q := wanted[p.ID]; q > p.Quantity {
			return nil, &domain.InsufficientStockError{
				ProductID:   p.ID,
				ProductName: p.Name,
				Requested:   q,
				Available:   p.Quantity,
			}
		}
	}

	lines := make([]domain.Line, 0, len(requested))
	for _, r := range requested {
		p, ok := byID[r.ProductID]
		if !ok {
			return nil, fmt.Errorf("product %s missing from catalog snapshot", r.ProductID)
		}
		lines = append(lines, domain.Line{ProductID: p.ID, Price: p.Price, Quantity: r.Quantity})
	}
	order, err := domain.NewOrder(customerID, lines)
	if err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Create(ctx, order)
	if err != nil {
		return nil, fmt.Errorf("store order: %w", err)
	}

	decrements := make([]ports.StockDecrement, 0, len(requested))
	for _, r := range requested {
		decrements = append(decrements, ports.StockDecrement{ProductID: r.ProductID, Quantity: r.Quantity})
	}
	if err := s.catalog.UpdateQuantity(ctx, decrements); err != nil {
		return saved, &StockUpdateError{OrderID: saved.ID, Err: err}
	}
	return saved, nil
}

func (s *Service) GetOrder(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	return s.repo.FindByID(ctx, id)
}

// mergeRequested rejects empty requests and non-positive quantities and folds repeated
// product ids into one line, keeping the position of the first occurrence.
func mergeRequested(products []orderstypes.RequestedProduct) ([]orderstypes.RequestedProduct, error) {
	if len(products) == 0 {
		return nil, domain.ErrEmptyOrder
	}
	merged := make([]orderstypes.RequestedProduct, 0, len(products))
	index := make(map[uuid.UUID]int, len(products))
	for _, p := range products {
		if p.Quantity <= 0 {
			return nil, domain.ErrInvalidQuantity
		}
		if p.ProductID == uuid.Nil {
			return nil, domain.ErrInvalidProduct
		}
		if i, ok := index[p.ProductID]; ok {
			merged[i].Quantity += p.Quantity
			continue
		}
		index[p.ProductID] = len(merged)
		merged = append(merged, p)
	}
	return merged, nil
}

// NoopTransactor runs fn without any transactional guarantees.
type NoopTransactor struct{}

func (NoopTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if fn == nil {
		return errors.New("transaction body is nil")
	}
	return fn(ctx)
}

var (
	_ ports.Service    = (*Service)(nil)
	_ ports.Transactor = NoopTransactor{}
)
