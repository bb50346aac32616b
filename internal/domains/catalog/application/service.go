package application

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Apurer/go-gin-commerce-api/internal/domains/catalog/domain"
	"github.com/Apurer/go-gin-commerce-api/internal/domains/catalog/ports"
)

// Service orchestrates catalog use cases.
type Service struct {
	repo ports.Repository
}

func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreateProduct(ctx context.Context, input ports.CreateProductInput) (*domain.Product, error) {
	product, err := domain.NewProduct(input.Name, input.Price, input.Quantity)
	if err != nil {
		return nil, mapError(err)
	}
	existing, err := s.repo.FindByName(ctx, product.Name)
	switch {
	case err == nil && existing != nil:
		return nil, ErrDuplicateName
	case err != nil && !errors.Is(err, ports.ErrNotFound):
		return nil, err
	}
	saved, err := s.repo.Create(ctx, product)
	if errors.Is(err, ports.ErrConflict) {
		return nil, ErrDuplicateName
	}
	return saved, err
}

func (s *Service) GetProduct(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	return s.repo.FindByID(ctx, id)
}

// UpdatePrice changes the unit price used by orders placed from now on.
func (s *Service) UpdatePrice(ctx context.Context, id uuid.UUID, price decimal.Decimal) (*domain.Product, error) {
	if err := domain.ValidatePrice(price); err != nil {
		return nil, mapError(err)
	}
	return s.repo.UpdatePrice(ctx, id, price)
}

var _ ports.Service = (*Service)(nil)
