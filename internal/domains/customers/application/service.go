package application

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/Apurer/go-gin-commerce-api/internal/domains/customers/domain"
	"github.com/Apurer/go-gin-commerce-api/internal/domains/customers/ports"
)

// Service orchestrates customer use cases.
type Service struct {
	repo ports.Repository
}

func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreateCustomer(ctx context.Context, name, email string) (*domain.Customer, error) {
	customer, err := domain.NewCustomer(name, email)
	if err != nil {
		return nil, mapError(err)
	}
	existing, err := s.repo.FindByEmail(ctx, customer.Email)
	switch {
	case err == nil && existing != nil:
		return nil, ErrEmailInUse
	case err != nil && !errors.Is(err, ports.ErrNotFound):
		return nil, err
	}
	saved, err := s.repo.Create(ctx, customer)
	if errors.Is(err, ports.ErrConflict) {
		return nil, ErrEmailInUse
	}
	return saved, err
}

func (s *Service) GetCustomer(ctx context.Context, id uuid.UUID) (*domain.Customer, error) {
	return s.repo.FindByID(ctx, id)
}

var _ ports.Service = (*Service)(nil)
