package customers

import (
	"context"
	"errors"

	"github.com/google/uuid"

	customerports "github.com/Apurer/go-gin-commerce-api/internal/domains/customers/ports"
	orderports "github.com/Apurer/go-gin-commerce-api/internal/domains/orders/ports"
)

var _ orderports.CustomerDirectory = (*Directory)(nil)

// Directory answers customer lookups for the order workflow from the customers repository.
type Directory struct {
	repo customerports.Repository
}

func NewDirectory(repo customerports.Repository) *Directory {
	return &Directory{repo: repo}
}

func (d *Directory) CustomerExists(ctx context.Context, id uuid.UUID) (bool, error) {
	if d == nil || d.repo == nil {
		return false, errors.New("customer directory not configured")
	}
	if id == uuid.Nil {
		return false, nil
	}
	_, err := d.repo.FindByID(ctx, id)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, customerports.ErrNotFound):
		return false, nil
	default:
		return false, err
	}
}
