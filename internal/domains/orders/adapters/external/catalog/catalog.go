package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	catalogdomain "github.com/Apurer/go-gin-commerce-api/internal/domains/catalog/domain"
	catalogports "github.com/Apurer/go-gin-commerce-api/internal/domains/catalog/ports"
	orderdomain "github.com/Apurer/go-gin-commerce-api/internal/domains/orders/domain"
	orderports "github.com/Apurer/go-gin-commerce-api/internal/domains/orders/ports"
)

var _ orderports.ProductCatalog = (*Catalog)(nil)

// Catalog exposes the product repository to the order workflow.
type Catalog struct {
	repo catalogports.Repository
}

func NewCatalog(repo catalogports.Repository) *Catalog {
	return &Catalog{repo: repo}
}

func (c *Catalog) FindAllByID(ctx context.Context, ids []uuid.UUID) ([]orderports.ProductSnapshot, error) {
	if c == nil || c.repo == nil {
		return nil, errors.New("product catalog not configured")
	}
	products, err := c.repo.FindAllByID(ctx, ids)
	if err != nil {
		return nil, err
	}
	snapshots := make([]orderports.ProductSnapshot, 0, len(products))
	for _, p := range products {
		snapshots = append(snapshots, orderports.ProductSnapshot{
			ID:       p.ID,
			Name:     p.Name,
			Price:    p.Price,
			Quantity: p.Quantity,
		})
	}
	return snapshots, nil
}

func (c *Catalog) UpdateQuantity(ctx context.Context, decrements []orderports.StockDecrement) error {
	if c == nil || c.repo == nil {
		return errors.New("product catalog not configured")
	}
	adjustments := make([]catalogdomain.StockAdjustment, 0, len(decrements))
	for _, d := range decrements {
		adjustments = append(adjustments, catalogdomain.StockAdjustment{ProductID: d.ProductID, Quantity: d.Quantity})
	}
	if _, err := c.repo.UpdateQuantity(ctx, adjustments); err != nil {
		if errors.Is(err, catalogports.ErrInsufficientStock) {
			return fmt.Errorf("%w: %w", orderdomain.ErrInsufficientStock, err)
		}
		return err
	}
	return nil
}
