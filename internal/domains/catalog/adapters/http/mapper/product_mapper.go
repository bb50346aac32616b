package mapper

import (
	"time"

	"github.com/shopspring/decimal"

	catalogdomain "github.com/Apurer/go-gin-commerce-api/internal/domains/catalog/domain"
	catalogports "github.com/Apurer/go-gin-commerce-api/internal/domains/catalog/ports"
)

// CreateProduct is the request body accepted by the product create handler.
type CreateProduct struct {
	Name     string          `json:"name" binding:"required"`
	Price    decimal.Decimal `json:"price"`
	Quantity int64           `json:"quantity"`
}

// UpdatePrice is the request body accepted by the price update handler.
type UpdatePrice struct {
	Price decimal.Decimal `json:"price"`
}

// Product represents the transport-layer shape returned by the product handlers.
type Product struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int64           `json:"quantity"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ToCreateInput converts a transport payload into the service input.
func ToCreateInput(payload CreateProduct) catalogports.CreateProductInput {
	return catalogports.CreateProductInput{
		Name:     payload.Name,
		Price:    payload.Price,
		Quantity: payload.Quantity,
	}
}

// FromDomainProduct converts a domain product to the transport representation.
func FromDomainProduct(product *catalogdomain.Product) Product {
	if product == nil {
		return Product{}
	}
	return Product{
		ID:        product.ID.String(),
		Name:      product.Name,
		Price:     product.Price,
		Quantity:  product.Quantity,
		CreatedAt: product.CreatedAt,
		UpdatedAt: product.UpdatedAt,
	}
}
