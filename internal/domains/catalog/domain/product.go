package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Prices are stored as numeric(12,2).
const PriceScale = 2

var maxPrice = decimal.New(1, 10)

var (
	ErrEmptyName        = errors.New("product name is required")
	ErrNegativePrice    = errors.New("product price must not be negative")
	ErrPricePrecision   = errors.New("product price must have at most two decimal places")
	ErrPriceTooLarge    = errors.New("product price must be below 10000000000")
	ErrNegativeQuantity = errors.New("product quantity must not be negative")
	ErrInvalidProductID = errors.New("product id is required")
	ErrInvalidDecrement = errors.New("stock decrement must be greater than zero")
)

// Product is a catalog entry with its current unit price and available stock.
type Product struct {
	ID        uuid.UUID
	Name      string
	Price     decimal.Decimal
	Quantity  int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewProduct validates and constructs a Product. The identifier is assigned on persistence.
func NewProduct(name string, price decimal.Decimal, quantity int64) (*Product, error) {
	p := &Product{
		Name:     strings.TrimSpace(name),
		Price:    price,
		Quantity: quantity,
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate enforces invariants on the aggregate.
func (p *Product) Validate() error {
	if p.Name == "" {
		return ErrEmptyName
	}
	if err := ValidatePrice(p.Price); err != nil {
		return err
	}
	if p.Quantity < 0 {
		return ErrNegativeQuantity
	}
	return nil
}

// ChangePrice replaces the unit price for future orders.
func (p *Product) ChangePrice(price decimal.Decimal) error {
	if err := ValidatePrice(price); err != nil {
		return err
	}
	p.Price = price
	return nil
}

// ValidatePrice accepts non-negative prices that fit the stored column without rounding.
func ValidatePrice(price decimal.Decimal) error {
	switch {
	case price.IsNegative():
		return ErrNegativePrice
	case !price.Equal(price.Truncate(PriceScale)):
		return ErrPricePrecision
	case price.GreaterThanOrEqual(maxPrice):
		return ErrPriceTooLarge
	}
	return nil
}

// HasStock reports whether quantity units can be taken from the available stock.
func (p *Product) HasStock(quantity int64) bool {
	return quantity <= p.Quantity
}

// StockAdjustment removes Quantity units from the product identified by ProductID.
type StockAdjustment struct {
	ProductID uuid.UUID
	Quantity  int64
}

// Validate enforces invariants on the adjustment.
func (a StockAdjustment) Validate() error {
	if a.ProductID == uuid.Nil {
		return ErrInvalidProductID
	}
	if a.Quantity <= 0 {
		return ErrInvalidDecrement
	}
	return nil
}
