package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidCustomer   = errors.New("make an order using a valid customer")
	ErrInvalidProduct    = errors.New("there are invalid products in your list")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrEmptyOrder        = errors.New("order must contain at least one product")
	ErrInvalidQuantity   = errors.New("quantity must be greater than zero")
	ErrNegativePrice     = errors.New("line price must not be negative")
)

// InsufficientStockError names the first product whose stock cannot cover the request.
type InsufficientStockError struct {
	ProductID   uuid.UUID
	ProductName string
	Requested   int64
	Available   int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("we have less %s than you ordered: requested %d, available %d", e.ProductName, e.Requested, e.Available)
}

// Is lets callers match with errors.Is(err, ErrInsufficientStock).
func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}

// Line is one product in an order with the unit price captured when the order was placed.
type Line struct {
	ProductID uuid.UUID
	Price     decimal.Decimal
	Quantity  int64
}

// Subtotal is the line price times the quantity.
func (l Line) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(l.Quantity))
}

// Order models the purchase aggregate. Lines keep the order they were requested in.
type Order struct {
	ID         uuid.UUID
	CustomerID uuid.UUID
	Lines      []Line
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewOrder validates and constructs an Order. The identifier is assigned on persistence.
func NewOrder(customerID uuid.UUID, lines []Line) (*Order, error) {
	order := &Order{
		CustomerID: customerID,
		Lines:      append([]Line(nil), lines...),
	}
	if err := order.Validate(); err != nil {
		return nil, err
	}
	return order, nil
}

// Validate enforces invariants on the aggregate.
func (o *Order) Validate() error {
	if o.CustomerID == uuid.Nil {
		return ErrInvalidCustomer
	}
	if len(o.Lines) == 0 {
		return ErrEmptyOrder
	}
	for _, line := range o.Lines {
		if line.ProductID == uuid.Nil {
			return ErrInvalidProduct
		}
		if line.Quantity <= 0 {
			return ErrInvalidQuantity
		}
		if line.Price.IsNegative() {
			return ErrNegativePrice
		}
	}
	return nil
}

// Total sums the line subtotals.
func (o *Order) Total() decimal.Decimal {
	total := decimal.Zero
	for _, line := range o.Lines {
		total = total.Add(line.Subtotal())
	}
	return total
}

// Clone returns a deep copy so callers cannot mutate stored lines.
func (o *Order) Clone() *Order {
	if o == nil {
		return nil
	}
	clone := *o
	clone.Lines = append([]Line(nil), o.Lines...)
	return &clone
}
