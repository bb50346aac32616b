package mapper

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	orderstypes "github.com/Apurer/go-gin-commerce-api/internal/domains/orders/application/types"
	ordersdomain "github.com/Apurer/go-gin-commerce-api/internal/domains/orders/domain"
)

// RequestedProduct is one entry of the create-order request body.
type RequestedProduct struct {
	ID       string `json:"id" binding:"required"`
	Quantity int64  `json:"quantity"`
}

// CreateOrder is the request body accepted by the order create handler.
type CreateOrder struct {
	CustomerID string             `json:"customer_id" binding:"required"`
	Products   []RequestedProduct `json:"products"`
}

// Line represents an order line in responses.
type Line struct {
	ProductID string          `json:"product_id"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int64           `json:"quantity"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// Order represents the transport-layer shape returned by the order handlers.
type Order struct {
	ID         string          `json:"id"`
	CustomerID string          `json:"customer_id"`
	Lines      []Line          `json:"lines"`
	Total      decimal.Decimal `json:"total"`
	CreatedAt  time.Time       `json:"created_at"`
}

// ToCreateOrderInput parses identifiers and converts the payload into the workflow command.
func ToCreateOrderInput(payload CreateOrder) (orderstypes.CreateOrderInput, error) {
	customerID, err := uuid.Parse(payload.CustomerID)
	if err != nil {
		return orderstypes.CreateOrderInput{}, fmt.Errorf("customer_id: %w", err)
	}
	input := orderstypes.CreateOrderInput{
		CustomerID: customerID,
		Products:   make([]orderstypes.RequestedProduct, 0, len(payload.Products)),
	}
	for i, p := range payload.Products {
		productID, err := uuid.Parse(p.ID)
		if err != nil {
			return orderstypes.CreateOrderInput{}, fmt.Errorf("products[%d].id: %w", i, err)
		}
		input.Products = append(input.Products, orderstypes.RequestedProduct{ProductID: productID, Quantity: p.Quantity})
	}
	return input, nil
}

// FromDomainOrder converts a domain order to the transport representation.
func FromDomainOrder(order *ordersdomain.Order) Order {
	if order == nil {
		return Order{}
	}
	out := Order{
		ID:         order.ID.String(),
		CustomerID: order.CustomerID.String(),
		Lines:      make([]Line, 0, len(order.Lines)),
		Total:      order.Total(),
		CreatedAt:  order.CreatedAt,
	}
	for _, line := range order.Lines {
		out.Lines = append(out.Lines, Line{
			ProductID: line.ProductID.String(),
			Price:     line.Price,
			Quantity:  line.Quantity,
			Subtotal:  line.Subtotal(),
		})
	}
	return out
}
