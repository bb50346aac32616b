package types

import "github.com/google/uuid"

// RequestedProduct is one line of a create-order request.
type RequestedProduct struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int64     `json:"quantity"`
}

// CreateOrderInput is the create-order command. It is also the payload of the
// durable order creation workflow, so it must stay JSON friendly.
type CreateOrderInput struct {
	CustomerID uuid.UUID          `json:"customer_id"`
	Products   []RequestedProduct `json:"products"`
}

// OrderIdentifier addresses a single order.
type OrderIdentifier struct {
	ID uuid.UUID `json:"id"`
}
