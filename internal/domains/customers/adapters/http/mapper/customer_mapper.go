package mapper

import (
	"time"

	customerdomain "github.com/Apurer/go-gin-commerce-api/internal/domains/customers/domain"
)

// Customer represents the transport-layer shape returned by the customer handlers.
type Customer struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// FromDomainCustomer converts a domain customer to the transport representation.
func FromDomainCustomer(customer *customerdomain.Customer) Customer {
	if customer == nil {
		return Customer{}
	}
	return Customer{
		ID:        customer.ID.String(),
		Name:      customer.Name,
		Email:     customer.Email,
		CreatedAt: customer.CreatedAt,
	}
}

// CreateCustomer is the request body accepted by the customer create handler.
type CreateCustomer struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required"`
}
