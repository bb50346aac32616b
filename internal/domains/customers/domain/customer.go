package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyName    = errors.New("customer name is required")
	ErrInvalidEmail = errors.New("customer email is invalid")
)

// Customer is the buyer an order is placed for.
type Customer struct {
	ID        uuid.UUID
	Name      string
	Email     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewCustomer validates and constructs a Customer. The identifier is assigned on persistence.
func NewCustomer(name, email string) (*Customer, error) {
	c := &Customer{
		Name:  strings.TrimSpace(name),
		Email: strings.ToLower(strings.TrimSpace(email)),
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate enforces invariants on the aggregate.
func (c *Customer) Validate() error {
	if c.Name == "" {
		return ErrEmptyName
	}
	at := strings.IndexByte(c.Email, '@')
	if at <= 0 || at == len(c.Email)-1 {
		return ErrInvalidEmail
	}
	return nil
}
