package application

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/Apurer/go-gin-commerce-api/internal/domains/orders/domain"
)

var (
	// ErrInvalidInput signals the request violated a domain invariant.
	ErrInvalidInput = errors.New("invalid order input")
	// ErrStockUpdate is returned when the order was stored but decrementing stock failed.
	// Without a transaction the order stands and some products may already be decremented.
	ErrStockUpdate = errors.New("order placed but stock update failed")
)

// StockUpdateError carries the id of the stored order whose stock decrement failed.
type StockUpdateError struct {
	OrderID uuid.UUID
	Err     error
}

func (e *StockUpdateError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: order %s", ErrStockUpdate, e.OrderID)
	}
	return fmt.Sprintf("%s: order %s: %s", ErrStockUpdate, e.OrderID, e.Err)
}

func (e *StockUpdateError) Unwrap() error { return e.Err }

// Is lets callers match with errors.Is(err, ErrStockUpdate).
func (e *StockUpdateError) Is(target error) bool {
	return target == ErrStockUpdate
}

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrEmptyOrder) ||
		errors.Is(err, domain.ErrInvalidQuantity) ||
		errors.Is(err, domain.ErrNegativePrice) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
