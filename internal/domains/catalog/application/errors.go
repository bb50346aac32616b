package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/go-gin-commerce-api/internal/domains/catalog/domain"
)

var (
	// ErrInvalidInput signals the request violated a domain invariant.
	ErrInvalidInput = errors.New("invalid product input")
	// ErrDuplicateName is returned when a product with the same name exists.
	ErrDuplicateName = errors.New("product name already in use")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrEmptyName) ||
		errors.Is(err, domain.ErrNegativePrice) ||
		errors.Is(err, domain.ErrPricePrecision) ||
		errors.Is(err, domain.ErrPriceTooLarge) ||
		errors.Is(err, domain.ErrNegativeQuantity) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
