package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/go-gin-commerce-api/internal/domains/customers/domain"
)

var (
	// ErrInvalidInput signals the request violated a domain invariant.
	ErrInvalidInput = errors.New("invalid customer input")
	// ErrEmailInUse is returned when another customer already owns the email.
	ErrEmailInUse = errors.New("email already in use")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrEmptyName) || errors.Is(err, domain.ErrInvalidEmail) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
