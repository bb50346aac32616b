package commerceserver

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	catalogapp "github.com/Apurer/go-gin-commerce-api/internal/domains/catalog/application"
	catalogports "github.com/Apurer/go-gin-commerce-api/internal/domains/catalog/ports"
	customersapp "github.com/Apurer/go-gin-commerce-api/internal/domains/customers/application"
	customersports "github.com/Apurer/go-gin-commerce-api/internal/domains/customers/ports"
	ordersapp "github.com/Apurer/go-gin-commerce-api/internal/domains/orders/application"
	ordersdomain "github.com/Apurer/go-gin-commerce-api/internal/domains/orders/domain"
	ordersports "github.com/Apurer/go-gin-commerce-api/internal/domains/orders/ports"
	apierrors "github.com/Apurer/go-gin-commerce-api/internal/shared/errors"
)

var responder = apierrors.NewChainedResponder("",
	mapNotFound,
	mapInvalidInput,
	mapConflict,
	mapStockUpdate,
	mapInsufficientStock,
)

// respondProblem writes a problem response through the shared responder.
func respondProblem(c *gin.Context, problem apierrors.ProblemDetail) {
	responder.Respond(c, problem)
}

// respondServiceError maps domain and application errors into RFC 7807 responses.
func respondServiceError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	responder.RespondError(c, err)
}

func mapNotFound(err error) (apierrors.ProblemDetail, bool) {
	if errors.Is(err, customersports.ErrNotFound) ||
		errors.Is(err, catalogports.ErrNotFound) ||
		errors.Is(err, ordersports.ErrNotFound) {
		return apierrors.ErrNotFound.WithDetail(err.Error()), true
	}
	return apierrors.ProblemDetail{}, false
}

func mapInvalidInput(err error) (apierrors.ProblemDetail, bool) {
	if errors.Is(err, customersapp.ErrInvalidInput) ||
		errors.Is(err, catalogapp.ErrInvalidInput) ||
		errors.Is(err, ordersapp.ErrInvalidInput) {
		return apierrors.ErrValidation.WithDetail(err.Error()), true
	}
	if errors.Is(err, ordersdomain.ErrInvalidCustomer) || errors.Is(err, ordersdomain.ErrInvalidProduct) {
		return apierrors.ErrBadRequest.WithDetail(err.Error()), true
	}
	return apierrors.ProblemDetail{}, false
}

func mapConflict(err error) (apierrors.ProblemDetail, bool) {
	if errors.Is(err, customersapp.ErrEmailInUse) || errors.Is(err, catalogapp.ErrDuplicateName) {
		return apierrors.ErrConflict.WithDetail(err.Error()), true
	}
	return apierrors.ProblemDetail{}, false
}

// mapStockUpdate reports a stored order whose stock decrement failed.
func mapStockUpdate(err error) (apierrors.ProblemDetail, bool) {
	var updateErr *ordersapp.StockUpdateError
	if errors.As(err, &updateErr) {
		return apierrors.ErrInternal.
			WithDetail(err.Error()).
			WithExtension("orderId", updateErr.OrderID.String()), true
	}
	return apierrors.ProblemDetail{}, false
}

func mapInsufficientStock(err error) (apierrors.ProblemDetail, bool) {
	// A stock update failure after the order was stored is a server-side fault.
	if errors.Is(err, ordersapp.ErrStockUpdate) {
		return apierrors.ProblemDetail{}, false
	}
	var stockErr *ordersdomain.InsufficientStockError
	if errors.As(err, &stockErr) {
		return apierrors.ErrUnprocessable.
			WithDetail(stockErr.Error()).
			WithExtension("productId", stockErr.ProductID.String()).
			WithExtension("productName", stockErr.ProductName), true
	}
	if errors.Is(err, ordersdomain.ErrInsufficientStock) {
		return apierrors.ErrUnprocessable.WithDetail(err.Error()), true
	}
	return apierrors.ProblemDetail{}, false
}

func parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		respondProblem(c, apierrors.ErrBadRequest.WithDetail(name+" must be a UUID"))
		return uuid.Nil, false
	}
	return id, true
}
