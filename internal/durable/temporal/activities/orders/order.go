package orders

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"

	ordersapp "github.com/Apurer/go-gin-commerce-api/internal/domains/orders/application"
	orderstypes "github.com/Apurer/go-gin-commerce-api/internal/domains/orders/application/types"
	ordersdomain "github.com/Apurer/go-gin-commerce-api/internal/domains/orders/domain"
	ordersports "github.com/Apurer/go-gin-commerce-api/internal/domains/orders/ports"
)

const (
	// PlaceOrderActivityName validates, stores, and reserves stock for one order.
	PlaceOrderActivityName = "orders.activities.PlaceOrder"
)

// Application error types carried across the Temporal boundary.
const (
	ErrorTypeInvalidInput      = "InvalidInput"
	ErrorTypeInvalidCustomer   = "InvalidCustomer"
	ErrorTypeInvalidProduct    = "InvalidProduct"
	ErrorTypeInsufficientStock = "InsufficientStock"
	ErrorTypeStockUpdate       = "StockUpdateFailed"
)

// InsufficientStockDetails is attached to InsufficientStock application errors.
type InsufficientStockDetails struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Requested   int64  `json:"requested"`
	Available   int64  `json:"available"`
}

// StockUpdateDetails is attached to StockUpdateFailed application errors.
type StockUpdateDetails struct {
	OrderID string `json:"order_id"`
}

// Activities groups activities that operate on the orders bounded context.
type Activities struct {
	service ordersports.Service
}

// NewActivities wires the orders service into the Temporal activities bundle.
func NewActivities(service ordersports.Service) *Activities {
	return &Activities{service: service}
}

// PlaceOrder runs the order creation use case. Business rejections are returned as
// non-retryable application errors; anything else is left to the retry policy.
func (a *Activities) PlaceOrder(ctx context.Context, input orderstypes.CreateOrderInput) (*ordersdomain.Order, error) {
	logger := activity.GetLogger(ctx)
	customerID := input.CustomerID.String()
	if a == nil || a.service == nil {
		logger.Error("place order activity not initialized", "customerId", customerID)
		return nil, errors.New("place order activity not initialized")
	}
	logger.Info("PlaceOrder activity started", "customerId", customerID, "lines", len(input.Products))
	order, err := a.service.CreateOrder(ctx, input)
	if err != nil {
		logger.Error("PlaceOrder activity failed", "customerId", customerID, "error", err)
		return nil, toApplicationError(err)
	}
	logger.Info("PlaceOrder activity completed", "orderId", order.ID.String())
	return order, nil
}

func toApplicationError(err error) error {
	var stockErr *ordersdomain.InsufficientStockError
	var updateErr *ordersapp.StockUpdateError
	switch {
	case errors.As(err, &stockErr):
		return temporal.NewNonRetryableApplicationError(err.Error(), ErrorTypeInsufficientStock, err, InsufficientStockDetails{
			ProductID:   stockErr.ProductID.String(),
			ProductName: stockErr.ProductName,
			Requested:   stockErr.Requested,
			Available:   stockErr.Available,
		})
	case errors.As(err, &updateErr):
		// The order row exists; a retry would place a second order.
		return temporal.NewNonRetryableApplicationError(err.Error(), ErrorTypeStockUpdate, err, StockUpdateDetails{OrderID: updateErr.OrderID.String()})
	case errors.Is(err, ordersapp.ErrStockUpdate):
		return temporal.NewNonRetryableApplicationError(err.Error(), ErrorTypeStockUpdate, err)
	case errors.Is(err, ordersdomain.ErrInsufficientStock):
		return temporal.NewNonRetryableApplicationError(err.Error(), ErrorTypeInsufficientStock, err)
	case errors.Is(err, ordersdomain.ErrInvalidCustomer):
		return temporal.NewNonRetryableApplicationError(err.Error(), ErrorTypeInvalidCustomer, err)
	case errors.Is(err, ordersdomain.ErrInvalidProduct):
		return temporal.NewNonRetryableApplicationError(err.Error(), ErrorTypeInvalidProduct, err)
	case errors.Is(err, ordersapp.ErrInvalidInput):
		return temporal.NewNonRetryableApplicationError(err.Error(), ErrorTypeInvalidInput, err)
	default:
		return err
	}
}
