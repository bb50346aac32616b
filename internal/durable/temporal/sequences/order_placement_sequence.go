package sequences

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	orderstypes "github.com/Apurer/go-gin-commerce-api/internal/domains/orders/application/types"
	ordersdomain "github.com/Apurer/go-gin-commerce-api/internal/domains/orders/domain"
	orderactivities "github.com/Apurer/go-gin-commerce-api/internal/durable/temporal/activities/orders"
)

// PlacementAttempts returns the activity attempt limit. An attempt that commits the order and
// then times out is retried as a fresh placement, so without a transaction around placement
// the activity runs at most once.
func PlacementAttempts(atMostOnce bool) int32 {
	if atMostOnce {
		return 1
	}
	return 5
}

// RunOrderPlacementSequence executes the activities needed to place an order.
func RunOrderPlacementSequence(ctx workflow.Context, input orderstypes.CreateOrderInput, atMostOnce bool) (*ordersdomain.Order, error) {
	logger := workflow.GetLogger(ctx)
	customerID := input.CustomerID.String()
	logger.Info("order placement sequence started", "customerId", customerID)
	options := workflow.ActivityOptions{
		StartToCloseTimeout: time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    2 * time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    10 * time.Second,
			MaximumAttempts:    PlacementAttempts(atMostOnce),
		},
	}
	ctx = workflow.WithActivityOptions(ctx, options)

	var order ordersdomain.Order
	err := workflow.ExecuteActivity(ctx, orderactivities.PlaceOrderActivityName, input).Get(ctx, &order)
	if err != nil {
		logger.Error("order placement sequence failed", "customerId", customerID, "error", err)
		return nil, err
	}
	logger.Info("order placement sequence completed", "orderId", order.ID.String())
	return &order, nil
}
