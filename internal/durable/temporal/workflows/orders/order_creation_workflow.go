package orders

import (
	"go.temporal.io/sdk/workflow"

	orderstypes "github.com/Apurer/go-gin-commerce-api/internal/domains/orders/application/types"
	ordersdomain "github.com/Apurer/go-gin-commerce-api/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-commerce-api/internal/durable/temporal/sequences"
)

const (
	// OrderCreationWorkflowName is the public identifier for registering the workflow.
	OrderCreationWorkflowName = "orders.workflows.Creation"
	// OrderCreationTaskQueue is the queue consumed by the worker processing order workflows.
	OrderCreationTaskQueue = "ORDER_CREATION"
)

// OrderCreationWorkflowInput captures the payload required to place an order.
type OrderCreationWorkflowInput struct {
	Command orderstypes.CreateOrderInput
	TraceID string
	// AtMostOnce disables activity retries; set when placement is not transactional.
	AtMostOnce bool
}

// OrderCreationWorkflow orchestrates the activities needed to place an order.
func OrderCreationWorkflow(ctx workflow.Context, input OrderCreationWorkflowInput) (*ordersdomain.Order, error) {
	logger := workflow.GetLogger(ctx)
	customerID := input.Command.CustomerID.String()
	logger.Info("OrderCreationWorkflow started", withTraceID(input.TraceID, "customerId", customerID)...)
	order, err := sequences.RunOrderPlacementSequence(ctx, input.Command, input.AtMostOnce)
	if err != nil {
		logger.Error("OrderCreationWorkflow failed", withTraceID(input.TraceID, "customerId", customerID, "error", err)...)
		return nil, err
	}
	logger.Info("OrderCreationWorkflow completed", withTraceID(input.TraceID, "orderId", order.ID.String())...)
	return order, nil
}

func withTraceID(traceID string, keyvals ...interface{}) []interface{} {
	if traceID == "" {
		return keyvals
	}
	return append(keyvals, "traceId", traceID)
}
