package workflows

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	oteltrace "go.opentelemetry.io/otel/trace"
	enumspb "go.temporal.io/api/enums/v1"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/temporal"

	ordersapp "github.com/Apurer/go-gin-commerce-api/internal/domains/orders/application"
	orderstypes "github.com/Apurer/go-gin-commerce-api/internal/domains/orders/application/types"
	ordersdomain "github.com/Apurer/go-gin-commerce-api/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-commerce-api/internal/domains/orders/ports"
	orderactivities "github.com/Apurer/go-gin-commerce-api/internal/durable/temporal/activities/orders"
	orderworkflows "github.com/Apurer/go-gin-commerce-api/internal/durable/temporal/workflows/orders"
)

var (
	_ ports.WorkflowOrchestrator = (*TemporalOrderWorkflows)(nil)
	_ ports.WorkflowOrchestrator = (*InlineOrderWorkflows)(nil)
)

// workflowStarter is the subset of client.Client used to start order workflows.
type workflowStarter interface {
	ExecuteWorkflow(ctx context.Context, options client.StartWorkflowOptions, workflow interface{}, args ...interface{}) (client.WorkflowRun, error)
}

// TemporalOrderWorkflows starts order workflows on a Temporal cluster.
type TemporalOrderWorkflows struct {
	client     workflowStarter
	taskQueue  string
	atMostOnce bool
}

// TemporalOption configures TemporalOrderWorkflows.
type TemporalOption func(*TemporalOrderWorkflows)

// WithAtMostOnce runs the placement activity without retries. Use it when order
// placement is not wrapped in a transaction.
func WithAtMostOnce() TemporalOption {
	return func(o *TemporalOrderWorkflows) {
		o.atMostOnce = true
	}
}

// NewTemporalOrderWorkflows wires a Temporal client into the orchestrator.
func NewTemporalOrderWorkflows(c client.Client, opts ...TemporalOption) *TemporalOrderWorkflows {
	o := &TemporalOrderWorkflows{client: c, taskQueue: orderworkflows.OrderCreationTaskQueue}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}
	return o
}

// CreateOrder starts the Temporal workflow that places an order and waits for its result.
// Every call starts a new execution: order creation has no deduplication key.
func (o *TemporalOrderWorkflows) CreateOrder(ctx context.Context, input orderstypes.CreateOrderInput) (*ordersdomain.Order, error) {
	if o == nil || o.client == nil {
		return nil, errors.New("temporal order workflows not configured")
	}
	traceComponent := workflowTraceComponent(ctx)
	options := client.StartWorkflowOptions{
		ID:                    fmt.Sprintf("order-creation-%s", uuid.NewString()),
		TaskQueue:             o.taskQueue,
		WorkflowIDReusePolicy: enumspb.WORKFLOW_ID_REUSE_POLICY_REJECT_DUPLICATE,
	}
	run, err := o.client.ExecuteWorkflow(
		ctx,
		options,
		orderworkflows.OrderCreationWorkflowName,
		orderworkflows.OrderCreationWorkflowInput{Command: input, TraceID: traceComponent, AtMostOnce: o.atMostOnce},
	)
	if err != nil {
		return nil, err
	}
	var order ordersdomain.Order
	if err := run.Get(ctx, &order); err != nil {
		return nil, fromWorkflowError(err)
	}
	return &order, nil
}

// fromWorkflowError restores the domain errors carried as application error types so
// transports can map them the same way as inline execution.
func fromWorkflowError(err error) error {
	var appErr *temporal.ApplicationError
	if !errors.As(err, &appErr) {
		return err
	}
	switch appErr.Type() {
	case orderactivities.ErrorTypeInvalidCustomer:
		return fmt.Errorf("%w: %s", ordersdomain.ErrInvalidCustomer, appErr.Error())
	case orderactivities.ErrorTypeInvalidProduct:
		return fmt.Errorf("%w: %s", ordersdomain.ErrInvalidProduct, appErr.Error())
	case orderactivities.ErrorTypeInvalidInput:
		return fmt.Errorf("%w: %s", ordersapp.ErrInvalidInput, appErr.Error())
	case orderactivities.ErrorTypeStockUpdate:
		var details orderactivities.StockUpdateDetails
		if appErr.HasDetails() && appErr.Details(&details) == nil {
			if orderID, err := uuid.Parse(details.OrderID); err == nil {
				return &ordersapp.StockUpdateError{OrderID: orderID, Err: errors.New(appErr.Error())}
			}
		}
		return fmt.Errorf("%w: %s", ordersapp.ErrStockUpdate, appErr.Error())
	case orderactivities.ErrorTypeInsufficientStock:
		var details orderactivities.InsufficientStockDetails
		if appErr.HasDetails() && appErr.Details(&details) == nil {
			productID, _ := uuid.Parse(details.ProductID)
			return &ordersdomain.InsufficientStockError{
				ProductID:   productID,
				ProductName: details.ProductName,
				Requested:   details.Requested,
				Available:   details.Available,
			}
		}
		return fmt.Errorf("%w: %s", ordersdomain.ErrInsufficientStock, appErr.Error())
	default:
		return err
	}
}

// InlineOrderWorkflows executes the service directly without Temporal, useful for tests or dev fallbacks.
type InlineOrderWorkflows struct {
	service ports.Service
}

// NewInlineOrderWorkflows wraps the orders service for synchronous execution.
func NewInlineOrderWorkflows(service ports.Service) *InlineOrderWorkflows {
	return &InlineOrderWorkflows{service: service}
}

// CreateOrder delegates to the application service without durable orchestration.
func (o *InlineOrderWorkflows) CreateOrder(ctx context.Context, input orderstypes.CreateOrderInput) (*ordersdomain.Order, error) {
	if o == nil || o.service == nil {
		return nil, errors.New("inline order workflows not configured")
	}
	return o.service.CreateOrder(ctx, input)
}

func workflowTraceComponent(ctx context.Context) string {
	traceComponent := workflowTraceID(ctx)
	if traceComponent != "" {
		return traceComponent
	}
	return fmt.Sprintf("fallback-%d", time.Now().UnixNano())
}

func workflowTraceID(ctx context.Context) string {
	spanCtx := oteltrace.SpanContextFromContext(ctx)
	if !spanCtx.IsValid() || !spanCtx.TraceID().IsValid() {
		return ""
	}
	return spanCtx.TraceID().String()
}
