package ports

import (
	"context"

	orderstypes "github.com/Apurer/go-gin-commerce-api/internal/domains/orders/application/types"
	"github.com/Apurer/go-gin-commerce-api/internal/domains/orders/domain"
)

// WorkflowOrchestrator exposes durable workflow operations required by the orders bounded context.
type WorkflowOrchestrator interface {
	CreateOrder(ctx context.Context, input orderstypes.CreateOrderInput) (*domain.Order, error)
}
