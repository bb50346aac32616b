package commerceserver

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	orderhttpmapper "github.com/Apurer/go-gin-commerce-api/internal/domains/orders/adapters/http/mapper"
	orderstypes "github.com/Apurer/go-gin-commerce-api/internal/domains/orders/application/types"
	ordersdomain "github.com/Apurer/go-gin-commerce-api/internal/domains/orders/domain"
	ordersports "github.com/Apurer/go-gin-commerce-api/internal/domains/orders/ports"
	apierrors "github.com/Apurer/go-gin-commerce-api/internal/shared/errors"
)

// OrderAPI wires HTTP transport with the orders bounded context service and workflows.
type OrderAPI struct {
	service   ordersports.Service
	workflows ordersports.WorkflowOrchestrator
}

// NewOrderAPI creates an OrderAPI backed by the provided service and orchestrator.
func NewOrderAPI(service ordersports.Service, workflows ordersports.WorkflowOrchestrator) OrderAPI {
	return OrderAPI{service: service, workflows: workflows}
}

// Post /v1/orders
// Place an order for a customer
func (api *OrderAPI) CreateOrder(c *gin.Context) {
	if api.service == nil {
		DefaultHandleFunc(c)
		return
	}
	var payload orderhttpmapper.CreateOrder
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondProblem(c, apierrors.ErrBadRequest.WithDetail(err.Error()))
		return
	}
	input, err := orderhttpmapper.ToCreateOrderInput(payload)
	if err != nil {
		respondProblem(c, apierrors.ErrBadRequest.WithDetail(err.Error()))
		return
	}
	order, err := api.createOrder(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, orderhttpmapper.FromDomainOrder(order))
}

func (api *OrderAPI) createOrder(ctx context.Context, input orderstypes.CreateOrderInput) (*ordersdomain.Order, error) {
	if api.workflows != nil {
		return api.workflows.CreateOrder(ctx, input)
	}
	return api.service.CreateOrder(ctx, input)
}

// Get /v1/orders/:orderId
// Find order by ID
func (api *OrderAPI) GetOrder(c *gin.Context) {
	if api.service == nil {
		DefaultHandleFunc(c)
		return
	}
	id, ok := parseIDParam(c, "orderId")
	if !ok {
		return
	}
	order, err := api.service.GetOrder(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderhttpmapper.FromDomainOrder(order))
}
