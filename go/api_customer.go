package commerceserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	customerhttpmapper "github.com/Apurer/go-gin-commerce-api/internal/domains/customers/adapters/http/mapper"
	customersports "github.com/Apurer/go-gin-commerce-api/internal/domains/customers/ports"
	apierrors "github.com/Apurer/go-gin-commerce-api/internal/shared/errors"
)

// CustomerAPI wires HTTP transport with the customers bounded context service.
type CustomerAPI struct {
	service customersports.Service
}

// NewCustomerAPI creates a CustomerAPI backed by the provided service.
func NewCustomerAPI(service customersports.Service) CustomerAPI {
	return CustomerAPI{service: service}
}

// Post /v1/customers
// Register a customer
func (api *CustomerAPI) CreateCustomer(c *gin.Context) {
	if api.service == nil {
		DefaultHandleFunc(c)
		return
	}
	var payload customerhttpmapper.CreateCustomer
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondProblem(c, apierrors.ErrBadRequest.WithDetail(err.Error()))
		return
	}
	customer, err := api.service.CreateCustomer(c.Request.Context(), payload.Name, payload.Email)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, customerhttpmapper.FromDomainCustomer(customer))
}

// Get /v1/customers/:customerId
// Find customer by ID
func (api *CustomerAPI) GetCustomer(c *gin.Context) {
	if api.service == nil {
		DefaultHandleFunc(c)
		return
	}
	id, ok := parseIDParam(c, "customerId")
	if !ok {
		return
	}
	customer, err := api.service.GetCustomer(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, customerhttpmapper.FromDomainCustomer(customer))
}
