package commerceserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	cataloghttpmapper "github.com/Apurer/go-gin-commerce-api/internal/domains/catalog/adapters/http/mapper"
	catalogports "github.com/Apurer/go-gin-commerce-api/internal/domains/catalog/ports"
	apierrors "github.com/Apurer/go-gin-commerce-api/internal/shared/errors"
)

// ProductAPI wires HTTP transport with the catalog bounded context service.
type ProductAPI struct {
	service catalogports.Service
}

// NewProductAPI creates a ProductAPI backed by the provided service.
func NewProductAPI(service catalogports.Service) ProductAPI {
	return ProductAPI{service: service}
}

// Post /v1/products
// Add a product to the catalog
func (api *ProductAPI) CreateProduct(c *gin.Context) {
	if api.service == nil {
		DefaultHandleFunc(c)
		return
	}
	var payload cataloghttpmapper.CreateProduct
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondProblem(c, apierrors.ErrBadRequest.WithDetail(err.Error()))
		return
	}
	product, err := api.service.CreateProduct(c.Request.Context(), cataloghttpmapper.ToCreateInput(payload))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, cataloghttpmapper.FromDomainProduct(product))
}

// Get /v1/products/:productId
// Find product by ID
func (api *ProductAPI) GetProduct(c *gin.Context) {
	if api.service == nil {
		DefaultHandleFunc(c)
		return
	}
	id, ok := parseIDParam(c, "productId")
	if !ok {
		return
	}
	product, err := api.service.GetProduct(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, cataloghttpmapper.FromDomainProduct(product))
}

// Patch /v1/products/:productId/price
// Change the unit price of a product
func (api *ProductAPI) UpdatePrice(c *gin.Context) {
	if api.service == nil {
		DefaultHandleFunc(c)
		return
	}
	id, ok := parseIDParam(c, "productId")
	if !ok {
		return
	}
	var payload cataloghttpmapper.UpdatePrice
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondProblem(c, apierrors.ErrBadRequest.WithDetail(err.Error()))
		return
	}
	product, err := api.service.UpdatePrice(c.Request.Context(), id, payload.Price)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, cataloghttpmapper.FromDomainProduct(product))
}
