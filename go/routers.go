package commerceserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Route is the information for every URI.
type Route struct {
	// Name is the name of this Route.
	Name string
	// Method is the string for the HTTP method. ex) GET, POST etc..
	Method string
	// Pattern is the pattern of the URI.
	Pattern string
	// HandlerFunc is the handler function of this route.
	HandlerFunc gin.HandlerFunc
}

// NewRouter returns a new router.
func NewRouter(handleFunctions ApiHandleFunctions) *gin.Engine {
	return NewRouterWithGinEngine(gin.Default(), handleFunctions)
}

// NewRouterWithGinEngine adds the API routes to an existing gin engine.
func NewRouterWithGinEngine(router *gin.Engine, handleFunctions ApiHandleFunctions) *gin.Engine {
	for _, route := range getRoutes(handleFunctions) {
		if route.HandlerFunc == nil {
			route.HandlerFunc = DefaultHandleFunc
		}
		switch route.Method {
		case http.MethodGet:
			router.GET(route.Pattern, route.HandlerFunc)
		case http.MethodPost:
			router.POST(route.Pattern, route.HandlerFunc)
		case http.MethodPut:
			router.PUT(route.Pattern, route.HandlerFunc)
		case http.MethodPatch:
			router.PATCH(route.Pattern, route.HandlerFunc)
		case http.MethodDelete:
			router.DELETE(route.Pattern, route.HandlerFunc)
		}
	}
	return router
}

// DefaultHandleFunc is used for routes whose API is not wired.
func DefaultHandleFunc(c *gin.Context) {
	c.String(http.StatusNotImplemented, "501 not implemented")
}

// ApiHandleFunctions groups the handlers of every API.
type ApiHandleFunctions struct {
	// Routes for the CustomerAPI part of the API
	CustomerAPI CustomerAPI
	// Routes for the ProductAPI part of the API
	ProductAPI ProductAPI
	// Routes for the OrderAPI part of the API
	OrderAPI OrderAPI
}

func getRoutes(handleFunctions ApiHandleFunctions) []Route {
	return []Route{
		{
			"CreateCustomer",
			http.MethodPost,
			"/v1/customers",
			handleFunctions.CustomerAPI.CreateCustomer,
		},
		{
			"GetCustomer",
			http.MethodGet,
			"/v1/customers/:customerId",
			handleFunctions.CustomerAPI.GetCustomer,
		},
		{
			"CreateProduct",
			http.MethodPost,
			"/v1/products",
			handleFunctions.ProductAPI.CreateProduct,
		},
		{
			"GetProduct",
			http.MethodGet,
			"/v1/products/:productId",
			handleFunctions.ProductAPI.GetProduct,
		},
		{
			"UpdateProductPrice",
			http.MethodPatch,
			"/v1/products/:productId/price",
			handleFunctions.ProductAPI.UpdatePrice,
		},
		{
			"CreateOrder",
			http.MethodPost,
			"/v1/orders",
			handleFunctions.OrderAPI.CreateOrder,
		},
		{
			"GetOrder",
			http.MethodGet,
			"/v1/orders/:orderId",
			handleFunctions.OrderAPI.GetOrder,
		},
	}
}
