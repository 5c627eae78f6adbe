package posserver

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

// NewRouterWithGinEngine adds routes to an existing gin engine.
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

// DefaultHandleFunc answers routes that have no handler wired.
func DefaultHandleFunc(c *gin.Context) {
	c.String(http.StatusNotImplemented, "501 not implemented")
}

// ApiHandleFunctions groups the handlers of every API section.
type ApiHandleFunctions struct {
	// Routes for the parts catalog
	PartsAPI PartsAPI
	// Routes for customer records
	CustomersAPI CustomersAPI
	// Routes for checkout sessions
	SessionsAPI SessionsAPI
	// Routes for sales reports
	ReportsAPI ReportsAPI
}

func getRoutes(handleFunctions ApiHandleFunctions) []Route {
	return []Route{
		{"ListParts", http.MethodGet, "/v1/parts", handleFunctions.PartsAPI.ListParts},
		{"AddPart", http.MethodPost, "/v1/parts", handleFunctions.PartsAPI.AddPart},
		{"LowStockParts", http.MethodGet, "/v1/parts/low-stock", handleFunctions.PartsAPI.LowStock},
		{"GetPart", http.MethodGet, "/v1/parts/:partId", handleFunctions.PartsAPI.GetPart},
		{"RestockPart", http.MethodPost, "/v1/parts/:partId/restock", handleFunctions.PartsAPI.Restock},
		{"UpdatePartPrices", http.MethodPut, "/v1/parts/:partId/prices", handleFunctions.PartsAPI.UpdatePrices},

		{"ListCustomers", http.MethodGet, "/v1/customers", handleFunctions.CustomersAPI.ListCustomers},
		{"RegisterCustomer", http.MethodPost, "/v1/customers", handleFunctions.CustomersAPI.RegisterCustomer},
		{"GetCustomer", http.MethodGet, "/v1/customers/:customerId", handleFunctions.CustomersAPI.GetCustomer},
		{"DeleteCustomer", http.MethodDelete, "/v1/customers/:customerId", handleFunctions.CustomersAPI.DeleteCustomer},

		{"StartSession", http.MethodPost, "/v1/sessions", handleFunctions.SessionsAPI.StartSession},
		{"GetSession", http.MethodGet, "/v1/sessions/:sessionId", handleFunctions.SessionsAPI.GetSession},
		{"AddCartLine", http.MethodPost, "/v1/sessions/:sessionId/lines", handleFunctions.SessionsAPI.AddLine},
		{"ClearCart", http.MethodDelete, "/v1/sessions/:sessionId/lines", handleFunctions.SessionsAPI.ClearCart},
		{"ExportCart", http.MethodGet, "/v1/sessions/:sessionId/cart.csv", handleFunctions.SessionsAPI.ExportCart},
		{"Checkout", http.MethodPost, "/v1/sessions/:sessionId/checkout", handleFunctions.SessionsAPI.Checkout},
		{"ReceiptPDF", http.MethodGet, "/v1/sessions/:sessionId/receipt.pdf", handleFunctions.SessionsAPI.ReceiptPDF},
		{"ReceiptCSV", http.MethodGet, "/v1/sessions/:sessionId/receipt.csv", handleFunctions.SessionsAPI.ReceiptCSV},

		{"ProfitReport", http.MethodGet, "/v1/reports/profit", handleFunctions.ReportsAPI.ProfitReport},
		{"ProfitReportCSV", http.MethodGet, "/v1/reports/profit.csv", handleFunctions.ReportsAPI.ProfitReportCSV},
	}
}
