package posserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	customerhttpmapper "github.com/Apurer/autoparts-pos/internal/domains/customers/adapters/http/mapper"
	customerports "github.com/Apurer/autoparts-pos/internal/domains/customers/ports"
)

// CustomersAPI wires HTTP transport with the customers bounded context.
type CustomersAPI struct {
	service customerports.Service
	opts    Options
}

// NewCustomersAPI creates a CustomersAPI backed by the provided service.
func NewCustomersAPI(service customerports.Service, opts Options) CustomersAPI {
	return CustomersAPI{service: service, opts: opts.withDefaults()}
}

// Get /v1/customers
// Lists registered customers
func (api *CustomersAPI) ListCustomers(c *gin.Context) {
	list, err := api.service.ListCustomers(c.Request.Context())
	if err != nil {
		api.opts.Responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, customerhttpmapper.FromProjections(list))
}

// Post /v1/customers
// Registers a customer
func (api *CustomersAPI) RegisterCustomer(c *gin.Context) {
	var payload customerhttpmapper.NewCustomer
	if err := c.ShouldBindJSON(&payload); err != nil {
		api.opts.Responder.BadRequest(c, err.Error())
		return
	}
	saved, err := api.service.Register(c.Request.Context(), customerhttpmapper.ToRegisterInput(payload))
	if err != nil {
		api.opts.Responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, customerhttpmapper.FromProjection(saved))
}

// Get /v1/customers/:customerId
// Finds a customer by id
func (api *CustomersAPI) GetCustomer(c *gin.Context) {
	id, err := bindIDParam(c, "customerId")
	if err != nil {
		api.opts.Responder.BadRequest(c, err.Error())
		return
	}
	customer, err := api.service.GetCustomer(c.Request.Context(), id)
	if err != nil {
		api.opts.Responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, customerhttpmapper.FromProjection(customer))
}

// Delete /v1/customers/:customerId
// Deletes a customer with no recorded sales
func (api *CustomersAPI) DeleteCustomer(c *gin.Context) {
	id, err := bindIDParam(c, "customerId")
	if err != nil {
		api.opts.Responder.BadRequest(c, err.Error())
		return
	}
	if err := api.service.DeleteCustomer(c.Request.Context(), id); err != nil {
		api.opts.Responder.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
