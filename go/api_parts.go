package posserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	parthttpmapper "github.com/Apurer/autoparts-pos/internal/domains/catalog/adapters/http/mapper"
	catalogports "github.com/Apurer/autoparts-pos/internal/domains/catalog/ports"
)

// PartsAPI wires HTTP transport with the catalog bounded context.
type PartsAPI struct {
	service catalogports.Service
	opts    Options
}

// NewPartsAPI creates a PartsAPI backed by the provided service.
func NewPartsAPI(service catalogports.Service, opts Options) PartsAPI {
	return PartsAPI{service: service, opts: opts.withDefaults()}
}

// Get /v1/parts
// Lists parts, optionally filtered by a name or model search
func (api *PartsAPI) ListParts(c *gin.Context) {
	lowStock, err := bindOptionalBool(c, "lowStock")
	if err != nil {
		api.opts.Responder.BadRequest(c, err.Error())
		return
	}
	filter := catalogports.ListFilter{Search: c.Query("search")}
	if lowStock {
		filter.StockBelow = api.opts.LowStockThreshold
	}
	parts, err := api.service.ListParts(c.Request.Context(), filter)
	if err != nil {
		api.opts.Responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, parthttpmapper.FromDomainParts(parts, api.opts.Formatter, api.opts.LowStockThreshold))
}

// Post /v1/parts
// Adds a part to the catalog
func (api *PartsAPI) AddPart(c *gin.Context) {
	var payload parthttpmapper.NewPart
	if err := c.ShouldBindJSON(&payload); err != nil {
		api.opts.Responder.BadRequest(c, err.Error())
		return
	}
	part, err := api.service.AddPart(c.Request.Context(), parthttpmapper.ToAddPartInput(payload))
	if err != nil {
		api.opts.Responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, parthttpmapper.FromDomainPart(part, api.opts.Formatter, api.opts.LowStockThreshold))
}

// Get /v1/parts/low-stock
// Lists parts whose stock is below the threshold
func (api *PartsAPI) LowStock(c *gin.Context) {
	threshold, err := bindOptionalInt(c, "threshold")
	if err != nil {
		api.opts.Responder.BadRequest(c, err.Error())
		return
	}
	limit := api.opts.LowStockThreshold
	if threshold != nil {
		limit = *threshold
	}
	parts, err := api.service.LowStock(c.Request.Context(), limit)
	if err != nil {
		api.opts.Responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, parthttpmapper.FromDomainParts(parts, api.opts.Formatter, limit))
}

// Get /v1/parts/:partId
// Finds a part by id
func (api *PartsAPI) GetPart(c *gin.Context) {
	id, err := bindIDParam(c, "partId")
	if err != nil {
		api.opts.Responder.BadRequest(c, err.Error())
		return
	}
	part, err := api.service.GetPart(c.Request.Context(), id)
	if err != nil {
		api.opts.Responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, parthttpmapper.FromDomainPart(part, api.opts.Formatter, api.opts.LowStockThreshold))
}

// Post /v1/parts/:partId/restock
// Adds received units to a part's stock
func (api *PartsAPI) Restock(c *gin.Context) {
	id, err := bindIDParam(c, "partId")
	if err != nil {
		api.opts.Responder.BadRequest(c, err.Error())
		return
	}
	var payload parthttpmapper.Restock
	if err := c.ShouldBindJSON(&payload); err != nil {
		api.opts.Responder.BadRequest(c, err.Error())
		return
	}
	part, err := api.service.Restock(c.Request.Context(), id, payload.Quantity)
	if err != nil {
		api.opts.Responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, parthttpmapper.FromDomainPart(part, api.opts.Formatter, api.opts.LowStockThreshold))
}

// Put /v1/parts/:partId/prices
// Changes selling and cost price. Existing carts keep their snapshot.
func (api *PartsAPI) UpdatePrices(c *gin.Context) {
	id, err := bindIDParam(c, "partId")
	if err != nil {
		api.opts.Responder.BadRequest(c, err.Error())
		return
	}
	var payload parthttpmapper.Prices
	if err := c.ShouldBindJSON(&payload); err != nil {
		api.opts.Responder.BadRequest(c, err.Error())
		return
	}
	part, err := api.service.UpdatePrices(c.Request.Context(), id, payload.SellingPrice, payload.CostPrice)
	if err != nil {
		api.opts.Responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, parthttpmapper.FromDomainPart(part, api.opts.Formatter, api.opts.LowStockThreshold))
}
