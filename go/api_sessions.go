package posserver

import (
	"errors"
	"log/slog"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	saleshttpmapper "github.com/Apurer/autoparts-pos/internal/domains/sales/adapters/http/mapper"
	"github.com/Apurer/autoparts-pos/internal/domains/sales/adapters/receipt"
	salesapp "github.com/Apurer/autoparts-pos/internal/domains/sales/application"
	salesdomain "github.com/Apurer/autoparts-pos/internal/domains/sales/domain"
	salesports "github.com/Apurer/autoparts-pos/internal/domains/sales/ports"
)

const (
	contentTypeCSV = "text/csv; charset=utf-8"
	contentTypePDF = "application/pdf"
)

// SessionsAPI wires HTTP transport with checkout sessions of the sales context.
type SessionsAPI struct {
	service  salesports.Service
	renderer *receipt.Renderer
	opts     Options
}

// NewSessionsAPI creates a SessionsAPI backed by the provided service.
func NewSessionsAPI(service salesports.Service, renderer *receipt.Renderer, opts Options) SessionsAPI {
	opts = opts.withDefaults()
	if renderer == nil {
		renderer = receipt.NewRenderer("", opts.Formatter)
	}
	return SessionsAPI{service: service, renderer: renderer, opts: opts}
}

// Post /v1/sessions
// Opens a checkout session for a registered customer
func (api *SessionsAPI) StartSession(c *gin.Context) {
	var payload saleshttpmapper.NewSession
	if err := c.ShouldBindJSON(&payload); err != nil {
		api.opts.Responder.BadRequest(c, err.Error())
		return
	}
	session, err := api.service.StartSession(c.Request.Context(), payload.CustomerName)
	if err != nil {
		api.opts.Responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, saleshttpmapper.FromSession(session, api.opts.Formatter))
}

// Get /v1/sessions/:sessionId
// Returns the session with its cart
func (api *SessionsAPI) GetSession(c *gin.Context) {
	session, ok := api.loadSession(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, saleshttpmapper.FromSession(session, api.opts.Formatter))
}

// Post /v1/sessions/:sessionId/lines
// Adds a line to the cart after checking it against live stock
func (api *SessionsAPI) AddLine(c *gin.Context) {
	id, err := bindSessionID(c)
	if err != nil {
		api.opts.Responder.BadRequest(c, err.Error())
		return
	}
	var payload saleshttpmapper.NewLine
	if err := c.ShouldBindJSON(&payload); err != nil {
		api.opts.Responder.BadRequest(c, err.Error())
		return
	}
	session, err := api.service.AddLine(c.Request.Context(), id, saleshttpmapper.ToAddLineInput(payload))
	if err != nil {
		api.opts.Responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, saleshttpmapper.FromSession(session, api.opts.Formatter))
}

// Delete /v1/sessions/:sessionId/lines
// Empties the cart
func (api *SessionsAPI) ClearCart(c *gin.Context) {
	id, err := bindSessionID(c)
	if err != nil {
		api.opts.Responder.BadRequest(c, err.Error())
		return
	}
	session, err := api.service.ClearCart(c.Request.Context(), id)
	if err != nil {
		api.opts.Responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, saleshttpmapper.FromSession(session, api.opts.Formatter))
}

// Get /v1/sessions/:sessionId/cart.csv
// Exports the current cart
func (api *SessionsAPI) ExportCart(c *gin.Context) {
	session, ok := api.loadSession(c)
	if !ok {
		return
	}
	data, err := api.renderer.CartCSV(session.Cart)
	if err != nil {
		api.opts.Responder.RespondError(c, err)
		return
	}
	attachment(c, "cart.csv", contentTypeCSV, data)
}

// Post /v1/sessions/:sessionId/checkout
// Commits the cart as one sale and returns the receipt
func (api *SessionsAPI) Checkout(c *gin.Context) {
	id, err := bindSessionID(c)
	if err != nil {
		api.opts.Responder.BadRequest(c, err.Error())
		return
	}
	rcpt, err := api.service.Checkout(c.Request.Context(), id)
	if err != nil {
		if rcpt == nil || !errors.Is(err, salesapp.ErrSessionSync) {
			api.opts.Responder.RespondError(c, err)
			return
		}
		// The sale stands; only the session bookkeeping is behind.
		api.opts.Logger.WarnContext(c.Request.Context(), "checkout session out of sync",
			slog.String("sessionId", id),
			slog.String("receipt", rcpt.Number),
			slog.String("error", err.Error()),
		)
	}
	c.JSON(http.StatusCreated, saleshttpmapper.FromReceipt(rcpt, api.opts.Formatter))
}

// Get /v1/sessions/:sessionId/receipt.pdf
// Downloads the last receipt as PDF
func (api *SessionsAPI) ReceiptPDF(c *gin.Context) {
	last, ok := api.lastReceipt(c)
	if !ok {
		return
	}
	data, err := api.renderer.PDF(last)
	if err != nil {
		api.opts.Responder.RespondError(c, err)
		return
	}
	file, err := os.CreateTemp("", "receipt-*.pdf")
	if err != nil {
		api.opts.Responder.RespondError(c, err)
		return
	}
	defer func() {
		if err := os.Remove(file.Name()); err != nil {
			api.opts.Logger.WarnContext(c.Request.Context(), "receipt file cleanup failed",
				slog.String("path", file.Name()),
				slog.String("error", err.Error()),
			)
		}
	}()
	if _, err := file.Write(data); err != nil {
		_ = file.Close()
		api.opts.Responder.RespondError(c, err)
		return
	}
	if err := file.Close(); err != nil {
		api.opts.Responder.RespondError(c, err)
		return
	}
	c.Header("Content-Type", contentTypePDF)
	c.FileAttachment(file.Name(), "Receipt_"+last.Number+".pdf")
}

// Get /v1/sessions/:sessionId/receipt.csv
// Downloads the last receipt as CSV
func (api *SessionsAPI) ReceiptCSV(c *gin.Context) {
	last, ok := api.lastReceipt(c)
	if !ok {
		return
	}
	data, err := api.renderer.ReceiptCSV(last)
	if err != nil {
		api.opts.Responder.RespondError(c, err)
		return
	}
	attachment(c, "Receipt_"+last.Number+".csv", contentTypeCSV, data)
}

func (api *SessionsAPI) loadSession(c *gin.Context) (*salesdomain.Session, bool) {
	id, err := bindSessionID(c)
	if err != nil {
		api.opts.Responder.BadRequest(c, err.Error())
		return nil, false
	}
	session, err := api.service.GetSession(c.Request.Context(), id)
	if err != nil {
		api.opts.Responder.RespondError(c, err)
		return nil, false
	}
	return session, true
}

func (api *SessionsAPI) lastReceipt(c *gin.Context) (*salesdomain.Receipt, bool) {
	session, ok := api.loadSession(c)
	if !ok {
		return nil, false
	}
	if session.LastReceipt == nil {
		api.opts.Responder.NotFound(c, "receipt", session.ID)
		return nil, false
	}
	return session.LastReceipt, true
}

func attachment(c *gin.Context, filename, contentType string, data []byte) {
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, contentType, data)
}
