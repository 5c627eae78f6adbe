package api

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	posserver "github.com/Apurer/autoparts-pos/go"
	"github.com/Apurer/autoparts-pos/internal/domains/sales/adapters/receipt"
	"github.com/Apurer/autoparts-pos/internal/shared/money"
)

// NewRouter builds the gin engine with tracing middleware ahead of every route.
func NewRouter(cfg Config, services Services, logger *slog.Logger) *gin.Engine {
	formatter := money.NewFormatter(cfg.CurrencySymbol)
	opts := posserver.Options{
		Formatter:         formatter,
		LowStockThreshold: cfg.LowStockThreshold,
		Responder:         posserver.NewResponder("", logger),
		Logger:            logger,
	}
	renderer := receipt.NewRenderer(cfg.ShopName, formatter)
	handlers := posserver.ApiHandleFunctions{
		PartsAPI:     posserver.NewPartsAPI(services.Catalog, opts),
		CustomersAPI: posserver.NewCustomersAPI(services.Customers, opts),
		SessionsAPI:  posserver.NewSessionsAPI(services.Sales, renderer, opts),
		ReportsAPI:   posserver.NewReportsAPI(services.Sales, renderer, opts),
	}

	router := gin.New()
	router.Use(gin.Recovery(), otelgin.Middleware(ServiceName))
	return posserver.NewRouterWithGinEngine(router, handlers)
}
