package api

import (
	catalogobs "github.com/Apurer/autoparts-pos/internal/domains/catalog/adapters/observability"
	catalogapp "github.com/Apurer/autoparts-pos/internal/domains/catalog/application"
	catalogports "github.com/Apurer/autoparts-pos/internal/domains/catalog/ports"
	customerobs "github.com/Apurer/autoparts-pos/internal/domains/customers/adapters/observability"
	customerapp "github.com/Apurer/autoparts-pos/internal/domains/customers/application"
	customerports "github.com/Apurer/autoparts-pos/internal/domains/customers/ports"
	salesobs "github.com/Apurer/autoparts-pos/internal/domains/sales/adapters/observability"
	salesapp "github.com/Apurer/autoparts-pos/internal/domains/sales/application"
	salesports "github.com/Apurer/autoparts-pos/internal/domains/sales/ports"
	"github.com/Apurer/autoparts-pos/internal/platform/observability"
)

// Services are the instrumented use cases served over HTTP.
type Services struct {
	Catalog   catalogports.Service
	Customers customerports.Service
	Sales     salesports.Service
}

// InlineCommitter commits sales in-process against the stores' transaction manager.
func InlineCommitter(cfg Config, stores *Stores) *salesapp.Committer {
	return salesapp.NewCommitter(stores.Tx, salesapp.WithNumbering(cfg.ReceiptNumbering))
}

// NewServices assembles the bounded contexts. A nil committer selects the
// inline one.
func NewServices(cfg Config, stores *Stores, committer salesports.SaleCommitter, instruments *observability.Instruments) Services {
	if instruments == nil {
		instruments = observability.Noop()
	}
	if committer == nil {
		committer = InlineCommitter(cfg, stores)
	}
	logger := instruments.Logger

	catalog := catalogobs.New(
		catalogapp.NewService(stores.Parts),
		catalogobs.WithLogger(logger),
		catalogobs.WithTracer(instruments.Tracer("internal.catalog.application")),
		catalogobs.WithMeter(instruments.Meter("internal.catalog.application")),
		catalogobs.WithLowStockThreshold(cfg.LowStockThreshold),
	)
	customers := customerobs.New(
		customerapp.NewService(stores.Customers, stores.Ledger),
		customerobs.WithLogger(logger),
		customerobs.WithTracer(instruments.Tracer("internal.customers.application")),
		customerobs.WithMeter(instruments.Meter("internal.customers.application")),
	)
	sales := salesobs.New(
		salesapp.NewService(
			salesapp.NewAggregator(catalog),
			committer,
			stores.Sessions,
			customers,
			stores.Ledger,
			salesapp.WithSessionTTL(cfg.SessionTTL),
		),
		salesobs.WithLogger(logger),
		salesobs.WithTracer(instruments.Tracer("internal.sales.application")),
		salesobs.WithMeter(instruments.Meter("internal.sales.application")),
	)
	return Services{Catalog: catalog, Customers: customers, Sales: sales}
}
