package ports

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/Apurer/autoparts-pos/internal/domains/catalog/domain"
)

// AddPartInput describes a new catalog entry.
type AddPartInput struct {
	Name  string
	Model string
	Price decimal.Decimal
	Cost  decimal.Decimal
	Stock int
}

// Service exposes catalog use cases to adapters and to the sales context.
type Service interface {
	AddPart(ctx context.Context, input AddPartInput) (*domain.Part, error)
	Restock(ctx context.Context, id int64, quantity int) (*domain.Part, error)
	UpdatePrices(ctx context.Context, id int64, price, cost decimal.Decimal) (*domain.Part, error)
	GetPart(ctx context.Context, id int64) (*domain.Part, error)
	GetPartByNameAndModel(ctx context.Context, name, model string) (*domain.Part, error)
	GetStock(ctx context.Context, id int64) (int, error)
	ListParts(ctx context.Context, filter ListFilter) ([]*domain.Part, error)
	LowStock(ctx context.Context, threshold int) ([]*domain.Part, error)
}
