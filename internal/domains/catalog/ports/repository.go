package ports

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/Apurer/autoparts-pos/internal/domains/catalog/domain"
)

var (
	ErrNotFound  = errors.New("part not found")
	ErrDuplicate = errors.New("a part with this name and vehicle model already exists")
)

// ListFilter narrows catalog listings. Zero values mean no filtering.
type ListFilter struct {
	// Search matches name or vehicle model, case-insensitively.
	Search string
	// StockBelow keeps parts whose stock is strictly below the value when > 0.
	StockBelow int
}

// Repository persists parts. Stock is only adjusted through AddStock here;
// sales decrement it through the sales transaction port.
type Repository interface {
	Create(ctx context.Context, part *domain.Part) (*domain.Part, error)
	UpdatePrices(ctx context.Context, id int64, price, cost decimal.Decimal) (*domain.Part, error)
	AddStock(ctx context.Context, id int64, quantity int) (*domain.Part, error)
	GetByID(ctx context.Context, id int64) (*domain.Part, error)
	GetByNameAndModel(ctx context.Context, name, model string) (*domain.Part, error)
	List(ctx context.Context, filter ListFilter) ([]*domain.Part, error)
}
