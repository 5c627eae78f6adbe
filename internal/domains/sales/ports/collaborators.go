package ports

import (
	"context"

	catalogdomain "github.com/Apurer/autoparts-pos/internal/domains/catalog/domain"
	customerdomain "github.com/Apurer/autoparts-pos/internal/domains/customers/domain"
)

// Catalog is what the cart needs from the catalog context. Every call reads
// current state; nothing is cached.
type Catalog interface {
	GetPart(ctx context.Context, id int64) (*catalogdomain.Part, error)
	GetPartByNameAndModel(ctx context.Context, name, model string) (*catalogdomain.Part, error)
	GetStock(ctx context.Context, partID int64) (int, error)
}

// Customers resolves the buyer a session is opened for.
type Customers interface {
	GetCustomerByName(ctx context.Context, fullName string) (*customerdomain.Customer, error)
}
