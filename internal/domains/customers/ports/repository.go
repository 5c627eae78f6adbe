package ports

import (
	"context"
	"errors"

	"github.com/Apurer/autoparts-pos/internal/domains/customers/domain"
	"github.com/Apurer/autoparts-pos/internal/shared/projection"
)

var (
	ErrNotFound  = errors.New("customer not found")
	ErrDuplicate = errors.New("a customer with this name already exists")
	// ErrInUse is returned by repositories when the storage layer refuses a
	// delete because ledger rows still point at the customer.
	ErrInUse = errors.New("customer is referenced by sales")
)

// CustomerProjection is a customer plus its registration timestamps.
type CustomerProjection = projection.Projection[*domain.Customer]

// Repository persists customers.
type Repository interface {
	Create(ctx context.Context, customer *domain.Customer) (*CustomerProjection, error)
	GetByID(ctx context.Context, id int64) (*CustomerProjection, error)
	GetByName(ctx context.Context, fullName string) (*CustomerProjection, error)
	List(ctx context.Context) ([]*CustomerProjection, error)
	Delete(ctx context.Context, id int64) error
}

// SalesHistory answers whether the ledger references a customer.
type SalesHistory interface {
	CountByCustomer(ctx context.Context, customerID int64) (int64, error)
}
