package ports

import (
	"context"

	"github.com/Apurer/autoparts-pos/internal/domains/customers/domain"
)

// RegisterInput describes a new customer.
type RegisterInput struct {
	FullName string
	Phone    string
	Email    string
}

// Service exposes customer use cases to adapters and to the sales context.
type Service interface {
	Register(ctx context.Context, input RegisterInput) (*CustomerProjection, error)
	GetCustomer(ctx context.Context, id int64) (*CustomerProjection, error)
	GetCustomerByName(ctx context.Context, fullName string) (*domain.Customer, error)
	ListCustomers(ctx context.Context) ([]*CustomerProjection, error)
	DeleteCustomer(ctx context.Context, id int64) error
}
