package mapper

import (
	"time"

	customerports "github.com/Apurer/autoparts-pos/internal/domains/customers/ports"
)

// Customer is the JSON shape of a customer.
type Customer struct {
	ID           int64     `json:"id"`
	FullName     string    `json:"fullName"`
	Phone        string    `json:"phone,omitempty"`
	Email        string    `json:"email,omitempty"`
	RegisteredAt time.Time `json:"registeredAt"`
}

// NewCustomer is the request body for registering a customer.
type NewCustomer struct {
	FullName string `json:"fullName"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
}

// ToRegisterInput converts a transport request into the use case input.
func ToRegisterInput(req NewCustomer) customerports.RegisterInput {
	return customerports.RegisterInput{FullName: req.FullName, Phone: req.Phone, Email: req.Email}
}

// FromProjection converts a stored customer to its transport representation.
func FromProjection(p *customerports.CustomerProjection) Customer {
	if p == nil || p.Entity == nil {
		return Customer{}
	}
	return Customer{
		ID:           p.Entity.ID,
		FullName:     p.Entity.FullName,
		Phone:        p.Entity.Phone,
		Email:        p.Entity.Email,
		RegisteredAt: p.Metadata.CreatedAt,
	}
}

// FromProjections converts a list of stored customers.
func FromProjections(list []*customerports.CustomerProjection) []Customer {
	out := make([]Customer, 0, len(list))
	for _, p := range list {
		out = append(out, FromProjection(p))
	}
	return out
}
