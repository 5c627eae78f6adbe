package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrEmptyName    = errors.New("customer full name is required")
	ErrNameTooLong  = errors.New("customer full name must be at most 160 characters")
	ErrInvalidEmail = errors.New("customer email must contain '@'")

	// ErrReferentialConflict is matched by ReferentialConflictError.
	ErrReferentialConflict = errors.New("referential conflict")
)

// Customer is a buyer the till can attach a sale to.
type Customer struct {
	ID       int64
	FullName string
	Phone    string
	Email    string
}

// NewCustomer validates and constructs a customer.
func NewCustomer(fullName, phone, email string) (*Customer, error) {
	c := &Customer{
		FullName: strings.Join(strings.Fields(fullName), " "),
		Phone:    strings.TrimSpace(phone),
		Email:    strings.TrimSpace(email),
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate enforces the customer invariants.
func (c *Customer) Validate() error {
	if c.FullName == "" {
		return ErrEmptyName
	}
	if len(c.FullName) > 160 {
		return ErrNameTooLong
	}
	if c.Email != "" && !strings.Contains(c.Email, "@") {
		return ErrInvalidEmail
	}
	return nil
}

// ReferentialConflictError is returned when a delete would orphan ledger rows.
type ReferentialConflictError struct {
	Entity     string
	ID         int64
	References int64
}

func (e *ReferentialConflictError) Error() string {
	if e.References > 0 {
		return fmt.Sprintf("%s %d is referenced by %d sale ledger entries", e.Entity, e.ID, e.References)
	}
	return fmt.Sprintf("%s %d is referenced by sale ledger entries", e.Entity, e.ID)
}

func (e *ReferentialConflictError) Is(target error) bool {
	return target == ErrReferentialConflict
}
