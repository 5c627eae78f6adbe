package domain

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Apurer/autoparts-pos/internal/shared/money"
)

var (
	ErrEmptyName      = errors.New("part name is required")
	ErrNegativePrice  = errors.New("selling price must not be negative")
	ErrNegativeCost   = errors.New("cost price must not be negative")
	ErrNegativeStock  = errors.New("stock quantity must not be negative")
	ErrInvalidRestock = errors.New("restock quantity must be at least 1")
	ErrNameTooLong    = errors.New("part name must be at most 120 characters")
	ErrModelTooLong   = errors.New("vehicle model must be at most 120 characters")
)

const maxTextLength = 120

// Part is a sellable catalog item. Stock is only ever reduced by a committed sale.
type Part struct {
	ID    int64
	Name  string
	Model string
	Price decimal.Decimal
	Cost  decimal.Decimal
	Stock int
}

// NewPart validates and constructs a part. Prices are rounded to cents.
func NewPart(name, model string, price, cost decimal.Decimal, stock int) (*Part, error) {
	part := &Part{
		Name:  strings.TrimSpace(name),
		Model: strings.TrimSpace(model),
		Price: money.Cents(price),
		Cost:  money.Cents(cost),
		Stock: stock,
	}
	if err := part.Validate(); err != nil {
		return nil, err
	}
	return part, nil
}

// Validate enforces the part invariants.
func (p *Part) Validate() error {
	switch {
	case p.Name == "":
		return ErrEmptyName
	case len(p.Name) > maxTextLength:
		return ErrNameTooLong
	case len(p.Model) > maxTextLength:
		return ErrModelTooLong
	case p.Price.IsNegative():
		return ErrNegativePrice
	case p.Cost.IsNegative():
		return ErrNegativeCost
	case p.Stock < 0:
		return ErrNegativeStock
	}
	return nil
}

// SetPrices replaces both prices, leaving the part untouched on error.
func (p *Part) SetPrices(price, cost decimal.Decimal) error {
	next := *p
	next.Price = money.Cents(price)
	next.Cost = money.Cents(cost)
	if err := next.Validate(); err != nil {
		return err
	}
	*p = next
	return nil
}

// ValidateRestock checks a restock quantity.
func ValidateRestock(quantity int) error {
	if quantity < 1 {
		return ErrInvalidRestock
	}
	return nil
}

// IsLowStock reports whether stock is strictly below threshold.
func (p *Part) IsLowStock(threshold int) bool {
	return p.Stock < threshold
}

// Margin is the selling price minus the cost price.
func (p *Part) Margin() decimal.Decimal {
	return p.Price.Sub(p.Cost)
}
