package application

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	catalogdomain "github.com/Apurer/autoparts-pos/internal/domains/catalog/domain"
	customerdomain "github.com/Apurer/autoparts-pos/internal/domains/customers/domain"
	"github.com/Apurer/autoparts-pos/internal/domains/sales/domain"
	"github.com/Apurer/autoparts-pos/internal/domains/sales/ports"
)

// Aggregator builds carts against live catalog stock. It never writes to
// storage.
type Aggregator struct {
	catalog ports.Catalog
}

func NewAggregator(catalog ports.Catalog) *Aggregator {
	return &Aggregator{catalog: catalog}
}

// AddLine returns a copy of cart with one more line. customer, when non-nil,
// binds the cart to that customer first. Quantity is validated before the
// catalog is consulted; stock is read at call time and checked cumulatively.
// The input cart is never modified.
func (a *Aggregator) AddLine(ctx context.Context, cart *domain.Cart, customer *customerdomain.Customer, input ports.AddLineInput) (*domain.Cart, error) {
	if input.Quantity <= 0 {
		return nil, &domain.ValidationError{Field: "quantity", Reason: "must be a positive integer"}
	}
	if input.PartID == 0 && strings.TrimSpace(input.PartName) == "" {
		return nil, &domain.ValidationError{Field: "part", Reason: "part id or part name is required"}
	}

	part, err := a.resolvePart(ctx, input)
	if err != nil {
		return nil, err
	}
	available, err := a.catalog.GetStock(ctx, part.ID)
	if err != nil {
		return nil, err
	}

	next := cart.Clone()
	if next == nil {
		next = domain.NewCart(0, "")
	}
	if customer != nil {
		if err := next.AssignCustomer(customer.ID, customer.FullName); err != nil {
			return nil, err
		}
	}
	line, err := domain.NewLine(part.ID, part.Name, part.Model, part.Price, part.Cost, input.Quantity)
	if err != nil {
		return nil, err
	}
	if err := next.Add(line, available); err != nil {
		return nil, err
	}
	return next, nil
}

// Clear returns an empty cart for the same customer.
func (a *Aggregator) Clear(cart *domain.Cart) *domain.Cart {
	if cart == nil {
		return domain.NewCart(0, "")
	}
	return domain.NewCart(cart.CustomerID, cart.CustomerName)
}

// Totals recomputes the cart totals from its lines.
func (a *Aggregator) Totals(cart *domain.Cart) (int, decimal.Decimal) {
	return cart.Totals()
}

func (a *Aggregator) resolvePart(ctx context.Context, input ports.AddLineInput) (*catalogdomain.Part, error) {
	if input.PartID != 0 {
		return a.catalog.GetPart(ctx, input.PartID)
	}
	return a.catalog.GetPartByNameAndModel(ctx, input.PartName, input.Model)
}
