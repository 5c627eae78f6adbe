package mapper

import (
	"github.com/shopspring/decimal"

	catalogdomain "github.com/Apurer/autoparts-pos/internal/domains/catalog/domain"
	catalogports "github.com/Apurer/autoparts-pos/internal/domains/catalog/ports"
	"github.com/Apurer/autoparts-pos/internal/shared/money"
)

// Part is the JSON shape of a catalog part.
type Part struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	Model          string `json:"model"`
	SellingPrice   string `json:"sellingPrice"`
	CostPrice      string `json:"costPrice"`
	Stock          int    `json:"stock"`
	FormattedPrice string `json:"formattedPrice"`
	LowStock       bool   `json:"lowStock"`
}

// NewPart is the request body for adding a part.
type NewPart struct {
	Name         string          `json:"name"`
	Model        string          `json:"model"`
	SellingPrice decimal.Decimal `json:"sellingPrice"`
	CostPrice    decimal.Decimal `json:"costPrice"`
	Stock        int             `json:"stock"`
}

// Restock is the request body for a restock.
type Restock struct {
	Quantity int `json:"quantity"`
}

// Prices is the request body for a price change.
type Prices struct {
	SellingPrice decimal.Decimal `json:"sellingPrice"`
	CostPrice    decimal.Decimal `json:"costPrice"`
}

// ToAddPartInput converts a transport request into the catalog use case input.
func ToAddPartInput(req NewPart) catalogports.AddPartInput {
	return catalogports.AddPartInput{
		Name:  req.Name,
		Model: req.Model,
		Price: req.SellingPrice,
		Cost:  req.CostPrice,
		Stock: req.Stock,
	}
}

// FromDomainPart converts a domain part to the transport representation.
func FromDomainPart(part *catalogdomain.Part, f money.Formatter, lowStockThreshold int) Part {
	if part == nil {
		return Part{}
	}
	return Part{
		ID:             part.ID,
		Name:           part.Name,
		Model:          part.Model,
		SellingPrice:   part.Price.StringFixed(2),
		CostPrice:      part.Cost.StringFixed(2),
		Stock:          part.Stock,
		FormattedPrice: f.Format(part.Price),
		LowStock:       part.IsLowStock(lowStockThreshold),
	}
}

// FromDomainParts converts a list of parts.
func FromDomainParts(parts []*catalogdomain.Part, f money.Formatter, lowStockThreshold int) []Part {
	out := make([]Part, 0, len(parts))
	for _, part := range parts {
		out = append(out, FromDomainPart(part, f, lowStockThreshold))
	}
	return out
}
