package domain

import (
	"math"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/Apurer/autoparts-pos/internal/shared/money"
)

// Line is one cart entry. UnitPrice and UnitCost are snapshots taken when the
// line was added; later catalog price changes never reach it.
type Line struct {
	PartID    int64           `json:"partId"`
	PartName  string          `json:"partName"`
	Model     string          `json:"model"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	UnitCost  decimal.Decimal `json:"unitCost"`
	LineTotal decimal.Decimal `json:"lineTotal"`
}

// NewLine validates quantity and prices a line with per-line rounding.
func NewLine(partID int64, partName, model string, unitPrice, unitCost decimal.Decimal, quantity int) (Line, error) {
	if quantity <= 0 {
		return Line{}, &ValidationError{Field: "quantity", Reason: "must be a positive integer"}
	}
	return Line{
		PartID:    partID,
		PartName:  partName,
		Model:     model,
		Quantity:  quantity,
		UnitPrice: unitPrice,
		UnitCost:  unitCost,
		LineTotal: money.LineTotal(unitPrice, quantity),
	}, nil
}

// Cart is the ordered list of lines for one customer at the till.
type Cart struct {
	CustomerID    int64           `json:"customerId"`
	CustomerName  string          `json:"customerName"`
	Lines         []Line          `json:"lines"`
	TotalQuantity int             `json:"totalQuantity"`
	GrandTotal    decimal.Decimal `json:"grandTotal"`
}

// NewCart returns an empty cart for the customer.
func NewCart(customerID int64, customerName string) *Cart {
	return &Cart{CustomerID: customerID, CustomerName: customerName, GrandTotal: decimal.Zero}
}

// AssignCustomer binds the cart to a customer. The customer may only change
// while the cart is empty.
func (c *Cart) AssignCustomer(id int64, name string) error {
	if id == c.CustomerID {
		c.CustomerName = name
		return nil
	}
	if !c.IsEmpty() {
		return &ValidationError{Field: "customer", Reason: "cannot change customer while the cart has lines"}
	}
	c.CustomerID = id
	c.CustomerName = name
	return nil
}

// Add appends line if the cumulative quantity for the part stays within
// available. On error the cart is unchanged.
func (c *Cart) Add(line Line, available int) error {
	if line.Quantity <= 0 {
		return &ValidationError{Field: "quantity", Reason: "must be a positive integer"}
	}
	held := c.QuantityFor(line.PartID)
	if line.Quantity > available-held {
		return &InsufficientStockError{
			PartID:    line.PartID,
			PartName:  line.PartName,
			Requested: addQuantities(held, line.Quantity),
			Available: available,
		}
	}
	c.Lines = append(c.Lines, line)
	c.recompute()
	return nil
}

// Clear empties the cart, keeping the customer.
func (c *Cart) Clear() {
	c.Lines = nil
	c.recompute()
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return c == nil || len(c.Lines) == 0
}

// QuantityFor sums the quantity of every line for partID.
func (c *Cart) QuantityFor(partID int64) int {
	total := 0
	for _, l := range c.Lines {
		if l.PartID == partID {
			total += l.Quantity
		}
	}
	return total
}

// Totals recomputes the total quantity and the grand total, which is the sum
// of the already rounded line totals.
func (c *Cart) Totals() (int, decimal.Decimal) {
	qty := 0
	total := decimal.Zero
	for _, l := range c.Lines {
		qty += l.Quantity
		total = total.Add(l.LineTotal)
	}
	return qty, total
}

// Demand aggregates quantity per part across all lines.
func (c *Cart) Demand() map[int64]int {
	demand := make(map[int64]int, len(c.Lines))
	for _, l := range c.Lines {
		demand[l.PartID] += l.Quantity
	}
	return demand
}

// PartIDs returns the distinct part ids in ascending order, which is the
// order rows are locked in at checkout.
func (c *Cart) PartIDs() []int64 {
	demand := c.Demand()
	ids := make([]int64, 0, len(demand))
	for id := range demand {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Clone returns a deep copy.
func (c *Cart) Clone() *Cart {
	if c == nil {
		return nil
	}
	out := *c
	out.Lines = append([]Line(nil), c.Lines...)
	return &out
}

// CheckStock compares the cart against live stock and returns every line
// that does not fit, in cart order. Earlier lines for the same part consume
// stock first; Available is what remained for the failing line.
func (c *Cart) CheckStock(live map[int64]int) []LineConflict {
	consumed := make(map[int64]int, len(c.Lines))
	var conflicts []LineConflict
	for i, l := range c.Lines {
		remaining := live[l.PartID] - consumed[l.PartID]
		if remaining < 0 {
			remaining = 0
		}
		if l.Quantity > remaining {
			conflicts = append(conflicts, LineConflict{
				Line:      i + 1,
				PartID:    l.PartID,
				PartName:  l.PartName,
				Requested: l.Quantity,
				Available: remaining,
			})
		}
		consumed[l.PartID] = addQuantities(consumed[l.PartID], l.Quantity)
	}
	return conflicts
}

// addQuantities adds two non-negative quantities, saturating at math.MaxInt.
func addQuantities(a, b int) int {
	if b > math.MaxInt-a {
		return math.MaxInt
	}
	return a + b
}

func (c *Cart) recompute() {
	c.TotalQuantity, c.GrandTotal = c.Totals()
}
