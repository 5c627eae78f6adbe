package mapper

import (
	"time"

	salesdomain "github.com/Apurer/autoparts-pos/internal/domains/sales/domain"
	salesports "github.com/Apurer/autoparts-pos/internal/domains/sales/ports"
	"github.com/Apurer/autoparts-pos/internal/shared/money"
)

const dateLayout = "2006-01-02"

// NewSession is the request body for opening a checkout session.
type NewSession struct {
	CustomerName string `json:"customerName"`
}

// NewLine is the request body for adding a cart line. PartID wins over
// PartName and Model when both are given.
type NewLine struct {
	PartID   int64  `json:"partId,omitempty"`
	PartName string `json:"partName,omitempty"`
	Model    string `json:"model,omitempty"`
	Quantity int    `json:"quantity"`
}

// Line is one cart or receipt line.
type Line struct {
	PartID             int64  `json:"partId"`
	PartName           string `json:"partName"`
	Model              string `json:"model"`
	Quantity           int    `json:"quantity"`
	UnitPrice          string `json:"unitPrice"`
	LineTotal          string `json:"lineTotal"`
	FormattedUnitPrice string `json:"formattedUnitPrice"`
	FormattedLineTotal string `json:"formattedLineTotal"`
}

// Cart is the JSON shape of a session cart.
type Cart struct {
	CustomerID          int64  `json:"customerId"`
	CustomerName        string `json:"customerName"`
	Lines               []Line `json:"lines"`
	TotalQuantity       int    `json:"totalQuantity"`
	GrandTotal          string `json:"grandTotal"`
	FormattedGrandTotal string `json:"formattedGrandTotal"`
}

// Session is the JSON shape of a checkout session.
type Session struct {
	ID                string    `json:"id"`
	Cart              Cart      `json:"cart"`
	LastReceiptNumber string    `json:"lastReceiptNumber,omitempty"`
	ExpiresAt         time.Time `json:"expiresAt"`
}

// Receipt is the JSON shape of a committed sale.
type Receipt struct {
	Number              string    `json:"number"`
	IssuedAt            time.Time `json:"issuedAt"`
	CustomerID          int64     `json:"customerId"`
	CustomerName        string    `json:"customerName"`
	Lines               []Line    `json:"lines"`
	TotalQuantity       int       `json:"totalQuantity"`
	GrandTotal          string    `json:"grandTotal"`
	FormattedGrandTotal string    `json:"formattedGrandTotal"`
}

// ReportRow is one part in the profit report.
type ReportRow struct {
	PartID        int64  `json:"partId"`
	PartName      string `json:"partName"`
	Model         string `json:"model"`
	UnitsSold     int    `json:"unitsSold"`
	Revenue       string `json:"revenue"`
	Cost          string `json:"cost"`
	Profit        string `json:"profit"`
	MarginPercent string `json:"marginPercent"`
}

// ProfitReport is the JSON shape of the profit report.
type ProfitReport struct {
	From                 string      `json:"from"`
	To                   string      `json:"to"`
	Rows                 []ReportRow `json:"rows"`
	TotalUnits           int         `json:"totalUnits"`
	TotalRevenue         string      `json:"totalRevenue"`
	TotalCost            string      `json:"totalCost"`
	TotalProfit          string      `json:"totalProfit"`
	MarginPercent        string      `json:"marginPercent"`
	FormattedTotalProfit string      `json:"formattedTotalProfit"`
}

// ToAddLineInput converts a transport request into the use case input.
func ToAddLineInput(req NewLine) salesports.AddLineInput {
	return salesports.AddLineInput{
		PartID:   req.PartID,
		PartName: req.PartName,
		Model:    req.Model,
		Quantity: req.Quantity,
	}
}

func FromSession(session *salesdomain.Session, f money.Formatter) Session {
	if session == nil {
		return Session{}
	}
	return Session{
		ID:                session.ID,
		Cart:              FromCart(session.Cart, f),
		LastReceiptNumber: session.LastReceiptNumber,
		ExpiresAt:         session.ExpiresAt,
	}
}

func FromCart(cart *salesdomain.Cart, f money.Formatter) Cart {
	if cart == nil {
		return Cart{Lines: []Line{}}
	}
	lines := make([]Line, 0, len(cart.Lines))
	for _, l := range cart.Lines {
		lines = append(lines, Line{
			PartID:             l.PartID,
			PartName:           l.PartName,
			Model:              l.Model,
			Quantity:           l.Quantity,
			UnitPrice:          l.UnitPrice.StringFixed(2),
			LineTotal:          l.LineTotal.StringFixed(2),
			FormattedUnitPrice: f.Format(l.UnitPrice),
			FormattedLineTotal: f.Format(l.LineTotal),
		})
	}
	qty, total := cart.Totals()
	return Cart{
		CustomerID:          cart.CustomerID,
		CustomerName:        cart.CustomerName,
		Lines:               lines,
		TotalQuantity:       qty,
		GrandTotal:          total.StringFixed(2),
		FormattedGrandTotal: f.Format(total),
	}
}

func FromReceipt(receipt *salesdomain.Receipt, f money.Formatter) Receipt {
	if receipt == nil {
		return Receipt{}
	}
	lines := make([]Line, 0, len(receipt.Lines))
	for _, l := range receipt.Lines {
		lines = append(lines, Line{
			PartID:             l.PartID,
			PartName:           l.PartName,
			Model:              l.Model,
			Quantity:           l.Quantity,
			UnitPrice:          l.UnitPrice.StringFixed(2),
			LineTotal:          l.LineTotal.StringFixed(2),
			FormattedUnitPrice: f.Format(l.UnitPrice),
			FormattedLineTotal: f.Format(l.LineTotal),
		})
	}
	return Receipt{
		Number:              receipt.Number,
		IssuedAt:            receipt.IssuedAt,
		CustomerID:          receipt.CustomerID,
		CustomerName:        receipt.CustomerName,
		Lines:               lines,
		TotalQuantity:       receipt.TotalQuantity,
		GrandTotal:          receipt.GrandTotal.StringFixed(2),
		FormattedGrandTotal: f.Format(receipt.GrandTotal),
	}
}

func FromProfitReport(report *salesdomain.ProfitReport, f money.Formatter) ProfitReport {
	if report == nil {
		return ProfitReport{Rows: []ReportRow{}}
	}
	rows := make([]ReportRow, 0, len(report.Rows))
	for _, r := range report.Rows {
		rows = append(rows, ReportRow{
			PartID:        r.PartID,
			PartName:      r.PartName,
			Model:         r.Model,
			UnitsSold:     r.Units,
			Revenue:       r.Revenue.StringFixed(2),
			Cost:          r.Cost.StringFixed(2),
			Profit:        r.Profit.StringFixed(2),
			MarginPercent: r.MarginPercent.StringFixed(2),
		})
	}
	return ProfitReport{
		From:                 report.Period.From.Format(dateLayout),
		To:                   report.Period.To.Format(dateLayout),
		Rows:                 rows,
		TotalUnits:           report.TotalUnits,
		TotalRevenue:         report.TotalRevenue.StringFixed(2),
		TotalCost:            report.TotalCost.StringFixed(2),
		TotalProfit:          report.TotalProfit.StringFixed(2),
		MarginPercent:        report.Margin().StringFixed(2),
		FormattedTotalProfit: f.Format(report.TotalProfit),
	}
}
