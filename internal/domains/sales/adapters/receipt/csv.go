package receipt

import (
	"bytes"
	"encoding/csv"
	"errors"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/Apurer/autoparts-pos/internal/domains/sales/domain"
)

// ReportFileName is the download name of the profit report export.
const ReportFileName = "Monthly_AutoParts_Report.csv"

var lineHeader = []string{"Part", "Model", "Quantity", "Unit Price", "Line Total"}

// CartCSV exports the current cart lines followed by a totals row.
func (r *Renderer) CartCSV(cart *domain.Cart) ([]byte, error) {
	if cart == nil {
		return nil, errors.New("cart is nil")
	}
	rows := [][]string{lineHeader}
	for _, l := range cart.Lines {
		rows = append(rows, r.lineRecord(l.PartName, l.Model, l.Quantity, l.UnitPrice, l.LineTotal))
	}
	qty, total := cart.Totals()
	rows = append(rows, []string{"Total", "", strconv.Itoa(qty), "", r.formatter.Format(total)})
	return writeCSV(rows)
}

// ReceiptCSV exports the same lines the PDF receipt prints.
func (r *Renderer) ReceiptCSV(receipt *domain.Receipt) ([]byte, error) {
	if receipt == nil {
		return nil, errors.New("receipt is nil")
	}
	rows := [][]string{
		{"Receipt", receipt.Number},
		{"Date", receipt.IssuedAt.Format(issuedAtLayout)},
		{"Customer", receipt.CustomerName},
		lineHeader,
	}
	for _, l := range receipt.Lines {
		rows = append(rows, r.lineRecord(l.PartName, l.Model, l.Quantity, l.UnitPrice, l.LineTotal))
	}
	rows = append(rows, []string{"Total", "", strconv.Itoa(receipt.TotalQuantity), "", r.formatter.Format(receipt.GrandTotal)})
	return writeCSV(rows)
}

// ReportCSV exports the profit report with one row per part and a totals row.
func (r *Renderer) ReportCSV(report *domain.ProfitReport) ([]byte, error) {
	if report == nil {
		return nil, errors.New("report is nil")
	}
	rows := [][]string{{"Part", "Model", "Units Sold", "Revenue", "Cost", "Profit", "Margin %"}}
	for _, row := range report.Rows {
		rows = append(rows, []string{
			row.PartName,
			row.Model,
			strconv.Itoa(row.Units),
			r.formatter.Format(row.Revenue),
			r.formatter.Format(row.Cost),
			r.formatter.Format(row.Profit),
			row.MarginPercent.StringFixed(2),
		})
	}
	rows = append(rows, []string{
		"Total",
		"",
		strconv.Itoa(report.TotalUnits),
		r.formatter.Format(report.TotalRevenue),
		r.formatter.Format(report.TotalCost),
		r.formatter.Format(report.TotalProfit),
		report.Margin().StringFixed(2),
	})
	return writeCSV(rows)
}

func (r *Renderer) lineRecord(name, model string, qty int, unitPrice, lineTotal decimal.Decimal) []string {
	return []string{name, model, strconv.Itoa(qty), r.formatter.Format(unitPrice), r.formatter.Format(lineTotal)}
}

func writeCSV(rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
