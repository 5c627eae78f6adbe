package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReportPeriod is a half-open range [From, To).
type ReportPeriod struct {
	From time.Time
	To   time.Time
}

// MonthOf returns the calendar month containing t, in t's location.
func MonthOf(t time.Time) ReportPeriod {
	from := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	return ReportPeriod{From: from, To: from.AddDate(0, 1, 0)}
}

// Validate checks the period is non-empty.
func (p ReportPeriod) Validate() error {
	if p.From.IsZero() || p.To.IsZero() || !p.From.Before(p.To) {
		return &ValidationError{Field: "period", Reason: "from must be before to"}
	}
	return nil
}

// PartSales aggregates ledger entries for one part over a period.
type PartSales struct {
	PartID   int64
	PartName string
	Model    string
	Units    int
	Revenue  decimal.Decimal
	Cost     decimal.Decimal
}

// ReportRow is one part's line in the profit report.
type ReportRow struct {
	PartID        int64
	PartName      string
	Model         string
	Units         int
	Revenue       decimal.Decimal
	Cost          decimal.Decimal
	Profit        decimal.Decimal
	MarginPercent decimal.Decimal
}

// ProfitReport summarises sales per part with grand totals.
type ProfitReport struct {
	Period       ReportPeriod
	Rows         []ReportRow
	TotalUnits   int
	TotalRevenue decimal.Decimal
	TotalCost    decimal.Decimal
	TotalProfit  decimal.Decimal
}

// BuildProfitReport derives profit and margin for each aggregate and sums them.
func BuildProfitReport(period ReportPeriod, sales []PartSales) *ProfitReport {
	report := &ProfitReport{
		Period:       period,
		Rows:         make([]ReportRow, 0, len(sales)),
		TotalRevenue: decimal.Zero,
		TotalCost:    decimal.Zero,
		TotalProfit:  decimal.Zero,
	}
	for _, s := range sales {
		profit := s.Revenue.Sub(s.Cost)
		report.Rows = append(report.Rows, ReportRow{
			PartID:        s.PartID,
			PartName:      s.PartName,
			Model:         s.Model,
			Units:         s.Units,
			Revenue:       s.Revenue.Round(2),
			Cost:          s.Cost.Round(2),
			Profit:        profit.Round(2),
			MarginPercent: marginPercent(profit, s.Revenue),
		})
		report.TotalUnits += s.Units
		report.TotalRevenue = report.TotalRevenue.Add(s.Revenue)
		report.TotalCost = report.TotalCost.Add(s.Cost)
		report.TotalProfit = report.TotalProfit.Add(profit)
	}
	report.TotalRevenue = report.TotalRevenue.Round(2)
	report.TotalCost = report.TotalCost.Round(2)
	report.TotalProfit = report.TotalProfit.Round(2)
	return report
}

// Margin is total profit over total revenue as a percentage.
func (r *ProfitReport) Margin() decimal.Decimal {
	return marginPercent(r.TotalProfit, r.TotalRevenue)
}

func marginPercent(profit, revenue decimal.Decimal) decimal.Decimal {
	if revenue.IsZero() {
		return decimal.Zero
	}
	return profit.Div(revenue).Mul(decimal.NewFromInt(100)).Round(2)
}
