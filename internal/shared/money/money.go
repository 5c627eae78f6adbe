// Package money holds the decimal arithmetic and currency formatting shared by
// the catalog, the cart and the reports.
package money

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DefaultSymbol is the rand sign printed in front of every amount.
const DefaultSymbol = "R"

// Cents rounds an amount to two decimal places, half away from zero.
func Cents(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// LineTotal is unit price times quantity, rounded to cents.
func LineTotal(unitPrice decimal.Decimal, quantity int) decimal.Decimal {
	return Cents(unitPrice.Mul(decimal.NewFromInt(int64(quantity))))
}

// Sum adds amounts without rounding the result.
func Sum(amounts ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}

// Parse reads a decimal amount such as "120.50", tolerating a leading symbol
// and thousands separators.
func Parse(s string) (decimal.Decimal, error) {
	clean := strings.TrimSpace(s)
	clean = strings.TrimPrefix(clean, DefaultSymbol)
	clean = strings.ReplaceAll(strings.TrimSpace(clean), ",", "")
	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse amount %q: %w", s, err)
	}
	return d, nil
}

// Formatter prints amounts as "<symbol> 1,234.56".
type Formatter struct {
	symbol  string
	printer *message.Printer
}

// NewFormatter returns a formatter using symbol, or DefaultSymbol when empty.
func NewFormatter(symbol string) Formatter {
	symbol = strings.TrimSpace(symbol)
	if symbol == "" {
		symbol = DefaultSymbol
	}
	return Formatter{symbol: symbol, printer: message.NewPrinter(language.English)}
}

// Format renders d rounded to cents with comma thousands grouping.
func (f Formatter) Format(d decimal.Decimal) string {
	if f.printer == nil {
		f = NewFormatter(f.symbol)
	}
	d = Cents(d)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}
	whole := d.Truncate(0)
	frac := d.Sub(whole).Shift(2).IntPart()
	grouped := f.printer.Sprintf("%d", whole.IntPart())
	return fmt.Sprintf("%s %s%s.%02d", f.symbol, sign, grouped, frac)
}

// Format renders d with DefaultSymbol.
func Format(d decimal.Decimal) string {
	return defaultFormatter.Format(d)
}

var defaultFormatter = NewFormatter(DefaultSymbol)
