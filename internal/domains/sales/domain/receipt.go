package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const receiptDateLayout = "20060102"

// ReceiptLine is one printed line of a receipt.
type ReceiptLine struct {
	PartID    int64           `json:"partId"`
	PartName  string          `json:"partName"`
	Model     string          `json:"model"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	LineTotal decimal.Decimal `json:"lineTotal"`
}

// Receipt is the immutable record handed to the customer after a commit.
type Receipt struct {
	Number        string          `json:"number"`
	IssuedAt      time.Time       `json:"issuedAt"`
	CustomerID    int64           `json:"customerId"`
	CustomerName  string          `json:"customerName"`
	Lines         []ReceiptLine   `json:"lines"`
	TotalQuantity int             `json:"totalQuantity"`
	GrandTotal    decimal.Decimal `json:"grandTotal"`
}

// NewReceipt builds a receipt from the validated cart contents.
func NewReceipt(number string, issuedAt time.Time, cart *Cart) *Receipt {
	lines := make([]ReceiptLine, 0, len(cart.Lines))
	for _, l := range cart.Lines {
		lines = append(lines, ReceiptLine{
			PartID:    l.PartID,
			PartName:  l.PartName,
			Model:     l.Model,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			LineTotal: l.LineTotal,
		})
	}
	qty, total := cart.Totals()
	return &Receipt{
		Number:        number,
		IssuedAt:      issuedAt,
		CustomerID:    cart.CustomerID,
		CustomerName:  cart.CustomerName,
		Lines:         lines,
		TotalQuantity: qty,
		GrandTotal:    total,
	}
}

// FormatReceiptNumber renders YYYYMMDD-NNN with at least three sequence digits.
func FormatReceiptNumber(day time.Time, seq int) string {
	return fmt.Sprintf("%s-%03d", day.Format(receiptDateLayout), seq)
}

// ParseReceiptNumber splits a receipt number into its date and sequence.
func ParseReceiptNumber(number string) (string, int, error) {
	date, suffix, ok := strings.Cut(strings.TrimSpace(number), "-")
	if !ok || len(date) != len(receiptDateLayout) {
		return "", 0, fmt.Errorf("malformed receipt number %q", number)
	}
	if _, err := time.Parse(receiptDateLayout, date); err != nil {
		return "", 0, fmt.Errorf("malformed receipt date %q: %w", number, err)
	}
	seq, err := strconv.Atoi(suffix)
	if err != nil || seq < 1 {
		return "", 0, fmt.Errorf("malformed receipt sequence %q", number)
	}
	return date, seq, nil
}

// NextReceiptNumber continues a till session's numbering: the suffix of the
// previous number is incremented and the date is today's. The first receipt
// of a session, or one following an unreadable number, is 001. The suffix
// does not restart when the date changes mid-session.
func NextReceiptNumber(previous string, now time.Time) string {
	if previous == "" {
		return FormatReceiptNumber(now, 1)
	}
	_, seq, err := ParseReceiptNumber(previous)
	if err != nil {
		return FormatReceiptNumber(now, 1)
	}
	return FormatReceiptNumber(now, seq+1)
}

// DayKey is the key of the durable per-day receipt sequence.
func DayKey(t time.Time) string {
	return t.Format(receiptDateLayout)
}
