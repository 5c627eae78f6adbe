// Package receipt renders receipts, carts and reports as downloadable files.
package receipt

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/Apurer/autoparts-pos/internal/domains/sales/domain"
	"github.com/Apurer/autoparts-pos/internal/shared/money"
)

const issuedAtLayout = "2006-01-02 15:04"

// Renderer produces receipt artifacts with amounts in one currency format.
type Renderer struct {
	shopName  string
	formatter money.Formatter
}

func NewRenderer(shopName string, formatter money.Formatter) *Renderer {
	if shopName == "" {
		shopName = "AutoParts"
	}
	return &Renderer{shopName: shopName, formatter: formatter}
}

var (
	bold   = props.Text{Style: fontstyle.Bold, Size: 9}
	plain  = props.Text{Size: 9}
	right  = props.Text{Size: 9, Align: align.Right}
	boldR  = props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}
	banner = props.Text{Size: 16, Style: fontstyle.Bold, Align: align.Center}
)

// PDF lays out one receipt on an A4 page.
func (r *Renderer) PDF(receipt *domain.Receipt) ([]byte, error) {
	if receipt == nil {
		return nil, errors.New("receipt is nil")
	}
	cfg := config.NewBuilder().
		WithLeftMargin(15).
		WithRightMargin(15).
		WithTopMargin(15).
		Build()
	m := maroto.New(cfg)

	m.AddRows(row.New(12).Add(text.NewCol(12, r.shopName, banner)))
	m.AddRows(
		row.New(6).Add(
			text.NewCol(3, "Receipt", bold),
			text.NewCol(9, receipt.Number, plain),
		),
		row.New(6).Add(
			text.NewCol(3, "Date", bold),
			text.NewCol(9, receipt.IssuedAt.Format(issuedAtLayout), plain),
		),
		row.New(6).Add(
			text.NewCol(3, "Customer", bold),
			text.NewCol(9, receipt.CustomerName, plain),
		),
		row.New(6),
	)

	m.AddRows(lineRow(
		[]string{"Part", "Model", "Qty", "Unit price", "Line total"},
		bold, boldR,
	))
	for _, l := range receipt.Lines {
		m.AddRows(lineRow(
			[]string{
				l.PartName,
				l.Model,
				strconv.Itoa(l.Quantity),
				r.formatter.Format(l.UnitPrice),
				r.formatter.Format(l.LineTotal),
			},
			plain, right,
		))
	}
	m.AddRows(
		row.New(4),
		row.New(7).Add(
			text.NewCol(7, "Items", bold),
			text.NewCol(5, strconv.Itoa(receipt.TotalQuantity), boldR),
		),
		row.New(7).Add(
			text.NewCol(7, "Grand total", bold),
			text.NewCol(5, r.formatter.Format(receipt.GrandTotal), boldR),
		),
	)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("render receipt %s: %w", receipt.Number, err)
	}
	return doc.GetBytes(), nil
}

// lineRow lays out part, model, qty, unit price and line total. Text columns
// use left, the numeric ones use num.
func lineRow(cells []string, left, num props.Text) core.Row {
	return row.New(6).Add(
		text.NewCol(4, cells[0], left),
		text.NewCol(3, cells[1], left),
		text.NewCol(1, cells[2], num),
		text.NewCol(2, cells[3], num),
		text.NewCol(2, cells[4], num),
	)
}
