package receipt

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/autoparts-pos/internal/domains/sales/domain"
	"github.com/Apurer/autoparts-pos/internal/shared/money"
)

func sampleCart(t *testing.T) *domain.Cart {
	t.Helper()
	cart := domain.NewCart(1, "Thabo Nkosi")
	pad, err := domain.NewLine(1, "Brake Pad", "Toyota Hilux", decimal.RequireFromString("1450.00"), decimal.NewFromInt(900), 2)
	require.NoError(t, err)
	filter, err := domain.NewLine(2, "Oil Filter", "VW Polo, 1.4", decimal.RequireFromString("85.50"), decimal.NewFromInt(40), 1)
	require.NoError(t, err)
	require.NoError(t, cart.Add(pad, 10))
	require.NoError(t, cart.Add(filter, 10))
	return cart
}

func readCSV(t *testing.T, data []byte) [][]string {
	t.Helper()
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	require.NoError(t, err)
	return rows
}

func TestCartCSV(t *testing.T) {
	data, err := NewRenderer("", money.NewFormatter("R")).CartCSV(sampleCart(t))
	require.NoError(t, err)

	rows := readCSV(t, data)
	require.Len(t, rows, 4)
	assert.Equal(t, lineHeader, rows[0])
	assert.Equal(t, []string{"Brake Pad", "Toyota Hilux", "2", "R 1,450.00", "R 2,900.00"}, rows[1])
	assert.Equal(t, "VW Polo, 1.4", rows[2][1])
	assert.Equal(t, []string{"Total", "", "3", "", "R 2,985.50"}, rows[3])
}

func TestReceiptCSVAndPDF(t *testing.T) {
	issued := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)
	receipt := domain.NewReceipt("20240315-001", issued, sampleCart(t))
	r := NewRenderer("Mzansi Auto Spares", money.NewFormatter("R"))

	data, err := r.ReceiptCSV(receipt)
	require.NoError(t, err)
	rows := readCSV(t, data)
	assert.Equal(t, []string{"Receipt", "20240315-001"}, rows[0])
	assert.Equal(t, []string{"Date", "2024-03-15 10:30"}, rows[1])
	assert.Equal(t, []string{"Total", "", "3", "", "R 2,985.50"}, rows[len(rows)-1])

	pdf, err := r.PDF(receipt)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))

	_, err = r.PDF(nil)
	assert.Error(t, err)
}

func TestReportCSV(t *testing.T) {
	report := domain.BuildProfitReport(domain.MonthOf(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)), []domain.PartSales{
		{PartID: 1, PartName: "Brake Pad", Model: "Toyota Hilux", Units: 3, Revenue: decimal.NewFromInt(1350), Cost: decimal.NewFromInt(900)},
	})

	data, err := NewRenderer("", money.NewFormatter("R")).ReportCSV(report)
	require.NoError(t, err)
	rows := readCSV(t, data)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Brake Pad", "Toyota Hilux", "3", "R 1,350.00", "R 900.00", "R 450.00", "33.33"}, rows[1])
	assert.Equal(t, "Total", rows[2][0])
}
