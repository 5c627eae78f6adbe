package ports

import (
	"context"

	"github.com/Apurer/autoparts-pos/internal/domains/sales/domain"
)

// AddLineInput selects a part by id, or by name and vehicle model when
// PartID is zero.
type AddLineInput struct {
	PartID   int64
	PartName string
	Model    string
	Quantity int
}

// Service exposes checkout and reporting use cases to adapters.
type Service interface {
	StartSession(ctx context.Context, customerName string) (*domain.Session, error)
	GetSession(ctx context.Context, id string) (*domain.Session, error)
	AddLine(ctx context.Context, sessionID string, input AddLineInput) (*domain.Session, error)
	ClearCart(ctx context.Context, sessionID string) (*domain.Session, error)
	Checkout(ctx context.Context, sessionID string) (*domain.Receipt, error)
	ProfitReport(ctx context.Context, period domain.ReportPeriod) (*domain.ProfitReport, error)
}
