package application

import (
	"context"

	"github.com/Apurer/autoparts-pos/internal/domains/sales/domain"
)

// ProfitReport summarises sales in the period per part.
func (s *Service) ProfitReport(ctx context.Context, period domain.ReportPeriod) (*domain.ProfitReport, error) {
	if err := period.Validate(); err != nil {
		return nil, err
	}
	sales, err := s.ledger.SalesByPart(ctx, period.From.UTC(), period.To.UTC())
	if err != nil {
		return nil, err
	}
	return domain.BuildProfitReport(period, sales), nil
}
