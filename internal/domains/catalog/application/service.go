package application

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Apurer/autoparts-pos/internal/domains/catalog/domain"
	"github.com/Apurer/autoparts-pos/internal/domains/catalog/ports"
)

// DefaultLowStockThreshold flags parts with fewer than ten units on hand.
const DefaultLowStockThreshold = 10

// Service orchestrates catalog use cases.
type Service struct {
	repo ports.Repository
}

func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) AddPart(ctx context.Context, input ports.AddPartInput) (*domain.Part, error) {
	part, err := domain.NewPart(input.Name, input.Model, input.Price, input.Cost, input.Stock)
	if err != nil {
		return nil, mapError(err)
	}
	return s.repo.Create(ctx, part)
}

// Restock adds quantity units to the shelf in one atomic increment.
func (s *Service) Restock(ctx context.Context, id int64, quantity int) (*domain.Part, error) {
	if err := domain.ValidateRestock(quantity); err != nil {
		return nil, mapError(err)
	}
	return s.repo.AddStock(ctx, id, quantity)
}

func (s *Service) UpdatePrices(ctx context.Context, id int64, price, cost decimal.Decimal) (*domain.Part, error) {
	part, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := part.SetPrices(price, cost); err != nil {
		return nil, mapError(err)
	}
	return s.repo.UpdatePrices(ctx, id, part.Price, part.Cost)
}

func (s *Service) GetPart(ctx context.Context, id int64) (*domain.Part, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) GetPartByNameAndModel(ctx context.Context, name, model string) (*domain.Part, error) {
	return s.repo.GetByNameAndModel(ctx, strings.TrimSpace(name), strings.TrimSpace(model))
}

// GetStock reads the current shelf quantity straight from the store.
func (s *Service) GetStock(ctx context.Context, id int64) (int, error) {
	part, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return 0, err
	}
	return part.Stock, nil
}

func (s *Service) ListParts(ctx context.Context, filter ports.ListFilter) ([]*domain.Part, error) {
	filter.Search = strings.TrimSpace(filter.Search)
	return s.repo.List(ctx, filter)
}

// LowStock lists parts strictly below threshold; a non-positive threshold
// uses DefaultLowStockThreshold.
func (s *Service) LowStock(ctx context.Context, threshold int) ([]*domain.Part, error) {
	if threshold <= 0 {
		threshold = DefaultLowStockThreshold
	}
	return s.repo.List(ctx, ports.ListFilter{StockBelow: threshold})
}

var _ ports.Service = (*Service)(nil)
