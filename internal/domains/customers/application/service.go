package application

import (
	"context"
	"errors"
	"strings"

	"github.com/Apurer/autoparts-pos/internal/domains/customers/domain"
	"github.com/Apurer/autoparts-pos/internal/domains/customers/ports"
)

// Service orchestrates customer use cases.
type Service struct {
	repo    ports.Repository
	history ports.SalesHistory
}

// NewService wires the service. history may be nil, in which case deletes
// rely solely on the repository refusing referenced rows.
func NewService(repo ports.Repository, history ports.SalesHistory) *Service {
	return &Service{repo: repo, history: history}
}

func (s *Service) Register(ctx context.Context, input ports.RegisterInput) (*ports.CustomerProjection, error) {
	customer, err := domain.NewCustomer(input.FullName, input.Phone, input.Email)
	if err != nil {
		return nil, mapError(err)
	}
	return s.repo.Create(ctx, customer)
}

func (s *Service) GetCustomer(ctx context.Context, id int64) (*ports.CustomerProjection, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) GetCustomerByName(ctx context.Context, fullName string) (*domain.Customer, error) {
	name := strings.Join(strings.Fields(fullName), " ")
	if name == "" {
		return nil, mapError(domain.ErrEmptyName)
	}
	found, err := s.repo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	return found.Entity, nil
}

func (s *Service) ListCustomers(ctx context.Context) ([]*ports.CustomerProjection, error) {
	return s.repo.List(ctx)
}

// DeleteCustomer refuses to remove a customer the ledger still references.
func (s *Service) DeleteCustomer(ctx context.Context, id int64) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	if s.history != nil {
		refs, err := s.history.CountByCustomer(ctx, id)
		if err != nil {
			return err
		}
		if refs > 0 {
			return &domain.ReferentialConflictError{Entity: "customer", ID: id, References: refs}
		}
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ports.ErrInUse) {
			return &domain.ReferentialConflictError{Entity: "customer", ID: id}
		}
		return err
	}
	return nil
}

var _ ports.Service = (*Service)(nil)
