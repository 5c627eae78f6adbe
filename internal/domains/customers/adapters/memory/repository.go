package memory

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/Apurer/autoparts-pos/internal/domains/customers/domain"
	"github.com/Apurer/autoparts-pos/internal/domains/customers/ports"
	"github.com/Apurer/autoparts-pos/internal/platform/memdb"
	"github.com/Apurer/autoparts-pos/internal/shared/projection"
)

var _ ports.Repository = (*Repository)(nil)

// Repository keeps customers in the shared in-memory store.
type Repository struct {
	db *memdb.DB
}

func NewRepository(db *memdb.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(_ context.Context, customer *domain.Customer) (*ports.CustomerProjection, error) {
	if customer == nil {
		return nil, errors.New("customer is nil")
	}
	var created memdb.CustomerRow
	err := r.db.Update(func(t *memdb.Tables) error {
		for _, row := range t.Customers {
			if strings.EqualFold(row.FullName, customer.FullName) {
				return ports.ErrDuplicate
			}
		}
		now := r.db.Now()
		created = memdb.CustomerRow{
			ID:        t.NextCustomerID(),
			FullName:  customer.FullName,
			Phone:     customer.Phone,
			Email:     customer.Email,
			CreatedAt: now,
			UpdatedAt: now,
		}
		t.Customers[created.ID] = created
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toProjection(created), nil
}

func (r *Repository) GetByID(_ context.Context, id int64) (*ports.CustomerProjection, error) {
	var found *ports.CustomerProjection
	err := r.db.View(func(t *memdb.Tables) error {
		row, ok := t.Customers[id]
		if !ok {
			return ports.ErrNotFound
		}
		found = toProjection(row)
		return nil
	})
	return found, err
}

func (r *Repository) GetByName(_ context.Context, fullName string) (*ports.CustomerProjection, error) {
	var found *ports.CustomerProjection
	err := r.db.View(func(t *memdb.Tables) error {
		for _, row := range t.Customers {
			if strings.EqualFold(row.FullName, fullName) {
				found = toProjection(row)
				return nil
			}
		}
		return ports.ErrNotFound
	})
	return found, err
}

func (r *Repository) List(_ context.Context) ([]*ports.CustomerProjection, error) {
	var list []*ports.CustomerProjection
	err := r.db.View(func(t *memdb.Tables) error {
		for _, row := range t.Customers {
			list = append(list, toProjection(row))
		}
		return nil
	})
	sort.Slice(list, func(i, j int) bool {
		if list[i].Entity.FullName != list[j].Entity.FullName {
			return list[i].Entity.FullName < list[j].Entity.FullName
		}
		return list[i].Entity.ID < list[j].Entity.ID
	})
	return list, err
}

// Delete removes the customer unless a ledger row references it. The check
// and the delete happen under the same store lock.
func (r *Repository) Delete(_ context.Context, id int64) error {
	return r.db.Update(func(t *memdb.Tables) error {
		if _, ok := t.Customers[id]; !ok {
			return ports.ErrNotFound
		}
		for _, sale := range t.Sales {
			if sale.CustomerID == id {
				return ports.ErrInUse
			}
		}
		delete(t.Customers, id)
		return nil
	})
}

func toProjection(row memdb.CustomerRow) *ports.CustomerProjection {
	return projection.New(&domain.Customer{
		ID:       row.ID,
		FullName: row.FullName,
		Phone:    row.Phone,
		Email:    row.Email,
	}, row.CreatedAt, row.UpdatedAt)
}
