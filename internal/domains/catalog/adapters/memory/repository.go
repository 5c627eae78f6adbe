package memory

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Apurer/autoparts-pos/internal/domains/catalog/domain"
	"github.com/Apurer/autoparts-pos/internal/domains/catalog/ports"
	"github.com/Apurer/autoparts-pos/internal/platform/memdb"
)

var _ ports.Repository = (*Repository)(nil)

// Repository keeps parts in the shared in-memory store.
type Repository struct {
	db *memdb.DB
}

func NewRepository(db *memdb.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(_ context.Context, part *domain.Part) (*domain.Part, error) {
	if part == nil {
		return nil, errors.New("part is nil")
	}
	var created memdb.PartRow
	err := r.db.Update(func(t *memdb.Tables) error {
		for _, row := range t.Parts {
			if strings.EqualFold(row.Name, part.Name) && strings.EqualFold(row.Model, part.Model) {
				return ports.ErrDuplicate
			}
		}
		now := r.db.Now()
		created = memdb.PartRow{
			ID:        t.NextPartID(),
			Name:      part.Name,
			Model:     part.Model,
			Price:     part.Price,
			Cost:      part.Cost,
			Stock:     part.Stock,
			CreatedAt: now,
			UpdatedAt: now,
		}
		t.Parts[created.ID] = created
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toDomain(created), nil
}

func (r *Repository) UpdatePrices(_ context.Context, id int64, price, cost decimal.Decimal) (*domain.Part, error) {
	return r.mutate(id, func(row *memdb.PartRow) {
		row.Price = price
		row.Cost = cost
	})
}

func (r *Repository) AddStock(_ context.Context, id int64, quantity int) (*domain.Part, error) {
	return r.mutate(id, func(row *memdb.PartRow) {
		row.Stock += quantity
	})
}

func (r *Repository) GetByID(_ context.Context, id int64) (*domain.Part, error) {
	var part *domain.Part
	err := r.db.View(func(t *memdb.Tables) error {
		row, ok := t.Parts[id]
		if !ok {
			return ports.ErrNotFound
		}
		part = toDomain(row)
		return nil
	})
	return part, err
}

func (r *Repository) GetByNameAndModel(_ context.Context, name, model string) (*domain.Part, error) {
	var part *domain.Part
	err := r.db.View(func(t *memdb.Tables) error {
		for _, row := range t.Parts {
			if strings.EqualFold(row.Name, name) && strings.EqualFold(row.Model, model) {
				part = toDomain(row)
				return nil
			}
		}
		return ports.ErrNotFound
	})
	return part, err
}

func (r *Repository) List(_ context.Context, filter ports.ListFilter) ([]*domain.Part, error) {
	search := strings.ToLower(filter.Search)
	var parts []*domain.Part
	err := r.db.View(func(t *memdb.Tables) error {
		for _, row := range t.Parts {
			if filter.StockBelow > 0 && row.Stock >= filter.StockBelow {
				continue
			}
			if search != "" &&
				!strings.Contains(strings.ToLower(row.Name), search) &&
				!strings.Contains(strings.ToLower(row.Model), search) {
				continue
			}
			parts = append(parts, toDomain(row))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(parts, func(i, j int) bool {
		if parts[i].Name != parts[j].Name {
			return parts[i].Name < parts[j].Name
		}
		if parts[i].Model != parts[j].Model {
			return parts[i].Model < parts[j].Model
		}
		return parts[i].ID < parts[j].ID
	})
	return parts, nil
}

func (r *Repository) mutate(id int64, fn func(row *memdb.PartRow)) (*domain.Part, error) {
	var updated memdb.PartRow
	err := r.db.Update(func(t *memdb.Tables) error {
		row, ok := t.Parts[id]
		if !ok {
			return ports.ErrNotFound
		}
		fn(&row)
		row.UpdatedAt = r.db.Now()
		t.Parts[id] = row
		updated = row
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toDomain(updated), nil
}

func toDomain(row memdb.PartRow) *domain.Part {
	return &domain.Part{
		ID:    row.ID,
		Name:  row.Name,
		Model: row.Model,
		Price: row.Price,
		Cost:  row.Cost,
		Stock: row.Stock,
	}
}
