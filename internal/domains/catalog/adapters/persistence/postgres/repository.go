package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Apurer/autoparts-pos/internal/domains/catalog/domain"
	"github.com/Apurer/autoparts-pos/internal/domains/catalog/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists parts through GORM. It runs unchanged on PostgreSQL
// and SQLite; the schema is owned by platform/migrations.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a GORM-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type partRecord struct {
	ID        int64           `gorm:"primaryKey;column:id"`
	Name      string          `gorm:"column:name"`
	Model     string          `gorm:"column:model"`
	Price     decimal.Decimal `gorm:"column:price"`
	Cost      decimal.Decimal `gorm:"column:cost"`
	StockQty  int             `gorm:"column:stock_qty"`
	CreatedAt time.Time       `gorm:"column:created_at"`
	UpdatedAt time.Time       `gorm:"column:updated_at"`
}

func (partRecord) TableName() string { return "parts" }

func (r *Repository) Create(ctx context.Context, part *domain.Part) (*domain.Part, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if part == nil {
		return nil, errors.New("part is nil")
	}
	record := toRecord(part)
	record.ID = 0
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ports.ErrDuplicate
		}
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *Repository) UpdatePrices(ctx context.Context, id int64, price, cost decimal.Decimal) (*domain.Part, error) {
	return r.update(ctx, id, map[string]any{"price": price, "cost": cost})
}

// AddStock increments stock in a single statement so concurrent restocks and
// sales never lose updates.
func (r *Repository) AddStock(ctx context.Context, id int64, quantity int) (*domain.Part, error) {
	return r.update(ctx, id, map[string]any{"stock_qty": gorm.Expr("stock_qty + ?", quantity)})
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Part, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record partRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *Repository) GetByNameAndModel(ctx context.Context, name, model string) (*domain.Part, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record partRecord
	err := r.db.WithContext(ctx).
		Where("LOWER(name) = LOWER(?) AND LOWER(model) = LOWER(?)", name, model).
		Order("id").
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *Repository) List(ctx context.Context, filter ports.ListFilter) ([]*domain.Part, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	query := r.db.WithContext(ctx).Model(&partRecord{})
	if filter.StockBelow > 0 {
		query = query.Where("stock_qty < ?", filter.StockBelow)
	}
	if filter.Search != "" {
		pattern := "%" + escapeLike(strings.ToLower(filter.Search)) + "%"
		query = query.Where(`(LOWER(name) LIKE ? ESCAPE '\' OR LOWER(model) LIKE ? ESCAPE '\')`, pattern, pattern)
	}
	var records []partRecord
	if err := query.Order("name").Order("model").Order("id").Find(&records).Error; err != nil {
		return nil, err
	}
	parts := make([]*domain.Part, 0, len(records))
	for i := range records {
		parts = append(parts, records[i].toDomain())
	}
	return parts, nil
}

func (r *Repository) update(ctx context.Context, id int64, columns map[string]any) (*domain.Part, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	columns["updated_at"] = time.Now().UTC()
	result := r.db.WithContext(ctx).Model(&partRecord{}).Where("id = ?", id).Updates(columns)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ports.ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("part repository not configured")
	}
	return nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func toRecord(part *domain.Part) partRecord {
	return partRecord{
		ID:       part.ID,
		Name:     part.Name,
		Model:    part.Model,
		Price:    part.Price,
		Cost:     part.Cost,
		StockQty: part.Stock,
	}
}

func (r partRecord) toDomain() *domain.Part {
	return &domain.Part{
		ID:    r.ID,
		Name:  r.Name,
		Model: r.Model,
		Price: r.Price,
		Cost:  r.Cost,
		Stock: r.StockQty,
	}
}
