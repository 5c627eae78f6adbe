package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Apurer/autoparts-pos/internal/domains/customers/domain"
	"github.com/Apurer/autoparts-pos/internal/domains/customers/ports"
	"github.com/Apurer/autoparts-pos/internal/shared/projection"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists customers through GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a GORM-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type customerRecord struct {
	ID        int64     `gorm:"primaryKey;column:id"`
	FullName  string    `gorm:"column:full_name"`
	Phone     string    `gorm:"column:phone"`
	Email     string    `gorm:"column:email"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (customerRecord) TableName() string { return "customers" }

func (r *Repository) Create(ctx context.Context, customer *domain.Customer) (*ports.CustomerProjection, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, errors.New("customer is nil")
	}
	record := customerRecord{FullName: customer.FullName, Phone: customer.Phone, Email: customer.Email}
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ports.ErrDuplicate
		}
		return nil, err
	}
	return record.toProjection(), nil
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*ports.CustomerProjection, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *Repository) GetByName(ctx context.Context, fullName string) (*ports.CustomerProjection, error) {
	return r.first(ctx, "LOWER(full_name) = LOWER(?)", fullName)
}

func (r *Repository) List(ctx context.Context) ([]*ports.CustomerProjection, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []customerRecord
	if err := r.db.WithContext(ctx).Order("full_name").Order("id").Find(&records).Error; err != nil {
		return nil, err
	}
	out := make([]*ports.CustomerProjection, 0, len(records))
	for i := range records {
		out = append(out, records[i].toProjection())
	}
	return out, nil
}

// Delete relies on the ON DELETE RESTRICT key from sale_ledger; a violation
// surfaces as ports.ErrInUse.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Delete(&customerRecord{}, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrForeignKeyViolated) {
			return ports.ErrInUse
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

func (r *Repository) first(ctx context.Context, query string, arg any) (*ports.CustomerProjection, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record customerRecord
	if err := r.db.WithContext(ctx).Where(query, arg).Order("id").First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toProjection(), nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("customer repository not configured")
	}
	return nil
}

func (r customerRecord) toProjection() *ports.CustomerProjection {
	return projection.New(&domain.Customer{
		ID:       r.ID,
		FullName: r.FullName,
		Phone:    r.Phone,
		Email:    r.Email,
	}, r.CreatedAt, r.UpdatedAt)
}
