package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Apurer/autoparts-pos/internal/domains/sales/domain"
	"github.com/Apurer/autoparts-pos/internal/domains/sales/ports"
)

var _ ports.SessionStore = (*SessionStore)(nil)

// SessionStore keeps checkout sessions in checkout_sessions so a till can
// resume its cart after a restart. Cart and last receipt are stored as JSON.
type SessionStore struct {
	db *gorm.DB
}

func NewSessionStore(db *gorm.DB) *SessionStore {
	return &SessionStore{db: db}
}

func (s *SessionStore) Save(ctx context.Context, session *domain.Session) error {
	if err := s.ensureDB(); err != nil {
		return err
	}
	record, err := toSessionRecord(session)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"customer_id", "cart", "last_receipt_number", "last_receipt", "expires_at", "updated_at"}),
		}).
		Create(&record).Error
}

func (s *SessionStore) Get(ctx context.Context, id string) (*domain.Session, error) {
	if err := s.ensureDB(); err != nil {
		return nil, err
	}
	var record sessionRecord
	if err := s.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrSessionNotFound
		}
		return nil, err
	}
	return record.toDomain()
}

func (s *SessionStore) Delete(ctx context.Context, id string) error {
	if err := s.ensureDB(); err != nil {
		return err
	}
	result := s.db.WithContext(ctx).Delete(&sessionRecord{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrSessionNotFound
	}
	return nil
}

func (s *SessionStore) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	if err := s.ensureDB(); err != nil {
		return 0, err
	}
	result := s.db.WithContext(ctx).
		Where("expires_at IS NOT NULL AND expires_at <= ?", now.UTC()).
		Delete(&sessionRecord{})
	return result.RowsAffected, result.Error
}

func (s *SessionStore) ensureDB() error {
	if s == nil || s.db == nil {
		return errors.New("session store not configured")
	}
	return nil
}

func toSessionRecord(session *domain.Session) (sessionRecord, error) {
	if session == nil {
		return sessionRecord{}, errors.New("session is nil")
	}
	cart, err := json.Marshal(session.Cart)
	if err != nil {
		return sessionRecord{}, fmt.Errorf("encode cart: %w", err)
	}
	record := sessionRecord{
		ID:                session.ID,
		Cart:              string(cart),
		LastReceiptNumber: session.LastReceiptNumber,
		CreatedAt:         session.CreatedAt.UTC(),
		UpdatedAt:         session.UpdatedAt.UTC(),
	}
	if session.Cart != nil {
		record.CustomerID = session.Cart.CustomerID
	}
	if session.LastReceipt != nil {
		receipt, err := json.Marshal(session.LastReceipt)
		if err != nil {
			return sessionRecord{}, fmt.Errorf("encode receipt: %w", err)
		}
		record.LastReceipt = string(receipt)
	}
	if !session.ExpiresAt.IsZero() {
		expires := session.ExpiresAt.UTC()
		record.ExpiresAt = &expires
	}
	return record, nil
}

func (r sessionRecord) toDomain() (*domain.Session, error) {
	session := &domain.Session{
		ID:                r.ID,
		LastReceiptNumber: r.LastReceiptNumber,
		CreatedAt:         r.CreatedAt.UTC(),
		UpdatedAt:         r.UpdatedAt.UTC(),
	}
	if r.Cart != "" && r.Cart != "null" {
		var cart domain.Cart
		if err := json.Unmarshal([]byte(r.Cart), &cart); err != nil {
			return nil, fmt.Errorf("decode cart of session %s: %w", r.ID, err)
		}
		session.Cart = &cart
	}
	if r.LastReceipt != "" {
		var receipt domain.Receipt
		if err := json.Unmarshal([]byte(r.LastReceipt), &receipt); err != nil {
			return nil, fmt.Errorf("decode receipt of session %s: %w", r.ID, err)
		}
		session.LastReceipt = &receipt
	}
	if r.ExpiresAt != nil {
		session.ExpiresAt = r.ExpiresAt.UTC()
	}
	return session, nil
}
