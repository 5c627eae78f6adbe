package ports

import (
	"context"
	"errors"
	"time"

	"github.com/Apurer/autoparts-pos/internal/domains/sales/domain"
)

var ErrSessionNotFound = errors.New("checkout session not found")

// SessionStore keeps checkout sessions between requests.
type SessionStore interface {
	Save(ctx context.Context, session *domain.Session) error
	Get(ctx context.Context, id string) (*domain.Session, error)
	Delete(ctx context.Context, id string) error
	// PurgeExpired removes sessions whose expiry is at or before now.
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
}
