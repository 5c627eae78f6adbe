package memory

import (
	"context"
	"sync"
	"time"

	"github.com/Apurer/autoparts-pos/internal/domains/sales/domain"
	"github.com/Apurer/autoparts-pos/internal/domains/sales/ports"
)

var _ ports.SessionStore = (*SessionStore)(nil)

// SessionStore keeps checkout sessions in process memory. Sessions are
// copied on the way in and out so callers never share a cart.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]domain.Session
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: map[string]domain.Session{}}
}

func (s *SessionStore) Save(_ context.Context, session *domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = copySession(session)
	return nil
}

func (s *SessionStore) Get(_ context.Context, id string) (*domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, ports.ErrSessionNotFound
	}
	out := copySession(&session)
	return &out, nil
}

func (s *SessionStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		return ports.ErrSessionNotFound
	}
	delete(s.sessions, id)
	return nil
}

func (s *SessionStore) PurgeExpired(_ context.Context, now time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var purged int64
	for id, session := range s.sessions {
		if session.Expired(now) {
			delete(s.sessions, id)
			purged++
		}
	}
	return purged, nil
}

func copySession(in *domain.Session) domain.Session {
	out := *in
	out.Cart = in.Cart.Clone()
	if in.LastReceipt != nil {
		receipt := *in.LastReceipt
		receipt.Lines = append([]domain.ReceiptLine(nil), in.LastReceipt.Lines...)
		out.LastReceipt = &receipt
	}
	return out
}
