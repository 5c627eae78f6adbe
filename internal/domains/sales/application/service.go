package application

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Apurer/autoparts-pos/internal/domains/sales/domain"
	"github.com/Apurer/autoparts-pos/internal/domains/sales/ports"
)

// DefaultSessionTTL is how long an idle checkout session survives.
const DefaultSessionTTL = 24 * time.Hour

// Service runs checkout sessions and sales reporting.
type Service struct {
	aggregator *Aggregator
	committer  ports.SaleCommitter
	sessions   ports.SessionStore
	customers  ports.Customers
	ledger     ports.Ledger
	ttl        time.Duration
	now        func() time.Time
	newID      func() string
	locks      sessionLocks
}

type Option func(*Service)

func WithSessionTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func WithIDGenerator(newID func() string) Option {
	return func(s *Service) {
		if newID != nil {
			s.newID = newID
		}
	}
}

func NewService(aggregator *Aggregator, committer ports.SaleCommitter, sessions ports.SessionStore, customers ports.Customers, ledger ports.Ledger, opts ...Option) *Service {
	s := &Service{
		aggregator: aggregator,
		committer:  committer,
		sessions:   sessions,
		customers:  customers,
		ledger:     ledger,
		ttl:        DefaultSessionTTL,
		now:        time.Now,
		newID:      uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// StartSession opens a checkout session with an empty cart for the named customer.
func (s *Service) StartSession(ctx context.Context, customerName string) (*domain.Session, error) {
	customer, err := s.customers.GetCustomerByName(ctx, customerName)
	if err != nil {
		return nil, err
	}
	now := s.now().UTC()
	session := &domain.Session{
		ID:        s.newID(),
		Cart:      domain.NewCart(customer.ID, customer.FullName),
		CreatedAt: now,
	}
	session.Touch(now, s.ttl)
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *Service) GetSession(ctx context.Context, id string) (*domain.Session, error) {
	return s.load(ctx, id)
}

// AddLine adds a part to the session cart. A failed add leaves the stored
// cart exactly as it was.
func (s *Service) AddLine(ctx context.Context, sessionID string, input ports.AddLineInput) (*domain.Session, error) {
	unlock := s.lock(sessionID)
	defer unlock()

	session, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	cart, err := s.aggregator.AddLine(ctx, session.Cart, nil, input)
	if err != nil {
		return nil, err
	}
	session.Cart = cart
	return s.save(ctx, session)
}

func (s *Service) ClearCart(ctx context.Context, sessionID string) (*domain.Session, error) {
	unlock := s.lock(sessionID)
	defer unlock()

	session, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	session.Cart = s.aggregator.Clear(session.Cart)
	return s.save(ctx, session)
}

// Checkout commits the session cart. On success the cart is emptied and the
// receipt remembered; on any failure the cart is kept for correction or retry.
func (s *Service) Checkout(ctx context.Context, sessionID string) (*domain.Receipt, error) {
	unlock := s.lock(sessionID)
	defer unlock()

	session, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	receipt, err := s.committer.Commit(ctx, ports.CommitRequest{
		CommitID:              s.newID(),
		Cart:                  session.Cart,
		PreviousReceiptNumber: session.LastReceiptNumber,
	})
	if err != nil {
		return nil, err
	}

	session.Cart = s.aggregator.Clear(session.Cart)
	session.LastReceiptNumber = receipt.Number
	session.LastReceipt = receipt
	if _, err := s.save(ctx, session); err != nil {
		return receipt, sessionSyncError(receipt.Number, err)
	}
	return receipt, nil
}

func (s *Service) load(ctx context.Context, id string) (*domain.Session, error) {
	session, err := s.sessions.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if session.Expired(s.now()) {
		return nil, ports.ErrSessionNotFound
	}
	if session.Cart == nil {
		session.Cart = domain.NewCart(0, "")
	}
	return session, nil
}

func (s *Service) save(ctx context.Context, session *domain.Session) (*domain.Session, error) {
	session.Touch(s.now().UTC(), s.ttl)
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// lock serialises operations on one session within this process.
func (s *Service) lock(sessionID string) func() {
	return s.locks.acquire(sessionID)
}

var _ ports.Service = (*Service)(nil)
