package domain

import "time"

// Session is one till's checkout session. It owns the cart and remembers the
// last receipt so numbering can continue and the receipt can be re-printed.
type Session struct {
	ID                string
	Cart              *Cart
	LastReceiptNumber string
	LastReceipt       *Receipt
	ExpiresAt         time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Expired reports whether the session lapsed at now.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

// Touch pushes the expiry out by ttl from now.
func (s *Session) Touch(now time.Time, ttl time.Duration) {
	s.UpdatedAt = now
	if ttl > 0 {
		s.ExpiresAt = now.Add(ttl)
	}
}
