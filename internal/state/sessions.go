package state

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

type SessionStatus string

const (
	SessionPending   SessionStatus = "pending"
	SessionCompleted SessionStatus = "completed"
)

// PaymentSession records a locally generated payment attempt for the
// static-link backend, where the provider assigns no reference of its own.
type PaymentSession struct {
	ID        string
	Phone     string
	Order     Order
	Status    SessionStatus
	CreatedAt time.Time
}

// SessionStore keeps payment sessions keyed by generated id. Completed and
// expired sessions are removed by the sweeper; the source left them behind
// forever.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]PaymentSession
	ttl      time.Duration
	now      func() time.Time
}

func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{
		sessions: make(map[string]PaymentSession),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Create opens a pending session and returns it.
func (s *SessionStore) Create(phone string, order Order) PaymentSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := PaymentSession{
		ID:        uuid.NewString(),
		Phone:     phone,
		Order:     order,
		Status:    SessionPending,
		CreatedAt: s.now(),
	}
	s.sessions[sess.ID] = sess
	return sess
}

// Get returns a copy of the session, or nil when unknown.
func (s *SessionStore) Get(id string) *PaymentSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil
	}
	cp := sess
	return &cp
}

// Complete marks a pending session completed; it reports whether the session
// existed and was still pending.
func (s *SessionStore) Complete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok || sess.Status != SessionPending {
		return false
	}
	sess.Status = SessionCompleted
	s.sessions[id] = sess
	return true
}

// Len reports the number of stored sessions.
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// SweepExpired drops completed sessions and pending ones older than the TTL.
func (s *SessionStore) SweepExpired(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for id, sess := range s.sessions {
		if sess.Status == SessionCompleted || (s.ttl > 0 && now.Sub(sess.CreatedAt) > s.ttl) {
			delete(s.sessions, id)
			n++
		}
	}
	return n
}
