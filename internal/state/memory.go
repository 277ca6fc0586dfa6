package state

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is the default single-process store: a mutex-guarded map plus a
// secondary paymentRef index so webhook deliveries racing on the same phone
// serialize instead of losing updates.
type MemoryStore struct {
	mu       sync.Mutex
	entries  map[string]Entry
	refIndex map[string]string // payment ref -> phone
	ttl      time.Duration
	now      func() time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		entries:  make(map[string]Entry),
		refIndex: make(map[string]string),
		ttl:      ttl,
		now:      time.Now,
	}
}

func (s *MemoryStore) expired(e Entry) bool {
	return s.ttl > 0 && s.now().Sub(e.CreatedAt) > s.ttl
}

func (s *MemoryStore) Get(_ context.Context, phone string) (*Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[phone]
	if !ok {
		return nil, nil
	}
	if s.expired(e) {
		s.deleteLocked(phone)
		return nil, nil
	}
	cp := e
	return &cp, nil
}

func (s *MemoryStore) Put(_ context.Context, phone string, e Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if old, ok := s.entries[phone]; ok && old.PaymentRef != "" {
		delete(s.refIndex, old.PaymentRef)
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = s.now()
	}
	s.entries[phone] = e
	if e.PaymentRef != "" {
		s.refIndex[e.PaymentRef] = phone
	}
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, phone string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleteLocked(phone)
	return nil
}

func (s *MemoryStore) deleteLocked(phone string) {
	if e, ok := s.entries[phone]; ok && e.PaymentRef != "" {
		delete(s.refIndex, e.PaymentRef)
	}
	delete(s.entries, phone)
}

func (s *MemoryStore) FindByPaymentRef(_ context.Context, ref string) (string, *Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	phone, ok := s.refIndex[ref]
	if !ok {
		return "", nil, nil
	}
	e, ok := s.entries[phone]
	if !ok || s.expired(e) {
		// Index must never outlive its entry.
		delete(s.refIndex, ref)
		delete(s.entries, phone)
		return "", nil, nil
	}
	cp := e
	return phone, &cp, nil
}

// Len reports the number of live entries.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// SweepExpired evicts entries older than the TTL and returns how many were
// removed.
func (s *MemoryStore) SweepExpired(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ttl <= 0 {
		return 0
	}
	n := 0
	for phone, e := range s.entries {
		if now.Sub(e.CreatedAt) > s.ttl {
			s.deleteLocked(phone)
			n++
		}
	}
	return n
}
