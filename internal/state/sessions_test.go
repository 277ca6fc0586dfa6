package state

import (
	"testing"
	"time"
)

func TestSessionStoreLifecycle(t *testing.T) {
	s := NewSessionStore(time.Hour)

	sess := s.Create("919876543210", Order{Name: "Test", Total: 99})
	if sess.ID == "" || sess.Status != SessionPending {
		t.Fatalf("unexpected session: %+v", sess)
	}

	got := s.Get(sess.ID)
	if got == nil || got.Phone != "919876543210" {
		t.Fatalf("Get = %+v", got)
	}
	if s.Get("missing") != nil {
		t.Fatal("unknown id should miss")
	}

	if !s.Complete(sess.ID) {
		t.Fatal("Complete failed on pending session")
	}
	if s.Complete(sess.ID) {
		t.Fatal("Complete succeeded twice")
	}
	if got := s.Get(sess.ID); got.Status != SessionCompleted {
		t.Fatalf("status = %s, want completed", got.Status)
	}
}

func TestSessionStoreSweep(t *testing.T) {
	s := NewSessionStore(30 * time.Minute)
	now := time.Now()
	s.now = func() time.Time { return now }

	done := s.Create("919876543210", Order{})
	_ = s.Create("919876543211", Order{})
	_ = s.Create("919876543212", Order{})
	s.Complete(done.ID)

	// Completed sessions go on the first sweep regardless of age.
	if n := s.SweepExpired(now); n != 1 {
		t.Fatalf("swept %d, want 1 completed", n)
	}

	// Pending sessions only expire past the TTL.
	if n := s.SweepExpired(now.Add(time.Hour)); n != 2 {
		t.Fatalf("swept %d, want 2 expired", n)
	}
	if s.Len() != 0 {
		t.Fatalf("Len = %d after sweeps", s.Len())
	}
}
