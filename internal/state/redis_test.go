package state

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewRedisStore(client, time.Hour), mr
}

func TestRedisStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s, _ := newRedisStore(t)

	order := Order{Name: "Test", Phone: "9876543210", FoodItems: "Pizza", Total: 99}
	if err := s.Put(ctx, "919876543210", Entry{Stage: StageAwaitingConfirmation, Order: order}); err != nil {
		t.Fatal(err)
	}

	e, err := s.Get(ctx, "919876543210")
	if err != nil || e == nil {
		t.Fatalf("Get: %v, %v", e, err)
	}
	if e.Stage != StageAwaitingConfirmation || e.Order != order {
		t.Fatalf("round trip mismatch: %+v", e)
	}

	if err := s.Delete(ctx, "919876543210"); err != nil {
		t.Fatal(err)
	}
	if e, _ := s.Get(ctx, "919876543210"); e != nil {
		t.Fatal("entry survived delete")
	}
}

func TestRedisStorePaymentRefIndex(t *testing.T) {
	ctx := context.Background()
	s, _ := newRedisStore(t)

	if err := s.Put(ctx, "919876543210", Entry{Stage: StagePaymentPending, PaymentRef: "ORD1"}); err != nil {
		t.Fatal(err)
	}

	phone, e, err := s.FindByPaymentRef(ctx, "ORD1")
	if err != nil {
		t.Fatal(err)
	}
	if phone != "919876543210" || e == nil {
		t.Fatalf("FindByPaymentRef = %q, %+v", phone, e)
	}

	if phone, e, _ := s.FindByPaymentRef(ctx, "nope"); phone != "" || e != nil {
		t.Fatal("unknown ref should miss")
	}

	// Overwrite with a new ref retires the old index key.
	if err := s.Put(ctx, "919876543210", Entry{Stage: StagePaymentPending, PaymentRef: "ORD2"}); err != nil {
		t.Fatal(err)
	}
	if phone, _, _ := s.FindByPaymentRef(ctx, "ORD1"); phone != "" {
		t.Fatal("stale ref still indexed")
	}

	if err := s.Delete(ctx, "919876543210"); err != nil {
		t.Fatal(err)
	}
	if phone, _, _ := s.FindByPaymentRef(ctx, "ORD2"); phone != "" {
		t.Fatal("ref index outlived entry")
	}
}

func TestRedisStoreExpiry(t *testing.T) {
	ctx := context.Background()
	s, mr := newRedisStore(t)

	if err := s.Put(ctx, "919876543210", Entry{Stage: StagePaymentPending, PaymentRef: "ORD1"}); err != nil {
		t.Fatal(err)
	}

	mr.FastForward(2 * time.Hour)

	if e, _ := s.Get(ctx, "919876543210"); e != nil {
		t.Fatal("entry survived TTL")
	}
	if phone, _, _ := s.FindByPaymentRef(ctx, "ORD1"); phone != "" {
		t.Fatal("ref survived TTL")
	}
}
