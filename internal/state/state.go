// Package state holds the per-customer conversation state for the order flow.
// Entries are keyed by normalized phone number and live only for the duration
// of one order; absence of an entry means "no active order".
package state

import (
	"context"
	"time"
)

type Stage string

const (
	StageAwaitingConfirmation Stage = "awaiting_confirmation"
	StagePaymentPending       Stage = "payment_pending"
)

// Order is the snapshot captured when a confirmation is sent. It is immutable
// once stored for a given stage.
type Order struct {
	Name      string  `json:"name"`
	Phone     string  `json:"phone"`
	FoodItems string  `json:"foodItems"`
	Quantity  string  `json:"quantity"`
	Total     float64 `json:"total"`
	Timestamp string  `json:"timestamp"`
}

// Entry is one customer's in-progress flow.
type Entry struct {
	Stage       Stage     `json:"stage"`
	Order       Order     `json:"order"`
	PaymentRef  string    `json:"payment_ref,omitempty"`
	PaymentLink string    `json:"payment_link,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Store is the conversation state store. At most one entry exists per
// normalized phone number. Implementations keep the paymentRef->phone index
// consistent with the primary mapping on every Put and Delete, and treat
// expired entries exactly like absent ones.
type Store interface {
	// Get returns the entry for phone, or nil when none exists.
	Get(ctx context.Context, phone string) (*Entry, error)
	// Put stores the entry, unconditionally overwriting any prior one.
	Put(ctx context.Context, phone string, e Entry) error
	// Delete removes the entry; deleting an absent entry is not an error.
	Delete(ctx context.Context, phone string) error
	// FindByPaymentRef returns the phone and entry owning a payment
	// reference, or ("", nil) when unknown.
	FindByPaymentRef(ctx context.Context, ref string) (string, *Entry, error)
}
