// Package staticlink is the degraded payment backend used when no
// payment-provider credential model is available: every order gets the same
// constant payment URL, while order references and payment sessions are still
// generated locally for accounting and callback correlation.
package staticlink

import (
	"context"
	"errors"
	"time"

	"orderbot/internal/provider"
	"orderbot/internal/state"

	"github.com/rs/zerolog/log"
)

type Backend struct {
	url      string
	sessions *state.SessionStore
	now      func() time.Time
}

func New(url string, sessions *state.SessionStore) *Backend {
	return &Backend{url: url, sessions: sessions, now: time.Now}
}

func (b *Backend) Type() provider.BackendType { return provider.BackendStatic }

func (b *Backend) CreatePaymentLink(ctx context.Context, order state.Order) (*provider.PaymentLink, error) {
	if b.url == "" {
		log.Error().Msg("staticlink: no payment URL configured")
		return nil, errors.New("staticlink: no payment URL configured")
	}

	normalized, mobile, err := provider.ValidateMobile(order.Phone)
	if err != nil {
		log.Error().Err(err).Str("phone", order.Phone).Msg("staticlink: phone validation failed")
		return nil, err
	}

	orderRef := provider.OrderRef(b.now(), mobile)
	sess := b.sessions.Create(normalized, order)
	log.Info().
		Str("order_id", orderRef).
		Str("session_id", sess.ID).
		Msg("staticlink: payment session opened")

	return &provider.PaymentLink{
		Link:     b.url,
		OrderRef: orderRef,
		Amount:   provider.AmountString(order.Total),
	}, nil
}

// CheckStatus reports the local session view; the static link has no remote
// transaction API to query.
func (b *Backend) CheckStatus(_ context.Context, orderRef string) provider.Status {
	return provider.Status{
		Status:         "UNKNOWN",
		OrderRef:       orderRef,
		TransactionRef: "N/A",
		Message:        "status tracking not available for static payment links",
	}
}
