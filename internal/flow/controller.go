// Package flow is the order/payment conversation controller: it receives
// inbound events (sheet orders, chat messages, button clicks, payment
// callbacks), drives the stage transitions and sends the outbound messages.
// Every external failure is absorbed here; the worst observable outcome is a
// generic customer-facing message.
package flow

import (
	"context"
	"strings"
	"time"

	"orderbot/internal/phone"
	"orderbot/internal/provider"
	"orderbot/internal/state"

	"github.com/rs/zerolog/log"
)

// Messenger is the outbound chat surface the controller talks through.
type Messenger interface {
	SendText(ctx context.Context, phone, message string) bool
	SendCTA(ctx context.Context, phone, message, buttonLabel, url string) bool
	SendButtons(ctx context.Context, phone, message string, buttons []string) bool
}

type Controller struct {
	store         state.Store
	sessions      *state.SessionStore
	messenger     Messenger
	payments      provider.Backend
	storefrontURL string
	supportPhone  string
	now           func() time.Time
}

func New(store state.Store, sessions *state.SessionStore, m Messenger, payments provider.Backend, storefrontURL, supportPhone string) *Controller {
	return &Controller{
		store:         store,
		sessions:      sessions,
		messenger:     m,
		payments:      payments,
		storefrontURL: storefrontURL,
		supportPhone:  supportPhone,
		now:           time.Now,
	}
}

// HandleOrder processes a new order from the external order source: it sends
// the confirmation prompt and stores the awaiting-confirmation entry,
// unconditionally overwriting any prior flow for that phone.
func (c *Controller) HandleOrder(ctx context.Context, order state.Order) bool {
	normalized := phone.Normalize(order.Phone)
	if normalized == "" {
		log.Error().Str("phone", order.Phone).Msg("flow: order rejected, phone failed to normalize")
		return false
	}
	if order.Timestamp == "" {
		order.Timestamp = c.now().Format("2006-01-02 15:04")
	}

	if err := c.store.Put(ctx, normalized, state.Entry{
		Stage: state.StageAwaitingConfirmation,
		Order: order,
	}); err != nil {
		log.Error().Err(err).Str("phone", normalized).Msg("flow: store order state failed")
		return false
	}

	log.Info().Str("phone", normalized).Str("name", order.Name).Msg("flow: order confirmation sent")
	return c.messenger.SendButtons(ctx, normalized, confirmationMessage(order), []string{btnEdit, btnConfirm})
}

// HandleButton processes an interactive button reply. Edit and Confirm are
// only valid from the awaiting-confirmation stage; anything else gets the
// session-expired prompt.
func (c *Controller) HandleButton(ctx context.Context, rawPhone, buttonID, buttonText string) bool {
	normalized := phone.Normalize(rawPhone)
	if normalized == "" {
		log.Error().Str("phone", rawPhone).Msg("flow: button from unnormalizable phone")
		return false
	}

	entry, err := c.store.Get(ctx, normalized)
	if err != nil {
		log.Error().Err(err).Str("phone", normalized).Msg("flow: state lookup failed")
		entry = nil
	}
	if entry == nil || entry.Stage != state.StageAwaitingConfirmation {
		c.messenger.SendText(ctx, normalized, msgSessionExpired)
		return true
	}

	title := strings.ToLower(buttonText)
	switch {
	case buttonID == "btn_1" || strings.Contains(title, "edit"):
		c.messenger.SendCTA(ctx, normalized, msgEditOrder, "Visit Website", c.storefrontURL)
		_ = c.store.Delete(ctx, normalized)
		return true

	case buttonID == "btn_2" || strings.Contains(title, "confirm"):
		return c.confirmOrder(ctx, normalized, entry.Order)

	default:
		log.Warn().Str("button_id", buttonID).Str("phone", normalized).Msg("flow: unrecognized button in confirmation stage")
		return false
	}
}

func (c *Controller) confirmOrder(ctx context.Context, normalized string, order state.Order) bool {
	link, err := c.payments.CreatePaymentLink(ctx, order)
	if err != nil {
		// Flow aborts; the customer must place a fresh order. No retry.
		c.messenger.SendText(ctx, normalized, paymentErrorMessage(c.supportPhone))
		_ = c.store.Delete(ctx, normalized)
		log.Error().Err(err).Str("phone", normalized).Msg("flow: payment link creation failed, flow aborted")
		return false
	}

	ok := c.messenger.SendCTA(ctx, normalized, confirmedMessage(order, link.OrderRef, c.supportPhone), "💳 Pay Now", link.Link)

	if err := c.store.Put(ctx, normalized, state.Entry{
		Stage:       state.StagePaymentPending,
		Order:       order,
		PaymentRef:  link.OrderRef,
		PaymentLink: link.Link,
	}); err != nil {
		log.Error().Err(err).Str("phone", normalized).Msg("flow: store payment state failed")
	}

	log.Info().Str("phone", normalized).Str("order_id", link.OrderRef).Msg("flow: payment link sent")
	return ok
}

// HandleText dispatches a plain text message. In-flow digit/keyword shortcuts
// take priority, then greeting, menu, status, help, and the default command
// list — substring matched, case-insensitive, first match wins. None of the
// keyword branches mutate state.
func (c *Controller) HandleText(ctx context.Context, rawPhone, body string) bool {
	msg := strings.ToLower(strings.TrimSpace(body))
	normalized := phone.Normalize(rawPhone)
	if normalized == "" {
		log.Error().Str("phone", rawPhone).Msg("flow: text from unnormalizable phone")
		return false
	}

	entry, err := c.store.Get(ctx, normalized)
	if err != nil {
		log.Error().Err(err).Str("phone", normalized).Msg("flow: state lookup failed")
		entry = nil
	}

	if entry != nil && entry.Stage == state.StageAwaitingConfirmation {
		if strings.Contains(msg, "1") || strings.Contains(msg, "edit") {
			return c.HandleButton(ctx, rawPhone, "btn_1", "edit")
		}
		if strings.Contains(msg, "2") || strings.Contains(msg, "confirm") {
			return c.HandleButton(ctx, rawPhone, "btn_2", "confirm")
		}
	}

	switch {
	case containsAny(msg, "hi", "hello", "hey", "hy"):
		c.messenger.SendCTA(ctx, normalized, msgWelcome, "Order Now", c.storefrontURL)

	case strings.Contains(msg, "menu"):
		c.messenger.SendCTA(ctx, normalized, msgMenu, "View Menu", c.storefrontURL)

	case strings.Contains(msg, "status") || strings.Contains(msg, "payment"):
		if entry != nil && entry.Stage == state.StagePaymentPending && entry.PaymentRef != "" {
			st := c.payments.CheckStatus(ctx, entry.PaymentRef)
			c.messenger.SendText(ctx, normalized, statusMessage(entry.PaymentRef, st, c.supportPhone))
			return true
		}
		c.messenger.SendText(ctx, normalized, statusPrompt(c.supportPhone))

	case strings.Contains(msg, "help") || strings.Contains(msg, "support"):
		c.messenger.SendText(ctx, normalized, helpMessage(c.supportPhone))

	default:
		c.messenger.SendText(ctx, normalized, msgDefault)
	}
	return true
}

// HandlePaymentCallback correlates an out-of-band payment notification back to
// the owning phone. Success deletes the flow and sends the being-prepared
// message; failed/pending notify without deleting; unknown references are
// logged only. It reports whether a customer was notified.
func (c *Controller) HandlePaymentCallback(ctx context.Context, ref, status, amount string) bool {
	owner := c.findOwner(ctx, ref)

	switch strings.ToUpper(status) {
	case "SUCCESS":
		if owner == "" {
			log.Warn().Str("ref", ref).Msg("flow: payment callback for unknown reference")
			return false
		}
		if c.sessions != nil {
			c.sessions.Complete(ref)
		}
		c.messenger.SendText(ctx, owner, paymentSuccessMessage(ref, amount, c.supportPhone))
		_ = c.store.Delete(ctx, owner)
		log.Info().Str("ref", ref).Str("phone", owner).Msg("flow: payment confirmed, flow complete")
		return true

	case "FAILED":
		if owner == "" {
			return false
		}
		c.messenger.SendText(ctx, owner, paymentFailedMessage(ref, c.supportPhone))
		return true

	case "PENDING":
		if owner == "" {
			return false
		}
		c.messenger.SendText(ctx, owner, paymentPendingMessage(ref, c.supportPhone))
		return true

	default:
		log.Warn().Str("ref", ref).Str("status", status).Msg("flow: payment callback with unrecognized status")
		return false
	}
}

// findOwner resolves a payment reference to a phone, first through the state
// store's index, then through the static backend's session store.
func (c *Controller) findOwner(ctx context.Context, ref string) string {
	phoneKey, _, err := c.store.FindByPaymentRef(ctx, ref)
	if err != nil {
		log.Error().Err(err).Str("ref", ref).Msg("flow: reference lookup failed")
	}
	if phoneKey != "" {
		return phoneKey
	}
	if c.sessions != nil {
		if sess := c.sessions.Get(ref); sess != nil {
			return sess.Phone
		}
	}
	return ""
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
