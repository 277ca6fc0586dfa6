// Package provider defines the payment backend contract. Two backends exist:
// the Pay0-style dynamic link API and a static link for deployments without
// payment-provider credentials. One is selected at startup.
package provider

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"orderbot/internal/phone"
	"orderbot/internal/state"
)

type BackendType string

const (
	BackendPayo   BackendType = "payo"
	BackendStatic BackendType = "static"
)

// PaymentLink is the result of a successful link creation.
type PaymentLink struct {
	Link     string
	OrderRef string
	Amount   string // integer string, fractional part truncated
}

// Status is a transaction status passthrough. Errors are reported in-band:
// Status "ERROR" with a Message, never a Go error.
type Status struct {
	Status         string
	OrderRef       string
	Amount         string
	Date           string
	TransactionRef string
	Message        string
}

const StatusError = "ERROR"

// Backend creates payment links and answers status queries.
type Backend interface {
	Type() BackendType
	// CreatePaymentLink validates the order and obtains a payment link.
	// Validation failures and upstream failures both return a nil link with
	// an error; diagnostic detail goes to logs only.
	CreatePaymentLink(ctx context.Context, order state.Order) (*PaymentLink, error)
	// CheckStatus queries the transaction status for an order reference.
	CheckStatus(ctx context.Context, orderRef string) Status
}

// Choose resolves which backend to run: the configured one, degraded to the
// static link when the dynamic backend has no credential to work with.
func Choose(configured BackendType, userToken, staticURL string) BackendType {
	if configured == BackendStatic {
		return BackendStatic
	}
	if userToken == "" && staticURL != "" {
		return BackendStatic
	}
	return BackendPayo
}

// OrderRef generates a payment order reference: ORD + timestamp + last four
// digits of the mobile number. Unique assuming at most one order per customer
// per second.
func OrderRef(now time.Time, mobile string) string {
	return "ORD" + now.Format("20060102150405") + phone.Last4(mobile)
}

// AmountString coerces an order total to an integer string, truncating any
// fractional component. Amounts are never sent as floating point.
func AmountString(total float64) string {
	return strconv.FormatInt(int64(total), 10)
}

// ValidateMobile derives the 10-digit local mobile from an order phone. Any
// other length is a hard validation failure; no call may be made after it.
func ValidateMobile(rawPhone string) (normalized, mobile string, err error) {
	normalized = phone.Normalize(rawPhone)
	if normalized == "" {
		return "", "", fmt.Errorf("invalid phone: %q", rawPhone)
	}
	mobile = phone.LocalMobile(normalized)
	if len(mobile) != 10 {
		return "", "", fmt.Errorf("invalid mobile number: %s", mobile)
	}
	return normalized, mobile, nil
}
