// Package payo integrates the Pay0.shop payment link API: form-encoded
// requests, a boolean success flag in the JSON body, and a payment URL in the
// result.
package payo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"orderbot/internal/provider"
	"orderbot/internal/state"

	"github.com/rs/zerolog/log"
)

const (
	createTimeout = 15 * time.Second
	statusTimeout = 10 * time.Second
	maxRemarkLen  = 100
)

var errNoCredential = errors.New("payo: API key not configured")

type Backend struct {
	baseURL     string
	userToken   string
	redirectURL string
	http        *http.Client
	now         func() time.Time
}

func New(baseURL, userToken, redirectURL string) *Backend {
	return &Backend{
		baseURL:     baseURL,
		userToken:   userToken,
		redirectURL: redirectURL,
		http:        &http.Client{Timeout: createTimeout},
		now:         time.Now,
	}
}

func (b *Backend) Type() provider.BackendType { return provider.BackendPayo }

// createResp is the provider's create-order response shape.
type createResp struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Result  struct {
		PaymentURL string `json:"payment_url"`
	} `json:"result"`
}

func (b *Backend) CreatePaymentLink(ctx context.Context, order state.Order) (*provider.PaymentLink, error) {
	if b.userToken == "" {
		log.Error().Msg("payo: create link refused, API key not configured")
		return nil, errNoCredential
	}

	normalized, mobile, err := provider.ValidateMobile(order.Phone)
	if err != nil {
		log.Error().Err(err).Str("phone", order.Phone).Msg("payo: phone validation failed")
		return nil, err
	}

	amount := provider.AmountString(order.Total)
	orderRef := provider.OrderRef(b.now(), mobile)

	name := order.Name
	if name == "" {
		name = "Customer"
	}
	items := order.FoodItems
	if items == "" {
		items = "Food Order"
	}
	if len(items) > maxRemarkLen {
		items = items[:maxRemarkLen]
	}

	form := url.Values{
		"customer_mobile": {mobile},
		"customer_name":   {name},
		"user_token":      {b.userToken},
		"amount":          {amount},
		"order_id":        {orderRef},
		"redirect_url":    {b.redirectURL},
		"remark1":         {items},
		"remark2":         {"Phone: " + normalized},
	}

	log.Info().
		Str("order_id", orderRef).
		Str("amount", amount).
		Str("mobile", mobile).
		Msg("payo: creating payment link")

	var out createResp
	if err := b.postForm(ctx, "/api/create-order", form, &out); err != nil {
		log.Error().Err(err).Str("order_id", orderRef).Msg("payo: create order failed")
		return nil, err
	}
	if !out.Status {
		log.Error().Str("order_id", orderRef).Str("message", out.Message).Msg("payo: API error")
		return nil, fmt.Errorf("payo: %s", firstNonEmpty(out.Message, "unknown error"))
	}
	if out.Result.PaymentURL == "" {
		log.Error().Str("order_id", orderRef).Msg("payo: no payment_url in response")
		return nil, errors.New("payo: no payment_url in response")
	}

	return &provider.PaymentLink{
		Link:     out.Result.PaymentURL,
		OrderRef: orderRef,
		Amount:   amount,
	}, nil
}

// statusResp is the provider's check-order-status response shape.
type statusResp struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Result  struct {
		TxnStatus string `json:"txnStatus"`
		OrderID   string `json:"orderId"`
		Amount    string `json:"amount"`
		Date      string `json:"date"`
		UTR       string `json:"utr"`
	} `json:"result"`
}

func (b *Backend) CheckStatus(ctx context.Context, orderRef string) provider.Status {
	ctx, cancel := context.WithTimeout(ctx, statusTimeout)
	defer cancel()

	form := url.Values{
		"user_token": {b.userToken},
		"order_id":   {orderRef},
	}

	var out statusResp
	if err := b.postForm(ctx, "/api/check-order-status", form, &out); err != nil {
		log.Error().Err(err).Str("order_id", orderRef).Msg("payo: status check failed")
		return provider.Status{Status: provider.StatusError, Message: err.Error()}
	}
	if !out.Status {
		return provider.Status{Status: provider.StatusError, Message: firstNonEmpty(out.Message, "unknown error")}
	}

	st := out.Result.TxnStatus
	if st == "" {
		st = "UNKNOWN"
	}
	utr := out.Result.UTR
	if utr == "" {
		utr = "N/A"
	}
	return provider.Status{
		Status:         st,
		OrderRef:       out.Result.OrderID,
		Amount:         out.Result.Amount,
		Date:           out.Result.Date,
		TransactionRef: utr,
	}
}

func (b *Backend) postForm(ctx context.Context, endpoint string, form url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.baseURL+endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	res, err := b.http.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(res.Body)
		return fmt.Errorf("payo: HTTP %d; body=%s", res.StatusCode, string(body))
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("payo: bad JSON response: %w", err)
	}
	return nil
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}
