package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

// paymentParams is the callback fields pulled out of whichever location the
// provider used. Providers disagree on field names, so every known alias is
// tried against query, form and JSON body in that order.
type paymentParams struct {
	Ref    string
	Status string
	Amount string
}

var refKeys = []string{"order_id", "orderId", "session_id"}

func extractPaymentParams(r *http.Request) paymentParams {
	var p paymentParams

	pick := func(get func(string) string) {
		if p.Ref == "" {
			for _, k := range refKeys {
				if v := strings.TrimSpace(get(k)); v != "" {
					p.Ref = v
					break
				}
			}
		}
		if p.Status == "" {
			if v := strings.TrimSpace(get("status")); v != "" {
				p.Status = v
			} else if v := strings.TrimSpace(get("txnStatus")); v != "" {
				p.Status = v
			}
		}
		if p.Amount == "" {
			p.Amount = strings.TrimSpace(get("amount"))
		}
	}

	q := r.URL.Query()
	pick(q.Get)

	if r.Method == http.MethodPost {
		ct := r.Header.Get("Content-Type")
		switch {
		case strings.Contains(ct, "application/json"):
			body, err := io.ReadAll(r.Body)
			if err == nil {
				var m map[string]any
				if json.Unmarshal(body, &m) == nil {
					pick(func(k string) string {
						switch v := m[k].(type) {
						case string:
							return v
						case float64:
							return strconv.FormatFloat(v, 'f', -1, 64)
						}
						return ""
					})
				}
			}
		default:
			if err := r.ParseForm(); err == nil {
				pick(r.PostForm.Get)
			}
		}
	}
	return p
}

func isSuccessStatus(status string) bool {
	switch strings.ToUpper(status) {
	case "SUCCESS", "COMPLETED", "PAID":
		return true
	}
	return false
}

// PaymentCallback handles the out-of-band notification from the payment
// provider. Recognized successes notify the customer and render a
// confirmation page; everything else — failures, pending, missing identifiers
// — lands the browser back on the storefront.
func PaymentCallback(flow Flow, storefrontURL string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p := extractPaymentParams(r)

		if p.Ref == "" {
			log.Warn().Str("path", r.URL.Path).Msg("payment callback: no order reference in request")
			http.Redirect(w, r, storefrontURL, http.StatusFound)
			return
		}

		if isSuccessStatus(p.Status) {
			flow.HandlePaymentCallback(r.Context(), p.Ref, "SUCCESS", p.Amount)
			renderPaymentPage(w, true, p.Ref)
			return
		}

		log.Info().Str("ref", p.Ref).Str("status", p.Status).Msg("payment callback: non-success status")
		flow.HandlePaymentCallback(r.Context(), p.Ref, strings.ToUpper(p.Status), p.Amount)
		http.Redirect(w, r, storefrontURL, http.StatusFound)
	}
}
