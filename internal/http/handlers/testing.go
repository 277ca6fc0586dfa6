package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"orderbot/internal/state"
)

// Test-only endpoints for exercising the flow by hand, e.g. with curl before
// the spreadsheet trigger or payment provider are pointed at a deployment.
// Mounted under /test and not part of the production contract.

// TestOrder injects a sample order as if it came from the spreadsheet.
// Any field may be overridden in the request body.
func TestOrder(flow Flow) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		order := state.Order{
			Name:      "Test Customer",
			Phone:     "9876543210",
			FoodItems: "Pizza, Coke",
			Quantity:  "1, 2",
			Total:     99,
			Timestamp: time.Now().Format("2006-01-02 15:04"),
		}
		var override struct {
			Name      flexString `json:"name"`
			Phone     flexString `json:"phone"`
			FoodItems flexString `json:"foodItems"`
			Quantity  flexString `json:"quantity"`
			Total     flexFloat  `json:"total"`
		}
		if r.Body != nil && json.NewDecoder(r.Body).Decode(&override) == nil {
			if override.Name != "" {
				order.Name = string(override.Name)
			}
			if override.Phone != "" {
				order.Phone = string(override.Phone)
			}
			if override.FoodItems != "" {
				order.FoodItems = string(override.FoodItems)
			}
			if override.Quantity != "" {
				order.Quantity = string(override.Quantity)
			}
			if override.Total != 0 {
				order.Total = float64(override.Total)
			}
		}

		sent := flow.HandleOrder(r.Context(), order)
		writeJSON(w, http.StatusOK, map[string]any{
			"success": sent,
			"message": "test order dispatched",
			"order":   order,
		})
	}
}

// TestPayment jumps straight to the payment step: injects a sample order and
// immediately confirms it, so the pay CTA goes out without a manual click.
func TestPayment(flow Flow) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Phone flexString `json:"phone"`
		}
		phone := "9876543210"
		if r.Body != nil && json.NewDecoder(r.Body).Decode(&body) == nil && body.Phone != "" {
			phone = string(body.Phone)
		}

		order := state.Order{
			Name:      "Test Customer",
			Phone:     phone,
			FoodItems: "Masala Dosa",
			Quantity:  "1",
			Total:     99,
			Timestamp: time.Now().Format("2006-01-02 15:04"),
		}
		if !flow.HandleOrder(r.Context(), order) {
			writeJSON(w, http.StatusOK, map[string]any{"success": false, "message": "order injection failed"})
			return
		}
		confirmed := flow.HandleButton(r.Context(), phone, "btn_2", "confirm")
		writeJSON(w, http.StatusOK, map[string]any{
			"success": confirmed,
			"message": "test payment link dispatched",
		})
	}
}

// TestManualPayment renders the success or error page a customer would see
// after a payment redirect. ?result=error shows the failure variant.
func TestManualPayment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("result") == "error" {
			renderPaymentPage(w, false, "")
			return
		}
		renderPaymentPage(w, true, "ORD00000000000000TEST")
	}
}
