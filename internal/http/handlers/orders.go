package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"orderbot/internal/state"

	"github.com/rs/zerolog/log"
)

type sheetOrder struct {
	Name      flexString `json:"name"`
	Phone     flexString `json:"phone"`
	FoodItems flexString `json:"foodItems"`
	Quantity  flexString `json:"quantity"`
	Total     flexFloat  `json:"total"`
}

type sheetPayload struct {
	Order     sheetOrder `json:"order"`
	Timestamp string     `json:"timestamp"`
}

type sheetResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp,omitempty"`
}

// SheetOrder accepts a new order pushed by the spreadsheet trigger. Name and
// phone are mandatory; the remaining fields tolerate both string and numeric
// JSON encodings.
func SheetOrder(flow Flow) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var p sheetPayload
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			log.Error().Err(err).Msg("sheet webhook: malformed payload")
			writeJSON(w, http.StatusInternalServerError, sheetResponse{Success: false, Message: "invalid JSON payload"})
			return
		}

		name := strings.TrimSpace(string(p.Order.Name))
		phone := strings.TrimSpace(string(p.Order.Phone))
		if name == "" || phone == "" {
			writeJSON(w, http.StatusBadRequest, sheetResponse{Success: false, Message: "name and phone are required"})
			return
		}

		order := state.Order{
			Name:      name,
			Phone:     phone,
			FoodItems: strings.TrimSpace(string(p.Order.FoodItems)),
			Quantity:  strings.TrimSpace(string(p.Order.Quantity)),
			Total:     float64(p.Order.Total),
			Timestamp: p.Timestamp,
		}

		sent := flow.HandleOrder(r.Context(), order)
		msg := "Order received, confirmation sent"
		if !sent {
			// Delivery failures are not the sheet's problem; it already
			// recorded the order.
			msg = "Order received"
		}
		writeJSON(w, http.StatusOK, sheetResponse{
			Success:   true,
			Message:   msg,
			Timestamp: time.Now().Format(time.RFC3339),
		})
	}
}
