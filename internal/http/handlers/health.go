package handlers

import (
	"net/http"
	"time"

	"orderbot/internal/config"
	"orderbot/internal/provider"
)

type healthResponse struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Backend   string            `json:"payment_backend"`
	Endpoints []string          `json:"endpoints"`
	Config    map[string]bool   `json:"config"`
	Secrets   map[string]string `json:"secrets"`
}

// Health reports liveness plus a configuration summary: which credentials are
// present (booleans and masked tails only, never values).
func Health(cfg config.Cfg, backend provider.BackendType) http.HandlerFunc {
	endpoints := []string{
		"POST /webhook/google-sheets",
		"GET /webhook/whatsapp",
		"POST /webhook/whatsapp",
		"POST /payment/callback",
		"GET /health",
	}
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, healthResponse{
			Status:    "healthy",
			Timestamp: time.Now().Format(time.RFC3339),
			Backend:   string(backend),
			Endpoints: endpoints,
			Config: map[string]bool{
				"whatsapp_token":    cfg.WhatsApp.Token != "",
				"whatsapp_phone_id": cfg.WhatsApp.PhoneID != "",
				"payment_token":     cfg.Payment.UserToken != "",
				"storefront_url":    cfg.App.StorefrontURL != "",
				"redis":             cfg.State.RedisAddr != "",
			},
			Secrets: map[string]string{
				"whatsapp_token": config.Masked(cfg.WhatsApp.Token, 4),
				"payment_token":  config.Masked(cfg.Payment.UserToken, 4),
			},
		})
	}
}
