package httpx

import (
	"net/http"

	"orderbot/internal/config"
	"orderbot/internal/http/handlers"
	middlewarex "orderbot/internal/http/middleware"
	"orderbot/internal/provider"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// RouterDependencies holds all dependencies for the HTTP router
type RouterDependencies struct {
	Config  config.Cfg
	Flow    handlers.Flow
	Backend provider.BackendType
}

// NewRouter wires the endpoint surface: webhooks, the payment callback with
// its legacy alias, health, and the manual /test routes.
func NewRouter(deps RouterDependencies) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimw.RequestID)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	if len(deps.Config.App.AllowedOrigins) > 0 {
		r.Use(middlewarex.CORS(deps.Config.App.AllowedOrigins))
	}

	r.Get("/health", handlers.Health(deps.Config, deps.Backend))

	r.Route("/webhook", func(r chi.Router) {
		r.Post("/google-sheets", handlers.SheetOrder(deps.Flow))
		r.Get("/whatsapp", handlers.VerifyWebhook(deps.Config.WhatsApp.VerifyToken))
		r.Post("/whatsapp", handlers.InboundWebhook(deps.Flow))

		// Legacy callback path kept for providers configured before the
		// rename to /payment/callback.
		r.Post("/payo-callback", handlers.PaymentCallback(deps.Flow, deps.Config.App.StorefrontURL))
		r.Get("/payo-callback", handlers.PaymentCallback(deps.Flow, deps.Config.App.StorefrontURL))
	})

	r.Route("/payment", func(r chi.Router) {
		r.Post("/callback", handlers.PaymentCallback(deps.Flow, deps.Config.App.StorefrontURL))
		r.Get("/callback", handlers.PaymentCallback(deps.Flow, deps.Config.App.StorefrontURL))
	})

	r.Route("/test", func(r chi.Router) {
		r.Post("/order", handlers.TestOrder(deps.Flow))
		r.Post("/payment", handlers.TestPayment(deps.Flow))
		r.Get("/manual-payment", handlers.TestManualPayment())
	})

	return r
}
