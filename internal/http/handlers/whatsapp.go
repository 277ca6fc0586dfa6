package handlers

import (
	"io"
	"net/http"

	"orderbot/internal/whatsapp"

	"github.com/rs/zerolog/log"
)

// VerifyWebhook answers the provider's GET verification handshake: echo
// hub.challenge iff hub.verify_token matches the configured secret.
func VerifyWebhook(verifyToken string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("hub.verify_token") != verifyToken {
			log.Warn().Msg("whatsapp webhook: verification with wrong token")
			http.Error(w, "Invalid token", http.StatusForbidden)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(q.Get("hub.challenge")))
	}
}

// InboundWebhook receives the provider event envelope and dispatches each
// message to the flow controller. Internal errors are logged, never surfaced:
// the provider retries on non-200, and a retry would replay the message.
func InboundWebhook(flow Flow) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"status": "error", "message": "read failed"})
			return
		}

		env, err := whatsapp.ParseWebhook(body)
		if err != nil {
			log.Error().Err(err).Msg("whatsapp webhook: malformed envelope")
			writeJSON(w, http.StatusInternalServerError, map[string]string{"status": "error", "message": "invalid payload"})
			return
		}

		env.EachMessage(func(m whatsapp.Message) {
			switch {
			case m.Type == "text" && m.Text != nil:
				flow.HandleText(r.Context(), m.From, m.Text.Body)

			case m.Type == "interactive" && m.Interactive != nil && m.Interactive.ButtonReply != nil:
				br := m.Interactive.ButtonReply
				flow.HandleButton(r.Context(), m.From, br.ID, br.Title)

			default:
				log.Debug().Str("type", m.Type).Str("from", m.From).Msg("whatsapp webhook: ignoring message type")
			}
		})

		writeJSON(w, http.StatusOK, map[string]string{"status": "success"})
	}
}
