// Package whatsapp is the client for the WhatsApp Business Cloud API: plain
// text, call-to-action links and interactive reply buttons, each with a text
// fallback when the richer type fails to deliver.
package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"orderbot/internal/config"

	"github.com/rs/zerolog/log"
)

const maxButtonTitle = 20

type Client struct {
	cfg  config.WhatsAppCfg
	http *http.Client
}

func New(cfg config.WhatsAppCfg) *Client {
	return &Client{cfg: cfg, http: &http.Client{Timeout: 10 * time.Second}}
}

func (c *Client) messagesURL() string {
	return c.cfg.APIBase + "/" + c.cfg.PhoneID + "/messages"
}

// SendText posts a plain text message. Success iff the API returns HTTP 200.
func (c *Client) SendText(ctx context.Context, phone, message string) bool {
	return c.post(ctx, map[string]any{
		"messaging_product": "whatsapp",
		"to":                phone,
		"type":              "text",
		"text":              map[string]any{"body": message},
	})
}

// SendCTA posts a call-to-action link message. On any failure it falls back
// to a text message with the URL appended inline; the fallback is always
// attempted.
func (c *Client) SendCTA(ctx context.Context, phone, message, buttonLabel, url string) bool {
	ok := c.post(ctx, map[string]any{
		"messaging_product": "whatsapp",
		"to":                phone,
		"type":              "interactive",
		"interactive": map[string]any{
			"type": "cta_url",
			"body": map[string]any{"text": message},
			"action": map[string]any{
				"name": "cta_url",
				"parameters": map[string]any{
					"display_text": buttonLabel,
					"url":          url,
				},
			},
		},
	})
	if ok {
		return true
	}
	fallback := fmt.Sprintf("%s\n\n🌐 %s: %s", message, buttonLabel, url)
	return c.SendText(ctx, phone, fallback)
}

// SendButtons posts interactive reply buttons with ids btn_1..btn_N in list
// order, titles truncated to 20 characters. On failure it falls back to a
// numbered text list.
func (c *Client) SendButtons(ctx context.Context, phone, message string, buttons []string) bool {
	objs := make([]map[string]any, 0, len(buttons))
	for i, title := range buttons {
		if len(title) > maxButtonTitle {
			title = title[:maxButtonTitle]
		}
		objs = append(objs, map[string]any{
			"type": "reply",
			"reply": map[string]any{
				"id":    fmt.Sprintf("btn_%d", i+1),
				"title": title,
			},
		})
	}

	ok := c.post(ctx, map[string]any{
		"messaging_product": "whatsapp",
		"to":                phone,
		"type":              "interactive",
		"interactive": map[string]any{
			"type":   "button",
			"body":   map[string]any{"text": message},
			"action": map[string]any{"buttons": objs},
		},
	})
	if ok {
		return true
	}
	return c.sendButtonFallback(ctx, phone, message, buttons)
}

func (c *Client) sendButtonFallback(ctx context.Context, phone, message string, buttons []string) bool {
	out := message + "\n\n"
	for i, b := range buttons {
		out += fmt.Sprintf("%d. %s\n", i+1, b)
	}
	out += "\nReply with the number."
	return c.SendText(ctx, phone, out)
}

// post sends a messages-API payload; network errors are absorbed and logged.
func (c *Client) post(ctx context.Context, payload map[string]any) bool {
	b, err := json.Marshal(payload)
	if err != nil {
		log.Error().Err(err).Msg("whatsapp: marshal payload failed")
		return false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.messagesURL(), bytes.NewReader(b))
	if err != nil {
		log.Error().Err(err).Msg("whatsapp: build request failed")
		return false
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.Token)

	res, err := c.http.Do(req)
	if err != nil {
		log.Error().Err(err).Msg("whatsapp: send failed")
		return false
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(res.Body)
		log.Error().
			Int("status", res.StatusCode).
			Str("body", string(body)).
			Msg("whatsapp: API rejected message")
		return false
	}
	return true
}
