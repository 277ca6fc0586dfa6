package httpx

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"orderbot/internal/config"
	"orderbot/internal/provider"
	"orderbot/internal/state"
)

type nopFlow struct{ callbacks int }

func (n *nopFlow) HandleOrder(ctx context.Context, order state.Order) bool { return true }
func (n *nopFlow) HandleButton(ctx context.Context, phone, id, text string) bool {
	return true
}
func (n *nopFlow) HandleText(ctx context.Context, phone, body string) bool { return true }
func (n *nopFlow) HandlePaymentCallback(ctx context.Context, ref, status, amount string) bool {
	n.callbacks++
	return true
}

func testRouter(f *nopFlow) http.Handler {
	return NewRouter(RouterDependencies{
		Config: config.Cfg{
			App:      config.AppCfg{StorefrontURL: "https://shop.example.com"},
			WhatsApp: config.WhatsAppCfg{VerifyToken: "sekrit"},
		},
		Flow:    f,
		Backend: provider.BackendPayo,
	})
}

func TestRouterHealth(t *testing.T) {
	w := httptest.NewRecorder()
	testRouter(&nopFlow{}).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), "healthy") {
		t.Fatalf("body = %q", w.Body.String())
	}
}

func TestRouterVerificationHandshake(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/webhook/whatsapp?hub.verify_token=sekrit&hub.challenge=777", nil)
	testRouter(&nopFlow{}).ServeHTTP(w, req)

	if w.Code != http.StatusOK || w.Body.String() != "777" {
		t.Fatalf("status=%d body=%q", w.Code, w.Body.String())
	}
}

func TestRouterLegacyCallbackAlias(t *testing.T) {
	f := &nopFlow{}
	r := testRouter(f)

	for _, path := range []string{"/payment/callback", "/webhook/payo-callback"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, path+"?order_id=ORD1&status=SUCCESS", nil)
		r.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Errorf("%s: status = %d, want 200", path, w.Code)
		}
	}
	if f.callbacks != 2 {
		t.Fatalf("callbacks = %d, want both paths dispatched", f.callbacks)
	}
}
