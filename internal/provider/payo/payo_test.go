package payo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"orderbot/internal/provider"
	"orderbot/internal/state"
)

func testOrder() state.Order {
	return state.Order{Name: "Test", Phone: "9876543210", FoodItems: "Masala Dosa", Total: 99}
}

func TestCreatePaymentLink(t *testing.T) {
	var gotForm url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/create-order" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/x-www-form-urlencoded" {
			t.Errorf("Content-Type = %q", ct)
		}
		_ = r.ParseForm()
		gotForm = r.PostForm
		w.Write([]byte(`{"status": true, "result": {"payment_url": "https://pay0.shop/pay/abc"}}`))
	}))
	defer srv.Close()

	b := New(srv.URL, "secret-token", "https://shop.example")
	b.now = func() time.Time { return time.Date(2025, 1, 2, 13, 4, 5, 0, time.UTC) }

	link, err := b.CreatePaymentLink(context.Background(), testOrder())
	if err != nil {
		t.Fatal(err)
	}
	if link.Link != "https://pay0.shop/pay/abc" {
		t.Errorf("link = %q", link.Link)
	}
	if link.OrderRef != "ORD202501021304053210" {
		t.Errorf("orderRef = %q", link.OrderRef)
	}
	if link.Amount != "99" {
		t.Errorf("amount = %q", link.Amount)
	}

	if gotForm.Get("customer_mobile") != "9876543210" {
		t.Errorf("customer_mobile = %q", gotForm.Get("customer_mobile"))
	}
	if gotForm.Get("user_token") != "secret-token" {
		t.Errorf("user_token = %q", gotForm.Get("user_token"))
	}
	if gotForm.Get("amount") != "99" {
		t.Errorf("amount field = %q", gotForm.Get("amount"))
	}
	if gotForm.Get("redirect_url") != "https://shop.example" {
		t.Errorf("redirect_url = %q", gotForm.Get("redirect_url"))
	}
	if !strings.Contains(gotForm.Get("remark2"), "919876543210") {
		t.Errorf("remark2 = %q", gotForm.Get("remark2"))
	}
}

func TestCreatePaymentLinkTruncatesAmount(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		if got := r.PostForm.Get("amount"); got != "99" {
			t.Errorf("amount = %q, want 99", got)
		}
		w.Write([]byte(`{"status": true, "result": {"payment_url": "https://x"}}`))
	}))
	defer srv.Close()

	b := New(srv.URL, "tok", "")
	order := testOrder()
	order.Total = 99.75
	if _, err := b.CreatePaymentLink(context.Background(), order); err != nil {
		t.Fatal(err)
	}
}

func TestCreatePaymentLinkNoCredential(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	b := New(srv.URL, "", "")
	if _, err := b.CreatePaymentLink(context.Background(), testOrder()); err == nil {
		t.Fatal("expected failure without API key")
	}
	if called {
		t.Fatal("made an outbound call without a credential")
	}
}

func TestCreatePaymentLinkInvalidMobileNoCall(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	b := New(srv.URL, "tok", "")
	order := testOrder()
	order.Phone = "12345678"
	if _, err := b.CreatePaymentLink(context.Background(), order); err == nil {
		t.Fatal("expected validation failure for 8-digit mobile")
	}
	if called {
		t.Fatal("made an outbound call despite invalid mobile")
	}
}

func TestCreatePaymentLinkUniformFailures(t *testing.T) {
	cases := []struct {
		name string
		resp func(w http.ResponseWriter)
	}{
		{"http error", func(w http.ResponseWriter) { http.Error(w, "boom", http.StatusBadGateway) }},
		{"api status false", func(w http.ResponseWriter) { w.Write([]byte(`{"status": false, "message": "invalid key"}`)) }},
		{"missing payment_url", func(w http.ResponseWriter) { w.Write([]byte(`{"status": true, "result": {}}`)) }},
		{"unparsable json", func(w http.ResponseWriter) { w.Write([]byte(`not json`)) }},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				c.resp(w)
			}))
			defer srv.Close()

			b := New(srv.URL, "tok", "")
			if link, err := b.CreatePaymentLink(context.Background(), testOrder()); err == nil || link != nil {
				t.Fatalf("want uniform failure, got link=%v err=%v", link, err)
			}
		})
	}
}

func TestCheckStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/check-order-status" {
			t.Errorf("path = %q", r.URL.Path)
		}
		_ = r.ParseForm()
		if got := r.PostForm.Get("order_id"); got != "ORD123" {
			t.Errorf("order_id = %q", got)
		}
		w.Write([]byte(`{"status": true, "result": {"txnStatus": "SUCCESS", "orderId": "ORD123", "amount": "99", "date": "2025-01-02", "utr": "UTR001"}}`))
	}))
	defer srv.Close()

	b := New(srv.URL, "tok", "")
	st := b.CheckStatus(context.Background(), "ORD123")
	if st.Status != "SUCCESS" || st.TransactionRef != "UTR001" || st.OrderRef != "ORD123" {
		t.Fatalf("status = %+v", st)
	}
}

func TestCheckStatusErrorInBand(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	b := New(srv.URL, "tok", "")
	st := b.CheckStatus(context.Background(), "ORD123")
	if st.Status != provider.StatusError || st.Message == "" {
		t.Fatalf("status = %+v, want in-band ERROR", st)
	}
}
