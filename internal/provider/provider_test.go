package provider

import (
	"regexp"
	"testing"
	"time"
)

func TestChoose(t *testing.T) {
	cases := []struct {
		configured BackendType
		token      string
		staticURL  string
		want       BackendType
	}{
		{BackendPayo, "tok", "", BackendPayo},
		{BackendPayo, "tok", "https://pay.example", BackendPayo},
		{BackendPayo, "", "https://pay.example", BackendStatic}, // degrade gracefully
		{BackendPayo, "", "", BackendPayo},                      // nothing to degrade to
		{BackendStatic, "tok", "https://pay.example", BackendStatic},
	}
	for _, c := range cases {
		if got := Choose(c.configured, c.token, c.staticURL); got != c.want {
			t.Errorf("Choose(%s, %q, %q) = %s, want %s", c.configured, c.token, c.staticURL, got, c.want)
		}
	}
}

func TestOrderRef(t *testing.T) {
	now := time.Date(2025, 1, 2, 13, 4, 5, 0, time.UTC)
	ref := OrderRef(now, "9876543210")
	if ref != "ORD202501021304053210" {
		t.Fatalf("OrderRef = %q", ref)
	}
	if !regexp.MustCompile(`^ORD\d{14}\d{4}$`).MatchString(ref) {
		t.Fatalf("OrderRef pattern mismatch: %q", ref)
	}
}

func TestAmountString(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{99, "99"},
		{99.99, "99"}, // fractional component truncated, never rounded
		{0, "0"},
		{1500.2, "1500"},
	}
	for _, c := range cases {
		if got := AmountString(c.in); got != c.want {
			t.Errorf("AmountString(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestValidateMobile(t *testing.T) {
	normalized, mobile, err := ValidateMobile("+91 98765-43210")
	if err != nil {
		t.Fatal(err)
	}
	if normalized != "919876543210" || mobile != "9876543210" {
		t.Fatalf("got %q, %q", normalized, mobile)
	}

	if _, _, err := ValidateMobile("12345678"); err == nil {
		t.Fatal("8-digit number must be a hard validation failure")
	}
	if _, _, err := ValidateMobile(""); err == nil {
		t.Fatal("empty phone must fail")
	}
}
