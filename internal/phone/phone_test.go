package phone

import "testing"

func TestNormalize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"9876543210", "919876543210"},
		{"+91 98765-43210", "919876543210"},
		{"919876543210", "919876543210"},
		{"(098) 7654-3210", "919876543210"},
		{"0009876543210", "919876543210"},
		{"91123", "91123"},          // 91-prefixed, odd length: returned as-is
		{"12345678", "9112345678"},  // 8 digits: prefixed, flagged downstream
		{"  ", ""},
		{"", ""},
		{"+", ""},
		{"000", ""},
	}
	for _, c := range cases {
		if got := Normalize(c.in); got != c.want {
			t.Errorf("Normalize(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	for _, in := range []string{"9876543210", "+91 98765-43210", "919876543210", "12345678"} {
		once := Normalize(in)
		if twice := Normalize(once); twice != once {
			t.Errorf("Normalize not idempotent for %q: %q -> %q", in, once, twice)
		}
	}
}

func TestLocalMobile(t *testing.T) {
	cases := []struct{ in, want string }{
		{"919876543210", "9876543210"},
		{"9876543210", "9876543210"},
		{"9112345678", "9112345678"}, // already 10 digits
		{"91123", "91123"},           // too short, rejected by the gateway later
	}
	for _, c := range cases {
		if got := LocalMobile(c.in); got != c.want {
			t.Errorf("LocalMobile(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestLast4(t *testing.T) {
	if got := Last4("9876543210"); got != "3210" {
		t.Errorf("Last4 = %q, want 3210", got)
	}
	if got := Last4("32"); got != "32" {
		t.Errorf("Last4 short input = %q, want 32", got)
	}
}
