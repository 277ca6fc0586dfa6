// Package phone canonicalizes customer phone numbers to the digit-only,
// 91-prefixed form used as the conversation store key.
package phone

import "strings"

var stripper = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "", "+", "")

// Normalize returns the canonical storage form of a raw phone string.
// The empty string signals a validation failure; callers must not retry.
func Normalize(raw string) string {
	p := stripper.Replace(strings.TrimSpace(raw))
	p = strings.TrimLeft(p, "0")
	if p == "" {
		return ""
	}

	switch {
	case strings.HasPrefix(p, "91") && len(p) == 12:
		return p
	case len(p) == 10:
		return "91" + p
	case strings.HasPrefix(p, "91"):
		return p
	default:
		return "91" + p
	}
}

// LocalMobile derives the 10-digit local mobile number from a normalized
// international number by taking its last 10 digits. Numbers that cannot
// yield exactly 10 digits come back unchanged and shorter; the payment
// gateway rejects those.
func LocalMobile(normalized string) string {
	if len(normalized) > 10 {
		return normalized[len(normalized)-10:]
	}
	return normalized
}

// Last4 returns the last four digits of a mobile number, used in order
// reference generation.
func Last4(mobile string) string {
	if len(mobile) < 4 {
		return mobile
	}
	return mobile[len(mobile)-4:]
}
