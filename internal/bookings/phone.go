package bookings

import (
	"regexp"
	"strings"

	"osspace/internal/shared/apperrors"
)

var e164Pattern = regexp.MustCompile(`^\+[1-9][0-9]{7,14}$`)

// NormalizePhone converts a user-entered phone number to E.164. Bare
// 10-digit numbers are assumed to be local (Indian) mobiles; numbers with
// a leading zero or a bare country code are repaired. Anything that does
// not normalize to a valid E.164 number is rejected.
func NormalizePhone(raw string) (string, error) {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '(', ')', '.':
			return -1
		}
		return r
	}, strings.TrimSpace(raw))

	if cleaned == "" {
		return "", apperrors.Validation("Phone number is required")
	}

	if !strings.HasPrefix(cleaned, "+") {
		digits := cleaned
		switch {
		case len(digits) == 10:
			cleaned = "+91" + digits
		case len(digits) == 11 && strings.HasPrefix(digits, "0"):
			cleaned = "+91" + digits[1:]
		case len(digits) == 12 && strings.HasPrefix(digits, "91"):
			cleaned = "+" + digits
		default:
			cleaned = "+" + digits
		}
	}

	if !e164Pattern.MatchString(cleaned) {
		return "", apperrors.Validation("Invalid phone number")
	}

	return cleaned, nil
}
