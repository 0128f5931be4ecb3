package domain

import "strings"

const phCallingCode = "63"

// NormalizePhone converts a raw billing phone string into the calling-code
// and local-number pair the processor expects. It recognizes the three
// shapes of a Philippine mobile number: "639xxxxxxxxx" (12 digits),
// "09xxxxxxxxx" (11 digits) and "9xxxxxxxxx" (10 digits). Anything else
// degrades to empty strings; the processor rejects malformed phone data
// itself.
func NormalizePhone(raw string) (callingCode, localNumber string) {
	digits := stripNonDigits(raw)
	length := len(digits)

	switch {
	case strings.HasPrefix(digits, "639") && length == 12,
		strings.HasPrefix(digits, "09") && length == 11,
		strings.HasPrefix(digits, "9") && length == 10:
		callingCode = phCallingCode
	default:
		return "", ""
	}

	if length >= 10 && length <= 12 {
		localNumber = digits[length-10:]
	}

	return callingCode, localNumber
}

func stripNonDigits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
