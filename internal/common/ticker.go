// Package common provides shared utilities across the application.
package common

import (
	"strings"
)

// NormalizeTicker canonicalizes a user-entered ticker symbol: trimmed and
// upper-cased. "nvda" and " NVDA " both normalize to "NVDA". The normalized
// form is the identity used for watchlist membership and report history keys.
func NormalizeTicker(ticker string) string {
	return strings.ToUpper(strings.TrimSpace(ticker))
}

// IsValidTicker reports whether a normalized ticker looks like a US stock
// symbol worth sending to the model: 1-10 characters from the set the major
// exchanges use (letters, digits, '.' and '-' for share classes like BRK.B).
// This is a sanity filter on user input, not a listing check.
func IsValidTicker(ticker string) bool {
	if len(ticker) == 0 || len(ticker) > 10 {
		return false
	}
	for _, r := range ticker {
		switch {
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '.' || r == '-':
		default:
			return false
		}
	}
	return true
}
