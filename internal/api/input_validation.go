package api

import (
	"net/mail"
	"strings"
)

const minPasswordLength = 8

// normalizeEmail lowercases, trims, and validates the address; an empty
// return means the input was not a usable email.
func normalizeEmail(raw string) string {
	email := strings.ToLower(strings.TrimSpace(raw))
	if email == "" {
		return ""
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return ""
	}
	return email
}

func validateRegistration(email string, password string) string {
	if normalizeEmail(email) == "" {
		return "Invalid email address"
	}
	if len(password) < minPasswordLength {
		return "Password must be at least 8 characters"
	}
	return ""
}
