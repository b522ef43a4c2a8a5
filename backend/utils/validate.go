package utils

import (
	"regexp"
	"strings"
)

var (
	emailRegex   = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	nameRegex    = regexp.MustCompile(`^[a-zA-Z\s'-]+$`)
	upperRegex   = regexp.MustCompile(`[A-Z]`)
	lowerRegex   = regexp.MustCompile(`[a-z]`)
	digitRegex   = regexp.MustCompile(`[0-9]`)
	specialRegex = regexp.MustCompile(`[!@#$%^&*()_+\-=\[\]{};':"\\|,.<>\/?]`)
)

// NormalizeEmail trims and lowercases an address for storage and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func ValidateEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// ValidatePassword returns one message per unmet complexity rule.
func ValidatePassword(password string) []string {
	var errors []string

	if len(password) < 8 {
		errors = append(errors, "Password must be at least 8 characters long")
	}
	if !upperRegex.MatchString(password) {
		errors = append(errors, "Password must contain at least one uppercase letter")
	}
	if !lowerRegex.MatchString(password) {
		errors = append(errors, "Password must contain at least one lowercase letter")
	}
	if !digitRegex.MatchString(password) {
		errors = append(errors, "Password must contain at least one number")
	}
	if !specialRegex.MatchString(password) {
		errors = append(errors, "Password must contain at least one special character")
	}

	return errors
}

// ValidateName returns the trimmed name, or a message describing why it
// is not acceptable.
func ValidateName(name string) (string, string) {
	trimmed := strings.TrimSpace(name)

	if len(trimmed) < 2 {
		return "", "Name must be at least 2 characters long"
	}
	if len(trimmed) > 50 {
		return "", "Name must be less than 50 characters"
	}
	if !nameRegex.MatchString(trimmed) {
		return "", "Name can only contain letters, spaces, hyphens, and apostrophes"
	}

	return trimmed, ""
}
