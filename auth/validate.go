package auth

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

const defaultPasswordMinLength = 8

// Symbols accepted as the "special character" class.
const passwordSymbols = "!@#$%^&*()_+-=[]{};:'\"\\|,.<>/?`~"

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9._-]+$`)

// NormalizeUsername applies the canonical form used for every store and
// tracker lookup. Usernames are case-insensitive.
func NormalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

// ValidatePassword checks the password policy and returns every violated
// rule, not just the first one. A non-positive minLength falls back to the
// default.
func ValidatePassword(password string, minLength int) []string {
	if minLength <= 0 {
		minLength = defaultPasswordMinLength
	}

	var violations []string

	if len(password) < minLength {
		violations = append(violations, fmt.Sprintf("password must be at least %d characters", minLength))
	}

	var hasUpper, hasLower, hasDigit, hasSymbol bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case strings.ContainsRune(passwordSymbols, r):
			hasSymbol = true
		}
	}

	if !hasUpper {
		violations = append(violations, "password must contain an uppercase letter")
	}
	if !hasLower {
		violations = append(violations, "password must contain a lowercase letter")
	}
	if !hasDigit {
		violations = append(violations, "password must contain a digit")
	}
	if !hasSymbol {
		violations = append(violations, "password must contain a symbol")
	}

	return violations
}

// ValidateUsername checks length and charset, collecting all violations.
func ValidateUsername(username string) []string {
	var violations []string

	if len(username) < 3 || len(username) > 50 {
		violations = append(violations, "username must be between 3 and 50 characters")
	}
	if username != "" && !usernamePattern.MatchString(username) {
		violations = append(violations, "username may only contain letters, digits, '.', '_' and '-'")
	}

	return violations
}
