package domain

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	// MaxEmailLength follows the practical SMTP path limit.
	MaxEmailLength = 254
	// MaxNameLength is measured in runes.
	MaxNameLength = 100
	// MinPasswordLength is the shortest password accepted.
	MinPasswordLength = 8
	// MaxPasswordLength is bcrypt's input limit in bytes.
	MaxPasswordLength = 72
	// MaxWalletAddressLength bounds wallet identifiers across chains.
	MaxWalletAddressLength = 128
)

// ValidateEmail reports whether s has the shape local@domain.tld: exactly one '@',
// a non-empty local part, and a dotted domain with no empty labels. Whitespace
// anywhere is rejected.
func ValidateEmail(s string) bool {
	if s == "" || len(s) > MaxEmailLength {
		return false
	}
	if strings.IndexFunc(s, unicode.IsSpace) >= 0 {
		return false
	}

	local, domainPart, ok := strings.Cut(s, "@")
	if !ok || local == "" || domainPart == "" || strings.Contains(domainPart, "@") {
		return false
	}

	labels := strings.Split(domainPart, ".")
	if len(labels) < 2 {
		return false
	}
	for _, label := range labels {
		if label == "" || strings.HasPrefix(label, "-") || strings.HasSuffix(label, "-") {
			return false
		}
	}

	return true
}

// ValidateName reports whether s is a usable display name: non-blank, at most
// MaxNameLength runes, and free of control characters.
func ValidateName(s string) bool {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" || !utf8.ValidString(trimmed) {
		return false
	}
	if utf8.RuneCountInString(trimmed) > MaxNameLength {
		return false
	}
	return strings.IndexFunc(trimmed, unicode.IsControl) < 0
}

// ValidatePassword enforces the password policy: between MinPasswordLength and
// MaxPasswordLength bytes, containing at least one letter and one digit.
func ValidatePassword(s string) bool {
	if len(s) < MinPasswordLength || len(s) > MaxPasswordLength {
		return false
	}

	var hasLetter, hasDigit bool
	for _, r := range s {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	return hasLetter && hasDigit
}

// ValidateWalletAddress reports whether s can serve as a wallet lookup key.
// The service is chain-agnostic, so only length and whitespace are checked.
func ValidateWalletAddress(s string) bool {
	if s == "" || len(s) > MaxWalletAddressLength {
		return false
	}
	return strings.IndexFunc(s, unicode.IsSpace) < 0
}

// NormalizeEmail is the canonical form emails are stored and looked up in.
func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
