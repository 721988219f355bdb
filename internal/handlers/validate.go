package handlers

import (
	"strings"
	"unicode/utf8"
)

// Validation limits for user-supplied fields.
const (
	maxTitleLen       = 300
	maxDescriptionLen = 2_000
	maxURLLen         = 2_048
	maxCategoryName   = 120
	minPasswordLen    = 8
)

// validateLink checks link form inputs and returns the first error found.
// Only field presence and size are enforced; the URL itself is stored as
// given, without format validation.
func validateLink(title, description, url string) string {
	if strings.TrimSpace(title) == "" {
		return "Title is required."
	}
	if utf8.RuneCountInString(title) > maxTitleLen {
		return "Title is too long (max 300 characters)."
	}
	if utf8.RuneCountInString(description) > maxDescriptionLen {
		return "Description is too long (max 2,000 characters)."
	}
	if utf8.RuneCountInString(url) > maxURLLen {
		return "URL is too long (max 2,048 characters)."
	}
	return ""
}

// validateCategoryName checks a category display name.
func validateCategoryName(name string) string {
	if strings.TrimSpace(name) == "" {
		return "Name is required."
	}
	if utf8.RuneCountInString(name) > maxCategoryName {
		return "Name is too long (max 120 characters)."
	}
	return ""
}

// validateRegistration checks new account credentials.
func validateRegistration(email, password string) string {
	email = strings.TrimSpace(email)
	if email == "" || !strings.Contains(email, "@") {
		return "A valid email is required."
	}
	if utf8.RuneCountInString(password) < minPasswordLen {
		return "Password must be at least 8 characters."
	}
	return ""
}
