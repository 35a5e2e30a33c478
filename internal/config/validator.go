package config

import (
	"regexp"
)

// GitHub usernames: alphanumeric with single interior hyphens, max 39 chars.
var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9]+(?:-[a-zA-Z0-9]+)*$`)

// ValidUsername reports whether s is a well-formed GitHub username.
func ValidUsername(s string) bool {
	return len(s) >= 1 && len(s) <= 39 && usernamePattern.MatchString(s)
}
