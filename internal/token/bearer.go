package token

import (
	"regexp"
	"strings"
)

var bearerPattern = regexp.MustCompile(`(?i)^\s*bearer\s+(.+)$`)

// FromHeader extracts the token from an "Authorization: Bearer <token>" header value.
// The scheme is matched case-insensitively; any other format yields false.
func FromHeader(header string) (string, bool) {
	m := bearerPattern.FindStringSubmatch(header)
	if m == nil {
		return "", false
	}

	token := strings.TrimSpace(m[1])
	if token == "" {
		return "", false
	}
	return token, true
}
