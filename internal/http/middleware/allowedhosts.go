package middleware

import (
	"errors"
	"net"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// ErrDisallowedHost is returned when the request Host header matches none of
// the configured patterns. The global error handler maps it to 400 with the
// DISALLOWED_HOST code.
var ErrDisallowedHost = errors.New("disallowed host")

// debugFallbackHosts are accepted when no hosts are configured and the app
// runs in debug mode, so a fresh checkout answers on localhost immediately.
var debugFallbackHosts = []string{"localhost", "127.0.0.1", "::1"}

// AllowedHosts rejects requests whose Host header does not match the
// configured patterns. Patterns:
//   - "*" matches any host
//   - ".example.com" matches example.com and every subdomain of it
//   - anything else is an exact, case-insensitive match
//
// Ports and IPv6 brackets are stripped before matching.
func AllowedHosts(patterns []string, debug bool) fiber.Handler {
	if len(patterns) == 0 && debug {
		patterns = debugFallbackHosts
	}

	canonical := make([]string, len(patterns))
	for i, p := range patterns {
		canonical[i] = canonicalHost(p)
	}

	return func(c *fiber.Ctx) error {
		if hostMatches(canonicalHost(c.Hostname()), canonical) {
			return c.Next()
		}
		return ErrDisallowedHost
	}
}

// canonicalHost lowercases the host and strips a trailing port and IPv6
// brackets. Leading-dot patterns pass through unchanged apart from casing.
func canonicalHost(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	if host, _, err := net.SplitHostPort(h); err == nil {
		h = host
	}
	return strings.Trim(h, "[]")
}

func hostMatches(host string, patterns []string) bool {
	for _, p := range patterns {
		switch {
		case p == "*":
			return true
		case strings.HasPrefix(p, "."):
			// Leading dot: the domain itself or any subdomain.
			if host == p[1:] || strings.HasSuffix(host, p) {
				return true
			}
		case host == p:
			return true
		}
	}
	return false
}
