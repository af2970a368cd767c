// Package errtax classifies database and infrastructure errors into a
// small set of semantic kinds by substring matching their message
// text, so the UI can show a contextual hint instead of a raw driver
// error.
package errtax

import "strings"

// Kind is a semantic error classification, not a concrete error type.
type Kind int

const (
	KindUnknown Kind = iota
	KindCommandNotFound
	KindHostUnreachable
	KindAuthFailed
	KindDatabaseNotFound
	KindTimeout
	KindQueryFailed
	KindInvalidJSON
	KindInvalidFormat
	KindIOError
	KindVersionMismatch
)

// Hint returns a short, user-facing suggestion for a Kind.
func (k Kind) Hint() string {
	switch k {
	case KindCommandNotFound:
		return "Install PostgreSQL or add psql to PATH"
	case KindHostUnreachable:
		return "Check the hostname"
	case KindAuthFailed:
		return "Check the username and password"
	case KindDatabaseNotFound:
		return "Check the database name"
	case KindTimeout:
		return "Check connectivity or increase the timeout"
	default:
		return ""
	}
}

var hostUnreachablePatterns = []string{
	"could not translate host name",
	"name or service not known",
	"no such host",
}

// Classify maps a raw error message to a Kind by substring matching.
// Order matters: more specific patterns are checked before generic
// ones so e.g. an auth failure during a timed-out dial is reported as
// AuthFailed, not Timeout.
func Classify(msg string) Kind {
	lower := strings.ToLower(msg)

	for _, p := range hostUnreachablePatterns {
		if strings.Contains(lower, p) {
			return KindHostUnreachable
		}
	}
	if strings.Contains(lower, "password authentication failed") {
		return KindAuthFailed
	}
	if strings.Contains(lower, "fatal") && strings.Contains(lower, "password") {
		return KindAuthFailed
	}
	if strings.Contains(lower, "does not exist") && (strings.Contains(lower, "database") || strings.Contains(lower, "db")) {
		return KindDatabaseNotFound
	}
	if strings.Contains(lower, "context deadline exceeded") || strings.Contains(lower, "timeout") || strings.Contains(lower, "timed out") {
		return KindTimeout
	}
	if strings.Contains(lower, "executable file not found") || strings.Contains(lower, "command not found") || strings.Contains(lower, "no such file or directory") {
		return KindCommandNotFound
	}
	if strings.Contains(lower, "invalid character") || strings.Contains(lower, "unexpected end of json") {
		return KindInvalidJSON
	}
	if strings.Contains(lower, "version mismatch") {
		return KindVersionMismatch
	}
	return KindUnknown
}
