package db

import "strings"

// IsUniqueViolation reports whether err is a unique-constraint violation.
// Matched on message text so it works for both lib/pq and modernc sqlite.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key value violates unique constraint") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}
