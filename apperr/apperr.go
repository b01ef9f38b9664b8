// Package apperr defines the error taxonomy shared by the registry, ledger
// and reports packages. Handlers map kinds to HTTP statuses; the kinds
// themselves are transport-agnostic.
package apperr

import "fmt"

type Kind int

const (
	// NotFound: no row matches the given id.
	NotFound Kind = iota + 1
	// InvalidInput: malformed id, bad enum value, non-positive numeric
	// field, missing required field, empty batch.
	InvalidInput
	// LimitExceeded: the per-user ticket cap would be crossed.
	LimitExceeded
	// Conflict: ticket numbers already taken, or not in the expected state
	// for the requested transition.
	Conflict
	// Internal: storage or transaction failure.
	Internal
)

// Error carries a kind, a human-readable message and, for reservation
// conflicts, the specifically rejected ticket numbers.
type Error struct {
	Kind     Kind
	Message  string
	Rejected []string
}

func (e *Error) Error() string { return e.Message }

func New(kind Kind, message string) error {
	return &Error{Kind: kind, Message: message}
}

func Newf(kind Kind, format string, args ...interface{}) error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// WithRejected builds a Conflict-style error that carries the rejected
// identifiers alongside the message.
func WithRejected(kind Kind, message string, rejected []string) error {
	return &Error{Kind: kind, Message: message, Rejected: rejected}
}

// KindOf extracts the kind from err; unrecognized errors are Internal.
func KindOf(err error) Kind {
	if e, ok := err.(*Error); ok {
		return e.Kind
	}
	return Internal
}

// RejectedOf returns the rejected identifiers attached to err, if any.
func RejectedOf(err error) []string {
	if e, ok := err.(*Error); ok {
		return e.Rejected
	}
	return nil
}
