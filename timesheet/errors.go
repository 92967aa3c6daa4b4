package timesheet

import (
	"errors"
	"fmt"
)

// Kind classifies a workflow failure so callers can map it to a transport
// status or retry decision without parsing message text.
type Kind string

const (
	KindValidation      Kind = "validation_error"
	KindAccessDenied    Kind = "access_denied"
	KindInvalidState    Kind = "invalid_state"
	KindRequiresBulk    Kind = "requires_bulk_submission"
	KindNotFound        Kind = "not_found"
	KindPermissionError Kind = "permission_denied"
)

// Error is the structured failure every operation returns. Message is
// human-readable and safe to show to the user as-is.
type Error struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`

	// SiblingDrafts is set on KindRequiresBulk: the number of draft entries
	// that exist for the same employee and week.
	SiblingDrafts int `json:"siblingDrafts,omitempty"`
}

func (e *Error) Error() string {
	return e.Message
}

func newError(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func validationErr(format string, args ...any) *Error {
	return newError(KindValidation, format, args...)
}

func accessDeniedErr(format string, args ...any) *Error {
	return newError(KindAccessDenied, format, args...)
}

func invalidStateErr(format string, args ...any) *Error {
	return newError(KindInvalidState, format, args...)
}

func notFoundErr(format string, args ...any) *Error {
	return newError(KindNotFound, format, args...)
}

func permissionErr(format string, args ...any) *Error {
	return newError(KindPermissionError, format, args...)
}

// KindOf returns the Kind of err, or "" when err is not a workflow error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsKind reports whether err carries the given workflow kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
