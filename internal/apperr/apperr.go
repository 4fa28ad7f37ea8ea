// Package apperr carries a tagged error kind from services up to the HTTP
// boundary, where one central mapper turns kinds into status codes. Handlers
// never switch on error strings.
package apperr

import "fmt"

type Kind int

const (
	Internal Kind = iota
	Unauthorized
	Forbidden
	NotFound
	Duplicate
	Validation
)

type Error struct {
	Kind    Kind
	Message string
	// Details names the entity a NotFound refers to, e.g. the first missing
	// path segment of a multi-segment lookup.
	Details string
	// Err is the wrapped cause. Logged server-side, never sent to clients.
	Err error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Newf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// NotFoundEntity reports a missing resource, recording which entity was
// missing in Details.
func NotFoundEntity(entity, name string) *Error {
	return &Error{
		Kind:    NotFound,
		Message: fmt.Sprintf("%s %q not found", entity, name),
		Details: entity,
	}
}

// Wrap converts an unexpected failure (store unreachable, driver error) into
// an internal error with a generic client-facing message.
func Wrap(err error, message string) *Error {
	return &Error{Kind: Internal, Message: message, Err: err}
}
