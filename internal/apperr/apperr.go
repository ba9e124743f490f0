// Package apperr defines the error taxonomy shared by the service layer.
// Handlers map these kinds onto HTTP statuses; everything else is wrapped
// as Internal so transaction failures surface with their cause preserved.
package apperr

import (
	"errors"
	"fmt"
)

type Kind int

const (
	Internal Kind = iota
	Validation
	NotFound
	Conflict
)

func (k Kind) String() string {
	switch k {
	case Validation:
		return "validation"
	case NotFound:
		return "not_found"
	case Conflict:
		return "conflict"
	default:
		return "internal"
	}
}

// Error carries a kind, a human-readable message and an optional cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Is lets errors.Is match on a bare kind sentinel, e.g.
// errors.Is(err, apperr.New(apperr.Conflict, "")).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Message == "" || t.Message == e.Message)
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap preserves the cause while classifying it. Wrapping an *Error keeps
// the original kind so a Conflict bubbling through a transaction does not
// get downgraded to Internal.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return &Error{Kind: appErr.Kind, Message: message, Err: err}
	}
	return &Error{Kind: Internal, Message: message, Err: err}
}

func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return Internal
}

func IsValidation(err error) bool { return KindOf(err) == Validation }
func IsNotFound(err error) bool   { return KindOf(err) == NotFound }
func IsConflict(err error) bool   { return KindOf(err) == Conflict }
