package services

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindNotAuthenticated
	KindInvalidCredentials
	KindForbidden
	KindNotFound
	KindReportGenerationFailed
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "ValidationError"
	case KindNotAuthenticated:
		return "NotAuthenticated"
	case KindInvalidCredentials:
		return "InvalidCredentials"
	case KindForbidden:
		return "Forbidden"
	case KindNotFound:
		return "NotFound"
	case KindReportGenerationFailed:
		return "ReportGenerationFailed"
	}
	return "InternalError"
}

// Error is the error taxonomy shared by services and handlers. Message is
// safe to show to the caller; Err is the underlying cause, if any.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		if e.Message == "" {
			return fmt.Sprintf("%s: %v", e.Kind, e.Err)
		}
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	if e.Message == "" {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same kind, so errors.Is(err, ErrNotFound) works
// for every not-found error regardless of its message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Message == "" && t.Err == nil
}

var (
	ErrInternal               = &Error{Kind: KindInternal}
	ErrValidation             = &Error{Kind: KindValidation}
	ErrNotAuthenticated       = &Error{Kind: KindNotAuthenticated}
	ErrInvalidCredentials     = &Error{Kind: KindInvalidCredentials}
	ErrForbidden              = &Error{Kind: KindForbidden}
	ErrNotFound               = &Error{Kind: KindNotFound}
	ErrReportGenerationFailed = &Error{Kind: KindReportGenerationFailed}
)

func validationError(msg string) error {
	return &Error{Kind: KindValidation, Message: msg}
}

func notFound(msg string) error {
	return &Error{Kind: KindNotFound, Message: msg}
}

func forbidden(msg string) error {
	return &Error{Kind: KindForbidden, Message: msg}
}

func internal(msg string, err error) error {
	return &Error{Kind: KindInternal, Message: msg, Err: err}
}

// KindOf returns the taxonomy kind of err; unknown errors are internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// MessageOf returns the caller-facing message for err, or fallback.
func MessageOf(err error, fallback string) string {
	var e *Error
	if errors.As(err, &e) && e.Message != "" {
		return e.Message
	}
	return fallback
}
