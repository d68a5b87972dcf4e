package domain

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindAuthentication
	KindUnauthorized
	KindNotFound
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAuthentication:
		return "authentication"
	case KindUnauthorized:
		return "unauthorized"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	default:
		return "internal"
	}
}

// Error is the tagged error returned by every service. Message is safe to
// show to API clients; Err carries the underlying cause, if any.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func NewError(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
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

// Internal tags err as an internal failure. The cause stays reachable through
// errors.Is/As but is never rendered to clients.
func Internal(err error) error {
	if err == nil {
		return nil
	}
	var de *Error
	if errors.As(err, &de) {
		return err
	}
	return &Error{Kind: KindInternal, Message: MessageFailedProcessRequest, Err: err}
}

// Validation wraps a validator error so it keeps its field details.
func Validation(err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: KindValidation, Message: MessageFailedBodyRequest, Err: err}
}

// KindOf reports the kind of the first *Error in err's chain, KindInternal
// for anything untagged.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindInternal
}

// PublicMessage is the text an API client may see for err.
func PublicMessage(err error) string {
	var de *Error
	if !errors.As(err, &de) {
		return MessageFailedProcessRequest
	}
	if de.Kind == KindValidation && de.Err != nil {
		return de.Error()
	}
	return de.Message
}
