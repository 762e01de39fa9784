package synthesis

import (
	"errors"
	"net/http"
)

// Kind classifies a failure for the caller.
type Kind int

const (
	KindInternal Kind = iota
	KindInvalidInput
	KindMethodNotAllowed
)

func (k Kind) String() string {
	switch k {
	case KindInvalidInput:
		return "invalid_input"
	case KindMethodNotAllowed:
		return "method_not_allowed"
	default:
		return "internal_error"
	}
}

// Status maps the kind to its HTTP status code.
func (k Kind) Status() int {
	switch k {
	case KindInvalidInput:
		return http.StatusBadRequest
	case KindMethodNotAllowed:
		return http.StatusMethodNotAllowed
	default:
		return http.StatusInternalServerError
	}
}

// Error is a failure that is safe to show to the client. Message is the
// client-facing text; Err, if set, is logged but never returned.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

const (
	msgNoText           = "No text provided"
	msgTextTooLong      = "Demo limited to 500 characters. Contact info@naijavoice.com for longer content."
	msgMethodNotAllowed = "Method not allowed"
	msgInternal         = "Internal server error"
	msgInternalDetail   = "Please try again or contact support"
)

var (
	ErrNoText           = &Error{Kind: KindInvalidInput, Message: msgNoText}
	ErrTextTooLong      = &Error{Kind: KindInvalidInput, Message: msgTextTooLong}
	ErrMethodNotAllowed = &Error{Kind: KindMethodNotAllowed, Message: msgMethodNotAllowed}
)

func internalError(err error) *Error {
	return &Error{Kind: KindInternal, Message: msgInternal, Err: err}
}

// KindOf returns the kind of err, or KindInternal for anything that is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// BodyFor renders err for the client. Internal failures always get the
// generic message so causes never leak.
func BodyFor(err error) ErrorBody {
	var e *Error
	if errors.As(err, &e) && e.Kind != KindInternal {
		return ErrorBody{Error: e.Message}
	}
	return ErrorBody{Error: msgInternal, Message: msgInternalDetail}
}
