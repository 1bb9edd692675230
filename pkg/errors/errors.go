package apperrors

import (
	"errors"
)

// Error kinds. Handlers map them to HTTP status codes; services wrap them
// with New to attach the message a client sees.
var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidToken       = errors.New("invalid token")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("conflict")
	ErrTooLarge           = errors.New("request body too large")
)

// Error is a kind plus a client-facing message.
type Error struct {
	kind error
	msg  string
}

func New(kind error, msg string) error {
	return &Error{kind: kind, msg: msg}
}

func (e *Error) Error() string {
	return e.msg
}

func (e *Error) Unwrap() error {
	return e.kind
}

// Kind returns the sentinel an error was built from, or nil for unclassified errors.
func Kind(err error) error {
	for _, kind := range []error{
		ErrInvalidInput,
		ErrUnauthorized,
		ErrInvalidToken,
		ErrInvalidCredentials,
		ErrNotFound,
		ErrConflict,
		ErrTooLarge,
	} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}
