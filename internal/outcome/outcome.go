// Package outcome is the uniform result surface of the chat core.
//
// Every component converts whatever failed inside it (SDK errors, network
// errors, decode errors, missing files) into an *Error with one of a small
// set of kinds before returning to its caller.
package outcome

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/http"
	"net/url"
)

type ErrorKind string

const (
	Transport     ErrorKind = "transport"
	ModelRejected ErrorKind = "model_rejected"
	Malformed     ErrorKind = "malformed"
	NotFound      ErrorKind = "not_found"
	Unconfigured  ErrorKind = "unconfigured"
)

// HTTPStatus is the status the transport boundary answers with for the kind.
func (k ErrorKind) HTTPStatus() int {
	switch k {
	case Transport, ModelRejected, Malformed:
		return http.StatusBadGateway
	case NotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// ErrEmptyCompletion is returned by backends that answered without any text choice.
var ErrEmptyCompletion = errors.New("completion has no choices")

type Error struct {
	Kind    ErrorKind
	Message string
	// Status is the upstream HTTP status for ModelRejected, zero otherwise.
	Status int
	Err    error
}

func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s (status %d): %s", e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func Rejected(status int, message string) *Error {
	return &Error{Kind: ModelRejected, Status: status, Message: message}
}

func Wrap(kind ErrorKind, err error) *Error {
	return &Error{Kind: kind, Message: err.Error(), Err: err}
}

// Normalize maps any error onto an *Error. A nil error stays nil.
func Normalize(err error) *Error {
	if err == nil {
		return nil
	}

	var oe *Error
	if errors.As(err, &oe) {
		return oe
	}

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return &Error{Kind: Transport, Message: "backend call timed out", Err: err}
	case errors.Is(err, context.Canceled):
		return &Error{Kind: Transport, Message: "backend call canceled", Err: err}
	case errors.Is(err, fs.ErrNotExist):
		return Wrap(NotFound, err)
	case errors.Is(err, ErrEmptyCompletion):
		return Wrap(Malformed, err)
	}

	var (
		urlErr    *url.Error
		netErr    net.Error
		syntaxErr *json.SyntaxError
		typeErr   *json.UnmarshalTypeError
	)
	switch {
	case errors.As(err, &syntaxErr), errors.As(err, &typeErr):
		return Wrap(Malformed, err)
	case errors.As(err, &urlErr), errors.As(err, &netErr):
		return Wrap(Transport, err)
	}
	return Wrap(ModelRejected, err)
}

// Result is the {ok, value|error} envelope.
type Result[T any] struct {
	Value T
	Err   *Error
}

func Of[T any](value T, err error) Result[T] {
	if e := Normalize(err); e != nil {
		var zero T
		return Result[T]{Value: zero, Err: e}
	}
	return Result[T]{Value: value}
}

func (r Result[T]) OK() bool {
	return r.Err == nil
}
