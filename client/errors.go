package client

import (
	"errors"
	"fmt"
)

// ErrNoRecord signals a clean "no row found" outcome from a directory
// lookup, as opposed to an ambiguous failure.
var ErrNoRecord = errors.New("registro não encontrado")

// RequestError is a remote failure: network error, non-success status or
// a body that could not be decoded. Reason carries the server-provided
// message when the response included one.
type RequestError struct {
	Status int
	Reason string
	Err    error
}

func (e *RequestError) Error() string {
	if e.Reason != "" {
		return e.Reason
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("falha na requisição (status %d)", e.Status)
}

func (e *RequestError) Unwrap() error { return e.Err }
