package service

import (
	"errors"

	"github.com/Edney2025/edyfinance-pro/client"
)

// ValidationError is a local precondition failure. It is handled entirely
// client-side with a user prompt; no network call is made.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

var (
	// ErrRequestInFlight rejects a second submission while a proposal
	// request is outstanding.
	ErrRequestInFlight = errors.New("já existe uma solicitação de proposta em andamento")

	// ErrMalformedProposal marks a structurally invalid proposal, treated
	// the same as a remote failure and never partially rendered.
	ErrMalformedProposal = errors.New("proposta malformada")
)

// FailureMessage maps an error from the core workflow to the text shown
// to the user, preferring the server-provided reason when one exists.
func FailureMessage(err error) string {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr.Message
	}
	if errors.Is(err, ErrRequestInFlight) {
		return "Aguarde: sua proposta ainda está sendo processada."
	}
	var rerr *client.RequestError
	if errors.As(err, &rerr) && rerr.Reason != "" {
		return rerr.Reason
	}
	return "Não foi possível completar a operação. Tente novamente."
}
