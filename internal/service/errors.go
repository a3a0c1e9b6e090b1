package service

import "errors"

// Kind classifies a pipeline failure independent of transport encoding.
type Kind int

const (
	// KindValidation covers malformed or missing required input.
	KindValidation Kind = iota
	// KindConfiguration covers absent deployment secrets or credentials.
	KindConfiguration
	// KindRejected means human verification explicitly failed.
	KindRejected
	// KindUpstream means the verification service was unreachable or
	// returned unparseable data.
	KindUpstream
	// KindDelivery means the mail transport failed.
	KindDelivery
	// KindDuplicate means a uniqueness constraint was violated.
	KindDuplicate
	// KindStore covers any other persistence failure.
	KindStore
)

// Error is a categorized failure returned by the orchestrators. Message is a
// fixed, safe user-facing string; Cause is internal-only, for logging, and
// never rendered to clients.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Cause }

func newError(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

// AsError extracts the *Error from err so handlers always have a kind to
// map. Unclassified errors fall back to a generic Store-kind failure.
func AsError(err error) *Error {
	var se *Error
	if errors.As(err, &se) {
		return se
	}
	return &Error{Kind: KindStore, Message: "internal error", Cause: err}
}
