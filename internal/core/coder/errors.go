package coder

import (
	"errors"
	"fmt"
)

// Failure classes surfaced by the coder. All of them are returned to the
// immediate caller; nothing is logged-and-swallowed inside the coder.
var (
	// Lookup errors

	ErrUnknownType          = errors.New("unknown account type")
	ErrUnknownDiscriminator = errors.New("unrecognized discriminator")

	// Buffer errors

	ErrBufferTooShort        = errors.New("buffer shorter than discriminator")
	ErrDiscriminatorMismatch = errors.New("discriminator does not match account type")

	// Conformance errors

	ErrEncodingFailed = errors.New("account encoding failed")
	ErrDecodingFailed = errors.New("account decoding failed")
)

// Error carries a failure class together with the account type it occurred
// on and the underlying cause.
type Error struct {
	Kind    error
	Account string
	Cause   error
}

func (e *Error) Error() string {
	msg := e.Kind.Error()
	if e.Account != "" {
		msg += ": account " + fmt.Sprintf("%q", e.Account)
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap exposes both the failure class and the cause, so callers can match
// either with errors.Is.
func (e *Error) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Cause}
}

func newError(kind error, account string, cause error) *Error {
	return &Error{Kind: kind, Account: account, Cause: cause}
}
