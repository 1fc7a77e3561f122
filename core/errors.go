package core

import "errors"

var (
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrAmountOverflow     = errors.New("amount does not fit in 128 bits")
	ErrInvalidIntent      = errors.New("invalid transfer intent")
	ErrNoSession          = errors.New("no active session")
	ErrInvalidSession     = errors.New("session is incomplete")
	ErrNonceUnavailable   = errors.New("account nonce unavailable")
	ErrAssertionDenied    = errors.New("assertion denied by authenticator")
	ErrAssertionTimeout   = errors.New("assertion ceremony timed out")
	ErrMalformedSignature = errors.New("malformed signature")
	ErrSubmissionRejected = errors.New("transfer submission rejected")
	ErrNetworkFailure     = errors.New("collaborator request failed")
)
