package trade

import "errors"

// Error kinds shared across the swap pipeline. Callers classify with errors.Is.
var (
	// ErrInvalidInput marks malformed user entry; it ends the current action, not the process.
	ErrInvalidInput = errors.New("invalid input")
	// ErrUpstream marks a network or service failure from the quote, build, or RPC calls.
	ErrUpstream = errors.New("upstream failure")
	// ErrProtocol marks a response that arrived but did not match the expected shape.
	ErrProtocol = errors.New("protocol mismatch")
	// ErrSigning marks credential misuse during transaction signing.
	ErrSigning = errors.New("signing failure")
)
