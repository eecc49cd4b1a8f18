package gemini

import "errors"

// Error definitions for the gemini package.
var (
	// ErrNilLogger is returned when an Engine is constructed without a logger.
	ErrNilLogger = errors.New("logger cannot be nil")

	// ErrUnexpectedStatus is returned for a non-2xx reply.
	ErrUnexpectedStatus = errors.New("unexpected status code")

	// ErrEmptyBody is returned for a 2xx reply whose body is empty or null.
	ErrEmptyBody = errors.New("empty response body")

	// ErrUndecodableBody is returned when decoding a 2xx body fails abnormally.
	ErrUndecodableBody = errors.New("response body could not be decoded")
)
