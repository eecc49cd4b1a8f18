package generation

import "errors"

// Common errors returned by the generation package
var (
	// ErrBlocked is returned when the backend rejects the prompt outright.
	ErrBlocked = errors.New("request rejected by language model")

	// ErrContentFiltered is returned when a candidate was withheld by safety filters.
	ErrContentFiltered = errors.New("content blocked by language model safety filters")

	// ErrEmptyContent is returned when a candidate carries no usable text.
	ErrEmptyContent = errors.New("language model returned no usable content")

	// ErrInvalidResponse is returned when the response cannot be parsed or is malformed.
	ErrInvalidResponse = errors.New("invalid response from language model")

	// ErrTransientFailure is returned when the backend asks for a retry.
	ErrTransientFailure = errors.New("transient error from language model")

	// ErrRetriesExhausted is returned when every allowed attempt asked for a retry.
	ErrRetriesExhausted = errors.New("retries exhausted")

	// ErrTransport is returned for network, TLS, timeout, and non-2xx failures.
	ErrTransport = errors.New("language model transport failure")

	// ErrInvalidConfig is returned when the answerer configuration is invalid
	ErrInvalidConfig = errors.New("invalid generator configuration")
)
