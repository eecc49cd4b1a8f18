package generation

import "fmt"

// OutcomeKind discriminates the result of one round trip to the backend.
type OutcomeKind string

// Possible outcome kinds
const (
	OutcomeSuccess        OutcomeKind = "success"
	OutcomeBlocked        OutcomeKind = "blocked"
	OutcomeFiltered       OutcomeKind = "filtered"
	OutcomeEmpty          OutcomeKind = "empty"
	OutcomeMalformed      OutcomeKind = "malformed"
	OutcomeRetrySignal    OutcomeKind = "retry_signal"
	OutcomeTransportError OutcomeKind = "transport_error"
	OutcomeExhausted      OutcomeKind = "retries_exhausted"
)

// User-facing diagnostics written into the answer field.
const (
	MessageBlocked   = "request rejected, reason: %s"
	MessageFiltered  = "succeeded but content filtered for safety"
	MessageEmpty     = "no usable content (reason: %s)"
	MessageMalformed = "response format error"
	MessageTransport = "API call error: %s"
	MessageExhausted = "retries exhausted: the API kept asking for a retry, please try again later"
)

// Outcome is the classified result of a single request.
// Text holds the answer for OutcomeSuccess and the redacted error message for
// OutcomeTransportError. Reason holds the block or finish reason.
type Outcome struct {
	Kind   OutcomeKind
	Text   string
	Reason string
}

// Success builds a successful outcome.
func Success(text string) Outcome { return Outcome{Kind: OutcomeSuccess, Text: text} }

// Blocked builds an outcome for a prompt rejected with the given reason.
func Blocked(reason string) Outcome { return Outcome{Kind: OutcomeBlocked, Reason: reason} }

// Filtered builds an outcome for a candidate withheld by safety filters.
func Filtered(finishReason string) Outcome {
	return Outcome{Kind: OutcomeFiltered, Reason: finishReason}
}

// Empty builds an outcome for a candidate without usable text.
func Empty(finishReason string) Outcome { return Outcome{Kind: OutcomeEmpty, Reason: finishReason} }

// Malformed builds an outcome for a response of unexpected shape.
func Malformed() Outcome { return Outcome{Kind: OutcomeMalformed} }

// RetrySignal builds an outcome for a response that asks to be retried.
func RetrySignal() Outcome { return Outcome{Kind: OutcomeRetrySignal} }

// TransportError builds an outcome for a failed exchange. The message must
// already be redacted.
func TransportError(message string) Outcome {
	return Outcome{Kind: OutcomeTransportError, Text: message}
}

// Exhausted builds the outcome reported once every attempt asked for a retry.
func Exhausted() Outcome { return Outcome{Kind: OutcomeExhausted} }

// Message renders the outcome as the text that becomes the answer.
func (o Outcome) Message() string {
	switch o.Kind {
	case OutcomeSuccess:
		return o.Text
	case OutcomeBlocked:
		return fmt.Sprintf(MessageBlocked, o.Reason)
	case OutcomeFiltered:
		return MessageFiltered
	case OutcomeEmpty:
		return fmt.Sprintf(MessageEmpty, o.Reason)
	case OutcomeTransportError:
		return fmt.Sprintf(MessageTransport, o.Text)
	case OutcomeRetrySignal, OutcomeExhausted:
		return MessageExhausted
	default:
		return MessageMalformed
	}
}

// Err returns the sentinel error matching the outcome, or nil on success.
func (o Outcome) Err() error {
	switch o.Kind {
	case OutcomeSuccess:
		return nil
	case OutcomeBlocked:
		return fmt.Errorf("%w: %s", ErrBlocked, o.Reason)
	case OutcomeFiltered:
		return ErrContentFiltered
	case OutcomeEmpty:
		return fmt.Errorf("%w: finish reason %q", ErrEmptyContent, o.Reason)
	case OutcomeRetrySignal:
		return ErrTransientFailure
	case OutcomeExhausted:
		return ErrRetriesExhausted
	case OutcomeTransportError:
		return fmt.Errorf("%w: %s", ErrTransport, o.Text)
	default:
		return ErrInvalidResponse
	}
}
