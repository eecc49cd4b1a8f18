package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/phrazzld/scry-assist/internal/config"
	"github.com/phrazzld/scry-assist/internal/domain"
	"github.com/phrazzld/scry-assist/internal/generation"
	"github.com/phrazzld/scry-assist/internal/platform/logger"
	"github.com/phrazzld/scry-assist/internal/redact"
	"github.com/sethvargo/go-retry"
	"google.golang.org/genai"
)

// maxErrorBody caps how much of a non-2xx body is quoted in a diagnostic.
const maxErrorBody = 512

// maxResponseBody caps how much of a 2xx body is read.
const maxResponseBody = 8 << 20

// Doer sends HTTP requests. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// RetryPolicy bounds the application-level retry loop.
type RetryPolicy struct {
	// MaxAttempts is the total number of requests allowed per Answer call.
	MaxAttempts int
	// Delay is the constant wait between attempts.
	Delay time.Duration
	// Predicate recognizes answer text that asks for another attempt.
	Predicate RetryPredicate
}

// Engine answers flashcard questions through the Gemini generateContent
// endpoint. It holds no per-call state and is safe for concurrent use.
type Engine struct {
	logger          *slog.Logger
	client          Doer
	observer        generation.Observer
	policy          RetryPolicy
	acknowledgement string
}

// Ensure Engine implements generation.Answerer interface
var _ generation.Answerer = (*Engine)(nil)

// Option customizes an Engine.
type Option func(*Engine)

// WithHTTPClient replaces the pooled HTTP client.
func WithHTTPClient(client Doer) Option {
	return func(e *Engine) { e.client = client }
}

// WithObserver records every finished Answer call on o.
func WithObserver(o generation.Observer) Option {
	return func(e *Engine) { e.observer = o }
}

// WithRetryPredicate replaces the marker predicate built from configuration.
func WithRetryPredicate(p RetryPredicate) Option {
	return func(e *Engine) { e.policy.Predicate = p }
}

// NewEngine creates an Engine from the process LLM configuration.
//
// Parameters:
//   - log: A structured logger for operation logging
//   - cfg: Timeout, retry and acknowledgement settings
//   - opts: Optional overrides, mostly for tests
//
// Returns:
//   - A ready Engine, or an error wrapping generation.ErrInvalidConfig
func NewEngine(log *slog.Logger, cfg config.LLMConfig, opts ...Option) (*Engine, error) {
	if log == nil {
		return nil, ErrNilLogger
	}
	if cfg.MaxAttempts < 1 {
		return nil, fmt.Errorf("%w: max attempts must be at least 1, got %d",
			generation.ErrInvalidConfig, cfg.MaxAttempts)
	}
	if cfg.TimeoutSeconds < 1 {
		return nil, fmt.Errorf("%w: timeout must be at least 1 second, got %d",
			generation.ErrInvalidConfig, cfg.TimeoutSeconds)
	}
	if strings.TrimSpace(cfg.Acknowledgement) == "" {
		return nil, fmt.Errorf("%w: acknowledgement cannot be empty", generation.ErrInvalidConfig)
	}

	delay := time.Duration(cfg.RetryDelayMS) * time.Millisecond
	if delay <= 0 {
		// the constant backoff requires a positive interval
		delay = time.Millisecond
	}

	client := cleanhttp.DefaultPooledClient()
	client.Timeout = time.Duration(cfg.TimeoutSeconds) * time.Second

	e := &Engine{
		logger:   log.With("component", "gemini_engine"),
		client:   client,
		observer: generation.NopObserver{},
		policy: RetryPolicy{
			MaxAttempts: cfg.MaxAttempts,
			Delay:       delay,
			Predicate:   MarkerPredicate(cfg.RetryMarker),
		},
		acknowledgement: cfg.Acknowledgement,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Policy returns the retry policy in effect.
func (e *Engine) Policy() RetryPolicy {
	return e.policy
}

// Answer implements generation.Answerer.
//
// The prompt is assembled once and re-sent unchanged on every attempt. Only a
// retry signal is retried; every other outcome ends the call. The returned
// string is either the answer text or a diagnostic, never an error.
func (e *Engine) Answer(ctx context.Context, question string, settings domain.Settings) string {
	log := logger.FromContextOrDefault(ctx, e.logger)

	turns := BuildTurns(settings, question, e.acknowledgement)
	body, err := json.Marshal(BuildRequest(settings, turns))
	if err != nil {
		// only reachable with NaN or infinite sampling parameters
		log.ErrorContext(ctx, "failed to encode request body", "error", err)
		return generation.Malformed().Message()
	}

	endpoint := Endpoint(settings)
	log.DebugContext(ctx, "sending generateContent request",
		"endpoint", redact.Secret(endpoint, settings.APIKey),
		"model", settings.Model,
		"turns", len(turns),
		"max_attempts", e.policy.MaxAttempts)

	attempts := 0
	var outcome generation.Outcome
	backoff := retry.WithMaxRetries(uint64(e.policy.MaxAttempts-1), retry.NewConstant(e.policy.Delay))
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempts++
		outcome = e.attempt(ctx, endpoint, body, settings.APIKey)
		if outcome.Kind == generation.OutcomeRetrySignal {
			log.InfoContext(ctx, "backend asked for a retry",
				"attempt", attempts,
				"max_attempts", e.policy.MaxAttempts)
			return retry.RetryableError(outcome.Err())
		}
		return nil
	})

	switch {
	case outcome.Kind == generation.OutcomeRetrySignal && errors.Is(err, generation.ErrTransientFailure):
		outcome = generation.Exhausted()
	case err != nil && !errors.Is(err, generation.ErrTransientFailure):
		// cancelled while waiting between attempts
		outcome = generation.TransportError(e.scrub(err.Error(), settings.APIKey))
	}

	e.observer.ObserveAnswer(outcome.Kind, attempts)

	if outcome.Kind == generation.OutcomeSuccess {
		log.InfoContext(ctx, "answer generated",
			"attempts", attempts,
			"answer_length", len(outcome.Text))
	} else {
		log.WarnContext(ctx, "answer generation failed",
			"outcome", string(outcome.Kind),
			"attempts", attempts,
			"error", redact.Error(outcome.Err()))
	}

	return outcome.Message()
}

// attempt performs one HTTP round and classifies it.
func (e *Engine) attempt(ctx context.Context, endpoint string, body []byte, apiKey string) generation.Outcome {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return generation.TransportError(e.scrub(err.Error(), apiKey))
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return generation.TransportError(e.scrub(err.Error(), apiKey))
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		msg := fmt.Sprintf("%v: %s for url: %s", ErrUnexpectedStatus, resp.Status, endpoint)
		if s := strings.TrimSpace(string(snippet)); s != "" {
			msg += ": " + s
		}
		return generation.TransportError(e.scrub(msg, apiKey))
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return generation.TransportError(e.scrub(err.Error(), apiKey))
	}

	decoded, err := decodeResponse(raw)
	if err != nil {
		e.logger.WarnContext(ctx, "failed to decode response body", "error", redact.Error(err))
		return generation.Malformed()
	}

	return Classify(decoded, e.policy.Predicate)
}

// decodeResponse parses a generateContent body. A null or empty body is
// an error: genai's UnmarshalJSON dereferences its receiver and panics on a
// JSON null, so that case never reaches it, and any other panic raised while
// decoding is reported as an error too.
func decodeResponse(raw []byte) (resp *genai.GenerateContentResponse, err error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, ErrEmptyBody
	}

	defer func() {
		if r := recover(); r != nil {
			resp = nil
			err = fmt.Errorf("%w: %v", ErrUndecodableBody, r)
		}
	}()

	var decoded genai.GenerateContentResponse
	if err := json.Unmarshal(trimmed, &decoded); err != nil {
		return nil, err
	}
	return &decoded, nil
}

// scrub removes the literal key and any key query parameter from msg. The
// result is shown to the user, so the broader log patterns are not applied.
func (e *Engine) scrub(msg, apiKey string) string {
	return redact.QueryKey(redact.Secret(msg, apiKey))
}
