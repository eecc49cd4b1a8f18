package generation_test

import (
	"errors"
	"testing"

	"github.com/phrazzld/scry-assist/internal/generation"
	"github.com/stretchr/testify/assert"
)

func TestOutcomeMessage(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		outcome generation.Outcome
		want    string
		wantErr error
	}{
		{
			name:    "success passes text through unchanged",
			outcome: generation.Success("line one\nline two"),
			want:    "line one\nline two",
		},
		{
			name:    "blocked",
			outcome: generation.Blocked("PROHIBITED_CONTENT"),
			want:    "request rejected, reason: PROHIBITED_CONTENT",
			wantErr: generation.ErrBlocked,
		},
		{
			name:    "filtered",
			outcome: generation.Filtered("SAFETY"),
			want:    "succeeded but content filtered for safety",
			wantErr: generation.ErrContentFiltered,
		},
		{
			name:    "empty",
			outcome: generation.Empty("MAX_TOKENS"),
			want:    "no usable content (reason: MAX_TOKENS)",
			wantErr: generation.ErrEmptyContent,
		},
		{
			name:    "malformed",
			outcome: generation.Malformed(),
			want:    "response format error",
			wantErr: generation.ErrInvalidResponse,
		},
		{
			name:    "transport",
			outcome: generation.TransportError("dial tcp: timeout"),
			want:    "API call error: dial tcp: timeout",
			wantErr: generation.ErrTransport,
		},
		{
			name:    "exhausted",
			outcome: generation.Exhausted(),
			want:    generation.MessageExhausted,
			wantErr: generation.ErrRetriesExhausted,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.outcome.Message())
			err := tc.outcome.Err()
			if tc.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, tc.wantErr), "expected %v, got %v", tc.wantErr, err)
		})
	}
}
