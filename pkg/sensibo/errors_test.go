package sensibo

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAPIError_Error(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      *APIError
		expected string
	}{
		{
			name:     "status with reason",
			err:      &APIError{Kind: ErrorKindStatus, StatusCode: 404, Reason: "NotFound", Message: "no such pod"},
			expected: "sensibo api status error (status 404): NotFound: no such pod",
		},
		{
			name:     "message falls back to cause",
			err:      &APIError{Kind: ErrorKindEnvelope, Err: ErrMissingResult},
			expected: "sensibo api envelope error: response has no result field",
		},
		{
			name:     "decode",
			err:      &APIError{Kind: ErrorKindDecode, StatusCode: 200, Message: "response body is not a JSON object"},
			expected: "sensibo api decode error (status 200): response body is not a JSON object",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestErrorKind_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "status", ErrorKindStatus.String())
	assert.Equal(t, "decode", ErrorKindDecode.String())
	assert.Equal(t, "envelope", ErrorKindEnvelope.String())
	assert.Equal(t, "unknown", ErrorKind(0).String())
}

func TestAPIError_Unwrap(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("getting measurements of abc: %w", &APIError{Kind: ErrorKindEnvelope, Err: ErrNoMeasurements})

	assert.ErrorIs(t, err, ErrNoMeasurements)
	assert.True(t, IsEnvelopeError(err))
	assert.False(t, IsDecodeError(err))
}

func TestErrorPredicates(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		err          error
		notFound     bool
		unauthorized bool
	}{
		{name: "404", err: &APIError{Kind: ErrorKindStatus, StatusCode: http.StatusNotFound}, notFound: true},
		{name: "401", err: &APIError{Kind: ErrorKindStatus, StatusCode: http.StatusUnauthorized}, unauthorized: true},
		{name: "403 wrapped", err: fmt.Errorf("listing devices: %w", &APIError{Kind: ErrorKindStatus, StatusCode: http.StatusForbidden}), unauthorized: true},
		{name: "decode error with 404 body", err: &APIError{Kind: ErrorKindDecode, StatusCode: http.StatusNotFound}},
		{name: "plain error", err: errors.New("boom")},
		{name: "nil", err: nil},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.notFound, IsNotFound(tt.err))
			assert.Equal(t, tt.unauthorized, IsUnauthorized(tt.err))
		})
	}
}
