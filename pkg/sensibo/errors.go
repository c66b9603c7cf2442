package sensibo

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind classifies an APIError.
type ErrorKind int

const (
	// ErrorKindStatus is a non-2xx HTTP response.
	ErrorKindStatus ErrorKind = iota + 1
	// ErrorKindDecode is a response body that is not valid JSON.
	ErrorKindDecode
	// ErrorKindEnvelope is a well-formed body whose envelope lacks the
	// expected payload.
	ErrorKindEnvelope
)

// String implements fmt.Stringer.
func (k ErrorKind) String() string {
	switch k {
	case ErrorKindStatus:
		return "status"
	case ErrorKindDecode:
		return "decode"
	case ErrorKindEnvelope:
		return "envelope"
	default:
		return "unknown"
	}
}

// APIError is returned for every failure that originates from the remote
// service's response. Transport failures are not APIErrors.
type APIError struct {
	Kind       ErrorKind
	StatusCode int
	// Status is the envelope's "status" field, e.g. "error".
	Status string
	// Reason is the envelope's "reason" field, e.g. "NotFound".
	Reason  string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}

	if e.Reason != "" {
		msg = e.Reason + ": " + msg
	}

	if e.StatusCode != 0 {
		return fmt.Sprintf("sensibo api %s error (status %d): %s", e.Kind, e.StatusCode, msg)
	}

	return fmt.Sprintf("sensibo api %s error: %s", e.Kind, msg)
}

// Unwrap returns the underlying cause.
func (e *APIError) Unwrap() error {
	return e.Err
}

// Static errors for err113 compliance.
var (
	ErrConfigRequired        = errors.New("config is required")
	ErrAPIKeyRequired        = errors.New("API key is required")
	ErrDeviceIDRequired      = errors.New("device ID is required")
	ErrLogIDRequired         = errors.New("log ID is required")
	ErrPropertyNameRequired  = errors.New("property name is required")
	ErrMissingResult         = errors.New("response has no result field")
	ErrNoMeasurements        = errors.New("no measurements available")
	ErrNoACStateHistory      = errors.New("no AC state history available")
	ErrUnexpectedHTTPStatus  = errors.New("unexpected HTTP status")
	ErrClientClosed          = errors.New("client is closed")
	ErrInvalidBaseURL        = errors.New("invalid base URL")
	ErrNegativeHTTPTimeout   = errors.New("HTTP timeout must not be negative")
	ErrACStateBaselineAbsent = errors.New("latest AC state log has no acState")
)

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool {
	return hasStatus(err, http.StatusNotFound)
}

// IsUnauthorized reports whether err is a 401 or 403 from the API.
func IsUnauthorized(err error) bool {
	return hasStatus(err, http.StatusUnauthorized) || hasStatus(err, http.StatusForbidden)
}

// IsDecodeError reports whether err is a response that could not be parsed.
func IsDecodeError(err error) bool {
	return hasKind(err, ErrorKindDecode)
}

// IsEnvelopeError reports whether err is a response with a malformed or
// empty envelope.
func IsEnvelopeError(err error) bool {
	return hasKind(err, ErrorKindEnvelope)
}

func hasStatus(err error, status int) bool {
	apiErr := &APIError{}
	if errors.As(err, &apiErr) {
		return apiErr.Kind == ErrorKindStatus && apiErr.StatusCode == status
	}

	return false
}

func hasKind(err error, kind ErrorKind) bool {
	apiErr := &APIError{}
	if errors.As(err, &apiErr) {
		return apiErr.Kind == kind
	}

	return false
}
