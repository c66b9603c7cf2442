package sensibo

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// DefaultBaseURL is the Sensibo API v2 endpoint.
const DefaultBaseURL = "https://home.sensibo.com/api/v2"

// DevicesClient reads devices and their sensor data.
type DevicesClient interface {
	// ListDevices returns every pod of the account.
	ListDevices(ctx context.Context) ([]Device, error)
	// GetDevice returns one pod.
	GetDevice(ctx context.Context, deviceID string) (Device, error)
	// GetMeasurements returns the most recent reading of a pod.
	GetMeasurements(ctx context.Context, deviceID string) (Measurement, error)
}

// ACStatesClient reads and changes AC state.
type ACStatesClient interface {
	// GetACStates returns up to limit log entries, newest first. A limit
	// below 1 is treated as 1.
	GetACStates(ctx context.Context, deviceID string, limit int) ([]ACStateLog, error)
	// GetACStateLog returns a single log entry.
	GetACStateLog(ctx context.Context, deviceID, logID string) (ACStateLog, error)
	// SetACStateProperty changes one property. When currentState is nil the
	// newest log entry's acState is fetched and used as the baseline.
	SetACStateProperty(ctx context.Context, deviceID, name string, value interface{}, currentState ACState) (interface{}, error)
}

// Client is the Sensibo API client.
type Client interface {
	DevicesClient
	ACStatesClient

	// Close releases the transport when the client created it. A transport
	// passed in through Config.HTTPClient is left untouched.
	Close() error
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Config represents client configuration for building a sensibo.Client.
//
// # Transport ownership
//
// When HTTPClient is set it is borrowed: the client uses it for every request
// and never closes it. When it is nil the client builds its own transport and
// releases it on Close.
//
// # Timeouts
//
// Per-request deadlines should be controlled via the context passed to client
// methods. HTTPTimeout only applies to a client-owned transport.
type Config struct {
	// APIKey is the key from https://home.sensibo.com/me/api. Required.
	APIKey string
	// BaseURL overrides DefaultBaseURL.
	BaseURL string

	// HTTPClient is an optional caller-owned HTTP client.
	HTTPClient *http.Client
	// HTTPTimeout bounds each request of a client-owned transport.
	HTTPTimeout time.Duration
	// UserAgent overrides the default User-Agent header.
	UserAgent string

	// Debug enables request/response logging when a Logger is provided.
	Debug bool
	// Logger is an optional structured logger.
	Logger Logger
	// Interceptors run around every request.
	Interceptors *InterceptorChain
	// Metrics registers request counters and latency histograms.
	Metrics prometheus.Registerer
}
