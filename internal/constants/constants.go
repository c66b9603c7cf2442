package constants

import "time"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600
)

// Configuration locations.
const (
	// ConfigDirName is the directory under $HOME holding the CLI config.
	ConfigDirName = ".sensibo"

	// ConfigFileName is the CLI config file name without extension.
	ConfigFileName = "config"

	// ConfigFileType is the CLI config file format.
	ConfigFileType = "yml"

	// EnvPrefix prefixes environment variables read by the CLI.
	EnvPrefix = "SENSIBO"
)

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default timeout for HTTP requests made over a
	// client-owned transport.
	DefaultHTTPTimeout = 30 * time.Second

	// ShortHTTPTimeout is used for quick operations such as login validation.
	ShortHTTPTimeout = 10 * time.Second
)

// HTTP headers.
const (
	// DefaultUserAgent is sent unless overridden.
	DefaultUserAgent = "sensibo-go-client"

	// ContentTypeJSON is the request and response media type.
	ContentTypeJSON = "application/json"
)

// API paths and parameters.
const (
	// APIPathMyPods lists the account's devices.
	APIPathMyPods = "/users/me/pods"

	// APIPathPods prefixes per-device paths.
	APIPathPods = "/pods"

	// ParamAPIKey carries the API key on every request.
	ParamAPIKey = "apiKey"

	// ParamFields carries the field selector.
	ParamFields = "fields"

	// ParamLimit bounds the AC state history length.
	ParamLimit = "limit"

	// DefaultACStateLimit is the history length used when none is given.
	DefaultACStateLimit = 1
)

// Envelope values.
const (
	// EnvelopeStatusError marks a failed call in the envelope's status field.
	EnvelopeStatusError = "error"
)

// Format constants.
const (
	// FormatJSON for JSON output format.
	FormatJSON = "json"

	// FormatYAML for YAML output format.
	FormatYAML = "yaml"

	// FormatTable for table output format.
	FormatTable = "table"

	// JSONIndentSize is the indentation used by JSON and YAML encoders.
	JSONIndentSize = 2
)

// UI and display constants.
const (
	// CheckMarkSymbol is used to indicate active items.
	CheckMarkSymbol = "✓"

	// NotAvailable is used when information is not available.
	NotAvailable = "N/A"

	// MaskedSecret is used to hide sensitive information.
	MaskedSecret = "***"

	// SecretVisiblePrefix is how many leading characters of a secret stay visible.
	SecretVisiblePrefix = 4
)

// Validation and limits.
const (
	// MinimumArgumentCount is the argument count of KEY VALUE commands.
	MinimumArgumentCount = 2

	// SetPropertyArgumentCount is the argument count of "ac-states set".
	SetPropertyArgumentCount = 3
)

// Boolean string constants.
const (
	// BooleanTrue string representation.
	BooleanTrue = "true"

	// BooleanFalse string representation.
	BooleanFalse = "false"
)
