package constants

import "errors"

// Configuration errors.
var (
	ErrNoAPIKeyConfigured = errors.New("no API key configured, use 'sensibo login' or set SENSIBO_API_KEY")
	ErrUnknownConfigKey   = errors.New("unknown configuration key")
	ErrInvalidOutput      = errors.New("invalid output format, expected table, json or yaml")
	ErrEmptyAPIKey        = errors.New("API key must not be empty")
)

// Argument errors.
var (
	ErrInvalidLimit        = errors.New("limit must be a positive number")
	ErrInvalidCurrentState = errors.New("current state must be a JSON object")
)
