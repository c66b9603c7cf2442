// Package sensiboclient provides the main entry point for creating Sensibo API clients
package sensiboclient

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/fivetwenty-io/sensibo/internal/client"
	"github.com/fivetwenty-io/sensibo/pkg/sensibo"
)

// New creates a new Sensibo API client. The config is copied; the caller's
// value is not modified.
func New(config *sensibo.Config) (sensibo.Client, error) {
	if config == nil {
		return nil, sensibo.ErrConfigRequired
	}

	normalized := *config

	if normalized.BaseURL != "" {
		baseURL, err := normalizeBaseURL(normalized.BaseURL)
		if err != nil {
			return nil, err
		}

		normalized.BaseURL = baseURL
	}

	c, err := client.New(&normalized)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return c, nil
}

// NewWithAPIKey creates a client for the public endpoint.
func NewWithAPIKey(apiKey string) (sensibo.Client, error) {
	return New(&sensibo.Config{
		APIKey: apiKey,
	})
}

// normalizeBaseURL trims trailing slashes and defaults the scheme to https.
func normalizeBaseURL(raw string) (string, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(raw), "/")
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		baseURL = "https://" + baseURL
	}

	parsed, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("%w: %w", sensibo.ErrInvalidBaseURL, err)
	}

	if parsed.Host == "" {
		return "", fmt.Errorf("%w: %q has no host", sensibo.ErrInvalidBaseURL, raw)
	}

	return baseURL, nil
}
