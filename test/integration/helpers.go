//go:build integration

package integration

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/sensibo/pkg/sensibo"
	"github.com/fivetwenty-io/sensibo/pkg/sensiboclient"
)

// TestConfig holds configuration for integration tests.
type TestConfig struct {
	APIKey  string
	BaseURL string
	PodID   string
}

// LoadTestConfig loads configuration from environment variables.
func LoadTestConfig() *TestConfig {
	return &TestConfig{
		APIKey:  os.Getenv("SENSIBO_API_KEY"),
		BaseURL: os.Getenv("SENSIBO_BASE_URL"),
		PodID:   os.Getenv("SENSIBO_POD_ID"),
	}
}

// SkipIfMissingConfig skips the test when no API key is set.
func (config *TestConfig) SkipIfMissingConfig(t *testing.T) {
	t.Helper()

	if config.APIKey == "" {
		t.Skip("SENSIBO_API_KEY not set, skipping integration test")
	}
}

// NewClient creates a live client and closes it when the test ends.
func (config *TestConfig) NewClient(t *testing.T) sensibo.Client {
	t.Helper()

	client, err := sensiboclient.New(&sensibo.Config{
		APIKey:  config.APIKey,
		BaseURL: config.BaseURL,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	return client
}
