package client

import (
	"github.com/fivetwenty-io/sensibo/internal/http"
	"github.com/fivetwenty-io/sensibo/pkg/sensibo"
)

// Client implements the sensibo.Client interface.
type Client struct {
	*DevicesClient
	*ACStatesClient

	httpClient *http.Client
	baseURL    string
	logger     sensibo.Logger
}

var _ sensibo.Client = (*Client)(nil)

// createHTTPClientOptions builds HTTP client options from config.
func createHTTPClientOptions(config *sensibo.Config) []http.Option {
	var httpOpts []http.Option

	if config.Logger != nil {
		httpOpts = append(httpOpts, http.WithLogger(&loggerAdapter{logger: config.Logger}))
	}

	if config.Debug {
		httpOpts = append(httpOpts, http.WithDebug(true))
	}

	if config.UserAgent != "" {
		httpOpts = append(httpOpts, http.WithUserAgent(config.UserAgent))
	}

	if config.HTTPClient != nil {
		httpOpts = append(httpOpts, http.WithHTTPClient(config.HTTPClient))
	} else if config.HTTPTimeout > 0 {
		httpOpts = append(httpOpts, http.WithTimeout(config.HTTPTimeout))
	}

	if config.Interceptors != nil {
		httpOpts = append(httpOpts, http.WithInterceptors(config.Interceptors))
	}

	if config.Metrics != nil {
		httpOpts = append(httpOpts, http.WithMetrics(config.Metrics))
	}

	return httpOpts
}

// New creates a new Sensibo API client.
func New(config *sensibo.Config) (*Client, error) {
	if config == nil {
		return nil, sensibo.ErrConfigRequired
	}

	if config.APIKey == "" {
		return nil, sensibo.ErrAPIKeyRequired
	}

	if config.HTTPTimeout < 0 {
		return nil, sensibo.ErrNegativeHTTPTimeout
	}

	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = sensibo.DefaultBaseURL
	}

	httpClient := http.NewClient(baseURL, config.APIKey, createHTTPClientOptions(config)...)

	client := &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		logger:     config.Logger,
	}

	client.initializeResourceClients()

	return client, nil
}

// Close implements sensibo.Client.Close.
func (c *Client) Close() error {
	if c.logger != nil {
		c.logger.Debug("closing client", map[string]interface{}{
			"owned_transport": c.httpClient.Owned(),
		})
	}

	return c.httpClient.Close()
}

// BaseURL returns the API endpoint the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) initializeResourceClients() {
	c.DevicesClient = NewDevicesClient(c.httpClient)
	c.ACStatesClient = NewACStatesClient(c.httpClient)
}

// loggerAdapter adapts sensibo.Logger to http.Logger.
type loggerAdapter struct {
	logger sensibo.Logger
}

func (l *loggerAdapter) Debug(msg string, fields map[string]interface{}) {
	l.logger.Debug(msg, fields)
}

func (l *loggerAdapter) Info(msg string, fields map[string]interface{}) {
	l.logger.Info(msg, fields)
}

func (l *loggerAdapter) Warn(msg string, fields map[string]interface{}) {
	l.logger.Warn(msg, fields)
}

func (l *loggerAdapter) Error(msg string, fields map[string]interface{}) {
	l.logger.Error(msg, fields)
}
