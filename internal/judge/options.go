package judge

import (
	"context"
	"time"
)

// DefaultCallTimeout bounds a single judge backend call.
const DefaultCallTimeout = 30 * time.Second

// clientConfig holds configuration for a judge client adapter.
type clientConfig struct {
	baseURL string
	apiKey  string
	model   string
	timeout time.Duration
}

func defaultClientConfig() *clientConfig {
	return &clientConfig{
		timeout: DefaultCallTimeout,
	}
}

// timeoutConfig bounds individual backend calls.
type timeoutConfig struct {
	d time.Duration
}

func (t timeoutConfig) apply(ctx context.Context) (context.Context, context.CancelFunc) {
	if t.d <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, t.d)
}

// Option is a functional option for configuring a judge client.
type Option func(*clientConfig)

// WithBaseURL sets the base URL for the backend API.
func WithBaseURL(url string) Option {
	return func(c *clientConfig) {
		c.baseURL = url
	}
}

// WithAPIKey sets the API key.
func WithAPIKey(key string) Option {
	return func(c *clientConfig) {
		c.apiKey = key
	}
}

// WithModel sets the judge model name.
func WithModel(model string) Option {
	return func(c *clientConfig) {
		c.model = model
	}
}

// WithTimeout sets the per-call timeout. Zero keeps the default.
func WithTimeout(timeout time.Duration) Option {
	return func(c *clientConfig) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}
