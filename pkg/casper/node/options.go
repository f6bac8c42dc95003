package node

import (
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Option configures client and stream settings using
// the functional options pattern.
type Option func(*settings)

// settings holds internal configurable dependencies.
type settings struct {
	logger     *zap.Logger
	httpClient *http.Client

	initialDelay time.Duration
	maxDelay     time.Duration
}

// WithLogger sets a custom logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *settings) { s.logger = l }
}

// WithHTTPClient sets a custom HTTP client. Streams should be given a client
// without an overall timeout.
func WithHTTPClient(c *http.Client) Option {
	return func(s *settings) { s.httpClient = c }
}

// WithReconnectDelay sets the initial and maximum stream reconnect delay.
func WithReconnectDelay(initial, max time.Duration) Option {
	return func(s *settings) {
		s.initialDelay = initial
		s.maxDelay = max
	}
}

// applyOptions applies the provided options and returns the resulting settings.
// Defaults are applied before user-defined options.
func applyOptions(opts []Option) settings {
	s := settings{
		logger:       zap.NewNop(),
		httpClient:   &http.Client{Timeout: defaultRequestTimeout},
		initialDelay: time.Second,
		maxDelay:     time.Minute,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&s)
		}
	}
	return s
}
