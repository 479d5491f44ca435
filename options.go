package schedflow

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/schedflow/schedflow/internal/transport"
)

// clientOptions holds construction-time settings for a Client.
type clientOptions struct {
	staging   bool
	baseURL   string
	logger    *zerolog.Logger
	transport []transport.Option
}

func defaultOptions() *clientOptions {
	return &clientOptions{}
}

// Option configures a Client at construction.
type Option func(*clientOptions)

// WithStaging targets the tenant's staging environment instead of
// production.
func WithStaging() Option {
	return func(o *clientOptions) {
		o.staging = true
	}
}

// WithBaseURL overrides the derived platform API base URL. The URL
// must not carry a trailing slash. WithStaging is ignored when an
// override is set.
func WithBaseURL(url string) Option {
	return func(o *clientOptions) {
		o.baseURL = url
	}
}

// WithHTTPClient sets the underlying HTTP client for both services.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *clientOptions) {
		o.transport = append(o.transport, transport.WithHTTPClient(hc))
	}
}

// WithTimeout sets the per-request timeout for both services.
func WithTimeout(d time.Duration) Option {
	return func(o *clientOptions) {
		o.transport = append(o.transport, transport.WithTimeout(d))
	}
}

// WithLogger routes the client's log output through the given logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(o *clientOptions) {
		o.logger = logger
	}
}
