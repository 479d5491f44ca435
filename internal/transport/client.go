// Package transport provides the authenticated HTTP plumbing shared by
// the scheduler and execution service clients.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/schedflow/schedflow/pkg/errors"
)

// DefaultHTTPTimeout is the default timeout for HTTP requests. Single
// oversized-page fetches can be slow on large data templates.
const DefaultHTTPTimeout = 60 * time.Second

// Client provides HTTP client functionality with authentication.
type Client struct {
	http    *http.Client
	auth    Authenticator
	service string
}

// Option configures a transport Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout sets the underlying HTTP client timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// New creates a transport client for the named upstream service. The
// service name tags every transport error so failures identify which
// system of record aborted a view build.
func New(service string, auth Authenticator, opts ...Option) *Client {
	if auth == nil {
		auth = &NoAuth{}
	}
	c := &Client{
		http:    &http.Client{Timeout: DefaultHTTPTimeout},
		auth:    auth,
		service: service,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Service returns the upstream service name this client talks to.
func (c *Client) Service() string {
	return c.service
}

// GetJSON performs a GET request and decodes the JSON response into
// target. A non-success HTTP status returns an APIError; no retries.
func (c *Client) GetJSON(ctx context.Context, url string, target any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return errors.WrapResource("create", "request", "GET "+url, err)
	}
	return c.do(req, target)
}

// PostJSON performs a POST request with a JSON body and decodes the
// JSON response into target.
func (c *Client) PostJSON(ctx context.Context, url string, body any, target any) error {
	encoded, err := json.Marshal(body)
	if err != nil {
		return errors.WrapParse("json", "request body", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(encoded))
	if err != nil {
		return errors.WrapResource("create", "request", "POST "+url, err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, target)
}

func (c *Client) do(req *http.Request, target any) error {
	c.auth.Apply(req)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return &errors.APIError{
			Service:  c.service,
			Endpoint: req.URL.Path,
			Message:  "request failed",
			Err:      err,
		}
	}
	return DecodeResponse(c.service, resp, target)
}
