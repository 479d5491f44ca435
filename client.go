package schedflow

import (
	"context"
	"fmt"
	"strings"

	"github.com/schedflow/schedflow/internal/execution"
	"github.com/schedflow/schedflow/internal/scheduler"
	"github.com/schedflow/schedflow/internal/transport"
	"github.com/schedflow/schedflow/pkg/errors"
	"github.com/schedflow/schedflow/pkg/logging"
)

// Client is the entry point for extracting a site's scheduling data.
// It is scoped to one site on one tenant and carries the live planning
// scenario resolved at construction.
type Client struct {
	site       string
	tenant     string
	credential string

	baseURL string
	options *clientOptions

	scheduler *scheduler.Client
	execution *execution.Client
}

// New creates a client for the given site and tenant. The credential
// is the tenant's base64-encoded basic-auth token. Construction makes
// a network round trip to resolve the site's live scenario and fails
// when none exists.
func New(ctx context.Context, site, tenant, credential string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(site) == "" {
		return nil, errors.NewValidationError("site", site, "site is required")
	}
	if strings.TrimSpace(tenant) == "" {
		return nil, errors.NewValidationError("tenant", tenant, "tenant is required")
	}
	if strings.TrimSpace(credential) == "" {
		return nil, errors.NewValidationError("credential", "", "credential is required")
	}

	options := defaultOptions()
	for _, opt := range opts {
		opt(options)
	}

	c := &Client{
		site:       site,
		tenant:     tenant,
		credential: credential,
		options:    options,
		baseURL:    options.baseURL,
	}
	if c.baseURL == "" {
		c.baseURL = platformBaseURL(tenant, options.staging)
	}

	if options.logger != nil {
		ctx = logging.WithLogger(ctx, options.logger)
	}

	auth := &transport.BasicAuth{Credential: credential}

	schedulerClient, err := scheduler.New(ctx,
		transport.New(scheduler.ServiceName, auth, options.transport...),
		c.baseURL, site)
	if err != nil {
		return nil, err
	}
	c.scheduler = schedulerClient
	c.execution = execution.New(
		transport.New(execution.ServiceName, auth, options.transport...),
		c.baseURL)

	logging.Ctx(ctx).Info().
		Str("site", site).
		Str("tenant", tenant).
		Str("base_url", c.baseURL).
		Str("scheduler_url", c.scheduler.BaseURL()).
		Int64("scenario_id", c.scheduler.ScenarioID()).
		Msg("Client ready")

	return c, nil
}

// platformBaseURL derives the tenant's API base URL.
func platformBaseURL(tenant string, staging bool) string {
	stage := ""
	if staging {
		stage = "-stage"
	}
	return fmt.Sprintf("https://%s.opsuite%s.cloud/au/api", tenant, stage)
}

// Site returns the site code the client is scoped to.
func (c *Client) Site() string {
	return c.site
}

// Tenant returns the tenant the client is scoped to.
func (c *Client) Tenant() string {
	return c.tenant
}

// BaseURL returns the platform API base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// SchedulerBaseURL returns the scheduler base URL scoped to the
// resolved data template.
func (c *Client) SchedulerBaseURL() string {
	return c.scheduler.BaseURL()
}

// ScenarioID returns the live scenario resolved at construction.
func (c *Client) ScenarioID() int64 {
	return c.scheduler.ScenarioID()
}

// DataTemplateID returns the data template resolved at construction.
func (c *Client) DataTemplateID() int64 {
	return c.scheduler.DataTemplateID()
}
