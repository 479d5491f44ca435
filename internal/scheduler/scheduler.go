// Package scheduler provides the client for the scheduling service's
// REST and graph-query endpoints, scoped to one resolved planning
// scenario.
package scheduler

import (
	"context"
	"fmt"

	"github.com/schedflow/schedflow/internal/transport"
	"github.com/schedflow/schedflow/pkg/errors"
	"github.com/schedflow/schedflow/pkg/logging"
	"github.com/schedflow/schedflow/pkg/tabular"
)

// ServiceName tags transport errors from the scheduling service.
const ServiceName = "scheduler"

// Client issues authenticated calls against the scheduling service.
// Construction resolves the live scenario for the site and fails
// outright when it cannot: every other call depends on the resolved
// (data template id, scenario id) pair.
type Client struct {
	transport *transport.Client
	site      string

	baseURL    string // {api}/scheduler
	graphqlURL string // {api}/scheduler/graphql
	scopedURL  string // {api}/scheduler/{site}/{dataTemplateID}

	dataTemplateID int64
	scenarioID     int64
}

// New creates a scheduler client and resolves the live scenario for
// the site. The returned client is fully usable or nil: a scenario or
// data template that cannot be resolved to a strictly positive id pair
// is a fatal configuration error.
func New(ctx context.Context, t *transport.Client, apiBaseURL, site string) (*Client, error) {
	c := &Client{
		transport:  t,
		site:       site,
		baseURL:    apiBaseURL + "/scheduler",
		graphqlURL: apiBaseURL + "/scheduler/graphql",
	}

	if err := c.resolveScenario(ctx); err != nil {
		return nil, err
	}

	c.scopedURL = fmt.Sprintf("%s/%s/%d", c.baseURL, c.site, c.dataTemplateID)

	logging.Ctx(ctx).Debug().
		Str("site", site).
		Int64("data_template_id", c.dataTemplateID).
		Int64("scenario_id", c.scenarioID).
		Msg("Resolved scheduling scenario")

	return c, nil
}

// resolveScenario queries for the live scenario at the client's site
// and pins the data template and scenario ids for all later calls.
func (c *Client) resolveScenario(ctx context.Context) error {
	data, err := c.Query(ctx, QueryRequest{
		OperationName: "Scenarios",
		Variables:     map[string]any{"site": c.site},
		Query:         scenarioQuery,
	})
	if err != nil {
		return errors.NewConfigError(ServiceName, "failed to resolve scenario", err)
	}

	scenarios, err := decodeList(data["scenarios"])
	if err != nil {
		return errors.NewConfigError(ServiceName, "failed to decode scenarios", err)
	}
	if len(scenarios) == 0 {
		return errors.NewConfigError(ServiceName,
			fmt.Sprintf("no live scenario for site %s", c.site), nil)
	}

	scenario := scenarios[0]
	c.scenarioID = tabular.ToInt64(scenario["id"])
	c.dataTemplateID = tabular.ToInt64(tabular.Field(scenario["dataTemplate"], "id"))

	if c.dataTemplateID <= 0 || c.scenarioID <= 0 {
		return errors.NewConfigError(ServiceName,
			"failed to get scheduler data template id or scenario id", nil)
	}
	return nil
}

// Site returns the site code the client is scoped to.
func (c *Client) Site() string {
	return c.site
}

// ScenarioID returns the resolved scenario id.
func (c *Client) ScenarioID() int64 {
	return c.scenarioID
}

// DataTemplateID returns the resolved data template id.
func (c *Client) DataTemplateID() int64 {
	return c.dataTemplateID
}

// BaseURL returns the scheduler base URL scoped to the resolved data
// template.
func (c *Client) BaseURL() string {
	return c.scopedURL
}

// FetchPaged issues a REST GET against the scoped scheduler base path,
// forcing a single oversized page so the complete entity set arrives
// in one round trip.
func (c *Client) FetchPaged(ctx context.Context, endpoint string) ([]tabular.Object, error) {
	url := c.scopedURL + transport.WithPaging(endpoint)

	logging.Ctx(ctx).Debug().Str("endpoint", endpoint).Msg("Fetching scheduler entities")

	var out []tabular.Object
	if err := c.transport.GetJSON(ctx, url, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// fetchTable fetches an endpoint and shapes the result into a table
// with the endpoint's declared column set.
func (c *Client) fetchTable(ctx context.Context, endpoint string, columns []string) (*tabular.Table, error) {
	objects, err := c.FetchPaged(ctx, endpoint)
	if err != nil {
		return nil, err
	}
	return tabular.FromObjects(columns, objects), nil
}
