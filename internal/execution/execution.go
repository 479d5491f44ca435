// Package execution provides the client for the order-execution
// service, which owns the authoritative completion status of orders.
package execution

import (
	"context"
	"fmt"
	"strings"

	"github.com/schedflow/schedflow/internal/transport"
	"github.com/schedflow/schedflow/pkg/logging"
	"github.com/schedflow/schedflow/pkg/tabular"
)

// ServiceName tags transport errors from the execution service.
const ServiceName = "execution"

// completedBatchSize caps how many order numbers ride in one query
// string. Larger batches get rejected by the service's URL limits.
const completedBatchSize = 80

// Client issues authenticated calls against the execution service.
type Client struct {
	transport *transport.Client
	baseURL   string
}

// New creates an execution client rooted at the platform API base URL.
func New(t *transport.Client, apiBaseURL string) *Client {
	return &Client{
		transport: t,
		baseURL:   apiBaseURL,
	}
}

// CompletedOrders reports which of the given order numbers the
// execution service has marked COMPLETED. Lookups run in batches and
// the result is a deduplicated set.
func (c *Client) CompletedOrders(ctx context.Context, orderNumbers []string) (map[string]struct{}, error) {
	completed := make(map[string]struct{})

	for start := 0; start < len(orderNumbers); start += completedBatchSize {
		end := start + completedBatchSize
		if end > len(orderNumbers) {
			end = len(orderNumbers)
		}
		batch := orderNumbers[start:end]

		endpoint := fmt.Sprintf("core/order-instances?status.equals=COMPLETED&orderNumber.in=%s",
			strings.Join(batch, ","))
		url := c.baseURL + "/" + transport.WithPaging(endpoint)

		var instances []tabular.Object
		if err := c.transport.GetJSON(ctx, url, &instances); err != nil {
			return nil, err
		}

		for _, instance := range instances {
			if number := tabular.ToString(instance["orderNumber"]); number != "" {
				completed[number] = struct{}{}
			}
		}
	}

	logging.Ctx(ctx).Debug().
		Int("checked", len(orderNumbers)).
		Int("completed", len(completed)).
		Msg("Resolved completed orders")

	return completed, nil
}
