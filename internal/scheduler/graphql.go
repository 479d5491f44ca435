package scheduler

import (
	"bytes"
	"context"
	"encoding/json"

	"github.com/schedflow/schedflow/pkg/errors"
	"github.com/schedflow/schedflow/pkg/tabular"
)

// Graph query documents. Field selections match what the flattening
// pipeline consumes downstream.
const (
	scenarioQuery = `query Scenarios($site: String) {
  scenarios(where: { isLive: true, location: { code: $site } }) {
    id
    dataTemplate { id }
  }
}`

	equipmentQuery = `query equipments($where: FilterEquipmentInput!, $orderBy: [String]) {
  equipments(where: $where, orderBy: $orderBy) {
    id
    externalId
    description
  }
}`

	ordersQuery = `query orders($scenarioId: Int!, $ids: [Int]!) {
  getOrdersForScenario(scenarioId: $scenarioId, ids: $ids) {
    id
    externalId
    earliestStartDate
    dueDate
    priority
    notes
    status { status alias code }
    orderItems {
      id
      invalid
      invalidReason
      allocated
      quantity
      quantityUnitOfMeasure
      operationsDefinitionClass
    }
    orderProperties { externalId value }
  }
}`

	allocationsQuery = `query getAllocations($scenarioId: Int!, $fromDate: String, $toDate: String) {
  getAllocations(scenarioId: $scenarioId, fromDate: $fromDate, toDate: $toDate) {
    version
    allocations {
      id
      profileId
      start
      end
      segmentId
      orderItemId
      quantity
      duration
      expectedDuration
      durationLocked
      assignments { id resourceId resourceType requirementId }
      allocatedPeriods { start end }
      changeover {
        id
        profileId
        start
        end
        segmentId
        orderItemId
        quantity
        duration
        expectedDuration
        durationLocked
        linkedSegmentId
        assignments { id resourceId resourceType requirementId }
        allocatedPeriods { start end }
      }
    }
  }
}`
)

// QueryRequest is a graph query document with variable bindings.
type QueryRequest struct {
	OperationName string         `json:"operationName,omitempty"`
	Variables     map[string]any `json:"variables,omitempty"`
	Query         string         `json:"query"`
}

// queryResponse is the graph endpoint's envelope. A succeeded call
// whose requested field is null still decodes cleanly: the null field
// is "no data", not an error.
type queryResponse struct {
	Data map[string]json.RawMessage `json:"data"`
}

// Query posts a graph query document and returns the decoded data
// object. Transport failures and non-success statuses abort the call;
// null or absent fields inside a successful payload do not.
func (c *Client) Query(ctx context.Context, req QueryRequest) (map[string]json.RawMessage, error) {
	var resp queryResponse
	if err := c.transport.PostJSON(ctx, c.graphqlURL, req, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// queryList runs a graph query and decodes one list-valued field of
// the response. A null or absent field yields a nil slice and no
// error: callers must treat "no error, no data" as a valid empty
// result.
func (c *Client) queryList(ctx context.Context, req QueryRequest, field string) ([]tabular.Object, error) {
	data, err := c.Query(ctx, req)
	if err != nil {
		return nil, err
	}
	return decodeList(data[field])
}

// isNullRaw reports whether a raw JSON value is absent or the null
// literal.
func isNullRaw(raw json.RawMessage) bool {
	return len(raw) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// decodeList decodes a raw JSON array into objects, preserving number
// precision. Null and absent values decode to a nil slice.
func decodeList(raw json.RawMessage) ([]tabular.Object, error) {
	if isNullRaw(raw) {
		return nil, nil
	}

	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()

	var out []tabular.Object
	if err := decoder.Decode(&out); err != nil {
		return nil, errors.WrapParse("json", "graph query result", err)
	}
	return out, nil
}

// decodeObject decodes a raw JSON object, preserving number precision.
// Null and absent values decode to nil.
func decodeObject(raw json.RawMessage) (tabular.Object, error) {
	if isNullRaw(raw) {
		return nil, nil
	}

	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()

	var out tabular.Object
	if err := decoder.Decode(&out); err != nil {
		return nil, errors.WrapParse("json", "graph query result", err)
	}
	return out, nil
}
