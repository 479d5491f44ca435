package scheduler

import (
	"context"
	"encoding/json"
	"sort"

	"github.com/schedflow/schedflow/pkg/errors"
	"github.com/schedflow/schedflow/pkg/tabular"
)

// REST endpoints under the scoped scheduler base path.
const (
	endpointOperations          = "/operations"
	endpointRoutes              = "/routes"
	endpointMaterialDefinitions = "/material-definitions"
	endpointMaterialProperties  = "/material-properties"
	endpointSegments            = "/segments"
	endpointSegmentEquipments   = "/segment-equipments"
	endpointSegmentMaterials    = "/segment-materials"
)

// Column sets the pipeline consumes per endpoint. Nested references
// (materialGroup, route, equipmentClass, materialDefinition) stay as
// decoded objects until the views flatten them.
var (
	operationColumns = []string{"id", "operationCode", "externalId", "description", "quantity"}
	routeColumns     = []string{"id", "operationCode", "routeCode"}
	materialColumns  = []string{"id", "externalId", "description", "materialGroup"}
	propertyColumns  = []string{"id", "materialDefinition", "externalId", "value"}
	segmentColumns   = []string{"id", "operationCode", "routeCode", "segmentCode", "route", "fixedDuration", "rate"}
	segEquipColumns  = []string{"id", "operationCode", "routeCode", "segmentCode", "equipmentClass"}
	segMatColumns    = []string{"id", "operationCode", "routeCode", "segmentCode", "materialDefinition", "quantity", "quantityUnitOfMeasure", "materialUse"}
)

// Operations fetches the operation definitions for the data template.
func (c *Client) Operations(ctx context.Context) (*tabular.Table, error) {
	return c.fetchTable(ctx, endpointOperations, operationColumns)
}

// Routes fetches the route definitions.
func (c *Client) Routes(ctx context.Context) (*tabular.Table, error) {
	return c.fetchTable(ctx, endpointRoutes, routeColumns)
}

// MaterialDefinitions fetches the raw material definitions, nested
// material group reference included.
func (c *Client) MaterialDefinitions(ctx context.Context) (*tabular.Table, error) {
	return c.fetchTable(ctx, endpointMaterialDefinitions, materialColumns)
}

// MaterialProperties fetches the per-material property rows. One row
// per (material, property name) pair; the materials view pivots them.
func (c *Client) MaterialProperties(ctx context.Context) (*tabular.Table, error) {
	return c.fetchTable(ctx, endpointMaterialProperties, propertyColumns)
}

// Segments fetches the segment definitions.
func (c *Client) Segments(ctx context.Context) (*tabular.Table, error) {
	return c.fetchTable(ctx, endpointSegments, segmentColumns)
}

// SegmentEquipments fetches equipment-class assignments per segment.
func (c *Client) SegmentEquipments(ctx context.Context) (*tabular.Table, error) {
	return c.fetchTable(ctx, endpointSegmentEquipments, segEquipColumns)
}

// SegmentMaterials fetches material assignments per segment.
func (c *Client) SegmentMaterials(ctx context.Context) (*tabular.Table, error) {
	return c.fetchTable(ctx, endpointSegmentMaterials, segMatColumns)
}

// Equipment is a physical resource defined under the data template.
type Equipment struct {
	ID          json.Number `json:"id"`
	ExternalID  string      `json:"externalId"`
	Description string      `json:"description"`
}

// Equipment fetches the equipment defined under the data template,
// sorted by external id. A null result is a valid empty set.
func (c *Client) Equipment(ctx context.Context) ([]Equipment, error) {
	data, err := c.Query(ctx, QueryRequest{
		OperationName: "equipments",
		Variables: map[string]any{
			"where": map[string]any{
				"dataTemplate": map[string]any{"id": c.dataTemplateID},
			},
		},
		Query: equipmentQuery,
	})
	if err != nil {
		return nil, err
	}

	raw := data["equipments"]
	if isNullRaw(raw) {
		return nil, nil
	}

	var equipment []Equipment
	if err := json.Unmarshal(raw, &equipment); err != nil {
		return nil, errors.WrapParse("json", "equipments", err)
	}

	sort.Slice(equipment, func(i, j int) bool {
		return equipment[i].ExternalID < equipment[j].ExternalID
	})
	return equipment, nil
}

// Orders fetches all orders for the resolved scenario, nested status,
// items and properties included. The id filter is left empty on
// purpose: status and product filtering happen after the fetch.
func (c *Client) Orders(ctx context.Context) ([]tabular.Object, error) {
	return c.queryList(ctx, QueryRequest{
		OperationName: "orders",
		Variables: map[string]any{
			"scenarioId": c.scenarioID,
			"ids":        []int64{},
		},
		Query: ordersQuery,
	}, "getOrdersForScenario")
}

// Allocations fetches the scheduled allocations for the scenario over
// the unrestricted time window.
func (c *Client) Allocations(ctx context.Context) ([]tabular.Object, error) {
	data, err := c.Query(ctx, QueryRequest{
		OperationName: "getAllocations",
		Variables: map[string]any{
			"scenarioId": c.scenarioID,
			"fromDate":   nil,
			"toDate":     nil,
		},
		Query: allocationsQuery,
	})
	if err != nil {
		return nil, err
	}

	envelope, err := decodeObject(data["getAllocations"])
	if err != nil {
		return nil, err
	}
	if envelope == nil {
		return nil, nil
	}

	allocations, ok := envelope["allocations"]
	if !ok {
		return nil, nil
	}
	return tabular.Fields(allocations,
		"id", "start", "end", "segmentId", "orderItemId", "quantity",
		"duration", "expectedDuration", "durationLocked", "assignments", "changeover"), nil
}
