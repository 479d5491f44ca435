package schedflow

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bomFixture() *fakePlatform {
	fake := newFakePlatform()
	fake.rest["/scheduler/SITE1/7/operations"] = `[
		{"id":1,"operationCode":"OP-1","externalId":"OP-1","description":"Blend","quantity":100},
		{"id":2,"operationCode":"OP-2","externalId":"OP-2","description":"Pack","quantity":50}
	]`
	fake.rest["/scheduler/SITE1/7/routes"] = `[
		{"id":1,"operationCode":"OP-1","routeCode":"R1"}
	]`
	fake.rest["/scheduler/SITE1/7/material-definitions"] = `[
		{"id":1,"externalId":"OP-1","description":"Blend SKU","materialGroup":{"externalId":"FG"}}
	]`
	fake.rest["/scheduler/SITE1/7/segments"] = `[
		{"id":5,"operationCode":"OP-1","routeCode":"R1","segmentCode":"S1",
		 "route":{"routeCode":"R1"},"fixedDuration":null,"rate":"0.5"}
	]`
	fake.rest["/scheduler/SITE1/7/segment-equipments"] = `[
		{"id":6,"operationCode":"OP-1","routeCode":"R1","segmentCode":"S1",
		 "equipmentClass":{"externalId":"MIXERS","description":"Mixers"}}
	]`
	fake.rest["/scheduler/SITE1/7/segment-materials"] = `[
		{"id":8,"operationCode":"OP-1","routeCode":"R1","segmentCode":"S1",
		 "materialDefinition":{"externalId":"RM-2","description":"Raw 2"},
		 "quantity":5,"quantityUnitOfMeasure":"KG","materialUse":"CONSUMED"},
		{"id":7,"operationCode":"OP-1","routeCode":"R1","segmentCode":"S1",
		 "materialDefinition":{"externalId":"RM-1","description":"Raw 1"},
		 "quantity":10,"quantityUnitOfMeasure":"KG","materialUse":"CONSUMED"}
	]`
	return fake
}

func TestBOMSetup(t *testing.T) {
	client := newFakeClient(t, bomFixture())

	view, err := client.BOMSetup(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{
		"Quantity", "Operation Code", "Operation External ID",
		"Operation Description", "Operation Material Group", "Segment",
		"Route", "Equipment Class ID", "Equipment Class", "Material Code",
		"Material Description", "Material Quantity",
		"Material Unit of Measure", "Material Use", "Fixed Duration",
		"Rate", "Rate per Hour",
	}, view.Columns())

	// One row per segment material for OP-1, one bare row for OP-2.
	require.Equal(t, 3, view.Len())

	first := view.Row(0)
	assert.Equal(t, "OP-1", first["Operation Code"])
	assert.Equal(t, "R1", first["Route"])
	assert.Equal(t, "S1", first["Segment"])
	assert.Equal(t, "FG", first["Operation Material Group"])
	assert.Equal(t, "MIXERS", first["Equipment Class ID"])
	assert.Equal(t, "Mixers", first["Equipment Class"])
	// Sorted by material code: RM-1 before RM-2 despite fetch order.
	assert.Equal(t, "RM-1", first["Material Code"])
	assert.Equal(t, "Raw 1", first["Material Description"])
	assert.Equal(t, json.Number("10"), first["Material Quantity"])

	assert.True(t, first["Fixed Duration"].(decimal.Decimal).IsZero())
	assert.True(t, first["Rate per Hour"].(decimal.Decimal).Equal(decimal.NewFromInt(1800)))

	assert.Equal(t, "RM-2", view.Row(1)["Material Code"])

	// OP-2 has no route, segment or material legs and still survives.
	bare := view.Row(2)
	assert.Equal(t, "OP-2", bare["Operation Code"])
	assert.Nil(t, bare["Route"])
	assert.Equal(t, "", bare["Equipment Class"])
	assert.Nil(t, bare["Material Code"])
	assert.True(t, bare["Rate per Hour"].(decimal.Decimal).IsZero())
}

func TestBOMSetupUpstreamError(t *testing.T) {
	fake := bomFixture()
	delete(fake.rest, "/scheduler/SITE1/7/segments")
	client := newFakeClient(t, fake)

	_, err := client.BOMSetup(context.Background())
	require.Error(t, err)
}
