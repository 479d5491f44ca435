package tabular

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLeftJoinEveryLeftRowSurvives(t *testing.T) {
	left := FromObjects([]string{"operationCode", "description"}, []Object{
		{"operationCode": "OP-1", "description": "Mix"},
		{"operationCode": "OP-2", "description": "Pack"},
		{"operationCode": "OP-3", "description": "Fill"},
	})
	right := FromObjects([]string{"operationCode", "routeCode"}, []Object{
		{"operationCode": "OP-1", "routeCode": "R1"},
		{"operationCode": "OP-1", "routeCode": "R2"},
	})

	joined := left.LeftJoin(right, []string{"operationCode"}, []string{"operationCode"}, "_route")

	// One row per match, unmatched rows survive with nil right cells.
	require.Equal(t, 4, joined.Len())
	assert.GreaterOrEqual(t, joined.Len(), left.Len())

	matched := joined.Filter(func(row Row) bool { return ToString(row["operationCode"]) == "OP-1" })
	assert.Equal(t, 2, matched.Len())

	unmatched := joined.Filter(func(row Row) bool { return ToString(row["operationCode"]) == "OP-2" })
	require.Equal(t, 1, unmatched.Len())
	assert.Nil(t, unmatched.Row(0)["routeCode"])
}

func TestLeftJoinSameNameKeyCollapses(t *testing.T) {
	left := FromObjects([]string{"operationCode"}, []Object{{"operationCode": "OP-1"}})
	right := FromObjects([]string{"operationCode", "routeCode"}, []Object{{"operationCode": "OP-1", "routeCode": "R1"}})

	joined := left.LeftJoin(right, []string{"operationCode"}, []string{"operationCode"}, "_route")
	assert.Equal(t, []string{"operationCode", "routeCode"}, joined.Columns())
}

func TestLeftJoinCollisionSuffix(t *testing.T) {
	left := FromObjects([]string{"operationCode", "quantity"}, []Object{
		{"operationCode": "OP-1", "quantity": json.Number("100")},
	})
	right := FromObjects([]string{"operationCode", "quantity", "materialUse"}, []Object{
		{"operationCode": "OP-1", "quantity": json.Number("5"), "materialUse": "Consumed"},
	})

	joined := left.LeftJoin(right, []string{"operationCode"}, []string{"operationCode"}, "_segmentMaterial")

	require.Equal(t, 1, joined.Len())
	assert.Equal(t, []string{"operationCode", "quantity", "quantity_segmentMaterial", "materialUse"}, joined.Columns())
	// Left wins the original name.
	assert.Equal(t, "100", ToString(joined.Row(0)["quantity"]))
	assert.Equal(t, "5", ToString(joined.Row(0)["quantity_segmentMaterial"]))
}

func TestLeftJoinDifferentKeyNamesKeepsBoth(t *testing.T) {
	left := FromObjects([]string{"operationCode"}, []Object{{"operationCode": "OP-1"}})
	right := FromObjects([]string{"externalId", "description"}, []Object{{"externalId": "OP-1", "description": "Blend"}})

	joined := left.LeftJoin(right, []string{"operationCode"}, []string{"externalId"}, "_material")
	assert.Equal(t, []string{"operationCode", "externalId", "description"}, joined.Columns())
	assert.Equal(t, "OP-1", joined.Row(0)["externalId"])
}

func TestCompositeKeyJoin(t *testing.T) {
	left := FromObjects([]string{"operationCode", "routeCode", "segmentCode"}, []Object{
		{"operationCode": "OP-1", "routeCode": "R1", "segmentCode": "S1"},
		{"operationCode": "OP-1", "routeCode": "R2", "segmentCode": "S1"},
	})
	right := FromObjects([]string{"operationCode", "routeCode", "segmentCode", "equipmentClass"}, []Object{
		{"operationCode": "OP-1", "routeCode": "R1", "segmentCode": "S1", "equipmentClass": "Mixer"},
	})

	on := []string{"operationCode", "routeCode", "segmentCode"}
	joined := left.LeftJoin(right, on, on, "_equipment")

	require.Equal(t, 2, joined.Len())
	assert.Equal(t, "Mixer", joined.Row(0)["equipmentClass"])
	assert.Nil(t, joined.Row(1)["equipmentClass"])
}

func TestNullKeysNeverMatch(t *testing.T) {
	left := FromObjects([]string{"k", "v"}, []Object{
		{"k": nil, "v": "left-null"},
		{"k": "a", "v": "left-a"},
	})
	right := FromObjects([]string{"k", "w"}, []Object{
		{"k": nil, "w": "right-null"},
		{"k": "a", "w": "right-a"},
	})

	joined := left.LeftJoin(right, []string{"k"}, []string{"k"}, "_r")
	require.Equal(t, 2, joined.Len())
	assert.Nil(t, joined.Row(0)["w"]) // null key rows do not pair up
	assert.Equal(t, "right-a", joined.Row(1)["w"])
}

func TestInnerJoinDropsUnmatched(t *testing.T) {
	left := FromObjects([]string{"orderItemsId", "orderNumber"}, []Object{
		{"orderItemsId": json.Number("11"), "orderNumber": "WO-1"},
		{"orderItemsId": json.Number("22"), "orderNumber": "WO-2"},
	})
	right := FromObjects([]string{"orderItemId", "quantity"}, []Object{
		{"orderItemId": json.Number("11"), "quantity": json.Number("5")},
		{"orderItemId": json.Number("11"), "quantity": json.Number("7")},
	})

	joined := left.InnerJoin(right, []string{"orderItemsId"}, []string{"orderItemId"}, "_scheduled")

	// WO-1 has two allocations: two rows out. WO-2 is unscheduled: dropped.
	require.Equal(t, 2, joined.Len())
	assert.Equal(t, "WO-1", joined.Row(0)["orderNumber"])
	assert.Equal(t, "WO-1", joined.Row(1)["orderNumber"])
}

func TestJoinNumericKeyCanonicalization(t *testing.T) {
	left := FromObjects([]string{"id"}, []Object{{"id": int64(5)}})
	right := FromObjects([]string{"id", "x"}, []Object{{"id": json.Number("5"), "x": "match"}})

	joined := left.InnerJoin(right, []string{"id"}, []string{"id"}, "_r")
	require.Equal(t, 1, joined.Len())
	assert.Equal(t, "match", joined.Row(0)["x"])
}

func TestJoinPanicsOnUnknownKey(t *testing.T) {
	left := FromObjects([]string{"a"}, nil)
	right := FromObjects([]string{"b"}, nil)
	assert.Panics(t, func() { left.LeftJoin(right, []string{"nope"}, []string{"b"}, "_r") })
	assert.Panics(t, func() { left.LeftJoin(right, []string{"a"}, []string{"nope"}, "_r") })
	assert.Panics(t, func() { left.LeftJoin(right, []string{"a"}, nil, "_r") })
}
