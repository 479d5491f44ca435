package schedflow

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func materialsFixture() *fakePlatform {
	fake := newFakePlatform()
	fake.rest["/scheduler/SITE1/7/material-definitions"] = `[
		{"id":1,"externalId":"RM-1","description":"Raw 1","materialGroup":{"externalId":"RAW"}},
		{"id":2,"externalId":"RM-2","description":null,"materialGroup":null}
	]`
	fake.rest["/scheduler/SITE1/7/material-properties"] = `[
		{"id":1,"materialDefinition":{"externalId":"RM-1"},"externalId":"Color","value":"Red"},
		{"id":2,"materialDefinition":{"externalId":"RM-1"},"externalId":"Allergen","value":"None"},
		{"id":3,"materialDefinition":{"externalId":"RM-2"},"externalId":"Color","value":"Blue"}
	]`
	return fake
}

func TestMaterials(t *testing.T) {
	client := newFakeClient(t, materialsFixture())

	view, err := client.Materials(context.Background(), false)
	require.NoError(t, err)

	assert.Equal(t, []string{"externalId", "description", "materialGroup"}, view.Columns())
	require.Equal(t, 2, view.Len())

	assert.Equal(t, "RM-1", view.Row(0)["externalId"])
	assert.Equal(t, "RAW", view.Row(0)["materialGroup"])

	// Nulls normalize to the empty string.
	assert.Equal(t, "", view.Row(1)["description"])
	assert.Equal(t, "", view.Row(1)["materialGroup"])
}

func TestMaterialsWithProperties(t *testing.T) {
	client := newFakeClient(t, materialsFixture())

	view, err := client.Materials(context.Background(), true)
	require.NoError(t, err)

	// Property columns come in lexicographic order, the pivot key is
	// dropped.
	assert.Equal(t, []string{
		"externalId", "description", "materialGroup", "Allergen", "Color",
	}, view.Columns())
	require.Equal(t, 2, view.Len())

	assert.Equal(t, "Red", view.Row(0)["Color"])
	assert.Equal(t, "None", view.Row(0)["Allergen"])
	assert.Equal(t, "Blue", view.Row(1)["Color"])
	assert.Equal(t, "", view.Row(1)["Allergen"])
}

func TestMaterialsWithPropertiesNoMatch(t *testing.T) {
	fake := materialsFixture()
	fake.rest["/scheduler/SITE1/7/material-properties"] = `[]`
	client := newFakeClient(t, fake)

	view, err := client.Materials(context.Background(), true)
	require.NoError(t, err)

	assert.Equal(t, []string{"externalId", "description", "materialGroup"}, view.Columns())
	assert.Equal(t, 2, view.Len())
}
