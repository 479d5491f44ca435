package schedflow

import (
	"context"
	"sort"

	"github.com/schedflow/schedflow/pkg/logging"
	"github.com/schedflow/schedflow/pkg/tabular"
)

// Materials builds the material listing: one row per material
// definition with its code, description and material group. With
// includeProperties set, the materials' property attributes are
// pivoted into one column per property name, empty where a material
// does not carry the property.
func (c *Client) Materials(ctx context.Context, includeProperties bool) (*tabular.Table, error) {
	materials, err := c.materialListing(ctx)
	if err != nil {
		return nil, err
	}
	if !includeProperties {
		return materials, nil
	}

	properties, err := c.materialProperties(ctx)
	if err != nil {
		return nil, err
	}

	view := materials.
		LeftJoin(properties, []string{"externalId"}, []string{"productCode"}, "").
		Drop("productCode")

	fillEmpty(view)

	logging.Ctx(ctx).Info().
		Int("rows", view.Len()).
		Int("columns", len(view.Columns())).
		Msg("Built material listing with properties")

	return view, nil
}

// materialListing fetches the material definitions and flattens them
// to the three columns every consumer uses, nulls normalized to the
// empty string.
func (c *Client) materialListing(ctx context.Context) (*tabular.Table, error) {
	materials, err := c.scheduler.MaterialDefinitions(ctx)
	if err != nil {
		return nil, err
	}

	materials.AddColumn("externalId", func(row tabular.Row) any {
		return tabular.ToString(row["externalId"])
	})
	materials.AddColumn("description", func(row tabular.Row) any {
		return tabular.ToString(row["description"])
	})
	materials.AddColumn("materialGroup", func(row tabular.Row) any {
		return tabular.ToString(tabular.Field(row["materialGroup"], "externalId"))
	})

	return materials.Select("externalId", "description", "materialGroup"), nil
}

// materialProperties fetches the per-material property rows and pivots
// them wide: one row per product code, one column per property name in
// lexicographic order.
func (c *Client) materialProperties(ctx context.Context) (*tabular.Table, error) {
	properties, err := c.scheduler.MaterialProperties(ctx)
	if err != nil {
		return nil, err
	}

	names := make(map[string]bool)
	values := make(map[string]map[string]any)
	var order []string

	for _, row := range properties.Rows() {
		product := tabular.ToString(tabular.Field(row["materialDefinition"], "externalId"))
		name := tabular.ToString(row["externalId"])
		if product == "" || name == "" {
			continue
		}
		if _, ok := values[product]; !ok {
			values[product] = make(map[string]any)
			order = append(order, product)
		}
		values[product][name] = row["value"]
		names[name] = true
	}

	columns := make([]string, 0, len(names)+1)
	for name := range names {
		columns = append(columns, name)
	}
	sort.Strings(columns)
	columns = append([]string{"productCode"}, columns...)

	pivoted := tabular.New(columns...)
	for _, product := range order {
		row := tabular.Row{"productCode": product}
		for name, value := range values[product] {
			row[name] = value
		}
		pivoted.Append(row)
	}

	fillEmpty(pivoted)
	return pivoted, nil
}

// fillEmpty replaces null cells with the empty string, in place.
func fillEmpty(t *tabular.Table) {
	for _, row := range t.Rows() {
		for _, column := range t.Columns() {
			if tabular.IsNull(row[column]) {
				row[column] = ""
			}
		}
	}
}
