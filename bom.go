package schedflow

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/schedflow/schedflow/pkg/logging"
	"github.com/schedflow/schedflow/pkg/tabular"
)

var secondsPerHour = decimal.NewFromInt(3600)

// bomColumns is the ordered column set of the BOM setup view before
// renaming to display labels.
var bomColumns = []string{
	"quantity", "operationCode", "externalId", "description", "materialGroup",
	"segmentCode", "route", "equipmentClassId", "equipmentClass",
	"materialId", "material", "quantity_segmentMaterial",
	"quantityUnitOfMeasure", "materialUse", "fixedDuration", "rate", "rateHour",
}

var bomLabels = map[string]string{
	"operationCode":            "Operation Code",
	"externalId":               "Operation External ID",
	"description":              "Operation Description",
	"materialGroup":            "Operation Material Group",
	"segmentCode":              "Segment",
	"route":                    "Route",
	"quantity":                 "Quantity",
	"quantity_segmentMaterial": "Material Quantity",
	"quantityUnitOfMeasure":    "Material Unit of Measure",
	"materialUse":              "Material Use",
	"equipmentClass":           "Equipment Class",
	"equipmentClassId":         "Equipment Class ID",
	"materialId":               "Material Code",
	"material":                 "Material Description",
	"fixedDuration":            "Fixed Duration",
	"rate":                     "Rate",
	"rateHour":                 "Rate per Hour",
}

// BOMSetup builds the bill-of-materials setup view: operations joined
// with their routes, material definitions, segments, equipment classes
// and segment materials, one row per combination. Operations without a
// match on any leg survive with empty fields.
func (c *Client) BOMSetup(ctx context.Context) (*tabular.Table, error) {
	operations, err := c.scheduler.Operations(ctx)
	if err != nil {
		return nil, err
	}
	routes, err := c.scheduler.Routes(ctx)
	if err != nil {
		return nil, err
	}
	materials, err := c.materialListing(ctx)
	if err != nil {
		return nil, err
	}
	segments, err := c.scheduler.Segments(ctx)
	if err != nil {
		return nil, err
	}
	segmentEquipments, err := c.scheduler.SegmentEquipments(ctx)
	if err != nil {
		return nil, err
	}
	segmentMaterials, err := c.scheduler.SegmentMaterials(ctx)
	if err != nil {
		return nil, err
	}

	merged := operations.
		LeftJoin(routes, []string{"operationCode"}, []string{"operationCode"}, "_route").
		LeftJoin(materials, []string{"operationCode"}, []string{"externalId"}, "_material").
		LeftJoin(segments, []string{"operationCode", "routeCode"}, []string{"operationCode", "routeCode"}, "_segments").
		LeftJoin(segmentEquipments, []string{"operationCode", "routeCode", "segmentCode"}, []string{"operationCode", "routeCode", "segmentCode"}, "_equipment").
		LeftJoin(segmentMaterials, []string{"operationCode", "routeCode", "segmentCode"}, []string{"operationCode", "routeCode", "segmentCode"}, "_segmentMaterial")

	merged.AddColumn("route", func(row tabular.Row) any {
		return tabular.Field(row["route"], "routeCode")
	})
	// equipmentClassId must come off the raw object before the class
	// column is flattened to its description.
	merged.AddColumn("equipmentClassId", func(row tabular.Row) any {
		return tabular.Field(row["equipmentClass"], "externalId")
	})
	merged.AddColumn("equipmentClass", func(row tabular.Row) any {
		return tabular.ToString(tabular.Field(row["equipmentClass"], "description"))
	})
	merged.AddColumn("materialId", func(row tabular.Row) any {
		return tabular.Field(row["materialDefinition"], "externalId")
	})
	merged.AddColumn("material", func(row tabular.Row) any {
		return tabular.Field(row["materialDefinition"], "description")
	})
	merged.AddColumn("fixedDuration", func(row tabular.Row) any {
		return tabular.ToDecimal(row["fixedDuration"])
	})
	merged.AddColumn("rate", func(row tabular.Row) any {
		return tabular.ToDecimal(row["rate"])
	})
	merged.AddColumn("rateHour", func(row tabular.Row) any {
		return tabular.ToDecimal(row["rate"]).Mul(secondsPerHour)
	})

	view := merged.
		Select(bomColumns...).
		Rename(bomLabels).
		SortBy("Operation Code", "Segment", "Route", "Material Code")

	logging.Ctx(ctx).Info().
		Int("rows", view.Len()).
		Msg("Built BOM setup view")

	return view, nil
}
