package schedflow

import (
	"context"
	"strings"
	"time"

	"github.com/schedflow/schedflow/internal/scheduler"
	"github.com/schedflow/schedflow/pkg/logging"
	"github.com/schedflow/schedflow/pkg/tabular"
)

// statusCompleted is the terminal status the execution service reports
// and the overlay writes back onto scheduled orders.
const statusCompleted = "COMPLETED"

// priorityLabels maps the scheduler's numeric priority to its display
// label. Unmapped priorities render empty.
var priorityLabels = map[int64]string{
	1: "High",
	2: "Medium",
	3: "Low",
}

// terminalStatuses are the order states filtered out of the view
// unless completed orders are requested.
var terminalStatuses = map[string]bool{
	"COMPLETED": true,
	"SUSPENDED": true,
	"CANCELLED": true,
	"READY":     true,
	"Complete":  true,
}

// ordersLabels renames the merged working columns to the view's final
// schema.
var ordersLabels = map[string]string{
	"id":                  "Id",
	"orderNumber":         "OrderNumber",
	"earliestStartDate":   "EarliestStartDate",
	"dueDate":             "DueDate",
	"notes":               "Notes",
	"status":              "Status",
	"orderItems":          "OrderItems",
	"orderProperties":     "OrderProperties",
	"priority":            "Priority",
	"orderedQuantity":     "OrderedQuantity",
	"orderUOM":            "OrderUOM",
	"ProductCode":         "ProductCode",
	"quantity":            "ScheduledQuantity",
	"duration":            "Duration_Minutes",
	"expectedDuration":    "ExpectedDuration_Minutes",
	"durationLocked":      "DurationLocked",
	"Changeover_duration": "ChangeoverDuration",
}

// OrdersOptions filters the orders view. The zero value excludes
// orders in a terminal state and excludes nothing by product.
type OrdersOptions struct {
	// IncludeCompleted keeps orders whose scheduling status is already
	// terminal (completed, suspended, cancelled, ready).
	IncludeCompleted bool

	// ExcludeProducts drops orders whose product code is listed.
	ExcludeProducts []string
}

// Orders builds the order-fulfillment view: planned orders joined with
// their scheduled allocations, completion status overlaid from the
// execution service. Orders without an allocation are dropped; an
// order with several allocations yields one row per allocation.
func (c *Client) Orders(ctx context.Context, opts OrdersOptions) (*tabular.Table, error) {
	planned, err := c.plannedOrders(ctx, opts)
	if err != nil {
		return nil, err
	}
	scheduled, err := c.scheduledOrders(ctx)
	if err != nil {
		return nil, err
	}

	merged := planned.InnerJoin(scheduled,
		[]string{"orderItemsId"}, []string{"orderItemId"}, "_scheduled")

	// The scheduler's status can lag execution. Completion reported by
	// the execution service wins.
	completed, err := c.execution.CompletedOrders(ctx, merged.Distinct("orderNumber"))
	if err != nil {
		return nil, err
	}
	for _, row := range merged.Rows() {
		if _, ok := completed[tabular.ToString(row["orderNumber"])]; ok {
			row["status"] = statusCompleted
		}
	}

	view := merged.
		Drop("orderItemId", "orderItemsId").
		Rename(ordersLabels)

	logging.Ctx(ctx).Info().
		Int("rows", view.Len()).
		Int("completed_overlaid", len(completed)).
		Msg("Built orders view")

	return view, nil
}

// plannedOrders fetches the scenario's orders and flattens them to one
// row per order, keyed by the first order item. Multi-item orders keep
// the full item list in the orderItems column.
func (c *Client) plannedOrders(ctx context.Context, opts OrdersOptions) (*tabular.Table, error) {
	objects, err := c.scheduler.Orders(ctx)
	if err != nil {
		return nil, err
	}

	orders := tabular.FromObjects([]string{
		"id", "externalId", "earliestStartDate", "dueDate", "notes",
		"status", "orderItems", "orderProperties", "priority",
	}, objects)

	orders.AddColumn("status", func(row tabular.Row) any {
		return tabular.ToString(tabular.Field(row["status"], "status"))
	})
	orders.AddColumn("orderItems", func(row tabular.Row) any {
		return tabular.Fields(row["orderItems"],
			"id", "quantity", "quantityUnitOfMeasure", "operationsDefinitionClass")
	})
	orders.AddColumn("orderItemsId", func(row tabular.Row) any {
		if item := firstItem(row); item != nil {
			return tabular.ToInt64(item["id"])
		}
		return nil
	})
	orders.AddColumn("orderedQuantity", func(row tabular.Row) any {
		if item := firstItem(row); item != nil {
			return item["quantity"]
		}
		return nil
	})
	orders.AddColumn("orderUOM", func(row tabular.Row) any {
		if item := firstItem(row); item != nil {
			return item["quantityUnitOfMeasure"]
		}
		return nil
	})
	orders.AddColumn("ProductCode", func(row tabular.Row) any {
		item := firstItem(row)
		if item == nil {
			return nil
		}
		class := tabular.ToString(item["operationsDefinitionClass"])
		code, _, _ := strings.Cut(class, " - ")
		return code
	})
	orders.AddColumn("orderProperties", func(row tabular.Row) any {
		if tabular.IsNull(row["orderProperties"]) {
			return nil
		}
		return tabular.Fields(row["orderProperties"], "externalId", "value")
	})
	orders.AddColumn("priority", func(row tabular.Row) any {
		return priorityLabels[tabular.ToInt64(row["priority"])]
	})

	if !opts.IncludeCompleted {
		orders = orders.Filter(func(row tabular.Row) bool {
			return !terminalStatuses[tabular.ToString(row["status"])]
		})
	}
	if len(opts.ExcludeProducts) > 0 {
		excluded := make(map[string]bool, len(opts.ExcludeProducts))
		for _, product := range opts.ExcludeProducts {
			excluded[product] = true
		}
		orders = orders.Filter(func(row tabular.Row) bool {
			return !excluded[tabular.ToString(row["ProductCode"])]
		})
	}

	return orders.
		Select("id", "externalId", "earliestStartDate", "dueDate", "notes",
			"status", "orderItems", "orderProperties", "priority",
			"orderItemsId", "orderedQuantity", "orderUOM", "ProductCode").
		Rename(map[string]string{"externalId": "orderNumber"}), nil
}

// firstItem returns the first order item of a row, nil when the order
// carries none.
func firstItem(row tabular.Row) tabular.Object {
	items := tabular.Fields(row["orderItems"],
		"id", "quantity", "quantityUnitOfMeasure", "operationsDefinitionClass")
	if len(items) == 0 {
		return nil
	}
	return items[0]
}

// scheduledOrders fetches the scenario's allocations and flattens them
// to one row per allocation: absolute start and end times, changeover
// duration and the equipment assigned.
func (c *Client) scheduledOrders(ctx context.Context) (*tabular.Table, error) {
	objects, err := c.scheduler.Allocations(ctx)
	if err != nil {
		return nil, err
	}
	equipment, err := c.scheduler.Equipment(ctx)
	if err != nil {
		return nil, err
	}

	allocations := tabular.FromObjects([]string{
		"orderItemId", "start", "end", "quantity", "duration",
		"expectedDuration", "durationLocked", "assignments", "changeover",
	}, objects)

	allocations.AddColumn("StartDateTime", func(row tabular.Row) any {
		return time.UnixMilli(tabular.ToInt64(row["start"])).UTC()
	})
	allocations.AddColumn("EndDateTime", func(row tabular.Row) any {
		return time.UnixMilli(tabular.ToInt64(row["end"])).UTC()
	})
	allocations.AddColumn("Changeover_duration", func(row tabular.Row) any {
		return tabular.Field(row["changeover"], "duration")
	})
	allocations.AddColumn("Equipment", func(row tabular.Row) any {
		return assignedEquipment(row["assignments"], equipment)
	})
	allocations.AddColumn("orderItemId", func(row tabular.Row) any {
		return tabular.ToInt64(row["orderItemId"])
	})

	return allocations.Select(
		"orderItemId", "StartDateTime", "EndDateTime", "quantity",
		"duration", "expectedDuration", "durationLocked",
		"Changeover_duration", "Equipment"), nil
}

// assignedEquipment resolves an allocation's resource assignments to a
// comma-joined list of equipment external ids, nil when nothing
// matches. Order follows the equipment listing, which is sorted by
// external id.
func assignedEquipment(assignments any, equipment []scheduler.Equipment) any {
	resources := make(map[int64]bool)
	for _, assignment := range tabular.Fields(assignments, "resourceId") {
		if id := tabular.ToInt64(assignment["resourceId"]); id > 0 {
			resources[id] = true
		}
	}

	var ids []string
	for _, e := range equipment {
		if resources[tabular.ToInt64(e.ID)] {
			ids = append(ids, e.ExternalID)
		}
	}
	if len(ids) == 0 {
		return nil
	}
	return strings.Join(ids, ",")
}
