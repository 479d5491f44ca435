// Package schedflow extracts production scheduling data from a
// tenant's scheduling and order-execution services and reconciles it
// into analysis-ready views.
//
// A Client is scoped to one site on one tenant. Construction resolves
// the site's live planning scenario up front; afterwards the client
// exposes three views:
//
//   - BOMSetup: the bill-of-materials setup, one row per
//     operation/route/segment/material combination.
//   - Materials: the material listing, optionally widened with the
//     materials' property attributes.
//   - Orders: planned orders joined with their scheduled allocations
//     and overlaid with execution-side completion status.
//
// All views return *tabular.Table values ready for export.
package schedflow
