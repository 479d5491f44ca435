// Package cmd implements the schedflow CLI subcommands.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/schedflow/schedflow/internal/appcontext"
	"github.com/schedflow/schedflow/internal/cmd/output"
	"github.com/schedflow/schedflow/pkg/tabular"
)

// NewBOMCommand creates the bom command.
func NewBOMCommand(appCtx appcontext.Interface) *cobra.Command {
	return &cobra.Command{
		Use:   "bom",
		Short: "Extract the bill-of-materials setup",
		Long: `Bom extracts the site's bill-of-materials setup: operations joined
with their routes, material definitions, segments, equipment classes
and segment materials, one row per combination.`,
		RunE: func(c *cobra.Command, _ []string) error {
			client, err := appCtx.Client(c.Context())
			if err != nil {
				return err
			}

			view, err := client.BOMSetup(c.Context())
			if err != nil {
				return err
			}

			return render(appCtx, view)
		},
	}
}

// render writes a view in the detected format to the configured
// destination.
func render(appCtx appcontext.Interface, view *tabular.Table) error {
	format := output.DetectFormat(appCtx.Format(), appCtx.OutputPath())
	return output.Write(view, format, appCtx.OutputPath())
}
