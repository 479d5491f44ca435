package cmd

import (
	"github.com/spf13/cobra"

	"github.com/schedflow/schedflow/internal/appcontext"
)

// NewMaterialsCommand creates the materials command.
func NewMaterialsCommand(appCtx appcontext.Interface) *cobra.Command {
	var properties bool

	c := &cobra.Command{
		Use:   "materials",
		Short: "Extract the material listing",
		Long: `Materials extracts the material definitions: code, description and
material group. With --properties, each material's property attributes
are pivoted into additional columns.`,
		RunE: func(c *cobra.Command, _ []string) error {
			client, err := appCtx.Client(c.Context())
			if err != nil {
				return err
			}

			view, err := client.Materials(c.Context(), properties)
			if err != nil {
				return err
			}

			return render(appCtx, view)
		},
	}

	c.Flags().BoolVar(&properties, "properties", false, "include pivoted material properties")

	return c
}
