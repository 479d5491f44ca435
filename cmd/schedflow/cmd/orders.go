package cmd

import (
	"os"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"

	"github.com/schedflow/schedflow"
	"github.com/schedflow/schedflow/internal/appcontext"
	"github.com/schedflow/schedflow/pkg/errors"
)

// NewOrdersCommand creates the orders command.
func NewOrdersCommand(appCtx appcontext.Interface) *cobra.Command {
	var (
		includeCompleted bool
		excludeProducts  []string
		excludeFile      string
	)

	c := &cobra.Command{
		Use:   "orders",
		Short: "Extract the order fulfillment view",
		Long: `Orders extracts planned orders joined with their scheduled
allocations, with completion status overlaid from the execution
service. One output row per allocation.`,
		RunE: func(c *cobra.Command, _ []string) error {
			if excludeFile != "" {
				fromFile, err := loadExcludeFile(excludeFile)
				if err != nil {
					return err
				}
				excludeProducts = append(excludeProducts, fromFile...)
			}

			client, err := appCtx.Client(c.Context())
			if err != nil {
				return err
			}

			view, err := client.Orders(c.Context(), schedflow.OrdersOptions{
				IncludeCompleted: includeCompleted,
				ExcludeProducts:  excludeProducts,
			})
			if err != nil {
				return err
			}

			return render(appCtx, view)
		},
	}

	c.Flags().BoolVar(&includeCompleted, "include-completed", false, "keep orders already in a terminal state")
	c.Flags().StringSliceVar(&excludeProducts, "exclude-products", nil, "product codes to drop from the view")
	c.Flags().StringVar(&excludeFile, "exclude-file", "", "YAML file with a list of product codes to drop")

	return c
}

// loadExcludeFile reads a YAML list of product codes.
func loadExcludeFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}

	var products []string
	if err := yaml.Unmarshal(data, &products); err != nil {
		return nil, errors.WrapParse("yaml", path, err)
	}
	return products, nil
}
