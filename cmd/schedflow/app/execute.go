package app

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/schedflow/schedflow/cmd/schedflow/cmd"
)

// Execute runs the schedflow CLI with the given arguments.
func (a *App) Execute(ctx context.Context, args []string) error {
	rootCmd := a.createRootCommand()
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}

// createRootCommand creates the root cobra command with all
// subcommands and persistent flags.
func (a *App) createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "schedflow",
		Short:   "Production scheduling data extraction",
		Version: a.version,
		Long: `Schedflow extracts production scheduling data from a tenant's
scheduling and order-execution services and reconciles it into
analysis-ready views: BOM setup, order fulfillment and materials.

Connection settings come from flags, SCHEDFLOW_* environment
variables, .env files or ~/.schedflow.yaml.`,
		PersistentPreRunE: a.setupCommand,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	rootCmd.PersistentFlags().StringVar(&a.config.ConfigFile, "config", "", "config file (default is $HOME/.schedflow.yaml)")
	rootCmd.PersistentFlags().StringVar(&a.config.Site, "site", a.config.Site, "site code of the planning scenario")
	rootCmd.PersistentFlags().StringVar(&a.config.Tenant, "tenant", a.config.Tenant, "tenant name")
	rootCmd.PersistentFlags().StringVar(&a.config.Credential, "credential", a.config.Credential, "base64-encoded basic-auth credential")
	rootCmd.PersistentFlags().BoolVar(&a.config.Staging, "staging", a.config.Staging, "target the tenant's staging environment")
	rootCmd.PersistentFlags().StringVar(&a.config.BaseURL, "base-url", a.config.BaseURL, "override the derived platform API base URL")
	rootCmd.PersistentFlags().BoolVarP(&a.config.Verbose, "verbose", "v", false, "verbose output (shortcut for --log-level=debug)")
	rootCmd.PersistentFlags().BoolVarP(&a.config.Quiet, "quiet", "q", false, "minimal output (shortcut for --log-level=warn)")
	rootCmd.PersistentFlags().BoolVar(&a.config.NoColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().StringVarP(&a.config.Format, "format", "f", "", "output format: table, json, yaml, csv, xlsx")
	rootCmd.PersistentFlags().StringVarP(&a.config.Output, "output", "o", "", "write to file instead of stdout (extension picks the format)")
	rootCmd.PersistentFlags().StringVar(&a.config.LogLevel, "log-level", "", "log level: trace, debug, info, warn, error (overrides -v/-q)")

	rootCmd.SetVersionTemplate("schedflow {{.Version}}\n")

	a.registerCommands(rootCmd)

	return rootCmd
}

// setupCommand runs before any command and reconciles flag values into
// the config, then rebuilds the logger.
func (a *App) setupCommand(c *cobra.Command, _ []string) error {
	verbose := mustGetBool(c, "verbose")
	quiet := mustGetBool(c, "quiet")
	noColor := mustGetBool(c, "no-color")
	format := mustGetString(c, "format")
	logLevel := mustGetString(c, "log-level")

	a.config.UpdateFromFlags(verbose, quiet, noColor, format, logLevel)

	logger := NewLogger(a.config)
	a.logger = &logger

	return nil
}

// registerCommands wires up all subcommands.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	rootCmd.AddCommand(cmd.NewBOMCommand(a))
	rootCmd.AddCommand(cmd.NewOrdersCommand(a))
	rootCmd.AddCommand(cmd.NewMaterialsCommand(a))
	rootCmd.AddCommand(a.newVersionCommand())
}

// newVersionCommand creates the version command.
func (a *App) newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(c *cobra.Command, _ []string) {
			c.Printf("schedflow %s\n", a.version)
			if a.config.Verbose {
				c.Printf("  commit: %s\n", a.commit)
				c.Printf("  built:  %s\n", a.date)
			}
		},
	}
}

// ExitOnError prints an error and exits with status 1. Meant for
// top-level error handling in main.
func ExitOnError(err error) {
	if err != nil {
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}

// mustGetBool retrieves a boolean flag value or panics if the flag
// doesn't exist. Only for flags defined in this package.
func mustGetBool(c *cobra.Command, name string) bool {
	val, err := c.Flags().GetBool(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}

// mustGetString retrieves a string flag value or panics if the flag
// doesn't exist. Only for flags defined in this package.
func mustGetString(c *cobra.Command, name string) string {
	val, err := c.Flags().GetString(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}
