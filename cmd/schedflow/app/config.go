package app

import (
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/schedflow/schedflow/pkg/errors"
)

// Config holds the CLI configuration loaded from flags, environment
// variables, .env files and the config file, in that precedence.
type Config struct {
	// Connection
	Site       string `validate:"required"`
	Tenant     string `validate:"required"`
	Credential string `validate:"required,base64"`
	Staging    bool
	BaseURL    string `validate:"omitempty,url"`
	Timeout    time.Duration

	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Format  string
	Output  string

	// Config file
	ConfigFile string

	// Logging configuration
	LogLevel  string
	LogFormat string
	LogOutput string
}

var validate = validator.New()

// LoadConfig loads configuration from all sources in order of
// precedence:
//  1. Command-line flags (applied later by cobra)
//  2. Environment variables
//  3. .env files
//  4. Config file (~/.schedflow.yaml)
//  5. Defaults
func LoadConfig() (*Config, error) {
	loadEnvFiles()

	viper.AutomaticEnv()
	viper.SetEnvPrefix("SCHEDFLOW")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	configFile := viper.GetString("config")
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
			viper.AddConfigPath(".")
			viper.SetConfigType("yaml")
			viper.SetConfigName(".schedflow")
		}
	}

	// Missing config file is fine, env and flags can carry everything.
	_ = viper.ReadInConfig()

	config := &Config{
		Site:       viper.GetString("site"),
		Tenant:     viper.GetString("tenant"),
		Credential: viper.GetString("credential"),
		Staging:    viper.GetBool("staging"),
		BaseURL:    viper.GetString("base_url"),
		Timeout:    viper.GetDuration("timeout"),

		Verbose: viper.GetBool("verbose"),
		Quiet:   viper.GetBool("quiet"),
		NoColor: viper.GetBool("no-color"),
		Format:  viper.GetString("format"),
		Output:  viper.GetString("output"),

		ConfigFile: viper.ConfigFileUsed(),

		LogLevel:  getEnvOrDefault("LOG_LEVEL", ""),
		LogFormat: getEnvOrDefault("LOG_FORMAT", "auto"),
		LogOutput: getEnvOrDefault("LOG_OUTPUT", "stderr"),
	}

	return config, nil
}

// ValidateConnection checks that the config carries everything needed
// to construct a client.
func (c *Config) ValidateConnection() error {
	if err := validate.StructPartial(c, "Site", "Tenant", "Credential", "BaseURL"); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			field := fieldErrs[0]
			return errors.NewValidationError(strings.ToLower(field.Field()), "",
				"failed validation on "+field.Tag())
		}
		return err
	}
	return nil
}

// UpdateFromFlags applies parsed persistent flag values. Flags take
// precedence over config file and environment values.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, format, logLevel string) {
	c.Verbose = verbose
	c.Quiet = quiet
	c.NoColor = noColor
	if format != "" {
		c.Format = format
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
}

// loadEnvFiles loads environment variables from .env files.
// .env.local overrides .env.
func loadEnvFiles() {
	for _, envFile := range []string{".env", ".env.local"} {
		_ = godotenv.Load(envFile)
	}
}

// getEnvOrDefault returns the environment variable value or the
// default if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
