// Package appcontext defines the interface commands use to reach the
// application's shared dependencies. It keeps command packages free of
// a direct dependency on the app package.
package appcontext

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/schedflow/schedflow"
)

// Interface is what commands see of the application.
type Interface interface {
	// Client returns the extraction client, constructing it on first
	// use. Construction resolves the live scenario and can fail.
	Client(ctx context.Context) (*schedflow.Client, error)

	// Logger returns the application logger.
	Logger() *zerolog.Logger

	// Format returns the explicitly requested output format, empty
	// when the command should auto-detect.
	Format() string

	// OutputPath returns the output file path, empty for stdout.
	OutputPath() string
}
