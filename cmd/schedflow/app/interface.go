package app

import (
	"github.com/schedflow/schedflow/internal/appcontext"
)

// Format returns the explicitly requested output format.
func (a *App) Format() string {
	return a.config.Format
}

// OutputPath returns the output file path, empty for stdout.
func (a *App) OutputPath() string {
	return a.config.Output
}

// Ensure App implements appcontext.Interface at compile time.
var _ appcontext.Interface = (*App)(nil)
