package appcontext

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/schedflow/schedflow"
)

// Mock implements Interface for command tests.
type Mock struct {
	MockClient *schedflow.Client
	ClientErr  error
	LoggerVal  zerolog.Logger
	FormatVal  string
	OutputVal  string
}

// Client returns the configured client or error.
func (m *Mock) Client(context.Context) (*schedflow.Client, error) {
	return m.MockClient, m.ClientErr
}

// Logger returns the configured logger.
func (m *Mock) Logger() *zerolog.Logger {
	return &m.LoggerVal
}

// Format returns the configured format.
func (m *Mock) Format() string {
	return m.FormatVal
}

// OutputPath returns the configured output path.
func (m *Mock) OutputPath() string {
	return m.OutputVal
}

// Ensure Mock implements Interface.
var _ Interface = (*Mock)(nil)
