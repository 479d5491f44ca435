// Package app provides the application context and dependency
// management for the schedflow CLI: configuration, logging and the
// lazily constructed extraction client.
package app

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/schedflow/schedflow"
)

// App represents the schedflow CLI application with its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string

	// Configuration
	config *Config

	// Logger
	logger *zerolog.Logger

	// Extraction client (lazy-initialized, singleton). Construction
	// dials out to resolve the live scenario, so it waits until a
	// command actually needs it.
	mu     sync.Mutex
	client *schedflow.Client
}

// New creates an App with the given version information and loads
// configuration from the environment.
func New(version, commit, date string) (*App, error) {
	a := &App{
		version: version,
		commit:  commit,
		date:    date,
	}

	config, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	a.config = config

	logger := NewLogger(config)
	a.logger = &logger

	return a, nil
}

// Version returns the version string.
func (a *App) Version() string {
	return a.version
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// Client returns the extraction client, creating it on first use.
func (a *App) Client(ctx context.Context) (*schedflow.Client, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.client != nil {
		return a.client, nil
	}

	if err := a.config.ValidateConnection(); err != nil {
		return nil, err
	}

	opts := []schedflow.Option{schedflow.WithLogger(a.logger)}
	if a.config.Staging {
		opts = append(opts, schedflow.WithStaging())
	}
	if a.config.BaseURL != "" {
		opts = append(opts, schedflow.WithBaseURL(a.config.BaseURL))
	}
	if a.config.Timeout > 0 {
		opts = append(opts, schedflow.WithTimeout(a.config.Timeout))
	}

	client, err := schedflow.New(ctx, a.config.Site, a.config.Tenant, a.config.Credential, opts...)
	if err != nil {
		return nil, err
	}

	a.client = client
	return client, nil
}
