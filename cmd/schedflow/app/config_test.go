package app

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/schedflow/schedflow/pkg/errors"
)

func TestValidateConnection(t *testing.T) {
	config := &Config{
		Site:       "SITE1",
		Tenant:     "acme",
		Credential: "dGVzdDp0ZXN0",
	}
	assert.NoError(t, config.ValidateConnection())
}

func TestValidateConnectionMissingSite(t *testing.T) {
	config := &Config{
		Tenant:     "acme",
		Credential: "dGVzdDp0ZXN0",
	}
	err := config.ValidateConnection()
	assert.ErrorIs(t, err, errors.ErrInvalidInput)
}

func TestValidateConnectionBadCredential(t *testing.T) {
	config := &Config{
		Site:       "SITE1",
		Tenant:     "acme",
		Credential: "not base64!!",
	}
	assert.Error(t, config.ValidateConnection())
}

func TestValidateConnectionBadBaseURL(t *testing.T) {
	config := &Config{
		Site:       "SITE1",
		Tenant:     "acme",
		Credential: "dGVzdDp0ZXN0",
		BaseURL:    "not-a-url",
	}
	assert.Error(t, config.ValidateConnection())
}

func TestUpdateFromFlags(t *testing.T) {
	config := &Config{Format: "json", LogLevel: "info"}

	config.UpdateFromFlags(true, false, true, "", "")
	assert.True(t, config.Verbose)
	assert.True(t, config.NoColor)
	// Empty flag values keep the configured ones.
	assert.Equal(t, "json", config.Format)
	assert.Equal(t, "info", config.LogLevel)

	config.UpdateFromFlags(false, true, false, "csv", "debug")
	assert.Equal(t, "csv", config.Format)
	assert.Equal(t, "debug", config.LogLevel)
}
