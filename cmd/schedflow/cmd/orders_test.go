package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schedflow/schedflow/internal/appcontext"
	"github.com/schedflow/schedflow/pkg/errors"
)

func TestLoadExcludeFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "exclude.yaml")
	require.NoError(t, os.WriteFile(path, []byte("- PRD-1\n- PRD-2\n"), 0o600))

	products, err := loadExcludeFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"PRD-1", "PRD-2"}, products)
}

func TestLoadExcludeFileMissing(t *testing.T) {
	_, err := loadExcludeFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)

	var ioErr *errors.IOError
	assert.ErrorAs(t, err, &ioErr)
}

func TestOrdersCommandClientError(t *testing.T) {
	appCtx := &appcontext.Mock{ClientErr: errors.New("no scenario")}

	c := NewOrdersCommand(appCtx)
	c.SetArgs([]string{})
	err := c.Execute()
	assert.ErrorContains(t, err, "no scenario")
}

func TestCommandFlags(t *testing.T) {
	appCtx := &appcontext.Mock{}

	orders := NewOrdersCommand(appCtx)
	assert.NotNil(t, orders.Flags().Lookup("include-completed"))
	assert.NotNil(t, orders.Flags().Lookup("exclude-products"))
	assert.NotNil(t, orders.Flags().Lookup("exclude-file"))

	materials := NewMaterialsCommand(appCtx)
	assert.NotNil(t, materials.Flags().Lookup("properties"))
}
