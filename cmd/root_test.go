package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckConfig(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("CATALOG_BACKEND", "postgrest")
	t.Setenv("CATALOG_POSTGREST_URL", "http://localhost:3000")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"check-config"})
	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "catalog=postgrest")

	t.Setenv("CART_STORAGE", "disk")
	rootCmd.SetArgs([]string{"check-config"})
	require.Error(t, rootCmd.Execute())
}
