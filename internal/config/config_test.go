package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// inEmptyDir runs the test from a directory without a .env file.
func inEmptyDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	inEmptyDir(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Addr())
	assert.Equal(t, []string{"localhost:27017"}, cfg.Database.Hosts)
	assert.Equal(t, CatalogBackendMongoDB, cfg.Catalog.Backend)
	assert.Equal(t, CartStorageMemory, cfg.Cart.Storage)
	assert.Equal(t, "storefront:cart", cfg.Cart.Namespace)
	assert.Equal(t, 24*time.Hour, cfg.Cart.IdleTTL)
	assert.Equal(t, "918291821901", cfg.Checkout.WhatsAppPhone)
	assert.Equal(t, int64(5000), cfg.Checkout.FreeShippingThreshold)
	assert.Equal(t, 16, cfg.Listing.PageSize)
}

func TestLoad_Env(t *testing.T) {
	inEmptyDir(t)
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("CATALOG_BACKEND", "postgrest")
	t.Setenv("CATALOG_POSTGREST_URL", "https://project.supabase.co/rest/v1")
	t.Setenv("CART_STORAGE", "redis")
	t.Setenv("CART_IDLE_TTL", "0")
	t.Setenv("DATABASE_HOSTS", "mongo-1:27017,mongo-2:27017")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, CatalogBackendPostgREST, cfg.Catalog.Backend)
	assert.Equal(t, time.Duration(0), cfg.Cart.IdleTTL)
	assert.Equal(t, []string{"mongo-1:27017", "mongo-2:27017"}, cfg.Database.Hosts)
}

func TestLoad_DotEnvFile(t *testing.T) {
	dir := inEmptyDir(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("CHECKOUT_STORE_NAME=Timekeepers\nLISTING_PAGE_SIZE=24\n"), 0o600))
	t.Setenv("LISTING_PAGE_SIZE", "12")
	t.Cleanup(func() { _ = os.Unsetenv("CHECKOUT_STORE_NAME") })

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "Timekeepers", cfg.Checkout.StoreName)
	assert.Equal(t, 12, cfg.Listing.PageSize, "process env wins over .env")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{name: "unknown backend", mutate: func(c *Config) { c.Catalog.Backend = "sqlite" }},
		{name: "postgrest without url", mutate: func(c *Config) { c.Catalog.Backend = CatalogBackendPostgREST }},
		{name: "unknown cart storage", mutate: func(c *Config) { c.Cart.Storage = "disk" }},
		{name: "zero page size", mutate: func(c *Config) { c.Listing.PageSize = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				Catalog: CatalogConfig{Backend: CatalogBackendMongoDB},
				Cart:    CartConfig{Storage: CartStorageMemory},
				Listing: ListingConfig{PageSize: 16},
			}
			require.NoError(t, cfg.Validate())
			tt.mutate(cfg)
			require.Error(t, cfg.Validate())
		})
	}
}
