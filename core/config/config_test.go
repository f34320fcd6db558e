package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 800, cfg.Server.ScanCooldownMs)
	assert.Equal(t, "memory", cfg.State.Driver)
	assert.Equal(t, "stockmatch:state", cfg.State.Key)
	assert.Equal(t, "catalog/master.csv", cfg.Catalog.Object)
	assert.True(t, cfg.Catalog.SyncOnStart)
	assert.Equal(t, 3306, cfg.Database.Port)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	dir := t.TempDir()
	env := "STATE_DRIVER=redis\nCATALOG_URL=https://example.com/sheet.csv\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(env), 0o600))
	t.Setenv("SERVER_SCAN_COOLDOWN_MS", "0")
	t.Cleanup(func() {
		_ = os.Unsetenv("STATE_DRIVER")
		_ = os.Unsetenv("CATALOG_URL")
	})

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "redis", cfg.State.Driver)
	assert.Equal(t, "https://example.com/sheet.csv", cfg.Catalog.URL)
	assert.Equal(t, 0, cfg.Server.ScanCooldownMs)
}
