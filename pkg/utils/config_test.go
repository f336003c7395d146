package utils_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"popcorn-palace/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.env")

	cfg, err := utils.LoadConfig([]string{"--env-file", missing})
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, utils.StorePostgres, cfg.Store.Driver)
	assert.Equal(t, 10*time.Second, cfg.App.ShutdownTimeout)
	assert.Equal(t, 5*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, int32(10), cfg.Database.MaxConns)
	assert.False(t, cfg.Cache.Enabled)
	assert.False(t, cfg.Events.Enabled)
}

func TestLoadConfig_FileEnvAndFlags(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), "test.env")
	content := "PORT=9000\nSTORE_DRIVER=bolt\nDB_NAME=cinema\nCACHE_ENABLED=true\nCACHE_TTL=30s\n"
	require.NoError(t, os.WriteFile(envFile, []byte(content), 0o600))

	cfg, err := utils.LoadConfig([]string{"--env-file", envFile})
	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.App.Port)
	assert.Equal(t, utils.StoreBolt, cfg.Store.Driver)
	assert.Equal(t, "cinema", cfg.Database.Name)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, 30*time.Second, cfg.Cache.TTL)

	t.Setenv("DB_NAME", "from-env")
	cfg, err = utils.LoadConfig([]string{"--env-file", envFile, "--port", "7000", "--store", "memory"})
	require.NoError(t, err)
	assert.Equal(t, "7000", cfg.App.Port)
	assert.Equal(t, utils.StoreMemory, cfg.Store.Driver)
	assert.Equal(t, "from-env", cfg.Database.Name)
}

func TestLoadConfig_UnknownDriver(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.env")

	_, err := utils.LoadConfig([]string{"--env-file", missing, "--store", "mongo"})
	assert.Error(t, err)
}
