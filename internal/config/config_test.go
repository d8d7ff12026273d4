package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"ENVIRONMENT", "STORAGE_DRIVER", "TABLE_PREFIX", "RATE_LIMIT_REQUESTS", "RATE_LIMIT_WINDOW", "MONGO_TRANSACTIONS"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	assert.Equal(t, "dev", cfg.Environment)
	assert.True(t, cfg.IsDev())
	assert.Equal(t, DriverMongo, cfg.StorageDriver)
	assert.Equal(t, "dev_", cfg.TablePrefix)
	assert.False(t, cfg.MongoTransactions)
	assert.Equal(t, 300, cfg.RateLimitRequests)
	assert.Equal(t, time.Minute, cfg.RateLimitWindow)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("ENVIRONMENT", "prod")
	t.Setenv("STORAGE_DRIVER", "Postgres")
	t.Setenv("TABLE_PREFIX", "")
	t.Setenv("MONGO_TRANSACTIONS", "true")
	t.Setenv("RATE_LIMIT_REQUESTS", "10")
	t.Setenv("RATE_LIMIT_WINDOW", "30s")
	t.Setenv("RATE_LIMIT_BURST", "not-a-number")

	cfg := Load()
	assert.False(t, cfg.IsDev())
	assert.Equal(t, DriverPostgres, cfg.StorageDriver)
	assert.Equal(t, "prod_", cfg.TablePrefix)
	assert.True(t, cfg.MongoTransactions)
	assert.Equal(t, 10, cfg.RateLimitRequests)
	assert.Equal(t, 30*time.Second, cfg.RateLimitWindow)
	assert.Equal(t, 50, cfg.RateLimitBurst)
}

func TestNewLogger_WritesToFile(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&Config{Environment: "prod"}, &buf)

	logger.Info("file created", "id", "abc")
	assert.Contains(t, buf.String(), `"msg":"file created"`)
	assert.Contains(t, buf.String(), `"id":"abc"`)
}

func TestSetupLogFile_KeepsNewest(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"server-2020-01-01T00-00-00.log", "server-2020-01-02T00-00-00.log"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
	}

	f, err := SetupLogFile(dir, 2)
	require.NoError(t, err)
	defer f.Close()

	files, err := filepath.Glob(filepath.Join(dir, "server-*.log"))
	require.NoError(t, err)
	assert.Len(t, files, 2)
	assert.NotContains(t, files, filepath.Join(dir, "server-2020-01-01T00-00-00.log"))
}
