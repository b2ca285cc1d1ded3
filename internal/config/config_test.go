package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeYAML(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "dev", c.App.Env)
	require.Equal(t, "memory", c.Storage.Driver)
	require.Equal(t, ":9090", c.Ops.Addr)

	ac := c.AdapterConfig()
	require.Equal(t, "memory", ac.Name)
	require.Equal(t, 10*time.Second, ac.ConnectTimeout)
}

func TestLoad_YAMLAndEnvOverrides(t *testing.T) {
	path := writeYAML(t, `
app:
  app_env: staging
storage:
  driver: mongo
  mongo:
    uri: mongodb://file:27017
    database: from_file
`)
	t.Setenv("MONGO_URI", "mongodb://env:27017")
	t.Setenv("MONGO_TRANSACTIONS", "true")
	t.Setenv("LOG_LEVEL", "DEBUG")

	c, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "staging", c.App.Env)
	require.Equal(t, "debug", c.App.LogLevel)

	ac := c.AdapterConfig()
	require.Equal(t, "mongo", ac.Name)
	require.Equal(t, "mongodb://env:27017", ac.DSN)
	require.Equal(t, "from_file", ac.Database)
	require.True(t, ac.Transactions)
}

func TestLoad_RedisFromEnv(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "redis")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("REDIS_PREFIX", "idp")

	c, err := Load("")
	require.NoError(t, err)
	ac := c.AdapterConfig()
	require.Equal(t, "localhost:6379", ac.DSN)
	require.Equal(t, 3, ac.DB)
	require.Equal(t, "idp", ac.Database)
}

func TestValidate(t *testing.T) {
	c := Default()
	c.Storage.Driver = "mongo"
	require.ErrorContains(t, c.Validate(), "storage.mongo.uri")

	c.Storage.Driver = "redis"
	require.ErrorContains(t, c.Validate(), "storage.redis.addr")

	c.Storage.Driver = "postgres"
	require.ErrorContains(t, c.Validate(), `unknown storage driver "postgres"`)

	c = Default()
	c.Storage.ConnectTimeout = "soon"
	require.ErrorContains(t, c.Validate(), "connect_timeout")
}

func TestLoad_BadYAML(t *testing.T) {
	_, err := Load(writeYAML(t, "storage: [oops"))
	require.Error(t, err)
}
