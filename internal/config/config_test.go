package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pkg.jsn.cam/retailgen/pkg/retail"
)

const sampleYAML = `
generator:
  num_customers: 10
  num_products: 5
  num_stores: 2
  num_orders: 20
  avg_items_per_order: 4
  seed: 7
landing:
  db_path: /tmp/bronze.db
  mode: append
postgres:
  dsn: postgres://localhost/retail
log:
  level: debug
  format: json
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{EnvSeed, EnvLogLevel, EnvLogFormat, EnvDBPath, EnvDSN} {
		t.Setenv(k, "")
	}
}

func TestDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, retail.DefaultConfig(), cfg.Generator)
	assert.Equal(t, "merge", cfg.Landing.Mode)
	assert.Equal(t, "mock_retail", cfg.Landing.Source)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadFile(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(writeFile(t, "retailgen.yaml", sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, retail.GeneratorConfig{
		NumCustomers:     10,
		NumProducts:      5,
		NumStores:        2,
		NumOrders:        20,
		AvgItemsPerOrder: 4,
		Seed:             7,
	}, cfg.Generator)
	assert.Equal(t, "/tmp/bronze.db", cfg.Landing.DBPath)
	assert.Equal(t, "append", cfg.Landing.Mode)
	// unset keys keep their defaults
	assert.Equal(t, "mock_retail", cfg.Landing.Source)
	assert.Equal(t, "postgres://localhost/retail", cfg.Postgres.DSN)
	assert.Equal(t, LogConfig{Level: "debug", Format: "json"}, cfg.Log)
}

func TestPartialFileKeepsDefaults(t *testing.T) {
	cfg, err := Parse([]byte("generator:\n  num_orders: 3\n"))
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Generator.NumOrders)
	assert.Equal(t, retail.DefaultNumCustomers, cfg.Generator.NumCustomers)
	assert.Equal(t, retail.DefaultSeed, cfg.Generator.Seed)
}

func TestEnvOverridesFile(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvSeed, " 1234 ")
	t.Setenv(EnvLogLevel, "warn")
	t.Setenv(EnvLogFormat, "text")
	t.Setenv(EnvDBPath, "env.db")
	t.Setenv(EnvDSN, "postgres://env/retail")

	cfg, err := Load(writeFile(t, "retailgen.yaml", sampleYAML))
	require.NoError(t, err)
	assert.Equal(t, int64(1234), cfg.Generator.Seed)
	assert.Equal(t, 10, cfg.Generator.NumCustomers)
	assert.Equal(t, LogConfig{Level: "warn", Format: "text"}, cfg.Log)
	assert.Equal(t, "env.db", cfg.Landing.DBPath)
	assert.Equal(t, "postgres://env/retail", cfg.Postgres.DSN)
}

func TestMalformedSeed(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvSeed, "forty-two")
	_, err := Load("")
	assert.ErrorIs(t, err, retail.ErrInvalidConfiguration)

	_, err = Parse([]byte("generator:\n  seed: forty-two\n"))
	assert.ErrorIs(t, err, retail.ErrInvalidConfiguration)
}

func TestValidate(t *testing.T) {
	tests := map[string]string{
		"negative count": "generator:\n  num_orders: -1\n",
		"write mode":     "landing:\n  mode: upsert\n",
		"log level":      "log:\n  level: chatty\n",
		"log format":     "log:\n  format: xml\n",
		"not yaml":       "generator: [",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc))
			assert.ErrorIs(t, err, retail.ErrInvalidConfiguration)
		})
	}

	_, err := Parse([]byte("generator:\n  num_orders: -1\n"))
	assert.ErrorIs(t, err, retail.ErrInvalidArgument)
}

func TestMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadDotEnv(t *testing.T) {
	clearEnv(t)
	require.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), ".env")))

	os.Unsetenv(EnvDBPath)
	t.Setenv(EnvLogLevel, "error")
	path := writeFile(t, ".env", EnvDBPath+"=dotenv.db\n"+EnvLogLevel+"=debug\n")
	require.NoError(t, LoadDotEnv(path))
	t.Cleanup(func() { os.Unsetenv(EnvDBPath) })

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "dotenv.db", cfg.Landing.DBPath)
	// already-set variables win over the file
	assert.Equal(t, "error", cfg.Log.Level)
}
