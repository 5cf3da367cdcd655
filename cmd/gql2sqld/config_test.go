package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gql2sqld.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadConfigAppliesDefaultsForUnsetFields(t *testing.T) {
	path := writeConfigFile(t, `databaseUrl: "postgres://localhost/app"`)

	cfg, err := loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, "postgres://localhost/app", cfg.DatabaseURL)
	assert.Equal(t, 100, cfg.SlowQueryMillis)
}

func TestLoadConfigParsesRelationDefaults(t *testing.T) {
	path := writeConfigFile(t, `
listenAddr: ":9090"
relationDefaults:
  App.components:
    foreignKey: appId
    primaryKey: id
`)

	cfg, err := loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.ListenAddr)
	require.Contains(t, cfg.RelationDefaults, "App.components")
	assert.Equal(t, "appId", cfg.RelationDefaults["App.components"].ForeignKey)
}

func TestLoadConfigRejectsMissingFile(t *testing.T) {
	_, err := loadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestWatchConfigReloadsOnWrite(t *testing.T) {
	path := writeConfigFile(t, `listenAddr: ":1111"`)
	initial, err := loadConfig(path)
	require.NoError(t, err)
	store := newConfigStore(initial)

	watcher, err := watchConfig(path, store)
	require.NoError(t, err)
	defer watcher.Close()

	require.NoError(t, os.WriteFile(path, []byte(`listenAddr: ":2222"`), 0o644))

	require.Eventually(t, func() bool {
		return store.Get().ListenAddr == ":2222"
	}, time.Second, 5*time.Millisecond)
}
