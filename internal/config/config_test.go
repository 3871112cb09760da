package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
server:
  host: 0.0.0.0
  port: 8080
mongo:
  uri: mongodb://localhost:27017
  database: brewnet
jwt:
  access_secret: a
  refresh_secret: r
  access_ttl: 10m
log:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "brewnet", cfg.Mongo.Database)
	assert.Equal(t, 10*time.Minute, time.Duration(cfg.JWT.AccessTTL))
	// Unset refresh TTL falls back to a week.
	assert.Equal(t, 7*24*time.Hour, time.Duration(cfg.JWT.RefreshTTL))
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
