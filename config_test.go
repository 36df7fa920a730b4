package main

import (
	"flag"
	"os"
	"path/filepath"
	"testing"
	"time"

	"git.fiblab.net/sim/transit/router"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "localhost:52101", cfg.Server.Listen)
	assert.Equal(t, 10*time.Minute, cfg.Cache.PathTTL)
}

func TestLoadConfigPrecedence(t *testing.T) {
	path := writeConfig(t, `
server:
  listen: 0.0.0.0:8080
  cors_origins: ["http://localhost:5173"]
log:
  level: warn
cache:
  path_ttl: 30s
routing:
  bus_wait_time: 3
  bus_velocity: 25.5
`)
	t.Setenv(ENV_LOG_LEVEL, "debug")
	t.Setenv(ENV_MONGO_URI, "mongodb://localhost:27017")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Listen)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.Server.CORSOrigins)
	assert.Equal(t, 30*time.Second, cfg.Cache.PathTTL)
	assert.Equal(t, router.Settings{BusWaitTime: 3, BusVelocity: 25.5}, cfg.Routing)
	// 环境变量覆盖配置文件
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "mongodb://localhost:27017", cfg.Mongo.URI)

	// 显式给出的命令行参数覆盖环境变量，未给出的不影响
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.String("listen", "localhost:52101", "")
	fs.String("log-level", "info", "")
	fs.Duration("cache.path_ttl", time.Minute, "")
	require.NoError(t, fs.Parse([]string{"-log-level", "error", "-cache.path_ttl", "0s"}))
	cfg.applyFlags(fs)
	assert.Equal(t, "error", cfg.Log.Level)
	assert.Equal(t, time.Duration(0), cfg.Cache.PathTTL)
	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Listen)
	assert.NoError(t, cfg.Validate())
}

func TestConfigValidate(t *testing.T) {
	cfg := defaultConfig()
	cfg.Log.Level = "verbose"
	assert.Error(t, cfg.Validate())

	cfg = defaultConfig()
	cfg.Routing.BusVelocity = 0
	assert.Error(t, cfg.Validate())

	cfg = defaultConfig()
	cfg.Server.Listen = ""
	assert.Error(t, cfg.Validate())

	_, err := LoadConfig(writeConfig(t, "server: [1, 2"))
	assert.Error(t, err)
	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)
}
