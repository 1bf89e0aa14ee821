// SPDX-License-Identifier: MIT

package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/xorslp/config"
)

func TestDefaultValidates(t *testing.T) {
	cfg := config.Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Len(t, cfg.EngineOptions(), 4)
	assert.Equal(t, cfg.Storage.Path, cfg.StoreConfig().Path)
}

func TestParseOverlaysDefaults(t *testing.T) {
	cfg, err := config.Parse([]byte(`
server:
  addr: 127.0.0.1:9000
  shutdown_timeout: 3s
storage:
  in_memory: true
  path: ""
engine:
  workers: 2
  depth_limit: 4
log:
  level: debug
  format: json
`))
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)
	assert.Equal(t, 3*time.Second, cfg.Server.ShutdownTimeout)
	assert.True(t, cfg.Storage.InMemory)
	assert.Equal(t, 2, cfg.Engine.Workers)
	assert.Equal(t, 4, cfg.Engine.DepthLimit)
	assert.Equal(t, config.Default().Engine.SearchBudget, cfg.Engine.SearchBudget)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestParseEmpty(t *testing.T) {
	cfg, err := config.Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestParseRejects(t *testing.T) {
	cases := map[string]string{
		"unknown key":     "engine:\n  threads: 4\n",
		"zero workers":    "engine:\n  workers: 0\n",
		"bad level":       "log:\n  level: loud\n",
		"bad format":      "log:\n  format: xml\n",
		"missing path":    "storage:\n  path: \"\"\n",
		"discard ratio":   "storage:\n  gc_discard_ratio: 1.5\n",
		"extension dot":   "import:\n  extensions: [txt]\n",
		"negative budget": "engine:\n  search_budget: -1\n",
		"not yaml":        "server: [",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := config.Parse([]byte(doc))
			assert.ErrorIs(t, err, config.ErrInvalidConfig)
		})
	}
}

func TestLoadFromEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "xorslp.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  addr: :7070\n"), 0o600))
	t.Setenv(config.EnvPath, path)

	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, ":7070", cfg.Server.Addr)
}

func TestLoadWithoutFile(t *testing.T) {
	t.Setenv(config.EnvPath, "")

	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
