package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clearledger/recon-backend/internal/infrastructure/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("parses a full config file", func(t *testing.T) {
		path := writeConfig(t, `
upstream:
  base_url: https://ledger.example.com/api
  company_id: acme
  api_key: test-key
server:
  port: 9090
  allowed_origins:
    - https://dashboard.example.com
storage:
  database_path: /var/lib/recon/audit.db
observability:
  logging:
    level: debug
    format: json
`)

		cfg, err := config.Load(path)
		require.NoError(t, err)

		assert.Equal(t, "https://ledger.example.com/api", cfg.Upstream.BaseURL)
		assert.Equal(t, "acme", cfg.Upstream.CompanyID)
		assert.Equal(t, 9090, cfg.Server.Port)
		assert.Equal(t, []string{"https://dashboard.example.com"}, cfg.Server.AllowedOrigins)
		assert.Equal(t, "/var/lib/recon/audit.db", cfg.Storage.DatabasePath)
		assert.Equal(t, "debug", cfg.Observability.Logging.Level)
		assert.Equal(t, "json", cfg.Observability.Logging.Format)
	})

	t.Run("expands environment variables", func(t *testing.T) {
		t.Setenv("TEST_LEDGER_KEY", "expanded-secret")

		path := writeConfig(t, `
upstream:
  api_key: ${TEST_LEDGER_KEY}
`)

		cfg, err := config.Load(path)
		require.NoError(t, err)
		assert.Equal(t, "expanded-secret", cfg.Upstream.APIKey)
	})

	t.Run("fills defaults for omitted sections", func(t *testing.T) {
		path := writeConfig(t, `
upstream:
  base_url: http://localhost:4000/api
`)

		cfg, err := config.Load(path)
		require.NoError(t, err)

		assert.Equal(t, 8080, cfg.Server.Port)
		assert.Equal(t, "recon_audit.db", cfg.Storage.DatabasePath)
		assert.Equal(t, "info", cfg.Observability.Logging.Level)
		assert.Contains(t, cfg.Server.AllowedOrigins, "http://localhost:5173")
	})

	t.Run("missing file is an error", func(t *testing.T) {
		_, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
		assert.Error(t, err)
	})

	t.Run("invalid yaml is an error", func(t *testing.T) {
		path := writeConfig(t, "upstream: [not: valid")
		_, err := config.Load(path)
		assert.Error(t, err)
	})
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("LEDGER_API_URL", "https://env.example.com/api")
	t.Setenv("LEDGER_COMPANY_ID", "env-co")
	t.Setenv("RECON_PORT", "7070")
	t.Setenv("LOG_LEVEL", "warn")

	cfg := config.LoadFromEnv()

	assert.Equal(t, "https://env.example.com/api", cfg.Upstream.BaseURL)
	assert.Equal(t, "env-co", cfg.Upstream.CompanyID)
	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "warn", cfg.Observability.Logging.Level)
}

func TestLoadOrEnvWithPath(t *testing.T) {
	t.Run("prefers the file when present", func(t *testing.T) {
		path := writeConfig(t, `
server:
  port: 6060
`)
		cfg := config.LoadOrEnvWithPath(path)
		assert.Equal(t, 6060, cfg.Server.Port)
	})

	t.Run("falls back to env when the file is missing", func(t *testing.T) {
		t.Setenv("RECON_PORT", "5050")
		cfg := config.LoadOrEnvWithPath(filepath.Join(t.TempDir(), "absent.yaml"))
		assert.Equal(t, 5050, cfg.Server.Port)
	})
}
