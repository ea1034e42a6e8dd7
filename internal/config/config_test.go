package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadConfigAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
database:
  url: postgres://localhost/hostpanel
auth:
  jwt_secret: test-secret
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, "3000", cfg.Server.Port)
	assert.Equal(t, int64(86400), cfg.Auth.JWTExpiration)
	assert.Equal(t, "http://localhost:3000", cfg.CORS.Origin)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	path := writeConfig(t, `
server:
  port: "8080"
database:
  url: postgres://localhost/hostpanel
auth:
  jwt_secret: file-secret
`)
	t.Setenv("PORT", "9090")
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("HETZNER_API_TOKEN", "env-token")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "env-secret", cfg.Auth.JWTSecret)
	assert.Equal(t, "env-token", cfg.Hetzner.APIToken)
}

func TestLoadConfigRequiresDatabaseURL(t *testing.T) {
	path := writeConfig(t, `
auth:
  jwt_secret: test-secret
`)
	t.Setenv("DATABASE_URL", "")

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database url")
}

func TestLoadConfigRequiresJWTSecret(t *testing.T) {
	path := writeConfig(t, `
database:
  url: postgres://localhost/hostpanel
`)
	t.Setenv("JWT_SECRET", "")

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "jwt secret")
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yml"))
	require.Error(t, err)
}
