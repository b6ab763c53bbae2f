package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const mockConfigYAML = `
application:
  name: pinterestauth
  base_url: https://auth.example.com
http_server:
  addr: 0.0.0.0:8080
logger:
  level: info
  pretty: false
database:
  addr: localhost:5432
  username: postgres
  password: from-file
  database: pinterestauth
  ssl_mode: disable
session:
  signing_key: mock-key
  ttl: 24h
allowed_redirect_urls:
  - https://app.example.com
pinterest:
  clientID: "1234"
  scope:
    - read_public
  authorizationURL: false
`

// writeMockConfig writes the given content to a temporary config file and returns its path.
func writeMockConfig(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "configs.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600), "Failed to write mock config")
	return path
}

func TestLoadWithViper(t *testing.T) {
	cfg, err := loadWithViper(writeMockConfig(t, mockConfigYAML))
	require.NoError(t, err, "Expected config loading to succeed")

	require.Equal(t, "pinterestauth", cfg.Application.Name)
	require.Equal(t, "https://auth.example.com", cfg.Application.BaseURL)
	require.Equal(t, "0.0.0.0:8080", cfg.HTTPServer.Addr)
	require.Equal(t, "from-file", cfg.Database.Password)
	require.Equal(t, 24*time.Hour, cfg.Session.TTL)
	require.Equal(t, []string{"https://app.example.com"}, cfg.AllowedRedirectURLs)

	// Viper lowercases keys and keeps the raw types, so type errors can be reported by the oauth package.
	require.Equal(t, "1234", cfg.Pinterest["clientid"])
	require.Equal(t, false, cfg.Pinterest["authorizationurl"])
}

func TestLoadWithViper_EnvOverride(t *testing.T) {
	t.Setenv("DATABASE_PASSWORD", "from-env")

	cfg, err := loadWithViper(writeMockConfig(t, mockConfigYAML))
	require.NoError(t, err, "Expected config loading to succeed")
	require.Equal(t, "from-env", cfg.Database.Password)
}

func TestLoadWithViper_MissingFile(t *testing.T) {
	_, err := loadWithViper(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err, "Expected error for a missing file")
}

func TestConfigPath(t *testing.T) {
	t.Setenv(configPathEnv, "")
	require.Equal(t, defaultConfigPath, configPath())

	t.Setenv(configPathEnv, "/etc/pinterestauth.yaml")
	require.Equal(t, "/etc/pinterestauth.yaml", configPath())
}
