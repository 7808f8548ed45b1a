package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/promptlib/internal/observability"
	"github.com/mesh-intelligence/promptlib/internal/server"
	"github.com/mesh-intelligence/promptlib/pkg/types"
)

// clearConfigEnv unsets every variable loadConfig reads.
func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		"PROMPTLIB_AUTH_USERNAME", "PROMPTLIB_AUTH_PASSWORD",
		"PROMPTLIB_SERVER_HOST", "PROMPTLIB_SERVER_PORT",
		"PROMPTLIB_SERVER_READ_TIMEOUT", "PROMPTLIB_SERVER_WRITE_TIMEOUT",
		"PROMPTLIB_SERVER_SHUTDOWN_TIMEOUT",
		"PROMPTLIB_LOGGING_LEVEL", "PROMPTLIB_LOGGING_FORMAT", "PROMPTLIB_LOGGING_FILE",
		"PROMPTLIB_DB_FILE", "PROMPT_DB_FILE", "PROMPTLIB_DATA_DIR",
	} {
		t.Setenv(name, "")
		require.NoError(t, os.Unsetenv(name))
	}
}

func TestLoadConfig_FirstRunWritesDefaults(t *testing.T) {
	clearConfigEnv(t)
	dir := filepath.Join(t.TempDir(), "config")

	c, err := loadConfig(dir)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, defaultConfigYAML, string(data))

	assert.Empty(t, c.DataDir)
	assert.Equal(t, types.DefaultDBFile, c.DBFile)
	assert.Equal(t, server.Credentials{Username: "admin", Password: "admin"}, c.Auth)
	assert.True(t, c.usesDefaultCredentials())
	assert.Equal(t, server.DefaultHost, c.Server.Host)
	assert.Equal(t, server.DefaultPort, c.Server.Port)
	assert.Equal(t, 30*time.Second, c.Server.ReadTimeout)
	assert.Equal(t, 10*time.Second, c.Server.ShutdownTimeout)
	assert.Empty(t, c.Logging.Level)
}

func TestLoadConfig_ReadsFile(t *testing.T) {
	clearConfigEnv(t)
	dir := t.TempDir()
	yaml := `data_dir: /srv/prompts
db_file: catalog.db
auth:
  username: ops
  password: hunter2
server:
  port: 9090
  read_timeout: 5s
logging:
  level: debug
  format: json
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o600))

	c, err := loadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "/srv/prompts", c.DataDir)
	assert.Equal(t, "catalog.db", c.DBFile)
	assert.Equal(t, "ops", c.Auth.Username)
	assert.False(t, c.usesDefaultCredentials())
	assert.Equal(t, 9090, c.Server.Port)
	assert.Equal(t, server.DefaultHost, c.Server.Host)
	assert.Equal(t, 5*time.Second, c.Server.ReadTimeout)
	assert.Equal(t, "debug", c.Logging.Level)
	assert.Equal(t, observability.FormatJSON, c.Logging.Format)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	clearConfigEnv(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"),
		[]byte("data_dir: /from/config\nauth:\n  username: file-user\n"), 0o600))

	t.Setenv("PROMPTLIB_AUTH_USERNAME", "env-user")
	t.Setenv("PROMPTLIB_SERVER_PORT", "7070")
	t.Setenv("PROMPTLIB_DATA_DIR", "/from/env")

	c, err := loadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "env-user", c.Auth.Username)
	assert.Equal(t, 7070, c.Server.Port)
	assert.Equal(t, "/from/config", c.DataDir, "config.yaml data_dir outranks PROMPTLIB_DATA_DIR")
}

func TestLoadConfig_IgnoresBareCredentialVariables(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want server.Credentials
	}{
		{
			"bare names ignored",
			map[string]string{"USERNAME": "desktop-user", "PASSWORD": "from-shell"},
			server.Credentials{Username: "admin", Password: "admin"},
		},
		{
			"prefixed names apply",
			map[string]string{"USERNAME": "desktop-user", "PROMPTLIB_AUTH_USERNAME": "ops", "PROMPTLIB_AUTH_PASSWORD": "s3cret"},
			server.Credentials{Username: "ops", Password: "s3cret"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearConfigEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			c, err := loadConfig(t.TempDir())
			require.NoError(t, err)
			assert.Equal(t, tt.want, c.Auth)
		})
	}
}

func TestLoadConfig_DBFileAliases(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"legacy alias", map[string]string{"PROMPT_DB_FILE": "/tmp/legacy.db"}, "/tmp/legacy.db"},
		{"prefixed name", map[string]string{"PROMPTLIB_DB_FILE": "/tmp/new.db"}, "/tmp/new.db"},
		{"prefixed wins", map[string]string{"PROMPTLIB_DB_FILE": "/tmp/new.db", "PROMPT_DB_FILE": "/tmp/legacy.db"}, "/tmp/new.db"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearConfigEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			c, err := loadConfig(t.TempDir())
			require.NoError(t, err)
			assert.Equal(t, tt.want, c.DBFile)
		})
	}
}

func TestLoadConfig_MalformedFile(t *testing.T) {
	clearConfigEnv(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("auth: [unclosed\n"), 0o600))

	_, err := loadConfig(dir)
	assert.Error(t, err)
}

func TestApplyCommandDefaults(t *testing.T) {
	tests := []struct {
		name       string
		serving    bool
		in         observability.LogConfig
		wantLevel  string
		wantFormat string
	}{
		{"cli", false, observability.LogConfig{}, "warn", observability.FormatConsole},
		{"serve", true, observability.LogConfig{}, "info", observability.FormatJSON},
		{"configured values kept", true, observability.LogConfig{Level: "debug", Format: "console"}, "debug", "console"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &appConfig{Logging: tt.in}
			c.applyCommandDefaults(tt.serving)
			assert.Equal(t, tt.wantLevel, c.Logging.Level)
			assert.Equal(t, tt.wantFormat, c.Logging.Format)
		})
	}
}
