// Config loading for the promptlib CLI.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	"github.com/mesh-intelligence/promptlib/internal/observability"
	"github.com/mesh-intelligence/promptlib/internal/paths"
	"github.com/mesh-intelligence/promptlib/internal/server"
	"github.com/mesh-intelligence/promptlib/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"

	envPrefix = "PROMPTLIB"

	// legacyDBFileEnv is honored as an alias of db_file.
	legacyDBFileEnv = "PROMPT_DB_FILE"
)

// Config keys.
const (
	cfgKeyDataDir         = "data_dir"
	cfgKeyDBFile          = "db_file"
	cfgKeyAuthUsername    = "auth.username"
	cfgKeyAuthPassword    = "auth.password"
	cfgKeyServerHost      = "server.host"
	cfgKeyServerPort      = "server.port"
	cfgKeyReadTimeout     = "server.read_timeout"
	cfgKeyWriteTimeout    = "server.write_timeout"
	cfgKeyShutdownTimeout = "server.shutdown_timeout"
	cfgKeyLogLevel        = "logging.level"
	cfgKeyLogFormat       = "logging.format"
	cfgKeyLogFile         = "logging.file"
)

// Default shared credential. serve warns while it is in use.
const (
	defaultUsername = "admin"
	defaultPassword = "admin"
)

// envKeys are the keys overridable as PROMPTLIB_<KEY>. data_dir is left
// out: PROMPTLIB_DATA_DIR ranks below config.yaml and is applied by the
// paths package.
var envKeys = []string{
	cfgKeyAuthUsername,
	cfgKeyAuthPassword,
	cfgKeyServerHost,
	cfgKeyServerPort,
	cfgKeyReadTimeout,
	cfgKeyWriteTimeout,
	cfgKeyShutdownTimeout,
	cfgKeyLogLevel,
	cfgKeyLogFormat,
	cfgKeyLogFile,
}

// defaultConfigYAML is written to config.yaml on first run.
const defaultConfigYAML = `# promptlib configuration

# Data directory (optional; overridable by --data-dir)
# data_dir:

# Database file, relative to data_dir unless absolute
db_file: prompts.db

# Shared login for "promptlib serve"
auth:
  username: admin
  password: admin

server:
  host: 127.0.0.1
  port: 8080
  read_timeout: 30s
  write_timeout: 30s
  shutdown_timeout: 10s

logging:
  # level: info
  # format: console
  # file:
`

// appConfig is the decoded config.yaml with environment overrides.
type appConfig struct {
	DataDir string                  `mapstructure:"data_dir"`
	DBFile  string                  `mapstructure:"db_file"`
	Auth    server.Credentials      `mapstructure:"auth"`
	Server  server.Config           `mapstructure:"server"`
	Logging observability.LogConfig `mapstructure:"logging"`
}

// usesDefaultCredentials reports whether the shipped login is unchanged.
func (c *appConfig) usesDefaultCredentials() bool {
	return c.Auth.Username == defaultUsername && c.Auth.Password == defaultPassword
}

// applyCommandDefaults fills logging settings left unset. The server logs
// JSON at info; other commands log console text at warn so routine
// messages stay off the terminal.
func (c *appConfig) applyCommandDefaults(serving bool) {
	if c.Logging.Format == "" {
		c.Logging.Format = observability.FormatConsole
		if serving {
			c.Logging.Format = observability.FormatJSON
		}
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "warn"
		if serving {
			c.Logging.Level = "info"
		}
	}
}

// loadConfig reads config.yaml from configDir using Viper, creating the
// directory and a default file on first run. A missing config.yaml is not
// an error.
func loadConfig(configDir string) (*appConfig, error) {
	if err := ensureConfigDir(configDir); err != nil {
		return nil, fmt.Errorf("ensure config dir: %w", err)
	}
	if err := ensureDefaultConfigFile(configDir); err != nil {
		return nil, fmt.Errorf("ensure default config: %w", err)
	}

	v := newViper()
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}
	return decodeConfig(v)
}

// newViper returns a Viper instance with defaults and environment bindings.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetDefault(cfgKeyDataDir, "")
	v.SetDefault(cfgKeyDBFile, types.DefaultDBFile)
	v.SetDefault(cfgKeyAuthUsername, defaultUsername)
	v.SetDefault(cfgKeyAuthPassword, defaultPassword)
	v.SetDefault(cfgKeyServerHost, server.DefaultHost)
	v.SetDefault(cfgKeyServerPort, server.DefaultPort)
	v.SetDefault(cfgKeyReadTimeout, server.DefaultReadTimeout)
	v.SetDefault(cfgKeyWriteTimeout, server.DefaultWriteTimeout)
	v.SetDefault(cfgKeyShutdownTimeout, server.DefaultShutdownTimeout)
	v.SetDefault(cfgKeyLogLevel, "")
	v.SetDefault(cfgKeyLogFormat, "")
	v.SetDefault(cfgKeyLogFile, "")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for _, key := range envKeys {
		_ = v.BindEnv(key)
	}
	// Bare USERNAME and PASSWORD are not aliased: Windows sets USERNAME for
	// every session.
	_ = v.BindEnv(cfgKeyDBFile, envPrefix+"_DB_FILE", legacyDBFileEnv)
	return v
}

// decodeConfig unmarshals v, accepting "30s"-style durations.
func decodeConfig(v *viper.Viper) (*appConfig, error) {
	var c appConfig
	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))
	if err := v.Unmarshal(&c, hook); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return &c, nil
}

// ensureConfigDir creates the config directory if it does not exist.
func ensureConfigDir(configDir string) error {
	return os.MkdirAll(configDir, 0o755)
}

// ensureDefaultConfigFile creates a default config.yaml if the file does not
// exist in the config directory.
func ensureDefaultConfigFile(configDir string) error {
	path := paths.ConfigFile(configDir)

	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}
	return os.WriteFile(path, []byte(defaultConfigYAML), 0o600)
}

// configPath is the config file inside configDir, cleaned for display.
func configPath(configDir string) string {
	return filepath.Clean(paths.ConfigFile(configDir))
}
