// Package config loads the Career OS runtime configuration and selects the storage mode.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"
)

// AppName is used for the XDG config and data directories.
const AppName = "careeros"

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "CAREEROS"

// Config keys.
const (
	KeyUseMock      = "use_mock"
	KeyAccount      = "account"
	KeyStoragePath  = "storage.path"
	KeyInMemory     = "storage.in_memory"
	KeyRemoteURL    = "remote.url"
	KeyRemoteKey    = "remote.key"
	KeyRemoteDriver = "remote.driver"
	KeyMaxOpenConns = "remote.max_open_conns"
	KeySeedOnStart  = "seed.on_start"
	KeyLogLevel     = "log.level"
	KeyLogJSON      = "log.json"
)

const (
	configFileName = "config"
	configFileType = "yaml"

	// DefaultAccount owns the records of a single-user install.
	DefaultAccount = "local"
)

// Mode selects which repository implementation backs the process.
type Mode string

const (
	// ModeMock keeps all data in the embedded key-value store.
	ModeMock Mode = "mock"
	// ModeRemote reads and writes the remote relational tables.
	ModeRemote Mode = "remote"
)

// RuntimeConfig holds every configuration value of one process. It is built once by
// Load and passed to constructors; nothing re-reads the environment afterwards.
type RuntimeConfig struct {
	// Mode is computed during Load and never changes.
	Mode Mode

	// Account is the id every repository call is scoped to.
	// Default: "local"
	Account string

	Storage StorageConfig
	Remote  RemoteConfig
	Seed    SeedConfig
	Log     LogConfig

	// ConfigFile is the file that was read, empty when none was found.
	ConfigFile string
}

// StorageConfig holds key-value store configuration.
type StorageConfig struct {
	// Path is the badger directory.
	// Default: $XDG_DATA_HOME/careeros/db
	Path string

	// InMemory opens badger without touching disk.
	InMemory bool
}

// RemoteConfig holds remote table service configuration.
type RemoteConfig struct {
	URL string
	Key string

	// Driver overrides the driver inferred from the URL scheme ("pgx" or "sqlite").
	Driver string

	// MaxOpenConns bounds the connection pool.
	// Default: 4
	MaxOpenConns int
}

// SeedConfig holds bootstrap configuration.
type SeedConfig struct {
	// OnStart seeds the account on the first command that opens the store.
	// Default: true
	OnStart bool
}

// LogConfig holds logger configuration.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	// Default: warn
	Level string
	JSON  bool
}

// Options controls where Load looks for configuration.
type Options struct {
	// ConfigFile is an explicit config file. It must exist when set.
	ConfigFile string

	// ConfigDir is searched for config.yaml when ConfigFile is empty.
	// Default: $XDG_CONFIG_HOME/careeros
	ConfigDir string

	// Overrides take precedence over every other source (command-line flags).
	Overrides map[string]any
}

// DefaultConfigDir returns the directory searched for config.yaml.
func DefaultConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// DefaultStoragePath returns the default badger directory.
func DefaultStoragePath() string {
	return filepath.Join(xdg.DataHome, AppName, "db")
}

// DefaultRuntimeConfig returns the configuration used when no file or environment
// variable is present.
func DefaultRuntimeConfig() *RuntimeConfig {
	return &RuntimeConfig{
		Mode:    ModeMock,
		Account: DefaultAccount,
		Storage: StorageConfig{
			Path: DefaultStoragePath(),
		},
		Remote: RemoteConfig{
			MaxOpenConns: 4,
		},
		Seed: SeedConfig{
			OnStart: true,
		},
		Log: LogConfig{
			Level: "warn",
		},
	}
}

func newViper(defaults *RuntimeConfig) *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyUseMock, "")
	v.SetDefault(KeyAccount, defaults.Account)
	v.SetDefault(KeyStoragePath, defaults.Storage.Path)
	v.SetDefault(KeyInMemory, defaults.Storage.InMemory)
	v.SetDefault(KeyRemoteURL, "")
	v.SetDefault(KeyRemoteKey, "")
	v.SetDefault(KeyRemoteDriver, "")
	v.SetDefault(KeyMaxOpenConns, defaults.Remote.MaxOpenConns)
	v.SetDefault(KeySeedOnStart, defaults.Seed.OnStart)
	v.SetDefault(KeyLogLevel, defaults.Log.Level)
	v.SetDefault(KeyLogJSON, defaults.Log.JSON)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads defaults, the config file, CAREEROS_* environment variables and
// overrides, in increasing priority. A missing config.yaml is not an error.
func Load(opts Options) (*RuntimeConfig, error) {
	v := newViper(DefaultRuntimeConfig())

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
	} else {
		dir := opts.ConfigDir
		if dir == "" {
			dir = DefaultConfigDir()
		}
		v.SetConfigName(configFileName)
		v.SetConfigType(configFileType)
		v.AddConfigPath(dir)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if opts.ConfigFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	for key, val := range opts.Overrides {
		v.Set(key, val)
	}

	cfg := &RuntimeConfig{
		Account: strings.TrimSpace(v.GetString(KeyAccount)),
		Storage: StorageConfig{
			Path:     v.GetString(KeyStoragePath),
			InMemory: v.GetBool(KeyInMemory),
		},
		Remote: RemoteConfig{
			URL:          strings.TrimSpace(v.GetString(KeyRemoteURL)),
			Key:          strings.TrimSpace(v.GetString(KeyRemoteKey)),
			Driver:       strings.ToLower(strings.TrimSpace(v.GetString(KeyRemoteDriver))),
			MaxOpenConns: v.GetInt(KeyMaxOpenConns),
		},
		Seed: SeedConfig{
			OnStart: v.GetBool(KeySeedOnStart),
		},
		Log: LogConfig{
			Level: v.GetString(KeyLogLevel),
			JSON:  v.GetBool(KeyLogJSON),
		},
		ConfigFile: v.ConfigFileUsed(),
	}
	cfg.Mode = SelectMode(Truthy(v.GetString(KeyUseMock)), cfg.Remote.URL, cfg.Remote.Key)

	return cfg, nil
}

// SelectMode returns ModeMock when the mock flag is set or either remote
// parameter is missing, and ModeRemote otherwise.
func SelectMode(useMock bool, remoteURL, remoteKey string) Mode {
	if useMock || remoteURL == "" || remoteKey == "" {
		return ModeMock
	}
	return ModeRemote
}

// Truthy reports whether s spells an enabled flag: 1, true, yes or on.
func Truthy(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "t", "true", "y", "yes", "on":
		return true
	}
	return false
}

// IsMock reports whether the process runs against the key-value store.
func (c *RuntimeConfig) IsMock() bool {
	return c.Mode == ModeMock
}
