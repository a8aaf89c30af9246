// Package config resolves opstrack settings from defaults, the data directory's
// config.yaml, OPSTRACK_* environment variables and bound CLI flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	// FileName is the config file inside the data directory.
	FileName = "config.yaml"

	// EnvPrefix prefixes environment overrides, e.g. OPSTRACK_LOG_LEVEL.
	EnvPrefix = "OPSTRACK"

	defaultDirName = ".opstrack"
)

// Config is the resolved configuration.
type Config struct {
	DataDir string `mapstructure:"data_dir" yaml:"data_dir,omitempty"`
	Backend string `mapstructure:"backend" yaml:"backend"`
	// Actor is recorded in audit log entries. Empty means the task assignee.
	Actor string `mapstructure:"actor" yaml:"actor"`
	Log   Log    `mapstructure:"log" yaml:"log"`
}

// Log configures the rotating log file.
type Log struct {
	Level      string `mapstructure:"level" yaml:"level"`
	File       string `mapstructure:"file" yaml:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb" yaml:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups" yaml:"max_backups"`
}

// LogFile returns the log path, defaulting into the data directory.
func (c *Config) LogFile() string {
	if c.Log.File != "" {
		return c.Log.File
	}
	return filepath.Join(c.DataDir, "logs", "opstrack.log")
}

// DefaultDataDir returns $HOME/.opstrack, or ./.opstrack when there is no home directory.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return defaultDirName
	}
	return filepath.Join(home, defaultDirName)
}

// New returns a viper instance with defaults and environment binding set up.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault("data_dir", DefaultDataDir())
	v.SetDefault("backend", "file")
	v.SetDefault("actor", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size_mb", 10)
	v.SetDefault("log.max_backups", 3)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads <data_dir>/config.yaml into v and returns the resolved config. A
// missing file is not an error.
func Load(v *viper.Viper) (*Config, error) {
	dataDir := v.GetString("data_dir")
	v.SetConfigFile(filepath.Join(dataDir, FileName))
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to read %s: %w", FileName, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	// A data_dir inside the file itself cannot relocate the file.
	cfg.DataDir = dataDir
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks enumerated settings.
func (c *Config) Validate() error {
	switch c.Backend {
	case "file", "sqlite", "memory":
	default:
		return fmt.Errorf("invalid backend %q (want file, sqlite or memory)", c.Backend)
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log.level %q", c.Log.Level)
	}
	if c.Log.MaxSizeMB <= 0 {
		return fmt.Errorf("log.max_size_mb must be positive")
	}
	return nil
}

// Path returns the config file path for dataDir.
func Path(dataDir string) string {
	return filepath.Join(dataDir, FileName)
}

// WriteDefault writes cfg as YAML to dataDir/config.yaml, creating the directory.
func WriteDefault(dataDir string, cfg *Config) error {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	out := *cfg
	out.DataDir = ""
	data, err := yaml.Marshal(&out)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	header := []byte("# opstrack configuration. Environment variables OPSTRACK_* override these values.\n")
	if err := os.WriteFile(Path(dataDir), append(header, data...), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", FileName, err)
	}
	return nil
}
