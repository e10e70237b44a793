// Package config provides reading and writing of anondocs configuration.
// Supports both global (~/.anondocs/config.yaml) and local (.anondocs/config.yaml).
// Reading: uses local if it exists, otherwise global.
// Writing: defaults to global, use --local for local.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	// ErrNoConfigPath is returned when the config path cannot be determined.
	ErrNoConfigPath = errors.New("cannot determine config path")
	// ErrUnknownKey is returned when getting/setting an unknown config key.
	ErrUnknownKey = errors.New("unknown config key")
	// ErrInvalidValue is returned when a config value is invalid.
	ErrInvalidValue = errors.New("invalid config value")
)

// Dir is the directory name used for both scopes.
const Dir = ".anondocs"

// Scope represents the configuration scope (global or local).
type Scope int

const (
	// ScopeGlobal is user-wide config in ~/.anondocs/config.yaml (default)
	ScopeGlobal Scope = iota
	// ScopeLocal is store-specific config in .anondocs/config.yaml
	ScopeLocal
)

// Author represents the author recorded in the audit log.
type Author struct {
	Name string `yaml:"name,omitempty"`
}

// Share holds share link configuration.
type Share struct {
	BaseURL        string `yaml:"base_url,omitempty"`
	RevokeOnDelete *bool  `yaml:"revoke_on_delete,omitempty"`
}

// Limits holds size limit configuration options.
type Limits struct {
	MaxTitle   *int   `yaml:"max_title,omitempty"`
	MaxContent *int64 `yaml:"max_content,omitempty"`
}

// Log holds operational logging options.
type Log struct {
	Level string `yaml:"level,omitempty"`
}

// Default values applied when not configured.
const (
	DefaultMaxTitle       = 1024
	DefaultMaxContent     = 100 * 1024 * 1024 // 100 MB
	DefaultRevokeOnDelete = true
	DefaultLogLevel       = "warn"
)

// Validation bounds for configuration values.
const (
	MinMaxTitle   = 1
	MaxMaxTitle   = 65536
	MinMaxContent = 1
	MaxMaxContent = 10 * 1024 * 1024 * 1024 // 10 GB
)

// LogLevels lists the accepted log.level values.
var LogLevels = []string{"debug", "info", "warn", "error"}

// Config contains configuration for anondocs.
type Config struct {
	Author Author `yaml:"author,omitempty"`
	Share  Share  `yaml:"share,omitempty"`
	Limits Limits `yaml:"limits,omitempty"`
	Log    Log    `yaml:"log,omitempty"`

	// path is the file this config was loaded from (for Save)
	path  string
	scope Scope
}

// Validate checks that all configured values are within acceptable bounds.
// Returns nil if all values are valid or not set (defaults will be used).
func (c *Config) Validate() error {
	if c.Limits.MaxTitle != nil {
		v := *c.Limits.MaxTitle
		if v < MinMaxTitle || v > MaxMaxTitle {
			return fmt.Errorf("%w: max_title must be between %d and %d, got %d",
				ErrInvalidValue, MinMaxTitle, MaxMaxTitle, v)
		}
	}
	if c.Limits.MaxContent != nil {
		v := *c.Limits.MaxContent
		if v < MinMaxContent || v > MaxMaxContent {
			return fmt.Errorf("%w: max_content must be between %d and %d, got %d",
				ErrInvalidValue, MinMaxContent, MaxMaxContent, v)
		}
	}
	if c.Log.Level != "" && !slices.Contains(LogLevels, c.Log.Level) {
		return fmt.Errorf("%w: log.level must be one of %s, got %q",
			ErrInvalidValue, strings.Join(LogLevels, ", "), c.Log.Level)
	}
	if c.Share.BaseURL != "" {
		if _, err := url.Parse(c.Share.BaseURL); err != nil {
			return fmt.Errorf("%w: share.base_url: %w", ErrInvalidValue, err)
		}
	}
	return nil
}

// BaseURL returns the prefix for generated share links (empty by default,
// which yields bare "#key=..." fragments).
func (c *Config) BaseURL() string {
	return c.Share.BaseURL
}

// RevokeOnDelete returns whether deleting a document revokes its share
// tokens (defaults to true).
func (c *Config) RevokeOnDelete() bool {
	if c.Share.RevokeOnDelete == nil {
		return DefaultRevokeOnDelete
	}
	return *c.Share.RevokeOnDelete
}

// MaxTitle returns the maximum title length in bytes (defaults to 1024).
func (c *Config) MaxTitle() int {
	if c.Limits.MaxTitle == nil {
		return DefaultMaxTitle
	}
	return *c.Limits.MaxTitle
}

// MaxContent returns the maximum content size in bytes (defaults to 100 MB).
// Applies to the stored form, so ciphertext counts at its encoded size.
func (c *Config) MaxContent() int64 {
	if c.Limits.MaxContent == nil {
		return DefaultMaxContent
	}
	return *c.Limits.MaxContent
}

// LogLevel returns the operational log level (defaults to warn).
func (c *Config) LogLevel() string {
	if c.Log.Level == "" {
		return DefaultLogLevel
	}
	return c.Log.Level
}

// LocalPath returns the path to the local (repository) config file.
func LocalPath() string {
	return filepath.Join(Dir, "config.yaml")
}

// GlobalPath returns the path to the global (user) config file: ~/.anondocs/config.yaml
func GlobalPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, Dir, "config.yaml")
}

// Load reads configuration: uses local if it exists, otherwise global.
func Load() (*Config, error) {
	// Check if local config exists
	if _, err := os.Stat(LocalPath()); err == nil {
		return LoadScope(ScopeLocal)
	}
	// Fall back to global
	return LoadScope(ScopeGlobal)
}

// LoadScope reads configuration from a specific scope.
func LoadScope(scope Scope) (*Config, error) {
	path := pathForScope(scope)
	if path == "" {
		return &Config{scope: scope}, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Config{path: path, scope: scope}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("malformed config file %s: %w\n\nTo fix: edit the file to correct the YAML syntax, or delete it to use defaults", path, err)
	}
	cfg.path = path
	cfg.scope = scope

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return &cfg, nil
}

// Scope returns which scope this config was loaded from.
func (c *Config) Scope() Scope {
	return c.scope
}

// Save writes the configuration to its original location.
func (c *Config) Save() error {
	if c.path == "" {
		c.path = pathForScope(c.scope)
	}
	if c.path == "" {
		return ErrNoConfigPath
	}
	return c.saveToPath(c.path)
}

// SaveScope writes the configuration to the specified scope.
func (c *Config) SaveScope(scope Scope) error {
	path := pathForScope(scope)
	if path == "" {
		return ErrNoConfigPath
	}
	return c.saveToPath(path)
}

// saveToPath writes configuration to a specific filesystem path.
// Creates parent directories as needed with mode 0755.
func (c *Config) saveToPath(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// pathForScope returns the filesystem path for a given scope.
func pathForScope(scope Scope) string {
	switch scope {
	case ScopeLocal:
		return LocalPath()
	case ScopeGlobal:
		return GlobalPath()
	default:
		return ""
	}
}
