package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/gerunddev/ztoq/internal/gitrepo"
)

// Config represents the ztoq configuration
type Config struct {
	RawURLTemplate string        `json:"raw_url_template"`
	Remote         string        `json:"remote"`
	PollInterval   time.Duration `json:"-"` // Custom JSON handling below
	LogFile        string        `json:"log_file,omitempty"`
	Extensions     []string      `json:"extensions,omitempty"`
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		RawURLTemplate: gitrepo.DefaultRawURLTemplate,
		Remote:         "origin",
		PollInterval:   time.Second,
		LogFile:        "",
		Extensions:     []string{".md", ".mdx"},
	}
}

// ConfigPath returns the path to the config file
// Uses ~/.config on all platforms for consistency
// Can be overridden for testing
var ConfigPath = func() string {
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to XDG if home dir unavailable
		return filepath.Join(xdg.ConfigHome, "ztoq", "config.json")
	}
	return filepath.Join(home, ".config", "ztoq", "config.json")
}

// fileConfig is the on-disk shape; durations are strings
type fileConfig struct {
	RawURLTemplate string   `json:"raw_url_template,omitempty"`
	Remote         string   `json:"remote,omitempty"`
	PollInterval   string   `json:"poll_interval,omitempty"`
	LogFile        string   `json:"log_file,omitempty"`
	Extensions     []string `json:"extensions,omitempty"`
}

// Load reads configuration from the default config path
func Load() (*Config, error) {
	return LoadFile(ConfigPath())
}

// LoadFile reads configuration from path. Keys missing from the file keep
// their defaults; a missing file yields the defaults.
func LoadFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	var raw fileConfig
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if raw.RawURLTemplate != "" {
		cfg.RawURLTemplate = raw.RawURLTemplate
	}
	if raw.Remote != "" {
		cfg.Remote = raw.Remote
	}
	if raw.PollInterval != "" {
		interval, err := time.ParseDuration(raw.PollInterval)
		if err != nil {
			return nil, fmt.Errorf("invalid poll_interval format '%s': %w", raw.PollInterval, err)
		}
		cfg.PollInterval = interval
	}
	cfg.LogFile = raw.LogFile
	if raw.Extensions != nil {
		cfg.Extensions = raw.Extensions
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if err := cfg.ExpandPaths(); err != nil {
		return nil, fmt.Errorf("failed to expand paths: %w", err)
	}

	return cfg, nil
}

// Save writes configuration to path
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	raw := fileConfig{
		RawURLTemplate: c.RawURLTemplate,
		Remote:         c.Remote,
		PollInterval:   c.PollInterval.String(),
		LogFile:        c.LogFile,
		Extensions:     c.Extensions,
	}

	data, err := json.MarshalIndent(raw, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.RawURLTemplate == "" {
		return fmt.Errorf("raw_url_template cannot be empty")
	}
	if c.Remote == "" {
		return fmt.Errorf("remote cannot be empty")
	}
	if c.PollInterval <= 0 {
		return fmt.Errorf("poll_interval must be positive")
	}
	if len(c.Extensions) == 0 {
		return fmt.Errorf("extensions cannot be empty")
	}
	for _, ext := range c.Extensions {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			return fmt.Errorf("invalid extension '%s': must start with '.'", ext)
		}
	}

	return nil
}

// ExpandPaths expands any ~ or relative paths to absolute paths
func (c *Config) ExpandPaths() error {
	var err error

	c.LogFile, err = expandPath(c.LogFile)
	if err != nil {
		return fmt.Errorf("failed to expand log_file: %w", err)
	}

	return nil
}

// expandPath expands ~ to home directory and converts to absolute path
func expandPath(path string) (string, error) {
	if path == "" {
		return path, nil
	}

	// Expand ~ to home directory
	if path[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		if len(path) == 1 {
			return homeDir, nil
		}
		path = filepath.Join(homeDir, path[1:])
	}

	// Convert to absolute path
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}

	return absPath, nil
}
