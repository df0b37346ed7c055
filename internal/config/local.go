package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LocalConfig holds configuration for the hint daemon
type LocalConfig struct {
	Daemon    DaemonConfig    `yaml:"daemon"`
	Knowledge KnowledgeConfig `yaml:"knowledge"`
	Limits    LimitsConfig    `yaml:"limits"`
}

// DaemonConfig holds daemon server settings
type DaemonConfig struct {
	Port     int    `yaml:"port"`
	Bind     string `yaml:"bind"`
	LogLevel string `yaml:"log_level"`
}

// KnowledgeConfig selects the knowledge base
type KnowledgeConfig struct {
	Path string `yaml:"path,omitempty"` // empty uses the embedded knowledge base
}

// LimitsConfig bounds per-instance work
type LimitsConfig struct {
	MaxConcurrent       int   `yaml:"max_concurrent"`
	QueueTimeoutSeconds int   `yaml:"queue_timeout_seconds"`
	MaxBodyBytes        int64 `yaml:"max_body_bytes"`
}

// AntivibeDir returns the path to ~/.antivibe
func AntivibeDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".antivibe"), nil
}

// EnsureAntivibeDir creates ~/.antivibe and subdirectories if they don't exist
func EnsureAntivibeDir() (string, error) {
	dir, err := AntivibeDir()
	if err != nil {
		return "", err
	}

	for _, subdir := range []string{"", "logs"} {
		path := filepath.Join(dir, subdir)
		if err := os.MkdirAll(path, 0755); err != nil {
			return "", fmt.Errorf("create dir %s: %w", path, err)
		}
	}

	return dir, nil
}

// DefaultLocalConfig returns sensible defaults for local mode
func DefaultLocalConfig() *LocalConfig {
	return &LocalConfig{
		Daemon: DaemonConfig{
			Port:     8000,
			Bind:     "0.0.0.0",
			LogLevel: "info",
		},
		Limits: LimitsConfig{
			MaxConcurrent:       64,
			QueueTimeoutSeconds: 5,
			MaxBodyBytes:        1 << 20,
		},
	}
}

// LoadLocalConfig loads ~/.antivibe/config.yaml and applies environment overrides
func LoadLocalConfig() (*LocalConfig, error) {
	dir, err := AntivibeDir()
	if err != nil {
		return nil, err
	}
	return LoadLocalConfigFrom(filepath.Join(dir, "config.yaml"))
}

// LoadLocalConfigFrom loads configuration from path over the defaults.
// A missing file is not an error.
func LoadLocalConfigFrom(path string) (*LocalConfig, error) {
	cfg := DefaultLocalConfig()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return nil, fmt.Errorf("read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := ApplyEnv(cfg); err != nil {
		return nil, fmt.Errorf("apply env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that the configuration is usable
func (c *LocalConfig) Validate() error {
	if c.Daemon.Port < 0 || c.Daemon.Port > 65535 {
		return fmt.Errorf("daemon.port %d out of range", c.Daemon.Port)
	}
	switch c.Daemon.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("daemon.log_level %q must be one of debug, info, warn, error", c.Daemon.LogLevel)
	}
	if c.Limits.MaxConcurrent < 0 {
		return fmt.Errorf("limits.max_concurrent must not be negative")
	}
	if c.Limits.MaxBodyBytes <= 0 {
		return fmt.Errorf("limits.max_body_bytes must be positive")
	}
	return nil
}

// Addr returns the listen address
func (c *LocalConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Daemon.Bind, c.Daemon.Port)
}

// SaveLocalConfig saves configuration to ~/.antivibe/config.yaml
func SaveLocalConfig(cfg *LocalConfig) error {
	dir, err := EnsureAntivibeDir()
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), data, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	return nil
}
