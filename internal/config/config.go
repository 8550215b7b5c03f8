// Copyright (c) 2025 OmniEmployee Project
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for omnichat.
//
// Configuration is read from ~/.omnichat/config.toml with sensible
// defaults and environment variable overrides.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete omnichat configuration.
type Config struct {
	// Backend connection settings
	Backend BackendConfig `toml:"backend"`

	// UI display settings
	UI UIConfig `toml:"ui"`
}

// BackendConfig contains backend connection configuration.
type BackendConfig struct {
	// BaseURL is the OmniEmployee backend base URL
	BaseURL string `toml:"base_url"`
	// TimeoutSecs is the non-streaming request timeout in seconds
	TimeoutSecs int `toml:"timeout_secs"`
}

// UIConfig contains display toggles for the sidebar panels.
type UIConfig struct {
	// ShowMemory shows the memory context panel
	ShowMemory bool `toml:"show_memory"`
	// ShowKnowledge shows the knowledge panel
	ShowKnowledge bool `toml:"show_knowledge"`
	// ShowTools shows inline tool call activity
	ShowTools bool `toml:"show_tools"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Backend: BackendConfig{
			BaseURL:     "http://localhost:8765",
			TimeoutSecs: 120,
		},
		UI: UIConfig{
			ShowMemory:    true,
			ShowKnowledge: true,
			ShowTools:     true,
		},
	}
}

// =============================================================================
// PATHS
// =============================================================================

// ConfigDir returns the omnichat configuration directory.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to determine home directory: %w", err)
	}
	return filepath.Join(home, ".omnichat"), nil
}

// ConfigPath returns the path to the TOML configuration file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// EnsureConfigDir creates the configuration directory if missing.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0700)
}

// =============================================================================
// LOADING
// =============================================================================

// Load reads the configuration file, applies environment overrides,
// fills defaults, and validates. A missing file is not an error; the
// defaults are returned.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		cfg := Default()
		cfg.ApplyEnvOverrides()
		return cfg, nil
	}
	return LoadFromPath(path)
}

// LoadFromPath reads the configuration from an explicit file path.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to decode config file: %w", err)
		}
	}

	cfg.ApplyEnvOverrides()
	cfg.fillDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// ApplyEnvOverrides applies environment variable overrides.
func (c *Config) ApplyEnvOverrides() {
	if base := os.Getenv("OMNICHAT_BASE_URL"); base != "" {
		c.Backend.BaseURL = base
	}
	if timeout := os.Getenv("OMNICHAT_TIMEOUT_SECS"); timeout != "" {
		if secs, err := strconv.Atoi(timeout); err == nil && secs > 0 {
			c.Backend.TimeoutSecs = secs
		}
	}
}

// fillDefaults replaces zero values with defaults after a partial file.
func (c *Config) fillDefaults() {
	def := Default()
	if c.Backend.BaseURL == "" {
		c.Backend.BaseURL = def.Backend.BaseURL
	}
	if c.Backend.TimeoutSecs <= 0 {
		c.Backend.TimeoutSecs = def.Backend.TimeoutSecs
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	u, err := url.Parse(c.Backend.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base_url %q: %w", c.Backend.BaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("base_url must be http or https, got %q", c.Backend.BaseURL)
	}
	if u.Host == "" {
		return fmt.Errorf("base_url missing host: %q", c.Backend.BaseURL)
	}
	return nil
}

// =============================================================================
// SAVING
// =============================================================================

// Save writes the configuration to the default path.
func Save(cfg *Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return SaveToPath(cfg, path)
}

// SaveToPath writes the configuration to an explicit file path.
// Creates config files with 0600 permissions (owner read/write only).
func SaveToPath(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer file.Close()

	fmt.Fprintln(file, "# omnichat configuration file")
	fmt.Fprintln(file, "")

	if err := toml.NewEncoder(file).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// =============================================================================
// DISPLAY TOGGLES
// =============================================================================

// Set updates a display toggle by its /config key. Returns false for
// an unknown key. Setting a key to its current value is a no-op, not a
// toggle.
func (u *UIConfig) Set(key string, value bool) bool {
	switch key {
	case "show_memory":
		u.ShowMemory = value
	case "show_knowledge":
		u.ShowKnowledge = value
	case "show_tools":
		u.ShowTools = value
	default:
		return false
	}
	return true
}

// Get reads a display toggle by its /config key.
func (u *UIConfig) Get(key string) (bool, bool) {
	switch key {
	case "show_memory":
		return u.ShowMemory, true
	case "show_knowledge":
		return u.ShowKnowledge, true
	case "show_tools":
		return u.ShowTools, true
	default:
		return false, false
	}
}
