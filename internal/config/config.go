// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete threadline configuration.
type Config struct {
	Backend BackendConfig `toml:"backend"`
	UI      UIConfig      `toml:"ui"`
}

// BackendConfig contains the managed backend connection settings.
type BackendConfig struct {
	// URL is the backend project URL, e.g. https://myproject.supabase.co
	URL string `toml:"url"`
	// AnonKey is the public API key sent with every request.
	AnonKey string `toml:"anon_key"`
	// RelayFunction is the name of the assistant relay function.
	RelayFunction string `toml:"relay_function"`
	// TimeoutSecs is the REST request timeout in seconds.
	TimeoutSecs int `toml:"timeout_secs"`
}

// UIConfig contains terminal UI settings.
type UIConfig struct {
	// MessageWidth is the maximum rendered width of a message bubble.
	MessageWidth int `toml:"message_width"`
	// Animations disables the staggered message reveal when false.
	Animations bool `toml:"animations"`
}

// =============================================================================
// DEFAULTS
// =============================================================================

// Default returns the built-in default configuration.
func Default() *Config {
	return &Config{
		Backend: BackendConfig{
			RelayFunction: "assistant-relay",
			TimeoutSecs:   30,
		},
		UI: UIConfig{
			MessageWidth: 80,
			Animations:   true,
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// Dir returns the threadline configuration directory path.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".threadline"), nil
}

// Path returns the path to the TOML config file.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// EnsureDir ensures the config directory exists.
func EnsureDir() error {
	dir, err := Dir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}

// ensureSecurePermissions fixes permissions on the config file. It holds
// the anon key, so anything wider than 0600 gets tightened.
func ensureSecurePermissions(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if mode := info.Mode().Perm(); mode != 0600 {
		if err := os.Chmod(path, 0600); err != nil {
			return fmt.Errorf("failed to fix insecure permissions (was %o): %w", mode, err)
		}
	}
	return nil
}

// =============================================================================
// LOAD / SAVE
// =============================================================================

// Load loads configuration from ~/.threadline/config.toml, falling back to
// defaults when the file is absent. Environment overrides are applied last.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	return LoadFromPath(path)
}

// LoadFromPath loads configuration from a specific TOML file.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); err == nil {
		if err := ensureSecurePermissions(path); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not ensure secure permissions on %s: %v\n", path, err)
		}
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to decode config file: %w", err)
		}
	}

	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Save saves the configuration to the default TOML file with 0600
// permissions, since it carries the anon key.
func Save(cfg *Config) error {
	path, err := Path()
	if err != nil {
		return err
	}
	return SaveToPath(cfg, path)
}

// SaveToPath saves the configuration to a specific TOML file.
func SaveToPath(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer file.Close()

	if err := os.Chmod(path, 0600); err != nil {
		return fmt.Errorf("failed to set config file permissions: %w", err)
	}

	fmt.Fprintln(file, "# threadline configuration file")
	fmt.Fprintln(file, "# Generated by threadline - edit with care")
	fmt.Fprintln(file, "")

	if err := toml.NewEncoder(file).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// =============================================================================
// DEFAULTS AND VALIDATION
// =============================================================================

// SetDefaults fills in zero values with their defaults.
func (c *Config) SetDefaults() {
	def := Default()
	if c.Backend.RelayFunction == "" {
		c.Backend.RelayFunction = def.Backend.RelayFunction
	}
	if c.Backend.TimeoutSecs <= 0 {
		c.Backend.TimeoutSecs = def.Backend.TimeoutSecs
	}
	if c.UI.MessageWidth <= 0 {
		c.UI.MessageWidth = def.UI.MessageWidth
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Backend.URL != "" {
		u, err := url.Parse(c.Backend.URL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("backend.url %q is not a valid URL", c.Backend.URL)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("backend.url must use http or https, got %q", u.Scheme)
		}
	}
	if c.UI.MessageWidth < 20 {
		return fmt.Errorf("ui.message_width must be at least 20, got %d", c.UI.MessageWidth)
	}
	return nil
}

// Configured reports whether the backend connection is usable.
func (c *Config) Configured() bool {
	return c.Backend.URL != "" && c.Backend.AnonKey != ""
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides to the config.
//
// Supported environment variables:
//   - THREADLINE_BACKEND_URL: overrides backend.url
//   - THREADLINE_ANON_KEY: overrides backend.anon_key
//   - THREADLINE_RELAY_FUNCTION: overrides backend.relay_function
//   - THREADLINE_TIMEOUT_SECS: overrides backend.timeout_secs
//   - THREADLINE_NO_ANIMATIONS: set to "1" or "true" to disable animations
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("THREADLINE_BACKEND_URL"); v != "" {
		c.Backend.URL = v
	}
	if v := os.Getenv("THREADLINE_ANON_KEY"); v != "" {
		c.Backend.AnonKey = v
	}
	if v := os.Getenv("THREADLINE_RELAY_FUNCTION"); v != "" {
		c.Backend.RelayFunction = v
	}
	if v := os.Getenv("THREADLINE_TIMEOUT_SECS"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			c.Backend.TimeoutSecs = secs
		}
	}
	if v := os.Getenv("THREADLINE_NO_ANIMATIONS"); v != "" {
		if v == "1" || strings.EqualFold(v, "true") {
			c.UI.Animations = false
		}
	}
}
