// Package config provides XDG path helpers.
package config

import (
	"os"
	"path/filepath"
)

// EnvConfigPath overrides the config file location.
const EnvConfigPath = "CAESAR_BREAKER_CONFIG"

const appDir = "caesar-breaker"

// XDGConfigHome returns the XDG config home or a default fallback.
func XDGConfigHome() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".config")
}

// DefaultConfigPath returns the TOML config path, honoring EnvConfigPath.
func DefaultConfigPath() string {
	if v := os.Getenv(EnvConfigPath); v != "" {
		return v
	}
	return filepath.Join(XDGConfigHome(), appDir, "config.toml")
}
