// Package config loads and saves costdash settings.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Environment variables that override the config file.
const (
	EnvBaseURL  = "COSTDASH_BASE_URL"
	EnvLogLevel = "COSTDASH_LOG_LEVEL"
)

// Config holds all costdash configuration.
type Config struct {
	Backend    BackendConfig    `toml:"backend"`
	Appearance AppearanceConfig `toml:"appearance"`
	Log        LogConfig        `toml:"log"`
}

// BackendConfig describes where the cost backend lives.
type BackendConfig struct {
	BaseURL    string `toml:"base_url"`
	TimeoutSec int    `toml:"timeout_sec"` // 0 disables the request timeout
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file,omitempty"` // TUI log destination; empty uses LogPath()
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Backend: BackendConfig{
			BaseURL: "http://localhost:8000",
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Dir returns the XDG-compliant config directory.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "costdash")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "costdash")
}

// Path returns the full path to the config file.
func Path() string {
	return filepath.Join(Dir(), "config.toml")
}

// LogPath returns the default TUI log file location.
func LogPath() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, "costdash", "costdash.log")
	}
	return filepath.Join(Dir(), "costdash.log")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	return LoadFrom(Path())
}

// LoadFrom reads the config at path, returning defaults if it doesn't exist.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	return SaveTo(Path(), cfg)
}

// SaveTo writes the config to path, creating its directory.
func SaveTo(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(Path())
	return err == nil
}

// LoadEnv reads an optional .env file from the working directory. Variables
// already set in the environment win.
func LoadEnv() {
	_ = godotenv.Load()
}

// BaseURL returns the backend URL from env var or config, in that order.
func BaseURL(cfg Config) string {
	if v := strings.TrimSpace(os.Getenv(EnvBaseURL)); v != "" {
		return v
	}
	return cfg.Backend.BaseURL
}

// LogLevel returns the log level from env var or config, in that order.
func LogLevel(cfg Config) string {
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		return v
	}
	return cfg.Log.Level
}

// Timeout returns the per-request timeout; zero means none.
func Timeout(cfg Config) time.Duration {
	if cfg.Backend.TimeoutSec <= 0 {
		return 0
	}
	return time.Duration(cfg.Backend.TimeoutSec) * time.Second
}

// ValidateBaseURL checks that s is an absolute http(s) URL.
func ValidateBaseURL(s string) error {
	u, err := url.Parse(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return errors.New("URL must start with http:// or https://")
	}
	if u.Host == "" {
		return errors.New("URL must include a host")
	}
	return nil
}
