package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds user preferences, read from ~/.config/tenzing/config.toml.
type Config struct {
	// ProjectIDs are the Basecamp project ids this install tracks.
	ProjectIDs []string `toml:"project_ids"`
	// UserID is the Basecamp person whose todos are fetched by default.
	UserID string `toml:"user_id"`
	// Editor overrides $VISUAL/$EDITOR for the todo creation flow.
	Editor string `toml:"editor"`

	// Basecamp credentials. Environment variables win over the file.
	AccountID   string `toml:"account_id"`
	AccessToken string `toml:"access_token"`

	// Logging configuration
	LogLevel   string `toml:"log_level"`
	LogFile    string `toml:"log_file"`
	LogConsole bool   `toml:"log_console"`
}

// Dir returns the tenzing config directory (~/.config/tenzing).
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "tenzing"), nil
}

// DefaultConfig returns default settings.
func DefaultConfig() *Config {
	logPath := ""
	if dir, err := Dir(); err == nil {
		logPath = filepath.Join(dir, "logs", "tenzing.log")
	}

	return &Config{
		LogLevel:   getEnv("TENZING_LOG_LEVEL", "info"),
		LogFile:    getEnv("TENZING_LOG_FILE", logPath),
		LogConsole: getEnv("TENZING_LOG_CONSOLE", "false") == "true",
	}
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// Load loads config from ~/.config/tenzing/config.toml. A missing file is
// not an error; defaults are returned.
func Load() (*Config, error) {
	dir, err := Dir()
	if err != nil {
		return nil, err
	}
	return LoadFrom(filepath.Join(dir, "config.toml"))
}

// LoadFrom loads config from an explicit path.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg.applyEnv()
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnv()
	return cfg, nil
}

// applyEnv lets environment variables win over the file for credentials,
// and resolves the editor fallback chain.
func (c *Config) applyEnv() {
	if v := os.Getenv("BASECAMP_ACCOUNT_ID"); v != "" {
		c.AccountID = v
	}
	if v := os.Getenv("BASECAMP_ACCESS_TOKEN"); v != "" {
		c.AccessToken = v
	}
	if c.Editor == "" {
		c.Editor = getEnv("VISUAL", getEnv("EDITOR", "vim"))
	}
}

// Save writes the config back to ~/.config/tenzing/config.toml.
func (c *Config) Save() error {
	dir, err := Dir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(filepath.Join(dir, "config.toml"))
	if err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}
